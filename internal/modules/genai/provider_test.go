package genai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	jetapi "go.jetify.com/ai/api"
)

// recordingModel captures the call options the client forwards to the SDK.
type recordingModel struct {
	lastOpts jetapi.CallOptions
	lastMsgs []jetapi.Message
	output   string
}

func (m *recordingModel) ProviderName() string { return "recording" }

func (m *recordingModel) ModelID() string { return "recording-model" }

func (m *recordingModel) SupportedUrls() []jetapi.SupportedURL { return nil }

func (m *recordingModel) Generate(_ context.Context, prompt []jetapi.Message, opts jetapi.CallOptions) (*jetapi.Response, error) {
	m.lastMsgs = prompt
	m.lastOpts = opts
	return &jetapi.Response{
		Content:      jetapi.ContentFromText(m.output),
		FinishReason: jetapi.FinishReasonStop,
	}, nil
}

func (m *recordingModel) Stream(context.Context, []jetapi.Message, jetapi.CallOptions) (*jetapi.StreamResponse, error) {
	return nil, nil
}

func TestJetClientForwardsJSONOutput(t *testing.T) {
	model := &recordingModel{output: `{"ok": true}`}
	client := &jetClient{model: model}

	out, err := client.Generate(context.Background(), Request{
		System:      "system instructions",
		Prompt:      "user turn",
		Temperature: 0.1,
		JSONOutput:  true,
		MaxTokens:   1024,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, out)

	require.NotNil(t, model.lastOpts.ResponseFormat)
	assert.Equal(t, "json", model.lastOpts.ResponseFormat.Type)
	assert.Equal(t, 1024, model.lastOpts.MaxOutputTokens)
	require.NotNil(t, model.lastOpts.Temperature)
	assert.Equal(t, 0.1, *model.lastOpts.Temperature)
	require.Len(t, model.lastMsgs, 2)
}

func TestJetClientPlainTextLeavesResponseFormatUnset(t *testing.T) {
	model := &recordingModel{output: "plain text answer"}
	client := &jetClient{model: model}

	out, err := client.Generate(context.Background(), Request{
		Prompt:      "user turn",
		Temperature: 0.1,
	})
	require.NoError(t, err)
	assert.Equal(t, "plain text answer", out)

	assert.Nil(t, model.lastOpts.ResponseFormat)
	assert.Equal(t, defaultMaxTokens, model.lastOpts.MaxOutputTokens)
}
