package uploads

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appcfg "github.com/zeroclick/core/internal/config"
)

type fakePresigner struct {
	lastInput *s3.PutObjectInput
	calls     int
}

func (f *fakePresigner) PresignPutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.calls++
	f.lastInput = params
	return &v4.PresignedHTTPRequest{URL: "https://memos.example.com/" + aws.ToString(params.Key) + "?sig=abc"}, nil
}

func newTestBroker(presigner Presigner) *Broker {
	return NewBroker(presigner, appcfg.StorageConfig{
		Bucket:            "memos",
		MaxUploadMB:       50,
		UploadTTLMinutes:  15,
		AllowedAudioTypes: []string{"audio/mpeg", "audio/wav", "audio/mp4"},
	})
}

func TestAuthorize(t *testing.T) {
	presigner := &fakePresigner{}
	broker := newTestBroker(presigner)

	grant, err := broker.Authorize(context.Background(), "standup notes.mp3", "audio/mpeg", 1024)
	require.NoError(t, err)

	assert.Equal(t, "memos", aws.ToString(presigner.lastInput.Bucket))
	assert.Equal(t, "audio/mpeg", aws.ToString(presigner.lastInput.ContentType))
	assert.Equal(t, int64(1024), aws.ToInt64(presigner.lastInput.ContentLength))

	today := time.Now().UTC().Format("2006-01-02")
	assert.True(t, strings.HasPrefix(grant.ObjectKey, "uploads/"+today+"/"))
	assert.True(t, strings.HasSuffix(grant.ObjectKey, "-standup_notes.mp3"))
	assert.Contains(t, grant.URL, grant.ObjectKey)
	assert.True(t, grant.ExpiresAt.After(time.Now()))
}

func TestAuthorizeRejectsNonAudio(t *testing.T) {
	presigner := &fakePresigner{}
	broker := newTestBroker(presigner)

	_, err := broker.Authorize(context.Background(), "malware.exe", "application/octet-stream", 1024)
	require.ErrorIs(t, err, ErrUnsupportedType)
	assert.Equal(t, 0, presigner.calls)
}

func TestAuthorizeRejectsOversize(t *testing.T) {
	presigner := &fakePresigner{}
	broker := newTestBroker(presigner)

	_, err := broker.Authorize(context.Background(), "long.mp3", "audio/mpeg", 51*1024*1024)
	require.ErrorIs(t, err, ErrFileTooLarge)

	_, err = broker.Authorize(context.Background(), "empty.mp3", "audio/mpeg", 0)
	require.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, 0, presigner.calls)
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "voice-memo_1.mp3", sanitizeFileName("voice-memo 1.mp3"))
	assert.Equal(t, "passwd", sanitizeFileName("../../etc/passwd"))
	assert.Equal(t, "notes.mp3", sanitizeFileName(`C:\Users\x\notes.mp3`))
	assert.Equal(t, "upload", sanitizeFileName("   "))
}
