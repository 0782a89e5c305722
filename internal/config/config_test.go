package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
dsn: "user:pass@tcp(localhost:3306)/zeroclick?parseTime=true"
redis_url: "redis://localhost:6379/0"
ai:
  providers:
    - id: openai
      type: OpenAI
      api_key: sk-test
      default_model: gpt-4o-mini
      enabled: true
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "zero_click_crm.crm_records", cfg.CRM.FullTableName())
	assert.Equal(t, 50, cfg.CRM.QueryRowLimit)
	assert.Equal(t, 4000, cfg.CRM.VoiceTranscriptMax)
	assert.Equal(t, 50, cfg.Storage.MaxUploadMB)
	assert.Equal(t, 15, cfg.Storage.UploadTTLMinutes)
	assert.Contains(t, cfg.Storage.AllowedAudioTypes, "audio/mpeg")
	assert.Equal(t, "whisper-1", cfg.Transcribe.Model)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ZEROCLICK_DSN", "override:pass@tcp(db:3306)/zeroclick")
	t.Setenv("ZEROCLICK_AI_API_KEY", "sk-env")

	cfg, err := Load(writeConfig(t, `
dsn: "file-dsn"
redis_url: "redis://localhost:6379/0"
ai:
  providers:
    - id: openai
      type: OpenAI
      default_model: gpt-4o-mini
      enabled: true
`))
	require.NoError(t, err)

	assert.Equal(t, "override:pass@tcp(db:3306)/zeroclick", cfg.DSN)
	assert.Equal(t, "sk-env", cfg.AI.Providers[0].APIKey)
}

func TestLoadRejectsMissingDSN(t *testing.T) {
	t.Setenv("ZEROCLICK_DSN", "")
	_, err := Load(writeConfig(t, `
redis_url: "redis://localhost:6379/0"
ai:
  providers:
    - id: openai
      type: OpenAI
      api_key: sk-test
      enabled: true
`))
	require.Error(t, err)
}

func TestLoadRejectsNoEnabledProvider(t *testing.T) {
	_, err := Load(writeConfig(t, `
dsn: "x"
redis_url: "redis://localhost:6379/0"
ai:
  providers:
    - id: openai
      type: OpenAI
      api_key: sk-test
      enabled: false
`))
	require.Error(t, err)
}

func TestFirstEnabledProvider(t *testing.T) {
	cfg := AIConfig{Providers: []AIProvider{
		{ID: "a", Enabled: false},
		{ID: "b", Enabled: true},
		{ID: "c", Enabled: true},
	}}
	p := cfg.FirstEnabledProvider()
	require.NotNil(t, p)
	assert.Equal(t, "b", p.ID)
}
