package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort            = 8080
	defaultEnv             = "development"
	defaultDataset         = "zero_click_crm"
	defaultTable           = "crm_records"
	defaultQueryRowLimit   = 50
	defaultMaxUploadMB     = 50
	defaultUploadTTLMin    = 15
	defaultVoiceMaxRunes   = 4000
	defaultTranscribeModel = "whisper-1"
)

// AppConfig holds runtime startup configuration loaded from YAML.
// It is built once at process start and passed to constructors; no
// package keeps implicit global configuration state.
type AppConfig struct {
	Port           int              `yaml:"port"`
	Env            string           `yaml:"env"` // "development" | "production"
	DSN            string           `yaml:"dsn"` // MySQL DSN
	RedisURL       string           `yaml:"redis_url"`
	AllowedOrigins []string         `yaml:"allowed_origins"`
	AI             AIConfig         `yaml:"ai"`
	Storage        StorageConfig    `yaml:"storage"`
	Transcribe     TranscribeConfig `yaml:"transcribe"`
	CRM            CRMConfig        `yaml:"crm"`
}

// AIConfig selects the generative model used by extraction and search.
type AIConfig struct {
	Providers []AIProvider `yaml:"providers"`
}

type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// StorageConfig describes the S3-compatible bucket audio memos land in.
type StorageConfig struct {
	Bucket            string   `yaml:"bucket"`
	Region            string   `yaml:"region"`
	Endpoint          string   `yaml:"endpoint,omitempty"`
	AccessKeyID       string   `yaml:"access_key_id"`
	SecretAccessKey   string   `yaml:"secret_access_key"`
	MaxUploadMB       int      `yaml:"max_upload_mb"`
	UploadTTLMinutes  int      `yaml:"upload_ttl_minutes"`
	AllowedAudioTypes []string `yaml:"allowed_audio_types"`
}

// TranscribeConfig configures the speech-to-text backend.
type TranscribeConfig struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint,omitempty"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
}

// CRMConfig pins the analytical table the pipeline writes to and the
// query guard locks onto.
type CRMConfig struct {
	Dataset            string `yaml:"dataset"`
	Table              string `yaml:"table"`
	QueryRowLimit      int    `yaml:"query_row_limit"`
	VoiceTranscriptMax int    `yaml:"voice_transcript_max_runes"`
}

// FullTableName returns the fully-qualified table reference used in
// guard prompts and validation.
func (c CRMConfig) FullTableName() string {
	return c.Dataset + "." + c.Table
}

func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// FirstEnabledProvider returns the first enabled AI provider, or nil.
func (c AIConfig) FirstEnabledProvider() *AIProvider {
	for i := range c.Providers {
		if c.Providers[i].Enabled {
			p := c.Providers[i]
			return &p
		}
	}
	return nil
}

// Load reads the YAML config file, applies environment overrides for
// secrets, fills defaults and validates the result.
func Load(path string) (*AppConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &AppConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets deploy environments inject secrets without
// writing them into the config file.
func (c *AppConfig) applyEnvOverrides() {
	if v := os.Getenv("ZEROCLICK_DSN"); v != "" {
		c.DSN = v
	}
	if v := os.Getenv("ZEROCLICK_REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("ZEROCLICK_AI_API_KEY"); v != "" {
		for i := range c.AI.Providers {
			if strings.TrimSpace(c.AI.Providers[i].APIKey) == "" {
				c.AI.Providers[i].APIKey = v
			}
		}
	}
	if v := os.Getenv("ZEROCLICK_TRANSCRIBE_API_KEY"); v != "" {
		c.Transcribe.APIKey = v
	}
	if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" && c.Storage.AccessKeyID == "" {
		c.Storage.AccessKeyID = v
	}
	if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" && c.Storage.SecretAccessKey == "" {
		c.Storage.SecretAccessKey = v
	}
}

func (c *AppConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Env == "" {
		c.Env = defaultEnv
	}
	if c.CRM.Dataset == "" {
		c.CRM.Dataset = defaultDataset
	}
	if c.CRM.Table == "" {
		c.CRM.Table = defaultTable
	}
	if c.CRM.QueryRowLimit <= 0 {
		c.CRM.QueryRowLimit = defaultQueryRowLimit
	}
	if c.CRM.VoiceTranscriptMax <= 0 {
		c.CRM.VoiceTranscriptMax = defaultVoiceMaxRunes
	}
	if c.Storage.MaxUploadMB <= 0 {
		c.Storage.MaxUploadMB = defaultMaxUploadMB
	}
	if c.Storage.UploadTTLMinutes <= 0 {
		c.Storage.UploadTTLMinutes = defaultUploadTTLMin
	}
	if len(c.Storage.AllowedAudioTypes) == 0 {
		c.Storage.AllowedAudioTypes = []string{
			"audio/mpeg", "audio/mp3", "audio/wav", "audio/x-wav",
			"audio/mp4", "audio/m4a", "audio/x-m4a", "audio/webm",
			"audio/ogg", "audio/flac",
		}
	}
	if c.Transcribe.Model == "" {
		c.Transcribe.Model = defaultTranscribeModel
	}
}

func (c *AppConfig) validate() error {
	if strings.TrimSpace(c.DSN) == "" {
		return errors.New("config: dsn is required")
	}
	if strings.TrimSpace(c.RedisURL) == "" {
		return errors.New("config: redis_url is required")
	}
	if c.AI.FirstEnabledProvider() == nil {
		return errors.New("config: at least one enabled ai provider is required")
	}
	return nil
}
