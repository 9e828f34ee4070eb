package common

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/legal-docify/constants"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig `yaml:"server"`
	LLM      LLMConfig    `yaml:"llm"`
	Audit    AuditConfig  `yaml:"audit"`
	LogLevel string       `yaml:"log_level"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr        string `yaml:"grpc_addr"`
	HTTPAddr        string `yaml:"http_addr"`
	MaxPayloadBytes int64  `yaml:"max_payload_bytes"`
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`      // http client ceiling
	CallTimeout time.Duration `yaml:"call_timeout"` // per summarize/extract call

	VertexProjectID string `yaml:"vertex_project_id"`
	VertexRegion    string `yaml:"vertex_region"`
}

// AuditConfig holds run-audit storage configuration. Empty DSN disables auditing.
type AuditConfig struct {
	DSN         string        `yaml:"dsn"`
	MaxConns    int32         `yaml:"max_conns"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

// DefaultConfig returns the defaults applied before the file and the environment.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			GRPCAddr:        ":9090",
			HTTPAddr:        ":8000",
			MaxPayloadBytes: 10 << 20,
		},
		LLM: LLMConfig{
			Provider:     string(constants.ProviderOpenAI),
			BaseURL:      "https://api.openai.com/v1",
			Temperature:  0.0,
			Timeout:      90 * time.Second,
			CallTimeout:  60 * time.Second,
			VertexRegion: "us-central1",
		},
		Audit: AuditConfig{
			MaxConns:    4,
			DialTimeout: 3 * time.Second,
		},
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from the optional YAML file named by
// DOCIFY_CONFIG, then lets environment variables override it.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()
	if path := os.Getenv("DOCIFY_CONFIG"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	cfg.applyModelDefault()
	return cfg, nil
}

// LoadFile merges a YAML file into c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.GRPCAddr = getEnv("GRPC_ADDR", c.Server.GRPCAddr)
	c.Server.HTTPAddr = getEnv("HTTP_ADDR", c.Server.HTTPAddr)
	c.Server.MaxPayloadBytes = getEnvAsInt64("MAX_PAYLOAD_BYTES", c.Server.MaxPayloadBytes)

	c.LLM.Provider = getEnv("LLM_PROVIDER", c.LLM.Provider)
	c.LLM.APIKey = getEnv("OPENAI_API_KEY", c.LLM.APIKey)
	c.LLM.BaseURL = getEnv("OPENAI_BASE_URL", c.LLM.BaseURL)
	c.LLM.Temperature = getEnvAsFloat32("OPENAI_TEMPERATURE", c.LLM.Temperature)
	c.LLM.Timeout = getEnvAsDuration("OPENAI_TIMEOUT", c.LLM.Timeout)
	c.LLM.CallTimeout = getEnvAsDuration("LLM_CALL_TIMEOUT", c.LLM.CallTimeout)
	c.LLM.VertexProjectID = getEnv("VERTEX_PROJECT_ID", c.LLM.VertexProjectID)
	c.LLM.VertexRegion = getEnv("VERTEX_REGION", c.LLM.VertexRegion)
	if p, _ := constants.ParseProvider(c.LLM.Provider); p == constants.ProviderVertex {
		c.LLM.Model = getEnv("VERTEX_MODEL", c.LLM.Model)
	} else {
		c.LLM.Model = getEnv("OPENAI_MODEL", c.LLM.Model)
	}

	c.Audit.DSN = getEnv("AUDIT_DSN", c.Audit.DSN)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

func (c *Config) applyModelDefault() {
	if c.LLM.Model != "" {
		return
	}
	if p, _ := constants.ParseProvider(c.LLM.Provider); p == constants.ProviderVertex {
		c.LLM.Model = constants.DefaultVertexModel
	} else {
		c.LLM.Model = constants.DefaultOpenAIModel
	}
}

// SlogLevel maps LogLevel onto slog; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the LLM settings. Listen addresses are checked by ValidateServer.
func (c *Config) Validate() error {
	v := NewValidator()
	v.Field("LLM_PROVIDER", c.LLM.Provider, KnownProvider)
	v.Field("LLM_CALL_TIMEOUT", c.LLM.CallTimeout, Positive)
	v.Field("model", c.LLM.Model, Required)

	p, _ := constants.ParseProvider(c.LLM.Provider)
	switch p {
	case constants.ProviderOpenAI:
		v.Field("OPENAI_API_KEY", c.LLM.APIKey, Required)
		v.Field("OPENAI_BASE_URL", c.LLM.BaseURL, Required)
	case constants.ProviderVertex:
		v.Field("VERTEX_PROJECT_ID", c.LLM.VertexProjectID, Required)
		v.Field("VERTEX_REGION", c.LLM.VertexRegion, Required)
	}
	if v.HasErrors() {
		return NewAppError("CONFIG_ERROR", v.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}

// ValidateServer additionally requires at least one listen address.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Server.GRPCAddr == "" && c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "one of GRPC_ADDR or HTTP_ADDR is required", ErrInvalidInput)
	}
	v := NewValidator()
	v.Field("MAX_PAYLOAD_BYTES", c.Server.MaxPayloadBytes, Positive)
	if v.HasErrors() {
		return NewAppError("CONFIG_ERROR", v.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}
