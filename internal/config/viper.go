package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"jose/statement-ingest/internal/parsererror"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// AI providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// EnvPrefix prefixes every environment override, e.g. JOSE_LOG_LEVEL.
const EnvPrefix = "JOSE"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	AI struct {
		Provider       string `mapstructure:"provider" yaml:"provider"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		MaxTokens      int64  `mapstructure:"max_tokens" yaml:"max_tokens"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Database struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"database" yaml:"database"`

	Rules struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"rules" yaml:"rules"`

	Webhook struct {
		Addr   string `mapstructure:"addr" yaml:"addr"`
		Secret string `mapstructure:"secret" yaml:"-"`
		UserID string `mapstructure:"user_id" yaml:"user_id"`
	} `mapstructure:"webhook" yaml:"webhook"`
}

// AIEnabled reports whether an AI credential is configured.
func (c *Config) AIEnabled() bool {
	return c.AI.APIKey != ""
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.jose")
	v.AddConfigPath(".jose")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Provider keys under their conventional names
	config.AI.Provider = strings.ToLower(strings.TrimSpace(config.AI.Provider))
	if config.AI.APIKey == "" {
		config.AI.APIKey = providerAPIKey(config.AI.Provider)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func providerAPIKey(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return GetEnv("ANTHROPIC_API_KEY", "")
	case ProviderGemini:
		return GetEnv("GEMINI_API_KEY", "")
	}
	return ""
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	// An empty model selects the provider's default.
	v.SetDefault("ai.provider", ProviderGemini)
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.timeout_seconds", 60)
	v.SetDefault("ai.max_tokens", 8192)
	v.SetDefault("ai.api_key", "")

	v.SetDefault("database.path", "data/jose.db")
	v.SetDefault("rules.file", "")

	v.SetDefault("webhook.addr", ":8080")
	v.SetDefault("webhook.secret", "")
	v.SetDefault("webhook.user_id", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return &parsererror.ConfigurationError{Key: "log.level", Msg: fmt.Sprintf("invalid log level: %s", config.Log.Level)}
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return &parsererror.ConfigurationError{Key: "log.format", Msg: fmt.Sprintf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)}
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return &parsererror.ConfigurationError{Key: "csv.delimiter", Msg: fmt.Sprintf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)}
	}

	if config.AI.Provider != ProviderGemini && config.AI.Provider != ProviderAnthropic {
		return &parsererror.ConfigurationError{Key: "ai.provider", Msg: fmt.Sprintf("unknown AI provider %q (must be 'gemini' or 'anthropic')", config.AI.Provider)}
	}

	if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
		return &parsererror.ConfigurationError{Key: "ai.timeout_seconds", Msg: fmt.Sprintf("must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)}
	}

	if config.AI.MaxTokens < 1 {
		return &parsererror.ConfigurationError{Key: "ai.max_tokens", Msg: fmt.Sprintf("must be positive, got: %d", config.AI.MaxTokens)}
	}

	if strings.TrimSpace(config.Database.Path) == "" {
		return &parsererror.ConfigurationError{Key: "database.path", Msg: "database path is required"}
	}

	return nil
}

// ValidateWebhook checks the settings the webhook server needs on top of the
// base configuration.
func (c *Config) ValidateWebhook() error {
	if c.Webhook.Secret == "" {
		return &parsererror.ConfigurationError{Key: "webhook.secret", Msg: "JOSE_WEBHOOK_SECRET is required to serve the webhook"}
	}
	if c.Webhook.UserID == "" {
		return &parsererror.ConfigurationError{Key: "webhook.user_id", Msg: "the webhook needs a target user id"}
	}
	if c.Webhook.Addr == "" {
		return &parsererror.ConfigurationError{Key: "webhook.addr", Msg: "listen address is required"}
	}
	return nil
}
