package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"

	"anvilwp_server/internal/ai/prompts"
)

// LLM providers accepted by LLM_PROVIDER.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"

	// LLM Configuration
	LLMProvider       string `mapstructure:"LLM_PROVIDER"` // "openai" or "anthropic"
	OpenAIKey         string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel       string `mapstructure:"OPENAI_MODEL"`
	OpenAIBaseURL     string `mapstructure:"OPENAI_BASE_URL"` // any OpenAI-compatible endpoint
	AnthropicKey      string `mapstructure:"ANTHROPIC_API_KEY"`
	AnthropicModel    string `mapstructure:"ANTHROPIC_MODEL"`
	AnthropicEndpoint string `mapstructure:"ANTHROPIC_ENDPOINT"`

	// Generation Configuration
	GenerationStrategy string `mapstructure:"GENERATION_STRATEGY"` // "simplified" or "expanded"
	MaxTokens          int    `mapstructure:"GENERATION_MAX_TOKENS"`
	RetryTransient     bool   `mapstructure:"GENERATION_RETRY"`

	// Theme Configuration
	ThemeAuthor    string `mapstructure:"THEME_AUTHOR"`
	ThemeAuthorURI string `mapstructure:"THEME_AUTHOR_URI"`
	ThemeExtras    bool   `mapstructure:"THEME_EXTRAS"`   // README, page/single templates, theme.js
	ExportDir      string `mapstructure:"EXPORT_DIR"`     // bundles are also written here when set
	MaxHTMLBytes   int    `mapstructure:"MAX_HTML_BYTES"` // upper bound for /theme/convert input

	// WP-CLI Configuration
	WPCLIPath string `mapstructure:"WP_CLI_PATH"` // Path to the wp executable
	WPPath    string `mapstructure:"WP_PATH"`     // WordPress installation directory
}

var defaults = map[string]any{
	"SERVER_ADDRESS":        ":8080",
	"LLM_PROVIDER":          ProviderOpenAI,
	"OPENAI_API_KEY":        "",
	"OPENAI_MODEL":          "gpt-4o",
	"OPENAI_BASE_URL":       "",
	"ANTHROPIC_API_KEY":     "",
	"ANTHROPIC_MODEL":       "claude-sonnet-4-5",
	"ANTHROPIC_ENDPOINT":    "https://api.anthropic.com",
	"GENERATION_STRATEGY":   string(prompts.Expanded),
	"GENERATION_MAX_TOKENS": 8192,
	"GENERATION_RETRY":      false,
	"THEME_AUTHOR":          "AnvilWP",
	"THEME_AUTHOR_URI":      "https://anvilwp.com",
	"THEME_EXTRAS":          false,
	"EXPORT_DIR":            "",
	"MAX_HTML_BYTES":        2 << 20,
	"WP_CLI_PATH":           "",
	"WP_PATH":               "",
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)     // Path to look for the config file in
	v.SetConfigName("config") // Name of config file (without extension)
	v.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	// Every key needs a default so AutomaticEnv values survive Unmarshal.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv() // Read environment variables that match keys

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", v.ConfigFileUsed())
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.LLMProvider = strings.ToLower(strings.TrimSpace(config.LLMProvider))
	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) validate() error {
	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			log.Println("WARN: OPENAI_API_KEY is not set. /theme/generate will fail.")
		}
	case ProviderAnthropic:
		if c.AnthropicKey == "" {
			log.Println("WARN: ANTHROPIC_API_KEY is not set. /theme/generate will fail.")
		}
	default:
		return fmt.Errorf("invalid LLM_PROVIDER %q: want %q or %q", c.LLMProvider, ProviderOpenAI, ProviderAnthropic)
	}
	if _, err := prompts.ParseStrategy(c.GenerationStrategy); err != nil {
		return fmt.Errorf("invalid GENERATION_STRATEGY: %w", err)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("GENERATION_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.MaxHTMLBytes <= 0 {
		return fmt.Errorf("MAX_HTML_BYTES must be positive, got %d", c.MaxHTMLBytes)
	}
	if (c.WPCLIPath == "") != (c.WPPath == "") {
		log.Println("WARN: WP_CLI_PATH and WP_PATH must both be set to enable /theme/install.")
	}
	return nil
}

// InstallEnabled reports whether WP-CLI installs are configured.
func (c Config) InstallEnabled() bool {
	return c.WPCLIPath != "" && c.WPPath != ""
}
