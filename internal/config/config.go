package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the service needs at startup. Credentials come
// from the environment (optionally via a .env file); the rest has defaults.
type Config struct {
	OpenRouterKey string `mapstructure:"openrouter_api_key"`
	OpenAIKey     string `mapstructure:"openai_api_key"`

	// Model used for the structured-output calls (brand, category, comparison).
	Model string `mapstructure:"model"`
	// Model used for the web-search discovery step.
	SearchModel string `mapstructure:"search_model"`

	Port        int    `mapstructure:"port"`
	Token       string `mapstructure:"token"`
	FrontendURL string `mapstructure:"frontend_url"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Load reads configuration from the environment, loading a .env file first
// if one can be found between the working directory and the module root.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("model", "openai/gpt-4.1")
	v.SetDefault("search_model", "gpt-4.1")
	v.SetDefault("port", 8000)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	for _, key := range []string{
		"openrouter_api_key", "openai_api_key", "model", "search_model",
		"port", "token", "frontend_url", "log_level", "log_format",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the required credentials are present. A missing
// credential is a configuration error and fatal at startup.
func (c *Config) Validate() error {
	if c.OpenRouterKey == "" {
		return fmt.Errorf("OPENROUTER_API_KEY is required")
	}
	if c.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

func loadEnvFile() {
	paths := []string{".env", "../.env", "../../.env"}
	if root := findModuleRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if godotenv.Load(path) == nil {
				return
			}
		}
	}
}

func findModuleRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
