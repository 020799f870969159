package internal

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Defaults matching the service the client was built against.
const (
	DefaultEndpoint     = "https://api.sambanova.ai/v1/chat/completions"
	DefaultModel        = "Meta-Llama-3.1-8B-Instruct"
	DefaultSystemPrompt = "You are a helpful assistant that provides factual information and references to help win arguments. Focus on providing verifiable facts and cite sources when possible."
)

// Config holds the transport settings used to prime every exchange.
// It is immutable for the lifetime of the process.
type Config struct {
	Endpoint     string
	APIKey       string
	Model        string
	SystemPrompt string
	Timeout      time.Duration
}

// fileConfig is the on-disk shape. The timeout is a duration string
// ("30s", "2m") because yaml.v3 has no native time.Duration support.
type fileConfig struct {
	Endpoint     string `yaml:"endpoint"`
	APIKey       string `yaml:"api_key"`
	Model        string `yaml:"model"`
	SystemPrompt string `yaml:"system_prompt"`
	Timeout      string `yaml:"timeout"`
}

// DefaultConfigDir returns the directory holding the config file and
// the session database (~/.argot).
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", pkgerrors.Wrap(err, "resolve home directory")
	}
	return filepath.Join(home, ".argot"), nil
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultDatabasePath returns the default session database location.
func DefaultDatabasePath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "argot.db"), nil
}

// LoadConfig builds the transport config from defaults, the YAML file
// at path (missing file is fine), and ARGOT_* environment variables, in
// that order of precedence. A .env file in the working directory is
// honored before the environment is read.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Endpoint:     DefaultEndpoint,
		Model:        DefaultModel,
		SystemPrompt: DefaultSystemPrompt,
		Timeout:      60 * time.Second,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var fc fileConfig
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return nil, pkgerrors.Wrapf(err, "parse config %s", path)
			}
			if fc.Endpoint != "" {
				cfg.Endpoint = fc.Endpoint
			}
			if fc.APIKey != "" {
				cfg.APIKey = fc.APIKey
			}
			if fc.Model != "" {
				cfg.Model = fc.Model
			}
			if fc.SystemPrompt != "" {
				cfg.SystemPrompt = fc.SystemPrompt
			}
			if fc.Timeout != "" {
				d, err := time.ParseDuration(fc.Timeout)
				if err != nil {
					return nil, pkgerrors.Wrapf(err, "parse timeout in %s", path)
				}
				cfg.Timeout = d
			}
		case os.IsNotExist(err):
			LogDebug("no config file at %s, using defaults", path)
		default:
			return nil, pkgerrors.Wrapf(err, "read config %s", path)
		}
	}

	// Best effort; a missing .env is not an error.
	_ = godotenv.Load()

	if v := strings.TrimSpace(os.Getenv("ARGOT_ENDPOINT")); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv("ARGOT_API_KEY")); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("ARGOT_MODEL")); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("ARGOT_SYSTEM_PROMPT")); v != "" {
		cfg.SystemPrompt = v
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return cfg, nil
}
