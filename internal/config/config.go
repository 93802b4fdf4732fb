package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-signup/pkg/client"
)

const (
	EnvBaseURL        = "SIGNUP_BASE_URL"
	EnvTimeout        = "SIGNUP_TIMEOUT"
	EnvLogLevel       = "SIGNUP_LOG_LEVEL"
	EnvDevelopment    = "SIGNUP_DEVELOPMENT"
	EnvRevealPassword = "SIGNUP_REVEAL_PASSWORD"
	EnvConfirmSubmit  = "SIGNUP_CONFIRM_SUBMIT"
	EnvOutput         = "SIGNUP_OUTPUT"
)

var validate = validator.New()

// Config holds the runtime settings of the signup CLI.
type Config struct {
	BaseURL        string        `yaml:"base_url" validate:"required,url"`
	Timeout        time.Duration `yaml:"timeout" validate:"gt=0"`
	LogLevel       string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	Development    bool          `yaml:"development"`
	RevealPassword bool          `yaml:"reveal_password"`
	ConfirmSubmit  bool          `yaml:"confirm_submit"`
	Output         string        `yaml:"output" validate:"oneof=json pretty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseURL:       client.DefaultBaseURL,
		Timeout:       client.DefaultTimeout,
		LogLevel:      "info",
		ConfirmSubmit: true,
		Output:        "pretty",
	}
}

// Load layers the defaults, the optional YAML file at path, the optional
// dotenv file at envPath and the process environment, then validates the
// result. A missing dotenv file is ignored; a missing YAML file is an error
// only when path is not empty.
func Load(path, envPath string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if strings.TrimSpace(envPath) != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", envPath, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables resolved by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	if v, ok := lookup(EnvBaseURL); ok && strings.TrimSpace(v) != "" {
		c.BaseURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTimeout); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvOutput); ok && strings.TrimSpace(v) != "" {
		c.Output = strings.ToLower(strings.TrimSpace(v))
	}

	flags := []struct {
		name string
		dest *bool
	}{
		{EnvDevelopment, &c.Development},
		{EnvRevealPassword, &c.RevealPassword},
		{EnvConfirmSubmit, &c.ConfirmSubmit},
	}
	for _, flag := range flags {
		v, ok := lookup(flag.name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", flag.name, err)
		}
		*flag.dest = parsed
	}
	return nil
}

// Validate checks the struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("config: invalid %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
