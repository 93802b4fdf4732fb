package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "signup.yaml")
	raw := []byte("base_url: http://localhost:8080\ntimeout: 3s\nlog_level: debug\nreveal_password: true\noutput: json\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Config{
		BaseURL:        "http://localhost:8080",
		Timeout:        3 * time.Second,
		LogLevel:       "debug",
		RevealPassword: true,
		ConfirmSubmit:  true,
		Output:         "json",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("SIGNUP_BASE_URL=http://dotenv.test\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv(EnvBaseURL, "")
	os.Unsetenv(EnvBaseURL)

	cfg, err := Load("", envPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://dotenv.test" {
		t.Fatalf("expected dotenv base url, got %q", cfg.BaseURL)
	}
}

func TestLoad_MissingYAMLFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), ""); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvBaseURL:        "http://env.test",
		EnvTimeout:        "250ms",
		EnvLogLevel:       "WARN",
		EnvRevealPassword: "true",
		EnvConfirmSubmit:  "false",
	}))
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.BaseURL != "http://env.test" || cfg.Timeout != 250*time.Millisecond || cfg.LogLevel != "warn" {
		t.Fatalf("unexpected config %#v", cfg)
	}
	if !cfg.RevealPassword || cfg.ConfirmSubmit {
		t.Fatalf("unexpected flags %#v", cfg)
	}

	if err := cfg.ApplyEnv(envMap(map[string]string{EnvTimeout: "soon"})); err == nil {
		t.Fatalf("expected timeout parse error")
	}
	if err := cfg.ApplyEnv(envMap(map[string]string{EnvDevelopment: "maybe"})); err == nil {
		t.Fatalf("expected bool parse error")
	}
}

func TestValidate_ReportsFields(t *testing.T) {
	cfg := Default()
	cfg.BaseURL = "not a url"
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"BaseURL (url)", "LogLevel (oneof)"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %q", want, err.Error())
		}
	}
}
