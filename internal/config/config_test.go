package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("default model = %q", cfg.Gemini.Model)
	}
	if cfg.Telemetry.SampleRate != 0.12 {
		t.Errorf("default sample rate = %v", cfg.Telemetry.SampleRate)
	}
	if cfg.Email.SMTPPort != 587 {
		t.Errorf("default SMTP port = %d", cfg.Email.SMTPPort)
	}
	if !cfg.Email.Enabled {
		t.Error("email not enabled by default")
	}
	if cfg.Timezone != "Local" || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults: timezone=%q logLevel=%q", cfg.Timezone, cfg.LogLevel)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventscout.yaml")
	yaml := `
gemini:
  apiKey: file-key
  model: gemini-2.5-pro
telemetry:
  endpoint: https://telemetry.example.com/ingest
  sampleRate: 0.5
email:
  smtpServer: smtp.example.com
  smtpUser: bot@example.com
profile:
  companyName: Acme
timezone: America/Chicago
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Gemini.APIKey != "file-key" || cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("gemini config not loaded: %+v", cfg.Gemini)
	}
	if cfg.Telemetry.Endpoint != "https://telemetry.example.com/ingest" || cfg.Telemetry.SampleRate != 0.5 {
		t.Errorf("telemetry config not loaded: %+v", cfg.Telemetry)
	}
	if cfg.Email.SMTPServer != "smtp.example.com" {
		t.Errorf("email config not loaded: %+v", cfg.Email)
	}
	if cfg.Profile.CompanyName != "Acme" {
		t.Errorf("profile config not loaded: %+v", cfg.Profile)
	}
	if cfg.Timezone != "America/Chicago" {
		t.Errorf("timezone = %q", cfg.Timezone)
	}
	// Unset fields still pick up defaults.
	if cfg.Email.SMTPPort != 587 {
		t.Errorf("default SMTP port not applied, got %d", cfg.Email.SMTPPort)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventscout.yaml")
	if err := os.WriteFile(path, []byte("gemini:\n  apiKey: file-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("EVENTSCOUT_GEMINI_API_KEY", "env-key")
	t.Setenv("EVENTSCOUT_SMTP_PORT", "2525")
	t.Setenv("EVENTSCOUT_TELEMETRY_SAMPLE_RATE", "0.25")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Gemini.APIKey != "env-key" {
		t.Errorf("env override not applied: %q", cfg.Gemini.APIKey)
	}
	if cfg.Email.SMTPPort != 2525 {
		t.Errorf("SMTP port = %d", cfg.Email.SMTPPort)
	}
	if cfg.Telemetry.SampleRate != 0.25 {
		t.Errorf("sample rate = %v", cfg.Telemetry.SampleRate)
	}
}

func TestLoadEmailDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventscout.yaml")
	yaml := "email:\n  smtpServer: smtp.example.com\n  enabled: false\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Email.Enabled {
		t.Error("enabled: false in the config file was ignored")
	}

	t.Setenv("EVENTSCOUT_EMAIL_ENABLED", "true")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Email.Enabled {
		t.Error("EVENTSCOUT_EMAIL_ENABLED did not override the file")
	}
}

func TestLoadExplicitMissingPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for explicit missing config path")
	}
}

func TestLoadInvalidSampleRateFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventscout.yaml")
	if err := os.WriteFile(path, []byte("telemetry:\n  sampleRate: 3.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telemetry.SampleRate != 0.12 {
		t.Errorf("out-of-range sample rate not reset, got %v", cfg.Telemetry.SampleRate)
	}
}
