/*
Package config loads eventscout configuration from an optional YAML file,
with environment variables taking precedence and sensible built-in defaults
underneath.
*/
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no config file is given.
const DefaultPath = "eventscout.yaml"

// Config holds all eventscout configuration.
type Config struct {
	Gemini    GeminiConfig    `yaml:"gemini"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Backend   BackendConfig   `yaml:"backend"`
	Email     EmailConfig     `yaml:"email"`
	Profile   ProfileConfig   `yaml:"profile"`
	Timezone  string          `yaml:"timezone"`
	LogLevel  string          `yaml:"logLevel"`
}

// GeminiConfig holds model API settings.
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// TelemetryConfig holds parse telemetry settings. An empty endpoint
// disables emission.
type TelemetryConfig struct {
	Endpoint   string  `yaml:"endpoint"`
	AuthToken  string  `yaml:"authToken"`
	SampleRate float64 `yaml:"sampleRate"`
}

// BackendConfig holds the host profile backend settings. An empty endpoint
// disables profile lookups.
type BackendConfig struct {
	ProfileEndpoint string `yaml:"profileEndpoint"`
	AuthToken       string `yaml:"authToken"`
}

// EmailConfig holds SMTP settings for the event brief email. Enabled
// defaults to true; set it to false to keep a configured SMTP account
// without sending briefs.
type EmailConfig struct {
	SMTPServer string `yaml:"smtpServer"`
	SMTPPort   int    `yaml:"smtpPort"`
	SMTPUser   string `yaml:"smtpUser"`
	SMTPPass   string `yaml:"smtpPass"`
	FromEmail  string `yaml:"fromEmail"`
	ToEmail    string `yaml:"toEmail"`
	Enabled    bool   `yaml:"enabled"`
}

// ProfileConfig personalizes analysis for the operator's go-to-market
// context. All fields are optional.
type ProfileConfig struct {
	CompanyName      string `yaml:"companyName"`
	Role             string `yaml:"role"`
	Product          string `yaml:"product"`
	ValueProp        string `yaml:"valueProp"`
	TargetPersonas   string `yaml:"targetPersonas"`
	TargetIndustries string `yaml:"targetIndustries"`
	Competitors      string `yaml:"competitors"`
	Notes            string `yaml:"notes"`
}

// Load reads the config file at path (missing file is fine unless the path
// was explicitly given), applies environment overrides, and fills defaults.
func Load(path string) (Config, error) {
	cfg := defaults()

	explicit := path != ""
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		if explicit {
			return Config{}, fmt.Errorf("config file not found: %s", path)
		}
	default:
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	applyEnv(&cfg)
	fillDefaults(&cfg)
	return cfg, nil
}

func defaults() Config {
	return Config{
		Gemini: GeminiConfig{
			Model: "gemini-2.0-flash",
		},
		Telemetry: TelemetryConfig{
			SampleRate: 0.12,
		},
		Email: EmailConfig{
			SMTPPort: 587,
			Enabled:  true,
		},
		Timezone: "Local",
		LogLevel: "info",
	}
}

func applyEnv(cfg *Config) {
	setEnvString(&cfg.Gemini.APIKey, "EVENTSCOUT_GEMINI_API_KEY")
	setEnvString(&cfg.Gemini.Model, "EVENTSCOUT_GEMINI_MODEL")

	setEnvString(&cfg.Telemetry.Endpoint, "EVENTSCOUT_TELEMETRY_ENDPOINT")
	setEnvString(&cfg.Telemetry.AuthToken, "EVENTSCOUT_TELEMETRY_TOKEN")
	setEnvFloat(&cfg.Telemetry.SampleRate, "EVENTSCOUT_TELEMETRY_SAMPLE_RATE")

	setEnvString(&cfg.Backend.ProfileEndpoint, "EVENTSCOUT_PROFILE_ENDPOINT")
	setEnvString(&cfg.Backend.AuthToken, "EVENTSCOUT_PROFILE_TOKEN")

	setEnvString(&cfg.Email.SMTPServer, "EVENTSCOUT_SMTP_SERVER")
	setEnvInt(&cfg.Email.SMTPPort, "EVENTSCOUT_SMTP_PORT")
	setEnvString(&cfg.Email.SMTPUser, "EVENTSCOUT_SMTP_USER")
	setEnvString(&cfg.Email.SMTPPass, "EVENTSCOUT_SMTP_PASS")
	setEnvString(&cfg.Email.FromEmail, "EVENTSCOUT_FROM_EMAIL")
	setEnvString(&cfg.Email.ToEmail, "EVENTSCOUT_TO_EMAIL")
	setEnvBool(&cfg.Email.Enabled, "EVENTSCOUT_EMAIL_ENABLED")

	setEnvString(&cfg.Timezone, "EVENTSCOUT_TIMEZONE")
	setEnvString(&cfg.LogLevel, "EVENTSCOUT_LOG_LEVEL")
}

func fillDefaults(cfg *Config) {
	def := defaults()
	if strings.TrimSpace(cfg.Gemini.Model) == "" {
		cfg.Gemini.Model = def.Gemini.Model
	}
	if cfg.Telemetry.SampleRate <= 0 || cfg.Telemetry.SampleRate > 1 {
		cfg.Telemetry.SampleRate = def.Telemetry.SampleRate
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = def.Email.SMTPPort
	}
	if strings.TrimSpace(cfg.Timezone) == "" {
		cfg.Timezone = def.Timezone
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = def.LogLevel
	}
}

func setEnvString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setEnvInt(dst *int, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

func setEnvBool(dst *bool, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	if b, err := strconv.ParseBool(v); err == nil {
		*dst = b
	}
}

func setEnvFloat(dst *float64, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		*dst = f
	}
}
