package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/tjm-calculator/pkg/constants"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationOverrides(t *testing.T) {
	path := writeConfig(t, `logging:
  level: debug
  format: console
  outputFile: /tmp/tjm.log
output:
  format: json
notification:
  endpoint: https://forms.example.com/f/abc
  timeout: 3s
upsell:
  url: https://shop.example.com/kit
  price: 39
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" || conf.Logging.OutputFile != "/tmp/tjm.log" {
		t.Errorf("unexpected logging config %+v", conf.Logging)
	}
	if conf.Output.Format != "json" {
		t.Errorf("Output.Format = %q, expected json", conf.Output.Format)
	}
	if conf.Notification.Endpoint != "https://forms.example.com/f/abc" {
		t.Errorf("Notification.Endpoint = %q", conf.Notification.Endpoint)
	}
	timeout, err := conf.NotificationTimeout()
	if err != nil || timeout != 3*time.Second {
		t.Errorf("NotificationTimeout() = %v, %v; expected 3s", timeout, err)
	}
	if conf.Upsell.URL != "https://shop.example.com/kit" || conf.Upsell.Price != 39 {
		t.Errorf("unexpected upsell config %+v", conf.Upsell)
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader("logging:\n  level: warn\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if conf.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, expected warn", conf.Logging.Level)
	}
	if conf.Output.Format != constants.OutputFormatPretty {
		t.Errorf("Output.Format = %q, expected default", conf.Output.Format)
	}
	if conf.Notification.Endpoint != constants.DefaultNotificationEndpoint {
		t.Errorf("Notification.Endpoint = %q, expected default", conf.Notification.Endpoint)
	}
	if conf.Upsell.Price != constants.DefaultUpsellPrice {
		t.Errorf("Upsell.Price = %v, expected default", conf.Upsell.Price)
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("TJM_NOTIFICATION_ENDPOINT", "https://env.example.com/hook")

	conf, err := LoadConfigurationFromReader(strings.NewReader("output:\n  format: pretty\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.Notification.Endpoint != "https://env.example.com/hook" {
		t.Errorf("Notification.Endpoint = %q, expected env override", conf.Notification.Endpoint)
	}
}

func TestLoadConfigurationInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"Bad timeout", "notification:\n  timeout: soon\n"},
		{"Negative timeout", "notification:\n  timeout: -1s\n"},
		{"Relative endpoint", "notification:\n  endpoint: /f/abc\n"},
		{"Negative price", "upsell:\n  price: -5\n"},
		{"Malformed yaml", "logging: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.contents)); err == nil {
				t.Errorf("expected error for %q", tt.contents)
			}
		})
	}
}

func TestValidateConfiguration(t *testing.T) {
	conf := Default()
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no warnings for defaults, got %v", warnings)
	}

	conf.Notification.Endpoint = "http://forms.example.com"
	conf.Upsell.URL = ""
	warnings := conf.ValidateConfiguration()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "https") {
		t.Errorf("expected https warning, got %q", warnings[0])
	}

	conf.Notification.Endpoint = ""
	if warnings := conf.ValidateConfiguration(); !strings.Contains(warnings[0], "empty") {
		t.Errorf("expected empty endpoint warning, got %v", warnings)
	}
}
