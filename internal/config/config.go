// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/iwvelando/tjm-calculator/pkg/constants"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TJM_NOTIFICATION_ENDPOINT.
const EnvPrefix = "TJM"

// Configuration holds all configuration for tjm-calculator.
type Configuration struct {
	Logging      LoggingConfig      `yaml:"logging,omitempty"`
	Output       OutputConfig       `yaml:"output,omitempty"`
	Notification NotificationConfig `yaml:"notification,omitempty"`
	Upsell       UpsellConfig       `yaml:"upsell,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, json
}

// NotificationConfig points at the form endpoint receiving email captures.
type NotificationConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	Timeout  string `yaml:"timeout,omitempty"` // Go duration, e.g. 10s
}

// UpsellConfig describes the kit offered after an email capture.
type UpsellConfig struct {
	URL   string  `yaml:"url,omitempty"`
	Price float64 `yaml:"price,omitempty"`
}

// Default returns the configuration used when no file is provided.
func Default() *Configuration {
	return &Configuration{
		Output: OutputConfig{Format: constants.OutputFormatPretty},
		Notification: NotificationConfig{
			Endpoint: constants.DefaultNotificationEndpoint,
			Timeout:  constants.DefaultNotificationTimeout,
		},
		Upsell: UpsellConfig{
			URL:   constants.DefaultUpsellURL,
			Price: constants.DefaultUpsellPrice,
		},
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("notification.endpoint", defaults.Notification.Endpoint)
	v.SetDefault("notification.timeout", defaults.Notification.Timeout)
	v.SetDefault("upsell.url", defaults.Upsell.URL)
	v.SetDefault("upsell.price", defaults.Upsell.Price)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// NotificationTimeout parses the configured notification timeout.
func (c *Configuration) NotificationTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Notification.Timeout)
	if raw == "" {
		raw = constants.DefaultNotificationTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid notification timeout %q: %w", c.Notification.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("notification timeout must be positive, got %s", d)
	}
	return d, nil
}

// Validate returns an error for settings that make the application unusable.
func (c *Configuration) Validate() error {
	if _, err := c.NotificationTimeout(); err != nil {
		return err
	}
	if c.Notification.Endpoint != "" {
		u, err := url.Parse(c.Notification.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid notification endpoint %q", c.Notification.Endpoint)
		}
	}
	if c.Upsell.Price < 0 {
		return fmt.Errorf("upsell price must not be negative, got %v", c.Upsell.Price)
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Notification.Endpoint == "" {
		warnings = append(warnings, "notification endpoint is empty - email captures will fail")
	} else if strings.HasPrefix(c.Notification.Endpoint, "http://") {
		warnings = append(warnings, fmt.Sprintf("notification endpoint %s is not using https", c.Notification.Endpoint))
	}

	if c.Upsell.URL == "" {
		warnings = append(warnings, "upsell URL is empty - the kit link will be hidden")
	}

	return warnings
}
