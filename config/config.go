package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Discord       DiscordConfig       `yaml:"discord"`
	API           APIConfig           `yaml:"api"`
	Reminders     RemindersConfig     `yaml:"reminders"`
	NATS          NATSConfig          `yaml:"nats"`
	Observability ObservabilityConfig `yaml:"observability"`
	Health        HealthConfig        `yaml:"health"`
	Service       ServiceConfig       `yaml:"service"`
}

// DiscordConfig holds Discord configuration.
type DiscordConfig struct {
	Token          string `yaml:"token" envconfig:"TOKEN"`
	GuildID        string `yaml:"guild_id" envconfig:"GUILD_ID"`
	AppID          string `yaml:"app_id" envconfig:"APP_ID"`
	ChannelGymPics string `yaml:"channel_gym_pics" envconfig:"CHANNEL_GYM_PICS"`
	ChannelGeneral string `yaml:"channel_general" envconfig:"CHANNEL_GENERAL"`
}

// APIConfig holds the backend REST settings.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" envconfig:"BASE_URL"`
	Token   string        `yaml:"token" envconfig:"TOKEN"`
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
}

// RemindersConfig controls the reminder job.
type RemindersConfig struct {
	Enabled   *bool         `yaml:"enabled" envconfig:"ENABLED"`
	Interval  time.Duration `yaml:"interval" envconfig:"INTERVAL"`
	LedgerTTL time.Duration `yaml:"ledger_ttl" envconfig:"LEDGER_TTL"`
}

// NATSConfig holds NATS configuration. An empty URL keeps events in-process.
type NATSConfig struct {
	URL string `yaml:"url" envconfig:"URL"`
}

// ObservabilityConfig holds logging destinations.
type ObservabilityConfig struct {
	LogLevel     string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat    string `yaml:"log_format" envconfig:"LOG_FORMAT"`
	LokiURL      string `yaml:"loki_url" envconfig:"LOKI_URL"`
	LokiTenantID string `yaml:"loki_tenant_id" envconfig:"LOKI_TENANT_ID"`
}

// HealthConfig holds the side-channel HTTP server settings.
type HealthConfig struct {
	Port int `yaml:"port" envconfig:"PORT"`
}

// ServiceConfig holds general service configuration
type ServiceConfig struct {
	Name    string `yaml:"name" envconfig:"NAME"`
	Version string `yaml:"version" envconfig:"VERSION"`
}

const (
	defaultAPITimeout        = 10 * time.Second
	defaultReminderInterval  = time.Minute
	defaultReminderLedgerTTL = 48 * time.Hour
	defaultHealthPort        = 3000
	defaultServiceName       = "waddle-discord-bot"
	defaultServiceVersion    = "1.0.0"
)

// ErrMissingRequired is wrapped by Validate for every absent required setting.
var ErrMissingRequired = errors.New("missing required configuration")

// LoadConfig builds the configuration from, in increasing priority: defaults,
// the YAML file (optional), a .env file (optional) and the process environment.
func LoadConfig(filename string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// Environment-only deployments have no file.
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.Timeout <= 0 {
		c.API.Timeout = defaultAPITimeout
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.Reminders.Interval <= 0 {
		c.Reminders.Interval = defaultReminderInterval
	}
	if c.Reminders.LedgerTTL <= 0 {
		c.Reminders.LedgerTTL = defaultReminderLedgerTTL
	}
	if c.Reminders.Enabled == nil {
		enabled := true
		c.Reminders.Enabled = &enabled
	}
	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}
	if c.Observability.LogFormat == "" {
		c.Observability.LogFormat = "json"
	}
	if c.Health.Port == 0 {
		c.Health.Port = defaultHealthPort
	}
	if c.Service.Name == "" {
		c.Service.Name = defaultServiceName
	}
	if c.Service.Version == "" {
		c.Service.Version = defaultServiceVersion
	}
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var missing []string
	if c.Discord.Token == "" {
		missing = append(missing, "DISCORD_TOKEN")
	}
	if c.Discord.GuildID == "" {
		missing = append(missing, "GUILD_ID")
	}
	if c.API.BaseURL == "" {
		missing = append(missing, "API_BASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}
	return nil
}

// RemindersEnabled reports whether the reminder job should run.
func (c *Config) RemindersEnabled() bool {
	return c.Reminders.Enabled == nil || *c.Reminders.Enabled
}

// HealthAddr is the listen address for the health server.
func (c *Config) HealthAddr() string {
	return fmt.Sprintf(":%d", c.Health.Port)
}

// GetGuildID returns the guild the bot serves.
func (c *Config) GetGuildID() string {
	return c.Discord.GuildID
}
