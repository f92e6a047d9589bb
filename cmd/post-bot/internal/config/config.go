// Package config provides configuration management for the post-bot daemon.
// It loads settings from environment variables (optionally seeded from a
// .env file) and validates them before the process touches any external
// service. Configuration is an immutable snapshot for the process lifetime.
package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"

	postbot "github.com/zioncoderone/post-bot"
)

// timeRe matches "H:MM" / "HH:MM" trigger times.
var timeRe = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// Config holds all configuration for the post-bot daemon.
type Config struct {
	// Channel and credentials
	TelegramToken string `env:"TELEGRAM_TOKEN"`
	ChatID        string `env:"CHAT_ID"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	BotUsername   string `env:"BOT_USERNAME"`
	ImageURL      string `env:"IMAGE_URL"`

	// Content generation
	ModelMain        string `env:"MODEL_MAIN" envDefault:"gpt-4o-mini"`
	ModelSecond      string `env:"MODEL_SECOND" envDefault:"gpt-4o-mini"`
	MainPostMaxLen   int    `env:"MAIN_POST_MAX_LEN" envDefault:"4096"`
	SecondPostMaxLen int    `env:"SECOND_POST_MAX_LEN" envDefault:"1024"`

	// Schedule
	Timezone        string   `env:"TIMEZONE" envDefault:"Europe/Moscow"`
	DailyPostHour   int      `env:"DAILY_POST_HOUR" envDefault:"9"`
	DailyPostMinute int      `env:"DAILY_POST_MINUTE" envDefault:"0"`
	SecondPostTimes []string `env:"SECOND_POST_TIMES" envDefault:"12:00,15:00,18:00"`

	// Sheet store
	Database DatabaseConfig
}

// DatabaseConfig holds the sheet store connection configuration.
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite3"` // sqlite3, mysql, postgres
	DSN    string `env:"DB_DSN" envDefault:"post-bot.db"`
}

// Load reads configuration from the environment, seeding it from a .env
// file when one exists, and validates it. A validation failure here is
// fatal at startup: the process must not proceed half-configured.
func Load() (*Config, error) {
	// The .env file is optional; a missing one is not an error.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TelegramToken, validation.Required),
		validation.Field(&c.ChatID, validation.Required),
		validation.Field(&c.OpenAIAPIKey, validation.Required),
		validation.Field(&c.BotUsername, validation.Required),
		validation.Field(&c.ModelMain, validation.Required),
		validation.Field(&c.ModelSecond, validation.Required),
		validation.Field(&c.MainPostMaxLen, validation.Min(1)),
		validation.Field(&c.SecondPostMaxLen, validation.Min(1)),
		validation.Field(&c.Timezone, validation.Required),
		validation.Field(&c.DailyPostHour, validation.Min(0), validation.Max(23)),
		validation.Field(&c.DailyPostMinute, validation.Min(0), validation.Max(59)),
		validation.Field(&c.SecondPostTimes, validation.Each(validation.Match(timeRe))),
		validation.Field(&c.Database),
	)
}

// Validate checks the store connection settings. Called by Config.Validate
// through the Validatable contract; ozzo only resolves direct fields, so
// nested structs validate themselves.
func (c DatabaseConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Driver, validation.In("sqlite3", "mysql", "postgres")),
		validation.Field(&c.DSN, validation.Required),
	)
}

// RedactedDSN returns the DSN with the credential part masked, safe for
// logging. MySQL and Postgres DSNs carry "user:password@"; a file path
// (sqlite) has nothing to hide.
func (c DatabaseConfig) RedactedDSN() string {
	if i := strings.LastIndex(c.DSN, "@"); i >= 0 {
		return "***@" + c.DSN[i+1:]
	}
	return c.DSN
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DailyTrigger returns the daily post trigger time.
func (c *Config) DailyTrigger() postbot.DayTime {
	return postbot.DayTime{Hour: c.DailyPostHour, Minute: c.DailyPostMinute}
}

// SecondaryTriggers parses the configured secondary trigger times.
func (c *Config) SecondaryTriggers() ([]postbot.DayTime, error) {
	times := make([]postbot.DayTime, 0, len(c.SecondPostTimes))
	for _, raw := range c.SecondPostTimes {
		parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid trigger time %q", raw)
		}
		hour, err := strconv.Atoi(parts[0])
		if err != nil || hour < 0 || hour > 23 {
			return nil, fmt.Errorf("invalid trigger hour in %q", raw)
		}
		minute, err := strconv.Atoi(parts[1])
		if err != nil || minute < 0 || minute > 59 {
			return nil, fmt.Errorf("invalid trigger minute in %q", raw)
		}
		times = append(times, postbot.DayTime{Hour: hour, Minute: minute})
	}
	return times, nil
}
