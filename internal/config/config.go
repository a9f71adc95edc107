// Package config handles loading, watching and writing the riftwatch configuration.
package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/adrg/xdg"
)

var (
	errConfigWrite = errors.New("failed to write config file")
	errConfigRead  = errors.New("failed to read config file")
	errLoggerInit  = errors.New("failed to initialize logger")

	// ErrMissingCredential is returned when a command needs live Riot data
	// but no API key is configured.
	ErrMissingCredential = errors.New("RIOT_API_KEY is not set")
)

const (
	ConfigDirName      = "riftwatch"
	DefaultConfigName  = "riftwatch"
	DefaultDataName    = "players.json"
	DefaultLogName     = "riftwatch.log"
	EnvPrefix          = "riftwatch"
	DefaultHTTPTimeout = 15 * time.Second

	defaultAccountBaseURL  = "https://europe.api.riotgames.com"
	defaultPlatformBaseURL = "https://euw1.api.riotgames.com"
)

// Queue identifiers as used by the league entries endpoint.
const (
	QueueSolo = "RANKED_SOLO_5x5"
	QueueFlex = "RANKED_FLEX_SR"
)

type Config struct {
	// RiotAPIKey is the shared service credential sent with every Riot API
	// call. Only ever read from the environment in practice.
	RiotAPIKey   string `mapstructure:"riot_api_key"`
	DiscordToken string `mapstructure:"discord_token"`
	// AnnounceChannelID enables the weekly leaderboard post when non-empty.
	AnnounceChannelID string `mapstructure:"announce_channel_id"`
	AccountBaseURL    string `mapstructure:"account_base_url"`
	PlatformBaseURL   string `mapstructure:"platform_base_url"`
	DefaultQueue      string `mapstructure:"default_queue"`
	DataFile          string `mapstructure:"data_file"`
	Timezone          string `mapstructure:"timezone"`
	WeeklyPostHour    int    `mapstructure:"weekly_post_hour"`
	WeeklyPostMinute  int    `mapstructure:"weekly_post_minute"`
	// FetchDelayMs is the politeness delay between per-player ranking
	// fetches during a snapshot.
	FetchDelayMs int `mapstructure:"fetch_delay_ms"`
	// MaxAttempts bounds every outbound Riot API call, rate limited or not.
	MaxAttempts int `mapstructure:"max_attempts"`
}

func (c Config) FetchDelay() time.Duration {
	return time.Duration(c.FetchDelayMs) * time.Millisecond
}

// Location resolves the configured timezone, falling back to UTC on junk values.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("Invalid timezone, using UTC", slog.String("timezone", c.Timezone))

		return time.UTC
	}

	return loc
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

// PathData generates a path pointing to the filename under $XDG_DATA_HOME,
// used for the roster document.
func PathData(name string) string {
	fullPath, errFullPath := xdg.DataFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

// LoggerInit sets up the slog global handler to use a log file so command
// output stays readable on the terminal.
func LoggerInit(logPath string, level slog.Level) (io.Closer, error) {
	logFile, errLogFile := os.Create(path.Join(xdg.ConfigHome, ConfigDirName, logPath))
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logFile, nil
}
