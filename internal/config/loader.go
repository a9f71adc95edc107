package config

import (
	"errors"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Loader handles setting up viper, loading configuration from files and the
// environment, and broadcasting configuration changes.
type Loader struct {
	*viper.Viper
	changes chan<- Config
}

func NewLoader(changes chan<- Config) *Loader {
	// Credentials normally live in a .env next to the binary, same as the
	// rest of the deployment. Absence is fine.
	if errDotEnv := godotenv.Load(); errDotEnv != nil {
		slog.Debug("Could not load .env file", slog.String("error", errDotEnv.Error()))
	}

	loader := Loader{changes: changes, Viper: viper.New()}
	loader.SetDefault("riot_api_key", "")
	loader.SetDefault("discord_token", "")
	loader.SetDefault("announce_channel_id", "")
	loader.SetDefault("account_base_url", defaultAccountBaseURL)
	loader.SetDefault("platform_base_url", defaultPlatformBaseURL)
	loader.SetDefault("default_queue", QueueSolo)
	loader.SetDefault("data_file", PathData(DefaultDataName))
	loader.SetDefault("timezone", "Europe/London")
	loader.SetDefault("weekly_post_hour", 18)
	loader.SetDefault("weekly_post_minute", 0)
	loader.SetDefault("fetch_delay_ms", 200)
	loader.SetDefault("max_attempts", 2)
	loader.SetConfigName(DefaultConfigName)
	loader.SetConfigType("yaml")
	loader.SetEnvPrefix(EnvPrefix)
	loader.AddConfigPath(Path(""))
	loader.AddConfigPath(".")
	loader.AutomaticEnv()

	// The credentials keep their historical unprefixed env names.
	_ = loader.BindEnv("riot_api_key", "RIOT_API_KEY")
	_ = loader.BindEnv("discord_token", "DISCORD_TOKEN")
	_ = loader.BindEnv("announce_channel_id", "ANNOUNCE_CHANNEL_ID")

	loader.WatchConfig()
	loader.OnConfigChange(loader.onConfigChange)

	return &loader
}

func (cl *Loader) onConfigChange(in fsnotify.Event) {
	if in.Op != fsnotify.Write && in.Op != fsnotify.Rename {
		return
	}

	slog.Debug("External config reload triggered")
	config, err := cl.Read()
	if err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))

		return
	}

	if cl.changes != nil {
		cl.changes <- config
	}
}

func (cl *Loader) Write(config Config) error {
	cl.Set("announce_channel_id", config.AnnounceChannelID)
	cl.Set("account_base_url", config.AccountBaseURL)
	cl.Set("platform_base_url", config.PlatformBaseURL)
	cl.Set("default_queue", config.DefaultQueue)
	cl.Set("data_file", config.DataFile)
	cl.Set("timezone", config.Timezone)
	cl.Set("weekly_post_hour", config.WeeklyPostHour)
	cl.Set("weekly_post_minute", config.WeeklyPostMinute)
	cl.Set("fetch_delay_ms", config.FetchDelayMs)
	cl.Set("max_attempts", config.MaxAttempts)

	if err := cl.WriteConfig(); err != nil {
		return errors.Join(err, errConfigWrite)
	}

	return nil
}

func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return Config{}, errors.Join(err, errConfigRead)
		}
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	if config.MaxAttempts < 1 {
		config.MaxAttempts = 2
	}

	return config, nil
}
