package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"runtime"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/castlegate/riftwatch/internal/config"
	"github.com/castlegate/riftwatch/internal/discord"
	"github.com/castlegate/riftwatch/internal/riot"
	"github.com/castlegate/riftwatch/internal/roster"
	"github.com/castlegate/riftwatch/internal/schedule"
	"github.com/castlegate/riftwatch/internal/snapshot"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	cfgFile        string
	rootCmd        = &cobra.Command{
		Use:   "riftwatch",
		Short: "LoL ranked leaderboard discord bot",
		Long:  `riftwatch - Tracks a roster of EUW players and posts a ranked leaderboard to discord`,
		RunE:  run,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about riftwatch",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}
)

var errApp = errors.New("application error")

func main() {
	configPath := config.Path(config.DefaultConfigName)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", configPath,
		"Config file path")
	rootCmd.AddCommand(versionCmd)

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("riftwatch - LoL leaderboard bot\n\n") //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)       //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)        //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)          //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion)   //nolint:forbidigo
}

// run is the main entry point of riftwatch.
func run(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Make sure our config & data home exists.
	if err := os.MkdirAll(path.Join(xdg.ConfigHome, config.ConfigDirName), 0o750); err != nil {
		return errors.Join(err, errApp)
	}

	configUpdates := make(chan config.Config)

	loader := config.NewLoader(configUpdates)
	userConfig, errConfig := loader.Read()
	if errConfig != nil {
		return errors.Join(errConfig, errApp)
	}

	if userConfig.DiscordToken == "" {
		return fmt.Errorf("%w: DISCORD_TOKEN is not set", errApp)
	}

	if userConfig.RiotAPIKey == "" {
		return errors.Join(config.ErrMissingCredential, errApp)
	}

	// Log to a file so the terminal stays quiet once the bot is up.
	logFile, errLogger := config.LoggerInit(config.DefaultLogName, slog.LevelDebug)
	if errLogger != nil {
		return errors.Join(errLogger, errApp)
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close log file", slog.String("error", err.Error()))
		}
	}(logFile)

	slog.Info("Starting riftwatch", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("date", BuildDate),
		slog.String("go", runtime.Version()))
	// Enough to confirm which key is loaded without ever logging the key.
	slog.Info("Riot key loaded", slog.String("preview", keyPreview(userConfig.RiotAPIKey)),
		slog.Int("len", len(userConfig.RiotAPIKey)))

	// One shared client: both riot endpoints ride the same retry policy.
	httpClient := &http.Client{Timeout: config.DefaultHTTPTimeout}
	client := riot.NewClient(httpClient, userConfig.RiotAPIKey,
		riot.WithAccountBaseURL(userConfig.AccountBaseURL),
		riot.WithPlatformBaseURL(userConfig.PlatformBaseURL),
		riot.WithRetryPolicy(riot.RetryPolicy{MaxAttempts: userConfig.MaxAttempts}))

	store := roster.NewStore(userConfig.DataFile)
	if errLoad := store.Load(); errLoad != nil {
		return errors.Join(errLoad, errApp)
	}

	slog.Info("Roster loaded", slog.Int("players", store.Len()),
		slog.String("path", userConfig.DataFile))

	builder := snapshot.NewBuilder(client, snapshot.WithFetchDelay(userConfig.FetchDelay()))

	bot, errBot := discord.New(userConfig, store, client, builder)
	if errBot != nil {
		return errors.Join(errBot, errApp)
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return bot.Start(groupCtx)
	})

	if userConfig.AnnounceChannelID != "" {
		weekly := schedule.NewWeekly(userConfig.Location(), time.Sunday,
			userConfig.WeeklyPostHour, userConfig.WeeklyPostMinute)

		group.Go(func() error {
			weekly.Start(groupCtx, func(fireCtx context.Context) {
				if err := bot.PostSnapshot(fireCtx, "solo"); err != nil {
					slog.Error("Weekly post failed", slog.String("error", err.Error()))
				}
			})

			return nil
		})
	}

	group.Go(func() error {
		for {
			select {
			case <-groupCtx.Done():
				return nil
			case updated := <-configUpdates:
				// Credentials and wiring need a restart; the rest is
				// currently informational only.
				slog.Info("Config file changed", slog.String("announce_channel_id", updated.AnnounceChannelID))
			}
		}
	})

	if err := group.Wait(); err != nil {
		return errors.Join(err, errApp)
	}

	return nil
}

func keyPreview(key string) string {
	if len(key) < 10 {
		return ""
	}

	return key[:10]
}
