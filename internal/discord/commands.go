package discord

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/castlegate/riftwatch/internal/rank"
	"github.com/castlegate/riftwatch/internal/riot"
	"github.com/castlegate/riftwatch/internal/roster"
)

func (b *Bot) handleSetPlayer(msg *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		b.reply(msg, "Usage: `!setplayer <display_name> <Game#Tag>`")

		return
	}

	if !b.requireAPI(msg) {
		return
	}

	name := args[0]
	riotID := riot.Sanitize(strings.Join(args[1:], " "))

	puuid, errResolve := b.client.Resolve(b.ctx, riotID)
	if errResolve != nil {
		if errors.Is(errResolve, riot.ErrMalformedRiotID) {
			b.reply(msg, "Use the format `Game#Tag`.")

			return
		}

		b.reply(msg, "Could not resolve **PUUID** from that Riot ID. Use the format `Game#Tag` and ensure it exists.")

		return
	}

	if err := b.store.Set(name, roster.Player{RiotID: riotID, PUUID: puuid}); err != nil {
		slog.Error("Failed to persist roster", slog.String("error", err.Error()))
		b.reply(msg, "Saved in memory but failed to write the roster file, check the logs.")

		return
	}

	b.reply(msg, fmt.Sprintf("✅ Set **%s** → **%s** (PUUID cached)", name, riotID))
}

func (b *Bot) handleRemovePlayer(msg *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		b.reply(msg, "Usage: `!removeplayer <display_name>`")

		return
	}

	if err := b.store.Remove(args[0]); err != nil {
		if errors.Is(err, roster.ErrNotTracked) {
			b.reply(msg, "⚠️ That display name is not tracked.")

			return
		}

		slog.Error("Failed to persist roster", slog.String("error", err.Error()))
		b.reply(msg, "Removed in memory but failed to write the roster file, check the logs.")

		return
	}

	b.reply(msg, fmt.Sprintf("🗑️ Removed **%s**", args[0]))
}

func (b *Bot) handlePlayers(msg *discordgo.MessageCreate) {
	players := b.store.Players()
	if len(players) == 0 {
		b.reply(msg, "No players tracked yet. Use `!setplayer <display_name> <Game#Tag>`.")

		return
	}

	lines := make([]string, 0, len(players))
	for _, record := range players {
		lines = append(lines, fmt.Sprintf("• **%s** → **%s** (PUUID: `%s…`)",
			record.Name, record.RiotID, truncate(record.PUUID, 12)))
	}

	b.reply(msg, strings.Join(lines, "\n"))
}

func (b *Bot) handleRank(msg *discordgo.MessageCreate, args []string) {
	if !b.requireAPI(msg) {
		return
	}

	queue, label := QueueForMode(firstOr(args, "solo"), b.conf.DefaultQueue)

	rows, errBuild := b.builder.Build(b.ctx, queue, b.store.Players())
	if errBuild != nil {
		slog.Error("Snapshot build failed", slog.String("error", errBuild.Error()))
		b.reply(msg, "Snapshot failed, check the logs.")

		return
	}

	if err := b.replyEmbed(msg.ChannelID, LeaderboardEmbed(rows, label, b.conf.Location())); err != nil {
		slog.Error("Failed to send leaderboard", slog.String("error", err.Error()))
	}
}

func (b *Bot) handleRankID(msg *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		b.reply(msg, "Usage: `!rankid <Game#Tag> [solo|flex]`")

		return
	}

	if !b.requireAPI(msg) {
		return
	}

	queue, _ := QueueForMode(firstOr(args[1:], "solo"), b.conf.DefaultQueue)

	row, errLookup := b.builder.Lookup(b.ctx, queue, args[0])
	if errLookup != nil {
		b.reply(msg, "Couldn't resolve that Riot ID (Game#Tag).")

		return
	}

	b.reply(msg, fmt.Sprintf("%s: %s", args[0], rank.Label(row.Entry)))
}

func (b *Bot) handleDebugRank(msg *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		b.reply(msg, "Usage: `!debugrank <display_name> [solo|flex]`")

		return
	}

	if !b.requireAPI(msg) {
		return
	}

	player, found := b.store.Get(args[0])
	if !found {
		b.reply(msg, "Unknown display_name.")

		return
	}

	if player.PUUID == "" {
		b.reply(msg, "No PUUID cached for that player. Re-set the player with a Riot ID.")

		return
	}

	b.reply(msg, fmt.Sprintf("PUUID: `%s` for **%s** (%s)", player.PUUID, args[0], player.RiotID))

	entries, errEntries := b.client.LeagueEntriesByPUUID(b.ctx, player.PUUID)
	if errEntries != nil {
		b.reply(msg, fmt.Sprintf("fetch failed: `%s`", errEntries.Error()))

		return
	}

	b.reply(msg, fmt.Sprintf("entries: `%+v`", entries))

	mode := firstOr(args[1:], "solo")
	queue, _ := QueueForMode(mode, b.conf.DefaultQueue)
	b.reply(msg, fmt.Sprintf("picked (%s): `%s`", mode, pickedOrNil(entries, queue)))
}

func (b *Bot) handlePostNow(msg *discordgo.MessageCreate, args []string) {
	if !b.requireAPI(msg) {
		return
	}

	err := b.PostSnapshot(b.ctx, firstOr(args, "solo"))
	if err != nil {
		if errors.Is(err, ErrNoAnnounceChannel) {
			b.reply(msg, "ANNOUNCE_CHANNEL_ID not set in .env, cannot post automatically.")

			return
		}

		slog.Error("Failed to post leaderboard", slog.String("error", err.Error()))
		b.reply(msg, "Failed to post, check the logs.")

		return
	}

	b.reply(msg, "Posted.")
}

func firstOr(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}

	return fallback
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
