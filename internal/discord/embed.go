package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/castlegate/riftwatch/internal/config"
	"github.com/castlegate/riftwatch/internal/rank"
	"github.com/castlegate/riftwatch/internal/riot"
	"github.com/castlegate/riftwatch/internal/snapshot"
)

// Blurple, matching the discord brand accent used by the embeds.
const embedColor = 0x5865F2

// QueueForMode maps the user facing mode word onto a queue id and its human
// label. Anything that is not "flex" falls back to the configured default.
func QueueForMode(mode string, defaultQueue string) (string, string) {
	queue := defaultQueue
	if strings.EqualFold(mode, "flex") {
		queue = config.QueueFlex
	}

	if queue == config.QueueFlex {
		return queue, "Flex"
	}

	return queue, "Solo/Duo"
}

// LeaderboardEmbed renders a sorted snapshot as a single embed. Every roster
// entry gets a line; unranked players keep their explicit marker rather than
// disappearing.
func LeaderboardEmbed(rows []snapshot.Row, queueLabel string, loc *time.Location) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		lines = append(lines, fmt.Sprintf("**%d. %s** — %s", i+1, row.Name, rank.Label(row.Entry)))
	}

	if len(lines) == 0 {
		lines = []string{"No players tracked. Use `!setplayer <display_name> <Game#Tag>` (EUW)."}
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("LoL — %s Ranking (EUW)", queueLabel),
		Description: strings.Join(lines, "\n"),
		Color:       embedColor,
		Timestamp:   time.Now().In(loc).Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Riot API • EUW only • League v4 by PUUID",
		},
	}
}

func pickedOrNil(entries []riot.LeagueEntry, queue string) string {
	picked := snapshot.PickQueueEntry(entries, queue)
	if picked == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%+v", *picked)
}
