// Package discord is the chat surface: it maps message commands 1:1 onto the
// core roster and snapshot operations and renders the results.
package discord

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/castlegate/riftwatch/internal/config"
	"github.com/castlegate/riftwatch/internal/riot"
	"github.com/castlegate/riftwatch/internal/roster"
	"github.com/castlegate/riftwatch/internal/snapshot"
)

const commandPrefix = "!"

var (
	errSession = errors.New("discord session error")
	// ErrNoAnnounceChannel is returned by postnow and the weekly trigger when
	// no channel is configured.
	ErrNoAnnounceChannel = errors.New("announce channel not configured")
)

type Bot struct {
	session *discordgo.Session
	conf    config.Config
	store   *roster.Store
	client  *riot.Client
	builder *snapshot.Builder
	// ctx is the process lifetime context, set by Start. Handlers run on
	// discordgo's goroutines which carry no context of their own.
	ctx context.Context
}

func New(conf config.Config, store *roster.Store, client *riot.Client, builder *snapshot.Builder) (*Bot, error) {
	session, errSess := discordgo.New("Bot " + conf.DiscordToken)
	if errSess != nil {
		return nil, errors.Join(errSess, errSession)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	bot := &Bot{session: session, conf: conf, store: store, client: client, builder: builder}
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onMessageCreate)

	return bot, nil
}

// Start opens the gateway connection and blocks until the context ends.
func (b *Bot) Start(ctx context.Context) error {
	b.ctx = ctx

	if err := b.session.Open(); err != nil {
		return errors.Join(err, errSession)
	}

	<-ctx.Done()

	if err := b.session.Close(); err != nil {
		return errors.Join(err, errSession)
	}

	return nil
}

func (b *Bot) onReady(_ *discordgo.Session, ready *discordgo.Ready) {
	slog.Info("Connected to discord", slog.String("user", ready.User.String()),
		slog.String("id", ready.User.ID))
}

func (b *Bot) onMessageCreate(session *discordgo.Session, msg *discordgo.MessageCreate) {
	if msg.Author == nil || msg.Author.Bot || msg.Author.ID == session.State.User.ID {
		return
	}

	if !strings.HasPrefix(msg.Content, commandPrefix) {
		return
	}

	fields := strings.Fields(msg.Content)
	if len(fields) == 0 {
		return
	}

	command := strings.TrimPrefix(fields[0], commandPrefix)
	args := fields[1:]

	switch command {
	case "ping":
		b.reply(msg, "Pong!")
	case "setplayer":
		b.handleSetPlayer(msg, args)
	case "removeplayer":
		b.handleRemovePlayer(msg, args)
	case "players":
		b.handlePlayers(msg)
	case "rank":
		b.handleRank(msg, args)
	case "rankid":
		b.handleRankID(msg, args)
	case "debugrank":
		b.handleDebugRank(msg, args)
	case "postnow":
		b.handlePostNow(msg, args)
	}
}

// requireAPI reports a missing Riot credential to the invoking user. The key
// is checked per command so a key revoked at runtime degrades to a per-command
// error instead of silent failures.
func (b *Bot) requireAPI(msg *discordgo.MessageCreate) bool {
	if b.conf.RiotAPIKey == "" {
		slog.Error("Command refused", slog.String("error", config.ErrMissingCredential.Error()))
		b.reply(msg, "RIOT_API_KEY missing in .env")

		return false
	}

	return true
}

func (b *Bot) reply(msg *discordgo.MessageCreate, content string) {
	if _, err := b.session.ChannelMessageSend(msg.ChannelID, content); err != nil {
		slog.Error("Failed to send message", slog.String("channel", msg.ChannelID),
			slog.String("error", err.Error()))
	}
}

func (b *Bot) replyEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	if _, err := b.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		return errors.Join(err, errSession)
	}

	return nil
}

// PostSnapshot builds a fresh leaderboard and posts it to the announce
// channel. Shared by !postnow and the weekly trigger.
func (b *Bot) PostSnapshot(ctx context.Context, mode string) error {
	if b.conf.AnnounceChannelID == "" {
		return ErrNoAnnounceChannel
	}

	queue, label := QueueForMode(mode, b.conf.DefaultQueue)

	rows, errBuild := b.builder.Build(ctx, queue, b.store.Players())
	if errBuild != nil {
		return errBuild
	}

	return b.replyEmbed(b.conf.AnnounceChannelID, LeaderboardEmbed(rows, label, b.conf.Location()))
}
