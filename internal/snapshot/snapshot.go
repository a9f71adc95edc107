// Package snapshot builds one point-in-time, fully ordered leaderboard over
// the tracked roster.
package snapshot

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/castlegate/riftwatch/internal/rank"
	"github.com/castlegate/riftwatch/internal/riot"
	"github.com/castlegate/riftwatch/internal/roster"
)

// Client is the slice of the riot client the builder needs.
type Client interface {
	Resolve(ctx context.Context, riotID string) (string, error)
	LeagueEntriesByPUUID(ctx context.Context, puuid string) ([]riot.LeagueEntry, error)
}

// Row is one scored leaderboard line. Entry is nil for players that are
// unranked in the selected queue or have no cached puuid.
type Row struct {
	Name  string
	Entry *riot.LeagueEntry
	Score int
}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithFetchDelay sets the politeness delay inserted between per-player
// fetches. Zero disables it (tests).
func WithFetchDelay(delay time.Duration) Option {
	return func(b *Builder) {
		b.fetchDelay = delay
	}
}

// Builder orchestrates the ranking fetches and normalization for a full
// roster. Builds are independent pipelines over an immutable roster copy, so
// concurrent builds need no coordination.
type Builder struct {
	client     Client
	fetchDelay time.Duration
}

func NewBuilder(client Client, opts ...Option) *Builder {
	builder := &Builder{client: client, fetchDelay: 200 * time.Millisecond}
	for _, opt := range opts {
		opt(builder)
	}

	return builder
}

// Build fetches the standing of every roster record sequentially and returns
// the rows sorted descending by score. Per-player failures degrade that
// player to unranked, they never abort the build; only context cancellation
// does, in which case the partial result is discarded.
func (b *Builder) Build(ctx context.Context, queue string, players []roster.Record) ([]Row, error) {
	rows := make([]Row, 0, len(players))

	for i, record := range players {
		if i > 0 && b.fetchDelay > 0 {
			if err := riot.SleepContext(ctx, b.fetchDelay); err != nil {
				return nil, err
			}
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := b.fetchEntry(ctx, queue, record)
		rows = append(rows, Row{Name: record.Name, Entry: entry, Score: rank.Score(entry)})
	}

	// Stable: equal scores keep roster order.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })

	return rows, nil
}

// Lookup is the ad-hoc single identity path: resolve, fetch, pick. Nothing
// is cached or persisted.
func (b *Builder) Lookup(ctx context.Context, queue string, riotID string) (Row, error) {
	puuid, errResolve := b.client.Resolve(ctx, riotID)
	if errResolve != nil {
		return Row{}, errResolve
	}

	entries, errEntries := b.client.LeagueEntriesByPUUID(ctx, puuid)
	if errEntries != nil {
		slog.Warn("Lookup fetch failed", slog.String("riot_id", riotID),
			slog.String("error", errEntries.Error()))
	}

	entry := PickQueueEntry(entries, queue)

	return Row{Name: riotID, Entry: entry, Score: rank.Score(entry)}, nil
}

// fetchEntry resolves one roster record to its entry in the selected queue,
// or nil. Records without a cached puuid are not resolved here; resolution is
// an explicit roster mutation, not part of snapshot building.
func (b *Builder) fetchEntry(ctx context.Context, queue string, record roster.Record) *riot.LeagueEntry {
	if record.PUUID == "" {
		return nil
	}

	entries, errEntries := b.client.LeagueEntriesByPUUID(ctx, record.PUUID)
	if errEntries != nil {
		slog.Warn("Ranking fetch failed, treating as unranked", slog.String("name", record.Name),
			slog.String("error", errEntries.Error()))

		return nil
	}

	return PickQueueEntry(entries, queue)
}

// PickQueueEntry selects the entry for the requested queue. The service
// returns at most one per queue; if it ever returns more, the first match
// wins.
func PickQueueEntry(entries []riot.LeagueEntry, queue string) *riot.LeagueEntry {
	for i := range entries {
		if entries[i].QueueType == queue {
			return &entries[i]
		}
	}

	return nil
}
