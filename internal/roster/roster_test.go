package roster_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/castlegate/riftwatch/internal/roster"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*roster.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "players.json")
	store := roster.NewStore(path)
	require.NoError(t, store.Load())

	return store, path
}

func TestLoadMissingFile(t *testing.T) {
	store, _ := newStore(t)
	require.Equal(t, 0, store.Len())
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := roster.NewStore(path)
	require.ErrorIs(t, store.Load(), roster.ErrLoad)
}

func TestSetPersistsAndReloads(t *testing.T) {
	store, path := newStore(t)

	require.NoError(t, store.Set("alice", roster.Player{RiotID: "Alice#EUW", PUUID: "puuid-a"}))

	reloaded := roster.NewStore(path)
	require.NoError(t, reloaded.Load())

	player, found := reloaded.Get("alice")
	require.True(t, found)
	require.Equal(t, "Alice#EUW", player.RiotID)
	require.Equal(t, "puuid-a", player.PUUID)
}

func TestResetOverwritesCachedPUUID(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Set("alice", roster.Player{RiotID: "Old#EUW", PUUID: "puuid-old"}))
	require.NoError(t, store.Set("alice", roster.Player{RiotID: "New#EUW", PUUID: "puuid-new"}))

	player, found := store.Get("alice")
	require.True(t, found)
	require.Equal(t, "puuid-new", player.PUUID)
	require.Equal(t, 1, store.Len())
}

func TestRemoveUnknownLeavesFileUntouched(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.Set("alice", roster.Player{RiotID: "Alice#EUW", PUUID: "puuid-a"}))

	before, errBefore := os.ReadFile(path)
	require.NoError(t, errBefore)

	require.ErrorIs(t, store.Remove("nobody"), roster.ErrNotTracked)

	after, errAfter := os.ReadFile(path)
	require.NoError(t, errAfter)
	require.Equal(t, before, after)
}

func TestRemove(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.Set("alice", roster.Player{RiotID: "Alice#EUW"}))
	require.NoError(t, store.Remove("alice"))
	require.Equal(t, 0, store.Len())

	reloaded := roster.NewStore(path)
	require.NoError(t, reloaded.Load())
	require.Equal(t, 0, reloaded.Len())
}

func TestPlayersDeterministicOrder(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Set("charlie", roster.Player{RiotID: "C#EUW"}))
	require.NoError(t, store.Set("alice", roster.Player{RiotID: "A#EUW"}))
	require.NoError(t, store.Set("bob", roster.Player{RiotID: "B#EUW"}))

	records := store.Players()
	require.Len(t, records, 3)
	require.Equal(t, "alice", records[0].Name)
	require.Equal(t, "bob", records[1].Name)
	require.Equal(t, "charlie", records[2].Name)
}

func TestNameKeysAreSanitized(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Set("  alice ", roster.Player{RiotID: "A#EUW"}))

	_, found := store.Get("alice")
	require.True(t, found)
	require.NoError(t, store.Remove("alice "))
}
