package rank_test

import (
	"testing"

	"github.com/castlegate/riftwatch/internal/rank"
	"github.com/castlegate/riftwatch/internal/riot"
	"github.com/stretchr/testify/require"
)

func entry(tier string, division string, points int) *riot.LeagueEntry {
	return &riot.LeagueEntry{Tier: tier, Division: division, LeaguePoints: points}
}

func TestScore(t *testing.T) {
	require.Equal(t, rank.Unranked, rank.Score(nil))
	require.Equal(t, 0, rank.Score(entry("IRON", "IV", 0)))
	require.Equal(t, 1440, rank.Score(entry("GOLD", "II", 40)))
	require.Equal(t, 1600, rank.Score(entry("PLATINUM", "IV", 0)))
	require.Equal(t, 28010, rank.Score(entry("MASTER", "", 10)))
}

func TestScoreUnrankedBelowEverything(t *testing.T) {
	require.Less(t, rank.Score(nil), rank.Score(entry("IRON", "IV", 0)))
}

func TestScoreTierDominatesDivisionAndPoints(t *testing.T) {
	tiers := []string{"IRON", "BRONZE", "SILVER", "GOLD", "PLATINUM", "EMERALD", "DIAMOND"}

	// Best possible non-apex standing in a tier still loses to the worst of
	// the next tier up, given 0 <= LP < 100.
	for i := 0; i < len(tiers)-1; i++ {
		best := entry(tiers[i], "I", 99)
		worst := entry(tiers[i+1], "IV", 0)
		require.Greater(t, rank.Score(worst), rank.Score(best),
			"%s I 99LP must score below %s IV 0LP", tiers[i], tiers[i+1])
	}

	// The apex boundary holds even with uncapped apex LP on the low side.
	require.Greater(t, rank.Score(entry("MASTER", "", 0)), rank.Score(entry("DIAMOND", "I", 99)))
	require.Greater(t, rank.Score(entry("GRANDMASTER", "", 0)), rank.Score(entry("MASTER", "", 2000)))
}

func TestScoreDivisionDominatesPoints(t *testing.T) {
	require.Greater(t, rank.Score(entry("GOLD", "I", 0)), rank.Score(entry("GOLD", "II", 99)))
	require.Greater(t, rank.Score(entry("GOLD", "II", 1)), rank.Score(entry("GOLD", "II", 0)))
}

func TestScoreUnknownValues(t *testing.T) {
	// Unrecognized tiers and divisions contribute the minimum, never panic.
	require.Equal(t, 25, rank.Score(entry("WOOD", "IV", 25)))
	require.Equal(t, 1225, rank.Score(entry("GOLD", "V", 25)))
}

func TestLabel(t *testing.T) {
	require.Equal(t, "*Unranked*", rank.Label(nil))

	gold := entry("GOLD", "II", 40)
	gold.Wins, gold.Losses = 10, 5
	require.Equal(t, "Gold II — 40 LP (W 10/L 5)", rank.Label(gold))

	master := entry("MASTER", "", 120)
	master.Wins, master.Losses = 50, 40
	require.Equal(t, "Master 120 LP (W 50/L 40)", rank.Label(master))

	// Missing division renders with the documented default.
	require.Equal(t, "Silver IV — 0 LP (W 0/L 0)", rank.Label(entry("SILVER", "", 0)))
}

func TestIsApex(t *testing.T) {
	require.True(t, rank.IsApex("MASTER"))
	require.True(t, rank.IsApex("GRANDMASTER"))
	require.True(t, rank.IsApex("CHALLENGER"))
	require.False(t, rank.IsApex("DIAMOND"))
	require.False(t, rank.IsApex(""))
}
