// Package rank maps heterogeneous league entries onto a single total order
// and renders the human readable rank labels.
package rank

import (
	"fmt"
	"strings"

	"github.com/castlegate/riftwatch/internal/riot"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Unranked sorts strictly below every attainable ranked score, which are
// always >= 0.
const Unranked = -1

// UnrankedLabel marks roster entries with no standing in the selected queue,
// distinct from a zero score.
const UnrankedLabel = "*Unranked*"

// The weighting guarantees tier dominates division dominates points: a full
// division is worth 100, a full tier 400 (4000 between apex tiers, which
// carry uncapped LP instead of divisions).
const (
	pointsPerDivision = 100
	pointsPerTier     = 400
	pointsPerApexTier = 4000
)

// tierOrder is the fixed total order over the ten tiers, lowest first.
var tierOrder = map[string]int{
	"IRON":        0,
	"BRONZE":      1,
	"SILVER":      2,
	"GOLD":        3,
	"PLATINUM":    4,
	"EMERALD":     5,
	"DIAMOND":     6,
	"MASTER":      7,
	"GRANDMASTER": 8,
	"CHALLENGER":  9,
}

// divisionOrder covers the four sub-tiers of the non-apex tiers.
var divisionOrder = map[string]int{
	"IV":  0,
	"III": 1,
	"II":  2,
	"I":   3,
}

// IsApex reports whether the tier is one of the top three, which have league
// points instead of divisions.
func IsApex(tier string) bool {
	switch tier {
	case "MASTER", "GRANDMASTER", "CHALLENGER":
		return true
	default:
		return false
	}
}

// Score collapses an entry onto the total order used for leaderboard
// sorting. Unknown tier or division strings contribute the minimum rather
// than failing.
func Score(entry *riot.LeagueEntry) int {
	if entry == nil {
		return Unranked
	}

	tier := tierOrder[entry.Tier]
	if IsApex(entry.Tier) {
		return tier*pointsPerApexTier + entry.LeaguePoints
	}

	return tier*pointsPerTier + divisionOrder[entry.Division]*pointsPerDivision + entry.LeaguePoints
}

// Label renders the compact rank string shown on the leaderboard.
func Label(entry *riot.LeagueEntry) string {
	if entry == nil {
		return UnrankedLabel
	}

	// A Caser carries state, so never share one across goroutines.
	tier := cases.Title(language.English).String(strings.ToLower(entry.Tier))
	if IsApex(entry.Tier) {
		return fmt.Sprintf("%s %d LP (W %d/L %d)", tier, entry.LeaguePoints, entry.Wins, entry.Losses)
	}

	division := entry.Division
	if division == "" {
		division = "IV"
	}

	return fmt.Sprintf("%s %s — %d LP (W %d/L %d)", tier, division, entry.LeaguePoints, entry.Wins, entry.Losses)
}
