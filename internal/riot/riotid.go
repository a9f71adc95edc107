package riot

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// ErrMalformedRiotID flags user input missing the name#tag separator.
	// Detected locally, never costs a network call.
	ErrMalformedRiotID = errors.New("riot id must be in Game#Tag form")
	// ErrResolve means the remote lookup found no matching account or failed.
	ErrResolve = errors.New("could not resolve riot id")
)

// Sanitize NFC-normalizes and trims a user supplied string. Applied to both
// riot ids and roster display names so visually identical input maps to the
// same key.
func Sanitize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// ParseRiotID splits a composite riot id into its game name and tag line,
// trimming whitespace around both parts.
func ParseRiotID(riotID string) (string, string, error) {
	gameName, tagLine, found := strings.Cut(Sanitize(riotID), "#")
	if !found {
		return "", "", ErrMalformedRiotID
	}

	return strings.TrimSpace(gameName), strings.TrimSpace(tagLine), nil
}

// Resolve turns a composite riot id into the account's stable puuid. A remote
// miss or failure comes back as ErrResolve so callers can report "could not
// resolve" distinctly from "resolved but unranked".
func (c *Client) Resolve(ctx context.Context, riotID string) (string, error) {
	gameName, tagLine, errParse := ParseRiotID(riotID)
	if errParse != nil {
		return "", errParse
	}

	account, errAccount := c.AccountByRiotID(ctx, gameName, tagLine)
	if errAccount != nil {
		return "", errors.Join(errAccount, ErrResolve)
	}

	if account.PUUID == "" {
		return "", ErrResolve
	}

	return account.PUUID, nil
}
