package riot_test

import (
	"net/http"
	"testing"

	"github.com/castlegate/riftwatch/internal/riot"
	"github.com/stretchr/testify/require"
)

// failDoer fails the test on any network call.
type failDoer struct {
	t *testing.T
}

func (f failDoer) Do(*http.Request) (*http.Response, error) {
	f.t.Fatal("unexpected network call")

	return nil, nil
}

func TestParseRiotID(t *testing.T) {
	gameName, tagLine, err := riot.ParseRiotID("  Some Name # EUW ")
	require.NoError(t, err)
	require.Equal(t, "Some Name", gameName)
	require.Equal(t, "EUW", tagLine)

	// Only the first separator splits; tags cannot contain one but be defensive.
	gameName, tagLine, err = riot.ParseRiotID("a#b#c")
	require.NoError(t, err)
	require.Equal(t, "a", gameName)
	require.Equal(t, "b#c", tagLine)
}

func TestParseRiotIDMalformed(t *testing.T) {
	_, _, err := riot.ParseRiotID("NoSeparator")
	require.ErrorIs(t, err, riot.ErrMalformedRiotID)

	_, _, err = riot.ParseRiotID("   ")
	require.ErrorIs(t, err, riot.ErrMalformedRiotID)
}

func TestResolveMalformedSkipsNetwork(t *testing.T) {
	client := riot.NewClient(failDoer{t: t}, "key")

	_, err := client.Resolve(t.Context(), "NoSeparator")
	require.ErrorIs(t, err, riot.ErrMalformedRiotID)
}

func TestResolve(t *testing.T) {
	doer := &fakeDoer{responses: []*http.Response{
		response(http.StatusOK, `{"puuid":"abc-123"}`, nil),
	}}
	client := riot.NewClient(doer, "key")

	puuid, err := client.Resolve(t.Context(), "Game#Tag")
	require.NoError(t, err)
	require.Equal(t, "abc-123", puuid)
}

func TestResolveNotFound(t *testing.T) {
	doer := &fakeDoer{responses: []*http.Response{
		response(http.StatusNotFound, `{}`, nil),
	}}
	client := riot.NewClient(doer, "key")

	_, err := client.Resolve(t.Context(), "Game#Tag")
	require.ErrorIs(t, err, riot.ErrResolve)
}

func TestResolveEmptyPUUID(t *testing.T) {
	doer := &fakeDoer{responses: []*http.Response{
		response(http.StatusOK, `{}`, nil),
	}}
	client := riot.NewClient(doer, "key")

	_, err := client.Resolve(t.Context(), "Game#Tag")
	require.ErrorIs(t, err, riot.ErrResolve)
}

func TestSanitizeNFC(t *testing.T) {
	// Decomposed e + combining acute must fold onto the precomposed form.
	require.Equal(t, "Jos\u00e9", riot.Sanitize(" Jose\u0301 "))
}
