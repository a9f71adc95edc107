// Package riot implements the two Riot API calls riftwatch depends on:
// account resolution by riot id and ranked league entries by puuid. Both go
// through one shared rate-limit-aware GET primitive.
package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

const (
	headerToken = "X-Riot-Token"
	userAgent   = "riftwatch/1.0 (+https://github.com/castlegate/riftwatch)"

	// How much of an error body to keep for the logs.
	maxErrorBody = 200
)

var (
	// ErrRequest covers transport level failures, DNS, refused connections and
	// other errors where no definitive answer arrived.
	ErrRequest = errors.New("riot api request failed")
	// ErrRejected covers the 400/401/403/404 class where the service gave a
	// definitive no. Never retried.
	ErrRejected = errors.New("riot api rejected request")
	// ErrExhausted is returned once the bounded attempt budget is spent
	// without a definitive success or rejection.
	ErrExhausted = errors.New("riot api attempts exhausted")
	// ErrDecode wraps body decoding failures.
	ErrDecode = errors.New("failed to decode riot api response")
)

// HTTPDoer defines a common interface for HTTP clients.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Account is the account-v1 record resolved from a riot id.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// LeagueEntry is one ranked queue standing for an account. Missing numeric
// fields decode to 0.
type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Division     string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// Option applies a configuration option to the Client.
type Option func(*Client)

func WithAccountBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.accountBase = base
		}
	}
}

func WithPlatformBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.platformBase = base
		}
	}
}

func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Client) {
		c.policy = policy
	}
}

// Client talks to the Riot API. It never mutates any persisted state, its
// only side effects are the network calls and diagnostic logging.
type Client struct {
	httpClient   HTTPDoer
	apiKey       string
	accountBase  string
	platformBase string
	policy       RetryPolicy
}

func NewClient(httpClient HTTPDoer, apiKey string, opts ...Option) *Client {
	client := &Client{
		httpClient:   httpClient,
		apiKey:       apiKey,
		accountBase:  "https://europe.api.riotgames.com",
		platformBase: "https://euw1.api.riotgames.com",
		policy:       DefaultRetryPolicy(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// AccountByRiotID resolves a game name + tag line to the account record
// holding the stable puuid. Both path segments are percent-encoded.
func (c *Client) AccountByRiotID(ctx context.Context, gameName string, tagLine string) (Account, error) {
	endpoint := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.accountBase, url.PathEscape(gameName), url.PathEscape(tagLine))

	return getJSON[Account](ctx, c, endpoint)
}

// LeagueEntriesByPUUID fetches every ranked queue entry for the puuid. The
// slice may be empty for unranked accounts.
func (c *Client) LeagueEntriesByPUUID(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	endpoint := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", c.platformBase, url.PathEscape(puuid))

	return getJSON[[]LeagueEntry](ctx, c, endpoint)
}

// getJSON is the shared bounded-retry GET used by every outbound call. A 429
// consumes an attempt after sleeping out the server supplied (or fallback)
// delay; definitive rejections and transport failures return immediately.
func getJSON[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	var value T

	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if errReq != nil {
			return value, errors.Join(errReq, ErrRequest)
		}

		req.Header.Set(headerToken, c.apiKey)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)

		resp, errResp := c.httpClient.Do(req)
		if errResp != nil {
			slog.Error("Riot api transport error", slog.String("url", endpoint),
				slog.String("error", errResp.Error()))

			return value, errors.Join(errResp, ErrRequest)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			wait := c.policy.Backoff(resp.Header.Get("Retry-After"), attempt)
			closeBody(resp)
			slog.Warn("Rate limited", slog.String("url", endpoint), slog.Duration("wait", wait),
				slog.Int("attempt", attempt))

			if err := c.policy.sleep(ctx, wait); err != nil {
				return value, errors.Join(err, ErrRequest)
			}

		case nonRetryable(resp.StatusCode):
			snippet := readSnippet(resp.Body)
			closeBody(resp)
			slog.Error("Riot api rejected request", slog.String("url", endpoint),
				slog.Int("status", resp.StatusCode), slog.String("body", snippet))

			return value, ErrRejected

		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			decoded, errDecode := decodeJSON[T](resp.Body)
			closeBody(resp)
			if errDecode != nil {
				return value, errDecode
			}

			return decoded, nil

		default:
			closeBody(resp)
			slog.Error("Riot api unexpected status", slog.String("url", endpoint),
				slog.Int("status", resp.StatusCode))

			return value, fmt.Errorf("%w: status %d", ErrRequest, resp.StatusCode)
		}
	}

	return value, ErrExhausted
}

// nonRetryable reports the credential / not-found class statuses where a
// retry can never change the answer.
func nonRetryable(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	default:
		return false
	}
}

func decodeJSON[T any](reader io.Reader) (T, error) {
	var value T
	if err := json.NewDecoder(reader).Decode(&value); err != nil {
		return value, errors.Join(err, ErrDecode)
	}

	return value, nil
}

func readSnippet(reader io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(reader, maxErrorBody))
	if err != nil {
		return ""
	}

	return string(body)
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		slog.Error("Failed to close response body", slog.String("error", err.Error()))
	}
}
