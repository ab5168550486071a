package playerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tonytani37/votes-for-players/model"
	"golang.org/x/oauth2"
)

// ErrDataFetch wraps every failure to get usable data from the remote API:
// transport errors, non-2xx responses and bodies that do not decode.
var ErrDataFetch = errors.New("data fetch failure")

type Client interface {
	// Fetch the roster for a match as raw JSON so it can be cached as-is.
	LoadPlayersJSON(ctx context.Context, home, visitor string) ([]byte, error)
	// Fetch and decode the roster for a match when it will not be cached.
	LoadPlayers(ctx context.Context, home, visitor string) ([]model.Player, error)
	// Fetch the vote totals for a match, highest first.
	LoadRanking(ctx context.Context, matchDate string) ([]model.RankingEntry, error)
	Vote(ctx context.Context, v *model.Vote) error
}

type Endpoints struct {
	PlayersURL string
	RankingURL string
	VoteURL    string
	APIKey     string
}

type client struct {
	endpoints  Endpoints
	httpClient *http.Client
}

func New(e Endpoints, timeout time.Duration) (Client, error) {
	if e.PlayersURL == "" || e.RankingURL == "" {
		return nil, errors.New("players and ranking urls are required")
	}

	httpClient := &http.Client{Timeout: timeout}
	if e.APIKey != "" {
		// Send the key as a bearer token on every request.
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: e.APIKey}))
		httpClient.Timeout = timeout
	}

	return &client{endpoints: e, httpClient: httpClient}, nil
}

func (c *client) LoadPlayersJSON(ctx context.Context, home, visitor string) ([]byte, error) {
	q := url.Values{}
	q.Set("home", home)
	q.Set("visitor", visitor)

	body, err := c.get(ctx, c.endpoints.PlayersURL, q)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: roster response is not valid json", ErrDataFetch)
	}
	return body, nil
}

func (c *client) LoadPlayers(ctx context.Context, home, visitor string) ([]model.Player, error) {
	body, err := c.LoadPlayersJSON(ctx, home, visitor)
	if err != nil {
		return nil, err
	}
	return DecodePlayers(body)
}

// DecodePlayers decodes a roster JSON array, as returned by the roster API or
// read back from the cache.
func DecodePlayers(b []byte) ([]model.Player, error) {
	var players []model.Player
	if err := json.Unmarshal(b, &players); err != nil {
		return nil, fmt.Errorf("%w: error parsing roster: %w", ErrDataFetch, err)
	}
	if players == nil {
		players = []model.Player{}
	}
	return players, nil
}

func (c *client) LoadRanking(ctx context.Context, matchDate string) ([]model.RankingEntry, error) {
	q := url.Values{}
	if matchDate != "" {
		q.Set("match_date", matchDate)
	}

	body, err := c.get(ctx, c.endpoints.RankingURL, q)
	if err != nil {
		return nil, err
	}

	var ranking []model.RankingEntry
	if err := json.Unmarshal(body, &ranking); err != nil {
		return nil, fmt.Errorf("%w: error parsing ranking: %w", ErrDataFetch, err)
	}
	if ranking == nil {
		ranking = []model.RankingEntry{}
	}
	return ranking, nil
}

type voteRequest struct {
	*model.Vote
	APIKey string `json:"api_key,omitempty"`
}

func (c *client) Vote(ctx context.Context, v *model.Vote) error {
	if c.endpoints.VoteURL == "" {
		return fmt.Errorf("%w: no vote url configured", ErrDataFetch)
	}

	b, err := json.Marshal(voteRequest{Vote: v, APIKey: c.endpoints.APIKey})
	if err != nil {
		return fmt.Errorf("error encoding vote: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.VoteURL, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req)
	return err
}

func (c *client) get(ctx context.Context, base string, q url.Values) ([]byte, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: bad url %s: %w", ErrDataFetch, base, err)
	}
	if len(q) > 0 {
		existing := u.Query()
		for k, v := range q {
			existing[k] = v
		}
		u.RawQuery = existing.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: error sending http request: %w", ErrDataFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading response: %w", ErrDataFetch, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrDataFetch, resp.StatusCode)
	}
	return body, nil
}
