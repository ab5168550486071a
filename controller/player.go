package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path"

	"github.com/google/uuid"
	"github.com/tonytani37/votes-for-players/cache"
	"github.com/tonytani37/votes-for-players/model"
	"github.com/tonytani37/votes-for-players/playerapi"
)

type PlayerResults struct {
	Match    *model.MatchEvent    `json:"match"`
	Criteria model.FilterCriteria `json:"criteria"`
	// False when no criteria were given. The page then shows the search
	// hints instead of an empty result.
	Searched bool           `json:"searched"`
	Players  []model.Player `json:"players"`
}

type PlayerDetail struct {
	Player model.Player
	Match  *model.MatchEvent
	// "H" for the home team, "A" for the visitor
	Side      string
	TeamCode  string
	ImagePath string
	// -1 when the birth date is unknown
	Age int
}

func (c *controller) SearchPlayers(ctx context.Context, session string, s State) (*PlayerResults, error) {
	m, err := c.Match(s.Date)
	if err != nil {
		return nil, err
	}

	res := &PlayerResults{
		Match:    m,
		Criteria: s.Criteria,
		Searched: !s.Criteria.IsEmpty(),
		Players:  []model.Player{},
	}
	if !res.Searched {
		return res, nil
	}

	roster, err := c.roster(ctx, session, m)
	if err != nil {
		return nil, err
	}

	res.Players = c.filter.Filter(roster, s.Criteria)
	return res, nil
}

func (c *controller) GetPlayer(ctx context.Context, session, date, playerID string) (*PlayerDetail, error) {
	m, err := c.Match(date)
	if err != nil {
		return nil, err
	}

	p, err := c.findPlayer(ctx, session, m, playerID)
	if err != nil {
		return nil, err
	}

	d := &PlayerDetail{
		Player:   *p,
		Match:    m,
		Side:     m.Side(p.Team),
		TeamCode: p.TeamCode(),
		Age:      p.Age(c.clock.Now()),
	}
	if p.Image != "" {
		d.ImagePath = path.Join(c.opts.ImageURLPrefix, d.TeamCode, d.Side, p.Image)
	}
	return d, nil
}

func (c *controller) Vote(ctx context.Context, session, date, playerID string) (*model.Vote, error) {
	m, err := c.Match(date)
	if err != nil {
		return nil, err
	}

	p, err := c.findPlayer(ctx, session, m, playerID)
	if err != nil {
		return nil, err
	}

	v := model.VoteFor(p, m.Date)
	v.ID = uuid.NewString()
	if err := c.api.Vote(ctx, v); err != nil {
		return nil, fmt.Errorf("error sending vote for %s: %w", p.ID, err)
	}

	if c.db != nil {
		// upstream already accepted the vote, ledger errors are only logged
		if err := c.db.SaveVote(ctx, v); err != nil {
			log.Printf("error recording vote %s in ledger: %v", v.ID, err)
		}
	}
	return v, nil
}

func (c *controller) findPlayer(ctx context.Context, session string, m *model.MatchEvent, playerID string) (*model.Player, error) {
	roster, err := c.roster(ctx, session, m)
	if err != nil {
		return nil, err
	}

	for i := range roster {
		if roster[i].ID == playerID {
			return &roster[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
}

// cachedRoster is what is kept under cache.RosterKey: the raw roster JSON
// and the match it was fetched for.
type cachedRoster struct {
	MatchDate string          `json:"match_date"`
	Players   json.RawMessage `json:"players"`
}

// roster returns the roster for m, from the session cache when it holds the
// roster for the same match. Otherwise it is fetched and replaces whatever
// the cache held. Without a session the roster is fetched and not cached.
func (c *controller) roster(ctx context.Context, session string, m *model.MatchEvent) ([]model.Player, error) {
	if session == "" {
		return c.api.LoadPlayers(ctx, m.Home.Name, m.Visitor.Name)
	}

	b, found, err := c.cache.Get(ctx, session, cache.RosterKey)
	if err != nil {
		log.Printf("error reading roster from cache: %v", err)
	}
	if found {
		var cached cachedRoster
		if err := json.Unmarshal(b, &cached); err == nil && cached.MatchDate == m.Date {
			if players, err := playerapi.DecodePlayers(cached.Players); err == nil {
				return players, nil
			}
		}
	}

	raw, err := c.api.LoadPlayersJSON(ctx, m.Home.Name, m.Visitor.Name)
	if err != nil {
		return nil, err
	}
	players, err := playerapi.DecodePlayers(raw)
	if err != nil {
		return nil, err
	}

	b, err = json.Marshal(cachedRoster{MatchDate: m.Date, Players: raw})
	if err == nil {
		err = c.cache.Set(ctx, session, cache.RosterKey, b)
	}
	if err != nil {
		log.Printf("error caching roster: %v", err)
	}
	return players, nil
}
