package controller

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tonytani37/votes-for-players/model"
	"github.com/tonytani37/votes-for-players/ranking"
)

type RankingView struct {
	Match   *model.MatchEvent   `json:"match"`
	Team    model.TeamSelector  `json:"team"`
	Entries []model.RankedEntry `json:"entries"`
}

// Empty reports whether there is nothing to rank, which the page shows as
// "no vote data" rather than an empty table.
func (v *RankingView) Empty() bool {
	return len(v.Entries) == 0
}

func (c *controller) GetRanking(ctx context.Context, session string, s State) (*RankingView, error) {
	m, err := c.Match(s.Date)
	if err != nil {
		return nil, err
	}

	// Anonymous callers have no earlier fetch to replace.
	if session == "" {
		entries, err := c.api.LoadRanking(ctx, m.Date)
		if err != nil {
			return nil, err
		}
		return rank(entries, m, s.Team), nil
	}

	ctx, seq, done := c.beginFetch(ctx, session)
	defer done()

	entries, err := c.api.LoadRanking(ctx, m.Date)
	if !c.isCurrent(session, seq) {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}

	return rank(entries, m, s.Team), nil
}

func (c *controller) RecordVote(ctx context.Context, v *model.Vote) error {
	if c.db == nil {
		return ErrLedgerDisabled
	}
	if _, found := c.event.Event(v.MatchDate); !found {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, v.MatchDate)
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return c.db.SaveVote(ctx, v)
}

func (c *controller) LedgerRanking(ctx context.Context, s State) (*RankingView, error) {
	if c.db == nil {
		return nil, ErrLedgerDisabled
	}
	m, err := c.Match(s.Date)
	if err != nil {
		return nil, err
	}

	entries, err := c.db.Ranking(ctx, m.Date)
	if err != nil {
		return nil, fmt.Errorf("error loading ledger ranking: %w", err)
	}
	return rank(entries, m, s.Team), nil
}

func (c *controller) LedgerMatches(ctx context.Context) ([]model.MatchEvent, error) {
	if c.db == nil {
		return nil, ErrLedgerDisabled
	}

	dates, err := c.db.ListMatchDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading ledger matches: %w", err)
	}

	matches := make([]model.MatchEvent, 0, len(dates))
	for _, d := range dates {
		m, found := c.event.Event(d)
		if !found {
			continue
		}
		matches = append(matches, *m)
	}
	return matches, nil
}

// rank narrows entries to the selected team before ranking, so home and
// visitor views get their own ranks starting at 1.
func rank(entries []model.RankingEntry, m *model.MatchEvent, sel model.TeamSelector) *RankingView {
	if sel == "" {
		sel = model.SelectAll
	}
	return &RankingView{
		Match:   m,
		Team:    sel,
		Entries: ranking.ComputeRanks(ranking.FilterRanking(entries, sel, m)),
	}
}

// fetch is the ranking request currently in flight for a session.
type fetch struct {
	seq    uint64
	cancel context.CancelFunc
}

// beginFetch registers a new fetch for session, canceling the one it
// replaces. The returned func must be called when the fetch is finished.
func (c *controller) beginFetch(ctx context.Context, session string) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	c.seq++
	seq := c.seq
	if prev, found := c.inflight[session]; found {
		prev.cancel()
	}
	c.inflight[session] = &fetch{seq: seq, cancel: cancel}
	c.mu.Unlock()

	done := func() {
		cancel()
		c.mu.Lock()
		defer c.mu.Unlock()
		if f, found := c.inflight[session]; found && f.seq == seq {
			delete(c.inflight, session)
		}
	}
	return ctx, seq, done
}

// isCurrent reports whether seq is still the newest fetch for session.
func (c *controller) isCurrent(session string, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, found := c.inflight[session]
	return found && f.seq == seq
}
