package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/itbasis/go-clock"
	"github.com/tonytani37/votes-for-players/cache"
	"github.com/tonytani37/votes-for-players/config"
	"github.com/tonytani37/votes-for-players/db"
	"github.com/tonytani37/votes-for-players/model"
	"github.com/tonytani37/votes-for-players/playerapi"
	"github.com/tonytani37/votes-for-players/search"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrPlayerNotFound = errors.New("player not found")
	// ErrSuperseded is returned by a fetch that a newer fetch for the same
	// session replaced before it finished. Its result was discarded.
	ErrSuperseded     = errors.New("request superseded by a newer request")
	ErrLedgerDisabled = errors.New("vote ledger is not configured")
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// All matches in the event config, newest first.
	Matches() []model.MatchEvent
	// Look up a match by date. An empty date selects the newest match.
	Match(date string) (*model.MatchEvent, error)

	// Filter the selected match's roster with s.Criteria. The roster is
	// fetched once per session and match and then served from the cache.
	SearchPlayers(ctx context.Context, session string, s State) (*PlayerResults, error)
	GetPlayer(ctx context.Context, session, date, playerID string) (*PlayerDetail, error)
	// Cast a vote for a player of the match on date. Returns the vote that was sent.
	Vote(ctx context.Context, session, date, playerID string) (*model.Vote, error)

	// Fetch the vote totals for the selected match and rank them, narrowed to
	// s.Team. Starting a new ranking fetch for a session cancels the previous
	// one, which then returns ErrSuperseded.
	GetRanking(ctx context.Context, session string, s State) (*RankingView, error)

	LedgerEnabled() bool
	// Record a vote received by the vote API in the local ledger.
	RecordVote(ctx context.Context, v *model.Vote) error
	// Rank the votes recorded in the local ledger.
	LedgerRanking(ctx context.Context, s State) (*RankingView, error)
	// Matches with votes in the local ledger, the most recently voted first.
	LedgerMatches(ctx context.Context) ([]model.MatchEvent, error)
}

// State is what a user currently has selected. It travels with each request
// instead of living in the controller.
type State struct {
	Date     string
	Team     model.TeamSelector
	Criteria model.FilterCriteria
}

type Options struct {
	Search search.Options
	// Player images are served from <ImageURLPrefix>/<team code>/<H|A>/<image>.
	ImageURLPrefix string
}

type controller struct {
	clock  clock.Clock
	event  *config.EventConfig
	api    playerapi.Client
	cache  cache.Cache
	db     db.DB // nil when the ledger is disabled
	filter *search.Filter
	opts   Options

	mu       sync.Mutex
	seq      uint64
	inflight map[string]*fetch
}

// New builds a controller. db may be nil, which disables the vote ledger.
func New(clock clock.Clock, event *config.EventConfig, api playerapi.Client, cache cache.Cache, db db.DB, opts Options) (C, error) {
	if event == nil {
		return nil, errors.New("event config is required")
	}
	if api == nil {
		return nil, errors.New("player api client is required")
	}
	if cache == nil {
		return nil, errors.New("cache is required")
	}

	c := &controller{
		clock:    clock,
		event:    event,
		api:      api,
		cache:    cache,
		db:       db,
		filter:   search.New(opts.Search),
		opts:     opts,
		inflight: make(map[string]*fetch),
	}
	return c, nil
}

func (c *controller) Matches() []model.MatchEvent {
	return c.event.SortedMatches()
}

func (c *controller) Match(date string) (*model.MatchEvent, error) {
	if date == "" {
		if m := c.event.Latest(); m != nil {
			return m, nil
		}
		return nil, ErrMatchNotFound
	}

	m, found := c.event.Event(date)
	if !found {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

func (c *controller) LedgerEnabled() bool {
	return c.db != nil
}
