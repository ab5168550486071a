package mockcontroller

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tonytani37/votes-for-players/controller"
	"github.com/tonytani37/votes-for-players/model"
)

type C struct {
	mock.Mock
}

func (c *C) Matches() []model.MatchEvent {
	args := c.Called()

	var res []model.MatchEvent
	if args.Get(0) != nil {
		res = args.Get(0).([]model.MatchEvent)
	}
	return res
}

func (c *C) Match(date string) (*model.MatchEvent, error) {
	args := c.Called(date)

	var m *model.MatchEvent
	if args.Get(0) != nil {
		m = args.Get(0).(*model.MatchEvent)
	}
	return m, args.Error(1)
}

func (c *C) SearchPlayers(ctx context.Context, session string, s controller.State) (*controller.PlayerResults, error) {
	args := c.Called(ctx, session, s)

	var res *controller.PlayerResults
	if args.Get(0) != nil {
		res = args.Get(0).(*controller.PlayerResults)
	}
	return res, args.Error(1)
}

func (c *C) GetPlayer(ctx context.Context, session, date, playerID string) (*controller.PlayerDetail, error) {
	args := c.Called(ctx, session, date, playerID)

	var d *controller.PlayerDetail
	if args.Get(0) != nil {
		d = args.Get(0).(*controller.PlayerDetail)
	}
	return d, args.Error(1)
}

func (c *C) Vote(ctx context.Context, session, date, playerID string) (*model.Vote, error) {
	args := c.Called(ctx, session, date, playerID)

	var v *model.Vote
	if args.Get(0) != nil {
		v = args.Get(0).(*model.Vote)
	}
	return v, args.Error(1)
}

func (c *C) GetRanking(ctx context.Context, session string, s controller.State) (*controller.RankingView, error) {
	args := c.Called(ctx, session, s)

	var v *controller.RankingView
	if args.Get(0) != nil {
		v = args.Get(0).(*controller.RankingView)
	}
	return v, args.Error(1)
}

func (c *C) LedgerEnabled() bool {
	args := c.Called()
	return args.Bool(0)
}

func (c *C) RecordVote(ctx context.Context, v *model.Vote) error {
	args := c.Called(ctx, v)
	return args.Error(0)
}

func (c *C) LedgerRanking(ctx context.Context, s controller.State) (*controller.RankingView, error) {
	args := c.Called(ctx, s)

	var v *controller.RankingView
	if args.Get(0) != nil {
		v = args.Get(0).(*controller.RankingView)
	}
	return v, args.Error(1)
}

func (c *C) LedgerMatches(ctx context.Context) ([]model.MatchEvent, error) {
	args := c.Called(ctx)

	var m []model.MatchEvent
	if args.Get(0) != nil {
		m = args.Get(0).([]model.MatchEvent)
	}
	return m, args.Error(1)
}
