package mockplayerapi

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tonytani37/votes-for-players/model"
)

type Client struct {
	mock.Mock
}

func (c *Client) LoadPlayersJSON(ctx context.Context, home, visitor string) ([]byte, error) {
	args := c.Called(ctx, home, visitor)

	var b []byte
	if args.Get(0) != nil {
		b = args.Get(0).([]byte)
	}
	return b, args.Error(1)
}

func (c *Client) LoadPlayers(ctx context.Context, home, visitor string) ([]model.Player, error) {
	args := c.Called(ctx, home, visitor)

	var res []model.Player
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Player)
	}
	return res, args.Error(1)
}

func (c *Client) LoadRanking(ctx context.Context, matchDate string) ([]model.RankingEntry, error) {
	args := c.Called(ctx, matchDate)

	var res []model.RankingEntry
	if args.Get(0) != nil {
		res = args.Get(0).([]model.RankingEntry)
	}
	return res, args.Error(1)
}

func (c *Client) Vote(ctx context.Context, v *model.Vote) error {
	args := c.Called(ctx, v)
	return args.Error(0)
}
