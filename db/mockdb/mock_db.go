package mockdb

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tonytani37/votes-for-players/model"
)

type DB struct {
	mock.Mock
}

func (db *DB) SaveVote(ctx context.Context, v *model.Vote) error {
	args := db.Called(ctx, v)
	return args.Error(0)
}

func (db *DB) Ranking(ctx context.Context, matchDate string) ([]model.RankingEntry, error) {
	args := db.Called(ctx, matchDate)

	var r []model.RankingEntry
	if args.Get(0) != nil {
		r = args.Get(0).([]model.RankingEntry)
	}
	return r, args.Error(1)
}

func (db *DB) ListMatchDates(ctx context.Context) ([]string, error) {
	args := db.Called(ctx)

	var r []string
	if args.Get(0) != nil {
		r = args.Get(0).([]string)
	}
	return r, args.Error(1)
}
