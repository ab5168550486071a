package db

import (
	"context"

	"github.com/tonytani37/votes-for-players/model"
)

// DB is the vote ledger. Votes are only ever appended; rankings are computed
// from them on read.
type DB interface {
	// Record a single vote. The vote ID must be a UUID and is assigned by the caller.
	SaveVote(ctx context.Context, v *model.Vote) error

	// Vote totals for a match, most votes first. Ties are ordered by who got
	// their first vote earliest. An unknown match date gives an empty list.
	Ranking(ctx context.Context, matchDate string) ([]model.RankingEntry, error)

	// Every match date that has at least one vote, the most recently voted first.
	ListMatchDates(ctx context.Context) ([]string, error)
}
