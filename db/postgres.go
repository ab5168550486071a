package db

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tonytani37/votes-for-players/model"
)

var (
	ErrInvalidVote   error = errors.New("invalid vote")
	ErrDuplicateVote error = errors.New("vote already recorded")
)

// postgres error code for unique_violation
const uniqueViolation = "23505"

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) SaveVote(ctx context.Context, v *model.Vote) error {
	if err := validateVote(v); err != nil {
		return err
	}

	const query = `INSERT INTO votes (
		id,
		player_id,
		name,
		jersey_num,
		team,
		match_date,
		created
	) VALUES (
		@id,
		@playerID,
		@name,
		@jerseyNum,
		@team,
		@matchDate,
		@created
	)`

	created := db.clock.Now().UTC()
	args := pgx.NamedArgs{
		"id":       v.ID,
		"playerID": v.PlayerID,
		"name":     v.Name,
		"jerseyNum": pgtype.Int4{
			Int32: int32(v.Number.Value),
			Valid: v.Number.Valid,
		},
		"team":      v.Team,
		"matchDate": v.MatchDate,
		"created": pgtype.Timestamptz{
			Time:             created,
			InfinityModifier: pgtype.Finite,
			Valid:            true,
		},
	}

	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrDuplicateVote, v.ID)
		}
		return fmt.Errorf("error inserting vote(%s): %w", v.ID, err)
	}

	v.Created = created
	return nil
}

func (db *postgresDB) Ranking(ctx context.Context, matchDate string) ([]model.RankingEntry, error) {
	// The name, number and team of the latest vote win if they ever differ
	// between votes for the same player.
	const query = `SELECT player_id,
						(array_agg(name ORDER BY created DESC))[1],
						(array_agg(jersey_num ORDER BY created DESC))[1],
						(array_agg(team ORDER BY created DESC))[1],
						COUNT(*) AS votes
					FROM votes WHERE match_date = @matchDate
					GROUP BY player_id
					ORDER BY votes DESC, MIN(created) ASC, player_id ASC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"matchDate": matchDate})
	if err != nil {
		return nil, fmt.Errorf("error running ranking query: %w", err)
	}
	defer rows.Close()

	results := make([]model.RankingEntry, 0, 16)
	for rows.Next() {
		e, err := scanRankingEntry(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading ranking rows: %w", err)
	}

	return results, nil
}

func (db *postgresDB) ListMatchDates(ctx context.Context) ([]string, error) {
	const query = `SELECT match_date FROM votes
					GROUP BY match_date
					ORDER BY MAX(created) DESC, match_date ASC`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing match dates: %w", err)
	}

	dates, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("error reading match dates: %w", err)
	}
	if dates == nil {
		dates = []string{}
	}
	return dates, nil
}

func scanRankingEntry(row pgx.Row) (*model.RankingEntry, error) {
	var result model.RankingEntry
	var jerseyNum pgtype.Int4
	var votes int64
	err := row.Scan(
		&result.ID,
		&result.Name,
		&jerseyNum,
		&result.Team,
		&votes)

	if err != nil {
		return nil, err
	}

	if jerseyNum.Valid {
		result.Number = model.Number(int(jerseyNum.Int32))
	}
	result.Votes = model.VoteCount(votes)

	return &result, nil
}

func validateVote(v *model.Vote) error {
	if v == nil {
		return fmt.Errorf("%w: vote is nil", ErrInvalidVote)
	}
	if _, err := uuid.Parse(v.ID); err != nil {
		return fmt.Errorf("%w: bad id '%s'", ErrInvalidVote, v.ID)
	}
	if v.PlayerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidVote)
	}
	if v.MatchDate == "" {
		return fmt.Errorf("%w: match date is required", ErrInvalidVote)
	}
	if v.Number.Valid && (v.Number.Value < 0 || v.Number.Value > math.MaxInt32) {
		return fmt.Errorf("%w: jersey number %d out of range", ErrInvalidVote, v.Number.Value)
	}
	return nil
}
