package testutils

import (
	"context"
	"log"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/tonytani37/votes-for-players/containers"
	"github.com/tonytani37/votes-for-players/db"
	"github.com/tonytani37/votes-for-players/model"
)

var (
	TaroYamada = &model.Player{
		ID:     "TK07",
		Name:   "山田太郎",
		Number: model.Number(7),
		Team:   "東京",
	}
	KenSato = &model.Player{
		ID:     "TK17",
		Name:   "佐藤健",
		Number: model.Number(17),
		Team:   "東京",
	}
	IchiroSuzuki = &model.Player{
		ID:     "OS70",
		Name:   "鈴木一郎",
		Number: model.Number(70),
		Team:   "大阪",
	}
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     *clock.Mock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.NewMock()
	clock.Set(time.Date(2025, time.October, 26, 15, 0, 0, 0, time.UTC))

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	if err := InsertTestVotes(db, clock); err != nil {
		log.Fatalf("error populating db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

// InsertTestVotes records 3 votes for Suzuki, 2 for Yamada and 1 for Sato,
// all for TestMatch.
func InsertTestVotes(db db.DB, clock *clock.Mock) error {
	votes := []*model.Player{
		IchiroSuzuki,
		TaroYamada,
		IchiroSuzuki,
		KenSato,
		TaroYamada,
		IchiroSuzuki,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i, p := range votes {
		v := model.VoteFor(p, TestMatch.Date)
		v.ID = testVoteIDs[i]
		clock.Add(time.Second)
		if err := db.SaveVote(ctx, v); err != nil {
			return err
		}
	}

	return nil
}

var testVoteIDs = []string{
	"6f1c2a4e-0b1d-4c55-9a3e-1f6a2d7c8b01",
	"6f1c2a4e-0b1d-4c55-9a3e-1f6a2d7c8b02",
	"6f1c2a4e-0b1d-4c55-9a3e-1f6a2d7c8b03",
	"6f1c2a4e-0b1d-4c55-9a3e-1f6a2d7c8b04",
	"6f1c2a4e-0b1d-4c55-9a3e-1f6a2d7c8b05",
	"6f1c2a4e-0b1d-4c55-9a3e-1f6a2d7c8b06",
}
