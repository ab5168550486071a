package controller

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/tonytani37/votes-for-players/cache"
	"github.com/tonytani37/votes-for-players/config"
	"github.com/tonytani37/votes-for-players/db"
	"github.com/tonytani37/votes-for-players/model"
	"github.com/tonytani37/votes-for-players/playerapi"
	"github.com/tonytani37/votes-for-players/playerapi/mockplayerapi"
	"github.com/tonytani37/votes-for-players/testutils"
)

// A global testDB instance to use for all of the tests instead of setting up a new one each time.
var testDB *testutils.TestDB

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if testDB != nil {
				testDB.Shutdown()
			}
			fmt.Printf("panic - %v\n", r)
		}
	}()

	// Setup the global testDB variable
	testDB = testutils.NewTestDB()
	defer testDB.Shutdown()
	code := m.Run()
	os.Exit(code)
}

var earlierMatch = model.MatchEvent{
	Date:    "2025年10月04日",
	Arena:   "第一体育館",
	Home:    model.MatchTeam{Name: "大阪", Code: "OS"},
	Visitor: model.MatchTeam{Name: "東京", Code: "TK"},
}

func testEvent() *config.EventConfig {
	return &config.EventConfig{
		PlayersURL: "http://localhost/players",
		RankingURL: "http://localhost/ranking",
		Matches:    []model.MatchEvent{earlierMatch, testutils.TestMatch},
	}
}

func testClock() *clock.Mock {
	c := clock.NewMock()
	c.Set(time.Date(2025, time.October, 26, 12, 0, 0, 0, time.UTC))
	return c
}

func newTestCtrl(t *testing.T, api playerapi.Client, db db.DB) *controller {
	t.Helper()
	c, err := New(testClock(), testEvent(), api, cache.NewMemory(cache.DefaultSize, 0), db, Options{ImageURLPrefix: "/img"})
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}
	return c.(*controller)
}

func TestNew_required(t *testing.T) {
	if _, err := New(testClock(), nil, nil, nil, nil, Options{}); err == nil {
		t.Errorf("expected an error without an event config")
	}
	if _, err := New(testClock(), testEvent(), nil, cache.NewMemory(cache.DefaultSize, 0), nil, Options{}); err == nil {
		t.Errorf("expected an error without an api client")
	}
}

func TestMatch(t *testing.T) {
	ctrl := newTestCtrl(t, &mockplayerapi.Client{}, nil)

	tests := map[string]struct {
		date     string
		wantDate string
		wantErr  error
	}{
		"newest by default": {date: "", wantDate: testutils.TestMatch.Date},
		"by date":           {date: "2025年10月04日", wantDate: "2025年10月04日"},
		"unknown date":      {date: "2024年1月1日", wantErr: ErrMatchNotFound},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m, err := ctrl.Match(tc.date)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("wanted error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}
			if m.Date != tc.wantDate {
				t.Errorf("wanted date %s, got %s", tc.wantDate, m.Date)
			}
		})
	}

	matches := ctrl.Matches()
	if len(matches) != 2 || matches[0].Date != testutils.TestMatch.Date {
		t.Errorf("matches should be newest first, got %v", matches)
	}
}

func TestMatch_noMatches(t *testing.T) {
	c, err := New(testClock(), &config.EventConfig{}, &mockplayerapi.Client{}, cache.NewMemory(cache.DefaultSize, 0), nil, Options{})
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}
	if _, err := c.Match(""); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("expected ErrMatchNotFound, got %v", err)
	}
}
