package testutils

import (
	"log"
	"strings"

	"github.com/itbasis/go-clock"
	"github.com/tonytani37/votes-for-players/config"
)

// TestController bundles what a controller needs in tests: a fake upstream
// API, an event config pointing at it and a controllable clock.
type TestController struct {
	Clock   *clock.Mock
	Config  *config.EventConfig
	fakeAPI *FakeAPIServer
}

func (c *TestController) Close() {
	c.fakeAPI.Close()
}

func (c *TestController) API() *FakeAPIServer {
	return c.fakeAPI
}

// NewTestController shares the clock of db. db may be nil when the test does
// not need a ledger.
func NewTestController(db *TestDB) *TestController {
	fakeAPI := NewFakeAPIServer()

	clk := clock.NewMock()
	if db != nil {
		clk = db.Clock
	}

	cfg, err := config.Parse(strings.NewReader(fakeAPI.EventConfigJSON()))
	if err != nil {
		log.Fatalf("error parsing test event config: %v", err)
	}

	return &TestController{
		Clock:   clk,
		Config:  cfg,
		fakeAPI: fakeAPI,
	}
}
