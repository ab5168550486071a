package playerapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tonytani37/votes-for-players/model"
	"github.com/tonytani37/votes-for-players/testutils"
)

func newTestClient(t *testing.T, f *testutils.FakeAPIServer, apiKey string) Client {
	t.Helper()
	c, err := New(Endpoints{
		PlayersURL: f.URL() + "/players",
		RankingURL: f.URL() + "/ranking",
		VoteURL:    f.URL() + "/vote",
		APIKey:     apiKey,
	}, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestNew_requiresURLs(t *testing.T) {
	_, err := New(Endpoints{PlayersURL: "http://localhost/players"}, time.Second)
	assert.Error(t, err)
}

func TestLoadPlayers_success(t *testing.T) {
	f := testutils.NewFakeAPIServer()
	defer f.Close()
	c := newTestClient(t, f, "")

	players, err := c.LoadPlayers(context.Background(), testutils.TestMatch.Home.Name, testutils.TestMatch.Visitor.Name)
	require.NoError(t, err)
	require.Len(t, players, 5)

	byID := make(map[string]model.Player)
	for _, p := range players {
		byID[p.ID] = p
	}

	tests := []struct {
		id       string
		name     string
		kana     string
		number   model.JerseyNumber
		division string
		height   float64
	}{
		{id: "TK17", name: "佐藤健", kana: "さとうけん", number: model.Number(17), division: "D1", height: 188},
		{id: "TK07", name: "山田太郎", kana: "やまだたろう", number: model.Number(7), division: "D1", height: 180.5},
		{id: "OS07", name: "山田花子", kana: "やまだはなこ", number: model.Number(7), division: "d2", height: 165},
		{id: "OS70", name: "鈴木一郎", kana: "すずきいちろう", number: model.Number(70), division: "", height: 195},
		{id: "TK99", name: "田中太郎", kana: "たなかたろう", number: model.JerseyNumber{}, division: "D1", height: 0},
	}
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			p, found := byID[tc.id]
			require.True(t, found)
			assert.Equal(t, tc.name, p.Name)
			assert.Equal(t, tc.kana, p.KanaName)
			assert.Equal(t, tc.number, p.Number)
			assert.Equal(t, tc.division, p.Division)
			assert.Equal(t, tc.height, p.Height)
		})
	}
}

func TestLoadPlayers_unknownTeams(t *testing.T) {
	f := testutils.NewFakeAPIServer()
	defer f.Close()
	c := newTestClient(t, f, "")

	players, err := c.LoadPlayers(context.Background(), "札幌", "福岡")
	require.NoError(t, err)
	assert.NotNil(t, players)
	assert.Empty(t, players)
}

func TestLoadPlayers_httpError(t *testing.T) {
	f := testutils.NewFakeAPIServer()
	defer f.Close()
	f.SetFailing(true)
	c := newTestClient(t, f, "")

	players, err := c.LoadPlayers(context.Background(), testutils.TestMatch.Home.Name, testutils.TestMatch.Visitor.Name)
	assert.ErrorIs(t, err, ErrDataFetch)
	assert.Nil(t, players)
}

func TestLoadPlayersJSON_invalidJSON(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.Write([]byte(`[{"id": "TK01"`))
	}))
	defer s.Close()

	c, err := New(Endpoints{PlayersURL: s.URL, RankingURL: s.URL}, time.Second)
	require.NoError(t, err)

	b, err := c.LoadPlayersJSON(context.Background(), "東京", "大阪")
	assert.ErrorIs(t, err, ErrDataFetch)
	assert.Nil(t, b)
}

func TestLoadPlayers_connectionRefused(t *testing.T) {
	s := httptest.NewServer(http.NotFoundHandler())
	url := s.URL
	s.Close()

	c, err := New(Endpoints{PlayersURL: url, RankingURL: url}, time.Second)
	require.NoError(t, err)

	_, err = c.LoadPlayers(context.Background(), "東京", "大阪")
	assert.ErrorIs(t, err, ErrDataFetch)
}

func TestLoadPlayers_apiKey(t *testing.T) {
	f := testutils.NewFakeAPIServer()
	defer f.Close()
	f.RequireAPIKey("secret")

	_, err := newTestClient(t, f, "").LoadPlayers(context.Background(), "東京", "大阪")
	assert.ErrorIs(t, err, ErrDataFetch, "a request without the key should be rejected")

	players, err := newTestClient(t, f, "secret").LoadPlayers(context.Background(), "東京", "大阪")
	require.NoError(t, err)
	assert.Len(t, players, 5)
}

func TestLoadRanking(t *testing.T) {
	f := testutils.NewFakeAPIServer()
	defer f.Close()
	c := newTestClient(t, f, "")

	ranking, err := c.LoadRanking(context.Background(), testutils.TestMatch.Date)
	require.NoError(t, err)
	require.Len(t, ranking, 4)

	tests := []struct {
		id    string
		team  string
		votes model.VoteCount
	}{
		{id: "TK07", team: "東京", votes: 10},
		{id: "OS70", team: "大阪", votes: 10},
		{id: "TK17", team: "東京", votes: 5},
		{id: "OS07", team: "大阪", votes: 0},
	}
	for i, tc := range tests {
		assert.Equal(t, tc.id, ranking[i].ID)
		assert.Equal(t, tc.team, ranking[i].Team)
		assert.Equal(t, tc.votes, ranking[i].Votes)
	}
	assert.Equal(t, "yamada.png", ranking[0].Image)
}

func TestLoadRanking_errors(t *testing.T) {
	f := testutils.NewFakeAPIServer()
	defer f.Close()
	c := newTestClient(t, f, "")

	ranking, err := c.LoadRanking(context.Background(), testutils.BrokenDate)
	assert.ErrorIs(t, err, ErrDataFetch)
	assert.Nil(t, ranking)

	ranking, err = c.LoadRanking(context.Background(), "2020年1月1日")
	require.NoError(t, err)
	assert.NotNil(t, ranking)
	assert.Empty(t, ranking)

	f.SetFailing(true)
	_, err = c.LoadRanking(context.Background(), testutils.TestMatch.Date)
	assert.ErrorIs(t, err, ErrDataFetch)
}

func TestLoadRanking_canceled(t *testing.T) {
	f := testutils.NewFakeAPIServer()
	defer f.Close()
	c := newTestClient(t, f, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.LoadRanking(ctx, testutils.TestMatch.Date)
	assert.ErrorIs(t, err, ErrDataFetch)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestVote(t *testing.T) {
	f := testutils.NewFakeAPIServer()
	defer f.Close()
	c := newTestClient(t, f, "secret")

	p := &model.Player{ID: "TK07", Name: "山田太郎", Number: model.Number(7), Team: "東京"}
	vote := model.VoteFor(p, testutils.TestMatch.Date)
	vote.ID = "0b6f3a52-5d0e-4f0c-8f5e-4b1c2a7d9e10"
	require.NoError(t, c.Vote(context.Background(), vote))

	votes := f.Votes()
	require.Len(t, votes, 1)
	v := votes[0]
	assert.Equal(t, "TK07", v["player_id"])
	assert.Equal(t, "山田太郎", v["name"])
	assert.Equal(t, float64(7), v["number"])
	assert.Equal(t, "東京", v["team"])
	assert.Equal(t, testutils.TestMatch.Date, v["match_date"])
	assert.Equal(t, "secret", v["api_key"])
	assert.Equal(t, vote.ID, v["id"])
}

func TestVote_noURL(t *testing.T) {
	c, err := New(Endpoints{PlayersURL: "http://localhost/p", RankingURL: "http://localhost/r"}, time.Second)
	require.NoError(t, err)

	err = c.Vote(context.Background(), &model.Vote{})
	assert.ErrorIs(t, err, ErrDataFetch)
}

func TestDecodePlayers(t *testing.T) {
	players, err := DecodePlayers([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, players)

	_, err = DecodePlayers([]byte(`{}`))
	assert.ErrorIs(t, err, ErrDataFetch)
}
