package testutils

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/tonytani37/votes-for-players/model"
)

//go:embed apidata
var apidata embed.FS

// FakeAPIServer stands in for the remote roster, ranking and vote API.
type FakeAPIServer struct {
	s *httptest.Server

	mu       sync.Mutex
	votes    []map[string]any
	requests map[string]int
	apiKey   string
	failing  bool
}

func NewFakeAPIServer() *FakeAPIServer {
	f := &FakeAPIServer{requests: make(map[string]int)}

	r := chi.NewRouter()
	r.Use(f.countRequests)
	r.Get("/players", f.playersHandler)
	r.Get("/ranking", f.rankingHandler)
	r.Post("/vote", f.voteHandler)

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeAPIServer) Close() {
	f.s.Close()
}

func (f *FakeAPIServer) URL() string {
	return f.s.URL
}

// RequireAPIKey makes every request without "Authorization: Bearer <key>" fail with 401.
func (f *FakeAPIServer) RequireAPIKey(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apiKey = key
}

// SetFailing makes every request fail with a 500 until called with false.
func (f *FakeAPIServer) SetFailing(failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = failing
}

// Votes returns the decoded bodies of every vote received.
func (f *FakeAPIServer) Votes() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.votes...)
}

// Requests returns how many requests were made to path.
func (f *FakeAPIServer) Requests(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}

func (f *FakeAPIServer) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests[r.URL.Path]++
		key, failing := f.apiKey, f.failing
		f.mu.Unlock()

		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if key != "" && r.Header.Get("Authorization") != "Bearer "+key {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPIServer) playersHandler(w http.ResponseWriter, r *http.Request) {
	home := r.URL.Query().Get("home")
	visitor := r.URL.Query().Get("visitor")

	if home == TestMatch.Home.Name && visitor == TestMatch.Visitor.Name {
		serveFile(w, "players.json")
	} else {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
	}
}

func (f *FakeAPIServer) rankingHandler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("match_date") {
	case TestMatch.Date:
		serveFile(w, "ranking.json")
	case BrokenDate:
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"not": "a list"`))
	default:
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
	}
}

func (f *FakeAPIServer) voteHandler(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.votes = append(f.votes, body)
	f.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"message": "Item added successfully!"}`))
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := apidata.ReadFile(fmt.Sprintf("apidata/%s", name))
	if err != nil {
		log.Printf("error reading apidata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// EventConfigJSON returns an event config pointing at the fake server.
func (f *FakeAPIServer) EventConfigJSON() string {
	return strings.NewReplacer("{{URL}}", f.URL()).Replace(eventConfigTemplate)
}

const BrokenDate = "2025年9月7日"

var TestMatch = model.MatchEvent{
	Date:    "2025年10月26日",
	Arena:   "中央アリーナ",
	Home:    model.MatchTeam{Name: "東京", Code: "TK", Score: "3"},
	Visitor: model.MatchTeam{Name: "大阪", Code: "OS", Score: "1"},
}

const eventConfigTemplate = `{
	"API_URL": "{{URL}}/players",
	"VOTE_URL": "{{URL}}/vote",
	"API_KEY": "",
	"RANKING_API_URL": "{{URL}}/ranking",
	"GAME_DATA": [
		{"match_date": "2025年9月7日", "arena": "市民体育館",
		 "home": {"team_name": "名古屋", "team_cd": "NG"},
		 "visitor": {"team_name": "東京", "team_cd": "TK"}},
		{"match_date": "2025年10月26日", "arena": "中央アリーナ",
		 "home": {"team_name": "東京", "team_cd": "TK", "score": "3"},
		 "visitor": {"team_name": "大阪", "team_cd": "OS", "score": "1"}},
		{"match_date": "2025年10月04日", "arena": "第一体育館",
		 "home": {"team_name": "大阪", "team_cd": "OS"},
		 "visitor": {"team_name": "名古屋", "team_cd": "NG"}}
	]
}`
