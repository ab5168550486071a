package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tonytani37/votes-for-players/model"
)

var ErrConfigLoad = errors.New("config load failure")

// EventConfig is the event configuration file: where the roster, ranking and
// vote APIs live and the list of matches that can be selected.
type EventConfig struct {
	PlayersURL string             `json:"API_URL"`
	VoteURL    string             `json:"VOTE_URL"`
	APIKey     string             `json:"API_KEY"`
	RankingURL string             `json:"RANKING_API_URL"`
	Matches    []model.MatchEvent `json:"GAME_DATA"`
}

func Load(path string) (*EventConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (*EventConfig, error) {
	var c EventConfig
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: error parsing event config: %w", ErrConfigLoad, err)
	}
	return &c, nil
}

// SortedMatches returns the matches newest first. Dates that cannot be parsed
// sort after all the others and keep their file order.
func (c *EventConfig) SortedMatches() []model.MatchEvent {
	type dated struct {
		m model.MatchEvent
		t time.Time
		ok bool
	}
	all := make([]dated, 0, len(c.Matches))
	for _, m := range c.Matches {
		t, err := model.ParseJapaneseDate(m.Date)
		all = append(all, dated{m: m, t: t, ok: err == nil})
	}

	slices.SortStableFunc(all, func(a, b dated) int {
		switch {
		case a.ok && b.ok:
			return b.t.Compare(a.t)
		case a.ok:
			return -1
		case b.ok:
			return 1
		default:
			return 0
		}
	})

	result := make([]model.MatchEvent, 0, len(all))
	for _, d := range all {
		result = append(result, d.m)
	}
	return result
}

// Dates lists the match dates newest first.
func (c *EventConfig) Dates() []string {
	matches := c.SortedMatches()
	dates := make([]string, 0, len(matches))
	for _, m := range matches {
		dates = append(dates, m.Date)
	}
	return dates
}

// Latest is the initially selected match. It is nil when there are no matches.
func (c *EventConfig) Latest() *model.MatchEvent {
	matches := c.SortedMatches()
	if len(matches) == 0 {
		return nil
	}
	return &matches[0]
}

func (c *EventConfig) Event(date string) (*model.MatchEvent, bool) {
	for i := range c.Matches {
		if c.Matches[i].Date == date {
			m := c.Matches[i]
			return &m, true
		}
	}
	return nil, false
}

// Settings are the process level options read from the environment.
type Settings struct {
	Port           int
	EventConfig    string
	PostgresConn   string
	RedisURL       string
	CacheTTL       time.Duration
	CacheSize      int
	HTTPTimeout    time.Duration
	NameVariant    string
	NumberMatch    string
	CORSOrigins    []string
	ImageURLPrefix string
	StaticDir      string
}

func LoadSettings() (*Settings, error) {
	s := &Settings{
		EventConfig:    getEnv("EVENT_CONFIG", "statics/json/config.json"),
		PostgresConn:   getEnv("POSTGRES_CONN_STR", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		NameVariant:    strings.ToLower(getEnv("NAME_VARIANT", "kana")),
		NumberMatch:    strings.ToLower(getEnv("NUMBER_MATCH", "exact")),
		ImageURLPrefix: getEnv("IMAGE_URL_PREFIX", "/statics/img/players"),
		StaticDir:      getEnv("STATIC_DIR", "statics"),
	}

	var err error
	if s.Port, err = strconv.Atoi(getEnv("PORT", "3000")); err != nil {
		return nil, fmt.Errorf("error parsing port number: %w", err)
	}
	if s.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "0s")); err != nil {
		return nil, fmt.Errorf("error parsing CACHE_TTL: %w", err)
	}
	if s.CacheSize, err = strconv.Atoi(getEnv("CACHE_SIZE", "1024")); err != nil {
		return nil, fmt.Errorf("error parsing CACHE_SIZE: %w", err)
	}
	if s.HTTPTimeout, err = time.ParseDuration(getEnv("HTTP_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("error parsing HTTP_TIMEOUT: %w", err)
	}

	for _, o := range strings.Split(getEnv("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			s.CORSOrigins = append(s.CORSOrigins, o)
		}
	}

	return s, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
