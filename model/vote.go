package model

import (
	"time"
)

type Vote struct {
	ID        string       `json:"id,omitempty"`
	PlayerID  string       `json:"player_id"`
	Name      string       `json:"name"`
	Number    JerseyNumber `json:"number"`
	Team      string       `json:"team"`
	MatchDate string       `json:"match_date"`
	Created   time.Time    `json:"-"`
}

func VoteFor(p *Player, matchDate string) *Vote {
	return &Vote{
		PlayerID:  p.ID,
		Name:      p.Name,
		Number:    p.Number,
		Team:      p.Team,
		MatchDate: matchDate,
	}
}
