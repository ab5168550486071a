package model

import (
	"strings"
)

type TeamSelector string

const (
	SelectAll     TeamSelector = "all"
	SelectHome    TeamSelector = "home"
	SelectVisitor TeamSelector = "visitor"
)

// ParseTeamSelector maps "home" and "visitor" (any case) to their selectors.
// Everything else selects all teams.
func ParseTeamSelector(s string) TeamSelector {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home":
		return SelectHome
	case "visitor", "away":
		return SelectVisitor
	default:
		return SelectAll
	}
}

type MatchTeam struct {
	Name  string `json:"team_name"`
	Code  string `json:"team_cd"`
	Score string `json:"score"`
}

// MatchEvent is one fixture: the home and visitor teams meeting at an arena
// on a date. The date string is also the key the ranking API is queried with.
type MatchEvent struct {
	Date    string    `json:"match_date"`
	Arena   string    `json:"arena"`
	Home    MatchTeam `json:"home"`
	Visitor MatchTeam `json:"visitor"`
}

// TeamName resolves a selector to the team name used in ranking and roster
// data. SelectAll resolves to "".
func (m *MatchEvent) TeamName(sel TeamSelector) string {
	switch sel {
	case SelectHome:
		return m.Home.Name
	case SelectVisitor:
		return m.Visitor.Name
	default:
		return ""
	}
}

// Side returns "H" for the home team, "A" for the visitor and "" otherwise.
func (m *MatchEvent) Side(team string) string {
	if team == "" {
		return ""
	}
	switch team {
	case m.Home.Name:
		return "H"
	case m.Visitor.Name:
		return "A"
	default:
		return ""
	}
}

// IsVisitor reports whether team is the visiting side, which the ranking
// page shades differently.
func (m *MatchEvent) IsVisitor(team string) bool {
	return team != "" && team == m.Visitor.Name
}
