package model

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Player is a single roster entry as returned by the roster API. The roster is
// replaced as a whole on every fetch, so a Player is never modified after decoding.
type Player struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	KanaName    string       `json:"kana_name,omitempty"`
	EnglishName string       `json:"name_en,omitempty"`
	Number      JerseyNumber `json:"number"`
	Team        string       `json:"team"`
	Division    string       `json:"division,omitempty"`
	Position    string       `json:"position,omitempty"`
	Height      float64      `json:"height,omitempty"`
	Weight      float64      `json:"weight,omitempty"`
	BirthDate   string       `json:"grade,omitempty"`
	Captain     string       `json:"captain,omitempty"`
	Image       string       `json:"imgTemp,omitempty"`
	Hometown    string       `json:"highSchoolClubActivities,omitempty"`
	AlmaMater   string       `json:"almaMater,omitempty"`
}

// TeamCode is the two character team code every player ID starts with.
func (p *Player) TeamCode() string {
	if len(p.ID) < 2 {
		return p.ID
	}
	return p.ID[:2]
}

var birthDateRegex = regexp.MustCompile(`^\s*(?P<year>\d{4})年(?P<month>\d{1,2})月(?P<day>\d{1,2})日\s*$`)

// ParseJapaneseDate parses dates written like "2001年4月9日" or "2025年10月04日".
func ParseJapaneseDate(s string) (time.Time, error) {
	m := birthDateRegex.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("not a valid date: '%s'", s)
	}
	y, _ := strconv.Atoi(m[birthDateRegex.SubexpIndex("year")])
	mo, _ := strconv.Atoi(m[birthDateRegex.SubexpIndex("month")])
	d, _ := strconv.Atoi(m[birthDateRegex.SubexpIndex("day")])
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("not a valid date: '%s'", s)
	}
	return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC), nil
}

// Age returns the player's age in whole years at now, or -1 when the birth
// date is missing or cannot be parsed.
func (p *Player) Age(now time.Time) int {
	b, err := ParseJapaneseDate(p.BirthDate)
	if err != nil {
		return -1
	}
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return age
}
