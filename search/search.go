// Package search filters a roster down to the players matching what the user
// typed into the search form.
package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/tonytani37/votes-for-players/model"
)

// NameField selects the second name searched alongside Player.Name.
type NameField int

const (
	NameKana NameField = iota
	NameEnglish
)

// NumberMatch selects how the number criterion is compared.
type NumberMatch int

const (
	// NumberExact matches when the decimal form of the jersey number equals
	// the criterion, so "7" matches 7 but not 17 or 70.
	NumberExact NumberMatch = iota
	// NumberContains matches when the criterion appears anywhere in the
	// decimal form, so "7" also matches 17 and 70.
	NumberContains
)

type Options struct {
	SecondaryName NameField
	NumberMatch   NumberMatch
}

// ParseOptions reads the NAME_VARIANT ("kana" or "en") and NUMBER_MATCH
// ("exact" or "contains") settings. Unknown values fall back to kana and exact.
func ParseOptions(nameVariant, numberMatch string) Options {
	var o Options
	switch strings.ToLower(strings.TrimSpace(nameVariant)) {
	case "en", "english":
		o.SecondaryName = NameEnglish
	}
	switch strings.ToLower(strings.TrimSpace(numberMatch)) {
	case "contains":
		o.NumberMatch = NumberContains
	}
	return o
}

type Filter struct {
	opts Options
}

func New(opts Options) *Filter {
	return &Filter{opts: opts}
}

var defaultFilter = New(Options{SecondaryName: NameKana, NumberMatch: NumberExact})

// FilterPlayers filters with the kana name as the secondary name and exact
// number matching.
func FilterPlayers(roster []model.Player, c model.FilterCriteria) []model.Player {
	return defaultFilter.Filter(roster, c)
}

// Filter returns the players matching every criterion that is set, sorted by
// jersey number. With no criteria set it returns no players at all; the
// search page shows nothing until the user asks for something. Players with
// equal numbers keep their roster order and players without a valid number
// come last. The roster is not modified.
func (f *Filter) Filter(roster []model.Player, c model.FilterCriteria) []model.Player {
	if c.IsEmpty() {
		return []model.Player{}
	}

	division := strings.ToLower(c.Division)
	number := strings.TrimSpace(c.Number)
	tokens := strings.Fields(strings.ToLower(c.Query))

	result := make([]model.Player, 0, len(roster))
	for i := range roster {
		p := &roster[i]
		if division != "" && strings.ToLower(p.Division) != division {
			continue
		}
		if number != "" && !f.matchNumber(p.Number, number) {
			continue
		}
		if len(tokens) > 0 && !matchTokens(f.haystack(p), tokens) {
			continue
		}
		result = append(result, *p)
	}

	slices.SortStableFunc(result, compareNumbers)
	return result
}

func (f *Filter) matchNumber(n model.JerseyNumber, want string) bool {
	if !n.Valid {
		return false
	}
	if f.opts.NumberMatch == NumberContains {
		return strings.Contains(n.String(), want)
	}
	return n.String() == want
}

func (f *Filter) haystack(p *model.Player) string {
	second := p.KanaName
	if f.opts.SecondaryName == NameEnglish {
		second = p.EnglishName
	}
	return strings.ToLower(p.Name + " " + second)
}

func matchTokens(hay string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(hay, t) {
			return false
		}
	}
	return true
}

func compareNumbers(a, b model.Player) int {
	switch {
	case a.Number.Valid && b.Number.Valid:
		return cmp.Compare(a.Number.Value, b.Number.Value)
	case a.Number.Valid:
		return -1
	case b.Number.Valid:
		return 1
	default:
		return 0
	}
}
