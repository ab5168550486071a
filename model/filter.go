package model

import "strings"

// FilterCriteria is what the user typed into the search form. Empty fields
// are not applied.
type FilterCriteria struct {
	Query    string `json:"q,omitempty"`
	Division string `json:"division,omitempty"`
	Number   string `json:"number,omitempty"`
}

// IsEmpty is true when no criterion is set. An empty search shows no players.
func (c FilterCriteria) IsEmpty() bool {
	return strings.TrimSpace(c.Query) == "" && c.Division == "" && strings.TrimSpace(c.Number) == ""
}
