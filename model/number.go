package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// JerseyNumber is a player's uniform number. Numbers are not unique within a
// roster. A number that was missing or not numeric in the source data is
// invalid; invalid numbers never match a number filter.
type JerseyNumber struct {
	Value int
	Valid bool
}

func Number(n int) JerseyNumber {
	return JerseyNumber{Value: n, Valid: true}
}

// String returns the decimal form of the number, or "" when invalid.
func (n JerseyNumber) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.Itoa(n.Value)
}

func (n JerseyNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(n.Value)), nil
}

// UnmarshalJSON accepts 7 and "7". Anything else decodes as an invalid number
// instead of failing the whole roster.
func (n *JerseyNumber) UnmarshalJSON(b []byte) error {
	*n = JerseyNumber{}
	v, ok := parseInt(gjson.ParseBytes(b))
	if ok {
		*n = Number(v)
	}
	return nil
}

// VoteCount is a non-negative number of votes. Missing, null, negative and
// non-numeric values count as zero.
type VoteCount int

func (c *VoteCount) UnmarshalJSON(b []byte) error {
	*c = 0
	v, ok := parseInt(gjson.ParseBytes(b))
	if ok && v > 0 {
		*c = VoteCount(v)
	}
	return nil
}

func (c VoteCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(c))
}

func parseInt(r gjson.Result) (int, bool) {
	switch r.Type {
	case gjson.Number:
		f := r.Float()
		if f != float64(int(f)) {
			return 0, false
		}
		return int(f), true
	case gjson.String:
		v, err := strconv.Atoi(strings.TrimSpace(r.String()))
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}
