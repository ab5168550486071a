package model

// RankingEntry is one player's vote total for a match. The ranking API sends
// these sorted by votes, highest first. Player detail fields may ride along
// so a ranking row can open the player page without another fetch.
type RankingEntry struct {
	Player
	Votes VoteCount `json:"votes"`
}

// RankedEntry pairs an entry with its dense rank in the list it was ranked in.
type RankedEntry struct {
	Rank  int          `json:"rank"`
	Entry RankingEntry `json:"entry"`
}
