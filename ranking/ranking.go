// Package ranking turns vote totals into the ranked list shown on the ranking
// page.
package ranking

import (
	"slices"

	"github.com/tonytani37/votes-for-players/model"
)

// ComputeRanks assigns ranks in input order. An entry whose vote count differs
// from the previous entry's opens a new rank equal to its 1-based position;
// an entry with the same count shares the previous rank. Votes of 10, 10, 5
// rank as 1, 1, 3.
//
// The input is expected to be sorted by votes, highest first. It is not
// re-sorted here, so unsorted input produces ranks that follow input order.
func ComputeRanks(entries []model.RankingEntry) []model.RankedEntry {
	result := make([]model.RankedEntry, 0, len(entries))

	currentRank := 0
	prevVotes := model.VoteCount(-1) // sentinel, counts are never negative
	for i, e := range entries {
		if e.Votes != prevVotes {
			currentRank = i + 1
		}
		result = append(result, model.RankedEntry{Rank: currentRank, Entry: e})
		prevVotes = e.Votes
	}

	return result
}

// FilterRanking keeps the entries for the team the selector resolves to in
// match. SelectAll returns a copy of every entry; home or visitor without a
// match returns nothing. Relative order is preserved
// so ranks computed on the result are per-team ranks.
func FilterRanking(entries []model.RankingEntry, sel model.TeamSelector, match *model.MatchEvent) []model.RankingEntry {
	if sel == model.SelectAll || sel == "" {
		if entries == nil {
			return []model.RankingEntry{}
		}
		return slices.Clone(entries)
	}

	result := make([]model.RankingEntry, 0, len(entries))
	if match == nil {
		return result
	}
	team := match.TeamName(sel)
	for _, e := range entries {
		if e.Team == team {
			result = append(result, e)
		}
	}
	return result
}
