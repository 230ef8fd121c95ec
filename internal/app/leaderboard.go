package app

import (
	"sort"

	"github.com/elianna-2004/kahoot/internal/domain"
)

// buildLeaderboard derives the descending-score ranking from player state.
// Ties break on join order so repeated calls over unchanged input always
// produce the same sequence. The input is never mutated.
func buildLeaderboard(players map[string]*sessionPlayer) []domain.LeaderboardEntry {
	ordered := make([]*sessionPlayer, 0, len(players))
	for _, p := range players {
		ordered = append(ordered, p)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].score != ordered[j].score {
			return ordered[i].score > ordered[j].score
		}
		return ordered[i].joinOrder < ordered[j].joinOrder
	})

	entries := make([]domain.LeaderboardEntry, 0, len(ordered))
	for _, p := range ordered {
		entries = append(entries, domain.LeaderboardEntry{
			ID:    p.id,
			Name:  p.name,
			Score: p.score,
		})
	}
	return entries
}
