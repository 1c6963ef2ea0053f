package service

import (
	"bytes"
	"sort"

	"trackzen.io/backend/internal/modules/leaderboard/dto"
)

// rankEntries orders entries by total score, highest first, breaking ties by
// user ID, and numbers them 1..N.
func rankEntries(entries []dto.LeaderboardEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		return bytes.Compare(entries[i].UserID[:], entries[j].UserID[:]) < 0
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
}
