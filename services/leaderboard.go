// File: /services/leaderboard.go
package services

import (
	"sort"

	"campushub-api/models"
)

// RankProfiles orders user profiles for the leaderboard: points descending,
// ties broken by user id ascending so ranks stay stable across reloads.
func RankProfiles(users []models.User) []models.LeaderboardEntry {
	ranked := make([]models.User, len(users))
	copy(ranked, users)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].ID < ranked[j].ID
	})

	entries := make([]models.LeaderboardEntry, len(ranked))
	for i, user := range ranked {
		badges := user.Badges
		if badges == nil {
			badges = models.StringSlice{}
		}
		entries[i] = models.LeaderboardEntry{
			Rank:           i + 1,
			UserID:         user.ID,
			Name:           user.Name,
			Handle:         user.Handle,
			Avatar:         user.Avatar,
			Points:         user.Points,
			EventsAttended: user.EventsAttended,
			Badges:         badges,
		}
	}
	return entries
}
