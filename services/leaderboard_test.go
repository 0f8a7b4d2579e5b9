// File: /services/leaderboard_test.go
package services

import (
	"testing"

	"campushub-api/models"
	"github.com/stretchr/testify/assert"
)

func TestRankProfiles_OrdersByPointsDescending(t *testing.T) {
	users := []models.User{
		{ID: "user-a", Name: "A", Points: 10},
		{ID: "user-b", Name: "B", Points: 30},
		{ID: "user-c", Name: "C", Points: 20},
	}

	entries := RankProfiles(users)

	assert.Equal(t, []string{"user-b", "user-c", "user-a"}, entryIDs(entries))
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestRankProfiles_TiesBreakOnUserID(t *testing.T) {
	users := []models.User{
		{ID: "user-z", Points: 15},
		{ID: "user-a", Points: 15},
		{ID: "user-m", Points: 15},
	}

	// Same input in any order produces the same ranking
	entries := RankProfiles(users)
	assert.Equal(t, []string{"user-a", "user-m", "user-z"}, entryIDs(entries))

	reversed := []models.User{users[2], users[0], users[1]}
	assert.Equal(t, entryIDs(entries), entryIDs(RankProfiles(reversed)))
}

func TestRankProfiles_NilBadgesBecomeEmptySlice(t *testing.T) {
	entries := RankProfiles([]models.User{{ID: "user-a", Points: 5, Badges: nil}})

	assert.NotNil(t, entries[0].Badges)
	assert.Empty(t, entries[0].Badges)
}

func TestRankProfiles_EmptyInput(t *testing.T) {
	entries := RankProfiles(nil)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func entryIDs(entries []models.LeaderboardEntry) []string {
	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.UserID
	}
	return ids
}
