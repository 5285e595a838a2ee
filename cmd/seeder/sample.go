package main

import (
	"time"

	"github.com/mauv0809/golf-match-manager/internal/club"
	"github.com/mauv0809/golf-match-manager/internal/golf"
)

// sampleClub is the demo club: two accounts on opposing teams, a five-player
// roster and three team matches around now.
func sampleClub(now time.Time) *club.Snapshot {
	day := 24 * time.Hour
	played := now.Add(-5 * day)
	return &club.Snapshot{
		Users: map[string]club.UserRecord{
			"craig@portfreyly.co": {
				Name:     "Craig Roberts",
				Phone:    "440-0034-5078",
				Country:  "England",
				Handicap: 16.5,
				Team:     "Team 1",
				Password: "password",
			},
			"alex@example.com": {
				Name:     "Alex Johnson",
				Phone:    "440-1234-5678",
				Country:  "USA",
				Handicap: 12.3,
				Team:     "Team 2",
				Password: "password",
			},
		},
		Leaderboard: []golf.LeaderboardEntry{
			{Name: "Mayank Rai", Handicap: 16.5, Points: 120, MatchesPlayed: 8},
			{Name: "Omkar Pol", Handicap: 12.3, Points: 115, MatchesPlayed: 7},
			{Name: "Nitesh Devadiga", Handicap: 18.2, Points: 110, MatchesPlayed: 6},
			{Name: "Dinesh Rambade", Handicap: 14.7, Points: 105, MatchesPlayed: 5},
			{Name: "Mayank Saxena", Handicap: 15.8, Points: 95, MatchesPlayed: 5},
		},
		Matches: []*golf.Match{
			{
				ID:          1,
				Date:        now.Add(2 * day),
				Players:     [2]string{"Team 1", "Team 2"},
				Status:      golf.StatusUpcoming,
				Location:    "Pebble Beach Golf Links",
				CoursePar:   72,
				Handicap:    16.6,
				Format:      golf.FormatStrokePlay,
				CreatedBy:   "craig@portfreyly.co",
				CreatedDate: now,
			},
			{
				ID:            2,
				Date:          played,
				Players:       [2]string{"Team 3", "Team 4"},
				Status:        golf.StatusCompleted,
				Location:      "St. Andrews Links",
				CoursePar:     72,
				Handicap:      12.3,
				Format:        golf.FormatStrokePlay,
				CreatedDate:   played.Add(-7 * day),
				Scores:        []int{72, 75},
				CompletedDate: &played,
				Conditions: golf.Conditions{
					Weather:         golf.WeatherSunny,
					CourseCondition: golf.ConditionExcellent,
				},
			},
			{
				ID:          3,
				Date:        now.Add(7 * day),
				Players:     [2]string{"Team 1", "Team 5"},
				Status:      golf.StatusUpcoming,
				Location:    "Augusta National",
				CoursePar:   72,
				Handicap:    14.2,
				Format:      golf.FormatStrokePlay,
				CreatedBy:   "craig@portfreyly.co",
				CreatedDate: now,
			},
		},
	}
}
