package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mauv0809/golf-match-manager/internal/golf"
	"github.com/mauv0809/golf-match-manager/internal/manager"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(remindCmd)

	leaderboardCmd.Flags().String("sort", "points", "Sort key: points, handicap or matches_played")
	leaderboardCmd.Flags().String("order", "desc", "Sort order: asc or desc")

	matchesCmd.Flags().String("status", "", "Only show matches with this status (Upcoming, Completed)")
	matchesCmd.Flags().String("player", "", "Only show matches this player takes part in")

	loginCmd.Flags().String("password", "", "Account password")

	scheduleCmd.Flags().String("opponent", "", "Opponent name")
	scheduleCmd.Flags().String("date", "", "Tee time in RFC 3339 format, e.g. 2025-06-14T10:00:00Z")
	scheduleCmd.Flags().String("location", "", "Course name")
	scheduleCmd.Flags().String("format", string(golf.FormatStrokePlay), "Match format")
	scheduleCmd.Flags().Int("par", golf.DefaultCoursePar, "Course par")
	scheduleCmd.Flags().Float64("handicap", -1, "Match handicap (defaults to your own)")
	scheduleCmd.Flags().String("notes", "", "Notes for the match")
	scheduleCmd.Flags().Bool("team", false, "Schedule on behalf of your team")

	scoreCmd.Flags().IntSlice("scores", nil, "Both scores in player order, e.g. --scores 72,75")
	scoreCmd.Flags().String("weather", string(golf.WeatherSunny), "Weather during the round")
	scoreCmd.Flags().String("course", string(golf.ConditionGood), "Course condition")
	scoreCmd.Flags().String("duration", string(golf.Duration3To4), "Round duration bucket")
	scoreCmd.Flags().String("notes", "", "Notes for the round")

	for _, c := range []*cobra.Command{scheduleCmd, scoreCmd, remindCmd} {
		c.Flags().Bool("dry-run", false, "Run without posting to Slack or publishing events")
	}
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show the club's activity counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/activity", nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		sort, _ := cmd.Flags().GetString("sort")
		order, _ := cmd.Flags().GetString("order")
		q := url.Values{"sort": {sort}, "order": {order}}
		return performRequest(http.MethodGet, "/leaderboard?"+q.Encode(), nil)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show win/tie/loss standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/standings", nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if status, _ := cmd.Flags().GetString("status"); status != "" {
			q.Set("status", status)
		}
		if player, _ := cmd.Flags().GetString("player"); player != "" {
			q.Set("player", player)
		}
		return performRequest(http.MethodGet, "/matches?"+q.Encode(), nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats [player]",
	Short: "Show a player's statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/players/"+url.PathEscape(args[0])+"/stats", nil)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Log in and print a session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		return performRequest(http.MethodPost, "/login", map[string]string{"email": args[0], "password": password})
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule a match against another player",
	RunE: func(cmd *cobra.Command, args []string) error {
		opponent, _ := cmd.Flags().GetString("opponent")
		dateStr, _ := cmd.Flags().GetString("date")
		location, _ := cmd.Flags().GetString("location")
		format, _ := cmd.Flags().GetString("format")
		par, _ := cmd.Flags().GetInt("par")
		handicap, _ := cmd.Flags().GetFloat64("handicap")
		notes, _ := cmd.Flags().GetString("notes")
		team, _ := cmd.Flags().GetBool("team")

		date, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		req := manager.ScheduleMatchRequest{
			Opponent:  opponent,
			Date:      date,
			Location:  location,
			Format:    golf.MatchFormat(format),
			Notes:     notes,
			CoursePar: par,
			AsTeam:    team,
		}
		if handicap >= 0 {
			req.Handicap = &handicap
		}
		return performRequest(http.MethodPost, "/matches"+dryRunQuery(cmd), req)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score [match-id]",
	Short: "Submit the final scores for a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scores, _ := cmd.Flags().GetIntSlice("scores")
		if len(scores) != 2 {
			return fmt.Errorf("--scores needs exactly two values, got %d", len(scores))
		}
		weather, _ := cmd.Flags().GetString("weather")
		course, _ := cmd.Flags().GetString("course")
		duration, _ := cmd.Flags().GetString("duration")
		notes, _ := cmd.Flags().GetString("notes")

		sub := golf.ScoreSubmission{
			Scores: [2]int{scores[0], scores[1]},
			Notes:  notes,
			Conditions: golf.Conditions{
				Weather:         golf.Weather(weather),
				CourseCondition: golf.CourseCondition(course),
				Duration:        golf.DurationBucket(duration),
			},
		}
		return performRequest(http.MethodPost, "/matches/"+url.PathEscape(args[0])+"/scores"+dryRunQuery(cmd), sub)
	},
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Trigger a reminder run for upcoming matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/reminders/run"+dryRunQuery(cmd), nil)
	},
}

func dryRunQuery(cmd *cobra.Command) string {
	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		return "?dry_run=true"
	}
	return ""
}

func performRequest(method, endpoint string, body any) error {
	target := host + endpoint
	fmt.Printf("Making request to %s\n", target)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
