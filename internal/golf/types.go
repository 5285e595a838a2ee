package golf

import "time"

// MatchStatus is the lifecycle state of a match. The only transition is
// StatusUpcoming -> StatusCompleted.
type MatchStatus string

const (
	StatusUpcoming  MatchStatus = "Upcoming"
	StatusCompleted MatchStatus = "Completed"
)

type MatchFormat string

const (
	FormatStrokePlay MatchFormat = "Stroke Play"
	FormatMatchPlay  MatchFormat = "Match Play"
	FormatStableford MatchFormat = "Stableford"
	FormatScramble   MatchFormat = "Scramble"
)

var MatchFormats = []MatchFormat{FormatStrokePlay, FormatMatchPlay, FormatStableford, FormatScramble}

type Weather string

const (
	WeatherSunny        Weather = "Sunny"
	WeatherPartlyCloudy Weather = "Partly Cloudy"
	WeatherCloudy       Weather = "Cloudy"
	WeatherRainy        Weather = "Rainy"
	WeatherWindy        Weather = "Windy"
	WeatherStormy       Weather = "Stormy"
)

var WeatherOptions = []Weather{WeatherSunny, WeatherPartlyCloudy, WeatherCloudy, WeatherRainy, WeatherWindy, WeatherStormy}

type CourseCondition string

const (
	ConditionExcellent CourseCondition = "Excellent"
	ConditionGood      CourseCondition = "Good"
	ConditionFair      CourseCondition = "Fair"
	ConditionPoor      CourseCondition = "Poor"
	ConditionWet       CourseCondition = "Wet"
)

var CourseConditions = []CourseCondition{ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionWet}

type DurationBucket string

const (
	DurationUnder3 DurationBucket = "< 3 hours"
	Duration3To4   DurationBucket = "3-4 hours"
	Duration4To5   DurationBucket = "4-5 hours"
	DurationOver5  DurationBucket = "> 5 hours"
)

var DurationBuckets = []DurationBucket{DurationUnder3, Duration3To4, Duration4To5, DurationOver5}

const (
	DefaultCoursePar = 72
	MinScore         = 50
	MaxScore         = 150
	MinHandicap      = 0.0
	MaxHandicap      = 36.0
	MaxPercentage    = 100.0
	MaxPutts         = 100
	DefaultTeam      = "Unassigned"
)

// User is a registered club member, keyed by email.
type User struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Country  string  `json:"country"`
	Handicap float64 `json:"handicap"`
	Password string  `json:"-"`
	Team     string  `json:"team,omitempty"`
}

// LeaderboardEntry is a player's cumulative ranking record. Points only ever
// grow through score submissions.
type LeaderboardEntry struct {
	Name          string  `json:"name"`
	Handicap      float64 `json:"handicap"`
	Points        int     `json:"points"`
	MatchesPlayed int     `json:"matches_played"`
}

// Conditions describes how a completed round was played.
type Conditions struct {
	Weather         Weather         `json:"weather,omitempty"`
	CourseCondition CourseCondition `json:"course_condition,omitempty"`
	Duration        DurationBucket  `json:"duration,omitempty"`
}

// PlayerPerformance holds the optional per-participant stats captured with a score.
type PlayerPerformance struct {
	FairwaysHit        float64 `json:"fairways_hit"`
	GreensInRegulation float64 `json:"greens_in_regulation"`
	TotalPutts         int     `json:"total_putts"`
}

// Match is a two-participant game. Players and Scores are positionally aligned.
type Match struct {
	ID          int         `json:"id"`
	Date        time.Time   `json:"date"`
	Players     [2]string   `json:"players"`
	Status      MatchStatus `json:"status"`
	Location    string      `json:"location"`
	CoursePar   int         `json:"course_par"`
	Handicap    float64     `json:"handicap"`
	Format      MatchFormat `json:"format"`
	Notes       string      `json:"notes,omitempty"`
	CreatedBy   string      `json:"created_by"`
	CreatedDate time.Time   `json:"created_date"`

	Scores        []int                        `json:"scores,omitempty"`
	PlayerStats   map[string]PlayerPerformance `json:"player_stats,omitempty"`
	CompletedDate *time.Time                   `json:"completed_date,omitempty"`
	Conditions
}

// ScheduleRequest carries everything needed to put a new match on the calendar.
type ScheduleRequest struct {
	Creator   string
	Opponent  string
	Date      time.Time
	Location  string
	Handicap  float64
	Format    MatchFormat
	Notes     string
	CoursePar int
	CreatedBy string
}

// ScoreSubmission is the final result of a round, aligned with Match.Players.
type ScoreSubmission struct {
	Scores      [2]int                       `json:"scores"`
	PlayerStats map[string]PlayerPerformance `json:"player_stats,omitempty"`
	Notes       string                       `json:"notes,omitempty"`
	Conditions
}
