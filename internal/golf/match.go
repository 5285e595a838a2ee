package golf

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// ValidateHandicap checks that a handicap lies within the playable range.
func ValidateHandicap(handicap float64) error {
	if math.IsNaN(handicap) || handicap < MinHandicap || handicap > MaxHandicap {
		return fmt.Errorf("%w: got %v", ErrInvalidHandicap, handicap)
	}
	return nil
}

func (f MatchFormat) Valid() bool {
	return slices.Contains(MatchFormats, f)
}

// Validate checks the request and fills in defaults for an empty format and par.
func (r *ScheduleRequest) Validate() error {
	r.Creator = strings.TrimSpace(r.Creator)
	r.Opponent = strings.TrimSpace(r.Opponent)
	if r.Creator == "" || r.Opponent == "" {
		return ErrInvalidParticipants
	}
	if r.Creator == r.Opponent {
		return ErrSelfMatch
	}
	if strings.TrimSpace(r.Location) == "" {
		return ErrInvalidLocation
	}
	if err := ValidateHandicap(r.Handicap); err != nil {
		return err
	}
	if r.Format == "" {
		r.Format = FormatStrokePlay
	}
	if !r.Format.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, r.Format)
	}
	if r.CoursePar == 0 {
		r.CoursePar = DefaultCoursePar
	}
	if r.CoursePar < 0 {
		return ErrInvalidCoursePar
	}
	return nil
}

// NewMatch builds an Upcoming match from a validated request. The id is left at
// zero; the record store assigns it when the match is persisted.
func NewMatch(req ScheduleRequest, createdAt time.Time) (*Match, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &Match{
		Date:        req.Date,
		Players:     [2]string{req.Creator, req.Opponent},
		Status:      StatusUpcoming,
		Location:    strings.TrimSpace(req.Location),
		CoursePar:   req.CoursePar,
		Handicap:    req.Handicap,
		Format:      req.Format,
		Notes:       req.Notes,
		CreatedBy:   req.CreatedBy,
		CreatedDate: createdAt,
	}, nil
}

// NextMatchID returns max(ids)+1, or 1 when there are none.
func NextMatchID(ids ...int) int {
	if len(ids) == 0 {
		return 1
	}
	return slices.Max(ids) + 1
}

// Par returns the course par, falling back to DefaultCoursePar.
func (m *Match) Par() int {
	if m.CoursePar <= 0 {
		return DefaultCoursePar
	}
	return m.CoursePar
}

func (m *Match) IsCompleted() bool {
	return m.Status == StatusCompleted
}

// HasParticipant reports whether identity is one of the two participants.
func (m *Match) HasParticipant(identity string) bool {
	return m.indexOf(identity) >= 0
}

func (m *Match) indexOf(identity string) int {
	for i, p := range m.Players {
		if p == identity {
			return i
		}
	}
	return -1
}

// ScoreFor returns the recorded score of a participant.
func (m *Match) ScoreFor(identity string) (int, bool) {
	i := m.indexOf(identity)
	if i < 0 || len(m.Scores) != 2 {
		return 0, false
	}
	return m.Scores[i], true
}

// OpponentOf returns the other participant.
func (m *Match) OpponentOf(identity string) (string, bool) {
	i := m.indexOf(identity)
	if i < 0 {
		return "", false
	}
	return m.Players[1-i], true
}

// Winner returns the participant with the lowest score. Equal scores are a tie
// and report no winner.
func (m *Match) Winner() (string, bool) {
	if len(m.Scores) != 2 || m.Scores[0] == m.Scores[1] {
		return "", false
	}
	if m.Scores[0] < m.Scores[1] {
		return m.Players[0], true
	}
	return m.Players[1], true
}

// IsTie reports whether a completed match ended level.
func (m *Match) IsTie() bool {
	return len(m.Scores) == 2 && m.Scores[0] == m.Scores[1]
}

// ToPar returns score relative to the course par.
func (m *Match) ToPar(score int) int {
	return score - m.Par()
}

// FormatToPar renders a score relative to par the way golfers read it: "E", "+3", "-2".
func FormatToPar(diff int) string {
	if diff == 0 {
		return "E"
	}
	return fmt.Sprintf("%+d", diff)
}
