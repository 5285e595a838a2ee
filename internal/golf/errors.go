package golf

import "errors"

var (
	ErrSelfMatch           = errors.New("a player cannot schedule a match against themselves")
	ErrInvalidParticipants = errors.New("a match needs exactly two named participants")
	ErrInvalidHandicap     = errors.New("handicap must be between 0 and 36")
	ErrInvalidFormat       = errors.New("unknown match format")
	ErrInvalidLocation     = errors.New("a match needs a location")
	ErrInvalidCoursePar    = errors.New("course par must be positive")
	ErrInvalidScore        = errors.New("score must be between 50 and 150")
	ErrInvalidConditions   = errors.New("unknown match conditions")
	ErrInvalidStats        = errors.New("invalid player stats")
	ErrMatchCompleted      = errors.New("match is already completed")
	ErrInvalidStatus       = errors.New("match is not in a scorable state")
)
