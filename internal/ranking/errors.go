package ranking

import "errors"

var (
	ErrInvalidSortKey = errors.New("leaderboard can be sorted by points, handicap or matches_played")
	ErrInvalidOrder   = errors.New("sort order must be asc or desc")
)
