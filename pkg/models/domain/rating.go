package domain

import "strings"

// Rating is the ordinal performance class assigned to a KPI value after
// comparing it against benchmark thresholds. Order matters: Critical is the
// worst outcome, Excellent the best.
type Rating int

const (
	RatingCritical Rating = iota
	RatingPoor
	RatingAverage
	RatingGood
	RatingExcellent
)

var ratingNames = [...]string{"critical", "poor", "average", "good", "excellent"}

func (r Rating) String() string {
	if r < RatingCritical || r > RatingExcellent {
		return "unknown"
	}
	return ratingNames[r]
}

// ParseRating maps a rating name (case-insensitive) back to its ordinal.
func ParseRating(s string) (Rating, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range ratingNames {
		if name == s {
			return Rating(i), true
		}
	}
	return 0, false
}

// Direction states whether higher or lower raw values are better for a KPI.
type Direction string

const (
	DirectionHigher Direction = "higher"
	DirectionLower  Direction = "lower"
)

func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionHigher:
		return DirectionHigher, true
	case DirectionLower:
		return DirectionLower, true
	}
	return "", false
}
