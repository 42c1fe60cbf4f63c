package benchmark

import (
	"fmt"
	"math"

	"github.com/de-tools/kpi-atlas/pkg/models/domain"
)

// Rate maps a value onto the ordinal rating scale. For direction=higher the
// thresholds are read ascending (value at or above excellent wins), for
// direction=lower descending. ok is false when the value or any threshold is
// not a finite number. The thresholds are assumed, not required, to be
// ordered consistently with the direction; out-of-order rows still produce a
// deterministic rating because the checks always run best-to-worst.
//
// An unknown direction is caller misuse, not configuration data (rows go
// through ParseDirection on load), so it panics.
func Rate(value float64, set domain.ThresholdSet, direction domain.Direction) (domain.Rating, bool) {
	if !finite(value) || !finite(set.Poor) || !finite(set.Average) || !finite(set.Good) || !finite(set.Excellent) {
		return 0, false
	}

	switch direction {
	case domain.DirectionHigher:
		switch {
		case value >= set.Excellent:
			return domain.RatingExcellent, true
		case value >= set.Good:
			return domain.RatingGood, true
		case value >= set.Average:
			return domain.RatingAverage, true
		case value >= set.Poor:
			return domain.RatingPoor, true
		default:
			return domain.RatingCritical, true
		}
	case domain.DirectionLower:
		switch {
		case value <= set.Excellent:
			return domain.RatingExcellent, true
		case value <= set.Good:
			return domain.RatingGood, true
		case value <= set.Average:
			return domain.RatingAverage, true
		case value <= set.Poor:
			return domain.RatingPoor, true
		default:
			return domain.RatingCritical, true
		}
	default:
		panic(fmt.Sprintf("benchmark: invalid direction %q", direction))
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
