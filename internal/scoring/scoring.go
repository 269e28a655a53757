package scoring

import (
	"math"
	"sort"
)

// Scale is the fixed ordered point scale players may estimate with.
var Scale = []int{1, 2, 3, 5, 8, 13}

// ValidPoint reports whether points is a member of the point scale
func ValidPoint(points int) bool {
	for _, p := range Scale {
		if p == points {
			return true
		}
	}
	return false
}

// Vote pairs a voter with their submitted estimate
type Vote struct {
	// UserID is the identifier of the voter
	UserID string

	// Points is the estimate the voter submitted
	Points int
}

// Analysis summarizes a revealed vote set
type Analysis struct {
	// Distribution groups voter IDs by the exact value they voted
	Distribution map[int][]string `json:"distribution"`

	// Consensus is true when exactly one distinct value was voted
	Consensus bool `json:"consensus"`

	// Mode is the most voted value, smallest value winning ties.
	// Nil when there are no votes.
	Mode *int `json:"mode"`

	// Median is the middle vote value; for an even number of votes it is
	// the mean of the two middle values
	Median float64 `json:"median"`

	// RecommendedPoint is the suggested scale value synthesizing the
	// distribution. Zero when there are no votes.
	RecommendedPoint int `json:"recommendedPoint"`
}

// Analyze computes the vote statistics for a completed vote set.
// A vote set with no entries yields a zeroed analysis with a nil mode.
func Analyze(votes []Vote) *Analysis {
	analysis := &Analysis{
		Distribution: make(map[int][]string),
	}

	if len(votes) == 0 {
		return analysis
	}

	for _, v := range votes {
		analysis.Distribution[v.Points] = append(analysis.Distribution[v.Points], v.UserID)
	}

	// Distinct values in ascending order so the smallest value wins a
	// mode tie; only a strictly greater count replaces the running mode.
	values := make([]int, 0, len(analysis.Distribution))
	for value := range analysis.Distribution {
		values = append(values, value)
	}
	sort.Ints(values)

	analysis.Consensus = len(values) == 1

	mode := values[0]
	modeCount := len(analysis.Distribution[mode])
	for _, value := range values[1:] {
		if count := len(analysis.Distribution[value]); count > modeCount {
			mode = value
			modeCount = count
		}
	}
	analysis.Mode = &mode

	analysis.Median = median(votes)

	switch {
	case analysis.Consensus:
		analysis.RecommendedPoint = mode
	case modeCount*2 > len(votes):
		// The mode carries a strict majority
		analysis.RecommendedPoint = mode
	default:
		analysis.RecommendedPoint = nearestScalePoint(analysis.Median)
	}

	return analysis
}

// Average returns the arithmetic mean of the given points rounded to one
// decimal place, or 0 when there are no points
func Average(points []int) float64 {
	if len(points) == 0 {
		return 0
	}

	sum := 0
	for _, p := range points {
		sum += p
	}

	return math.Round(float64(sum)/float64(len(points))*10) / 10
}

func median(votes []Vote) float64 {
	sorted := make([]int, 0, len(votes))
	for _, v := range votes {
		sorted = append(sorted, v.Points)
	}
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

// nearestScalePoint walks the scale in ascending order, so the lower
// value wins when two scale points are equidistant from the median.
func nearestScalePoint(median float64) int {
	best := Scale[0]
	bestDistance := math.Abs(float64(Scale[0]) - median)

	for _, point := range Scale[1:] {
		if distance := math.Abs(float64(point) - median); distance < bestDistance {
			best = point
			bestDistance = distance
		}
	}

	return best
}
