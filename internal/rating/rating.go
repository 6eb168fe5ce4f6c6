package rating

const (
	MinStar = 0
	MaxStar = 4
)

// Of returns a present rating of n stars. A nil *int means "read but not rated".
func Of(n int) *int {
	return &n
}

func InRange(r *int) bool {
	if r == nil {
		return false
	}
	return *r >= MinStar && *r <= MaxStar
}

// Average returns the unweighted mean of stars. ok is false when there is
// nothing to average, so an absent rating is never confused with 0.
func Average(stars []int) (avg float64, ok bool) {
	if len(stars) == 0 {
		return 0, false
	}
	total := 0
	for _, s := range stars {
		total += s
	}
	return float64(total) / float64(len(stars)), true
}
