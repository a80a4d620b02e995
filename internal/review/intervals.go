package review

// reviewIntervalDays is the fixed review schedule: the entry at index n-1 is
// the number of days until the next review after the n-th completed review.
// Review counts past the end of the table stay at the last step.
var reviewIntervalDays = []int{1, 3, 7, 14, 30}

// NextIntervalDays returns the days until the next review for an item whose
// review count, including the review just completed, is reviewCount.
func NextIntervalDays(reviewCount int) int {
	if reviewCount < 1 {
		return reviewIntervalDays[0]
	}
	if reviewCount > len(reviewIntervalDays) {
		return reviewIntervalDays[len(reviewIntervalDays)-1]
	}
	return reviewIntervalDays[reviewCount-1]
}
