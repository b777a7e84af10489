package srs

// Intervals defines the review interval ladder in days, indexed by
// mastery level. Level 0 = just memorized, reviewed again same day.
var Intervals = []int{0, 1, 3, 7, 14, 30}

// MaxLevel is the highest mastery level.
const MaxLevel = 5

// Promote raises a mastery level by one, saturating at MaxLevel.
func Promote(level int) int {
	if level >= MaxLevel {
		return MaxLevel
	}
	if level < 0 {
		return 1
	}
	return level + 1
}

// Demote lowers a mastery level by one, saturating at zero.
func Demote(level int) int {
	if level <= 0 {
		return 0
	}
	if level > MaxLevel {
		return MaxLevel - 1
	}
	return level - 1
}

// IntervalDays returns the review interval for a level, clamped to the
// table bounds. Levels beyond the table saturate at the last entry.
func IntervalDays(level int) int {
	if level < 0 {
		level = 0
	}
	if level >= len(Intervals) {
		level = len(Intervals) - 1
	}
	return Intervals[level]
}
