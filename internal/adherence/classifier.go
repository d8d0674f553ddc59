package adherence

// Status can be one of:
//   - red
//   - yellow
//   - green
//   - grey
type Status string

const (
	StatusRed    Status = "red"
	StatusYellow Status = "yellow"
	StatusGreen  Status = "green"
	StatusGrey   Status = "grey"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusRed, StatusYellow, StatusGreen, StatusGrey:
		return true
	default:
		return false
	}
}

// SortPriority orders statuses for the coach list, most urgent first.
func (s Status) SortPriority() int {
	switch s {
	case StatusRed:
		return 1
	case StatusYellow:
		return 2
	case StatusGrey:
		return 3
	case StatusGreen:
		return 4
	default:
		return 3
	}
}

const (
	// allowed relative deviation from the calorie target
	calorieDeviationTolerance = 0.15

	checkinWarningHours  = 24
	checkinCriticalHours = 48
)

// Log is the slice of a daily log the classifier needs.
type Log struct {
	ActualCalories int
	IsCompleted    bool
}

// Target is the slice of a nutrition target the classifier needs.
type Target struct {
	Calories int
}

// Classify assigns a status for today. Precedence: log+target pair
// first, then check-in recency when there is no log for today, grey
// for everything else. Always returns one of the four statuses.
func Classify(todayLog *Log, target *Target, hoursSinceLastCheckin *float64) Status {
	if todayLog != nil && target != nil {
		diff := calorieDiff(todayLog.ActualCalories, target.Calories)
		if todayLog.IsCompleted {
			if diff <= calorieDeviationTolerance {
				return StatusGreen
			}
			return StatusYellow
		}
		if diff > calorieDeviationTolerance {
			return StatusRed
		}
		return StatusYellow
	}

	if todayLog == nil {
		if hoursSinceLastCheckin == nil {
			return StatusGrey
		}
		if *hoursSinceLastCheckin > checkinCriticalHours {
			return StatusRed
		}
		if *hoursSinceLastCheckin > checkinWarningHours {
			return StatusYellow
		}
		return StatusGrey
	}

	// log present but no target to compare against
	return StatusGrey
}

func calorieDiff(actual, target int) float64 {
	if target == 0 {
		// guards division by zero
		if actual > 0 {
			return 1
		}
		return 0
	}
	diff := float64(actual-target) / float64(target)
	if diff < 0 {
		diff = -diff
	}
	return diff
}
