package nutrition

import "time"

// DayType can be one of:
//   - rest
//   - training
type DayType string

const (
	DayTypeRest     DayType = "rest"
	DayTypeTraining DayType = "training"
)

func (dt DayType) String() string {
	return string(dt)
}

func (dt DayType) IsValid() bool {
	switch dt {
	case DayTypeRest, DayTypeTraining:
		return true
	default:
		return false
	}
}

// Target (DB level type) is one calorie/macro prescription for a client
// and day type. History is append-only, at most one row per
// (client, day type) is active.
type Target struct {
	ID           int       `json:"id"`
	ClientID     int       `json:"clientId"`
	DayType      DayType   `json:"dayType"`
	Calories     int       `json:"calories"`
	ProteinGrams int       `json:"proteinGrams"`
	FatsGrams    int       `json:"fatsGrams"`
	CarbsGrams   int       `json:"carbsGrams"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewTarget(clientID int, dayType DayType, dayTargets DayTargets) Target {
	return Target{
		ClientID:     clientID,
		DayType:      dayType,
		Calories:     dayTargets.Calories,
		ProteinGrams: dayTargets.Macros.ProteinGrams,
		FatsGrams:    dayTargets.Macros.FatsGrams,
		CarbsGrams:   dayTargets.Macros.CarbsGrams,
		IsActive:     true,
	}
}
