package dailylog

import (
	"time"

	"github.com/nutricoach/server/internal/nutrition"
)

// DailyLog (DB level type) is one client's intake for one date. A
// client has at most one log per date, upserts overwrite the values.
type DailyLog struct {
	ID             int               `json:"id"`
	ClientID       int               `json:"clientId"`
	Date           time.Time         `json:"date"`
	DayType        nutrition.DayType `json:"dayType"`
	ActualCalories int               `json:"actualCalories"`
	ProteinGrams   int               `json:"proteinGrams"`
	FatsGrams      int               `json:"fatsGrams"`
	CarbsGrams     int               `json:"carbsGrams"`
	IsCompleted    bool              `json:"isCompleted"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
