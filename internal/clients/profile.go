package clients

import (
	"time"

	"github.com/nutricoach/server/internal/nutrition"
)

// Profile holds one coached client. Biometrics are kept on the profile
// so targets can be recomputed when the coach edits them.
type Profile struct {
	ID            int                     `json:"id"`
	Name          string                  `json:"name"`
	Email         string                  `json:"email"`
	Gender        nutrition.Gender        `json:"gender"`
	BirthDate     time.Time               `json:"birthDate"`
	HeightCm      float64                 `json:"heightCm"`
	WeightKg      float64                 `json:"weightKg"`
	ActivityLevel nutrition.ActivityLevel `json:"activityLevel"`
	Goal          nutrition.Goal          `json:"goal"`
	IsPremium     bool                    `json:"isPremium"`
	OnboardedAt   *time.Time              `json:"onboardedAt,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}
