package nutrition

import (
	"math"
	"time"
)

// Gender can be one of:
//   - male
//   - female
//   - other
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) String() string {
	return string(g)
}

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// ActivityLevel can be one of:
//   - sedentary
//   - light
//   - moderate
//   - active
//   - very_active
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

func (al ActivityLevel) String() string {
	return string(al)
}

func (al ActivityLevel) IsValid() bool {
	switch al {
	case ActivitySedentary,
		ActivityLight,
		ActivityModerate,
		ActivityActive,
		ActivityVeryActive:
		return true
	default:
		return false
	}
}

// Goal can be one of:
//   - lose
//   - gain
//   - maintain
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalGain     Goal = "gain"
	GoalMaintain Goal = "maintain"
)

func (g Goal) String() string {
	return string(g)
}

func (g Goal) IsValid() bool {
	switch g {
	case GoalLose, GoalGain, GoalMaintain:
		return true
	default:
		return false
	}
}

// activityMultipliers and goalFactors are the single source for
// all target calculations - handlers and reports go through these.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

var goalFactors = map[Goal]float64{
	GoalLose:     0.85,
	GoalGain:     1.10,
	GoalMaintain: 1.0,
}

const (
	// macro split: 30% protein, 25% fats, 45% carbs
	proteinCaloriesShare = 0.30
	fatsCaloriesShare    = 0.25
	carbsCaloriesShare   = 0.45

	caloriesPerGramProtein = 4
	caloriesPerGramFat     = 9
	caloriesPerGramCarbs   = 4

	trainingDayCaloriesBonus = 200
)

// BMR returns the basal metabolic rate via the Harris-Benedict formula.
// The male constants apply only to GenderMale, every other value gets
// the female set.
func BMR(gender Gender, weightKg, heightCm float64, ageYears int) float64 {
	age := float64(ageYears)
	if gender == GenderMale {
		return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*age
	}
	return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*age
}

// TDEE scales the basal rate by the activity multiplier. Unknown
// activity levels fall back to the moderate multiplier.
func TDEE(bmr float64, activity ActivityLevel) float64 {
	multiplier, ok := activityMultipliers[activity]
	if !ok {
		multiplier = activityMultipliers[ActivityModerate]
	}
	return bmr * multiplier
}

// TargetCalories applies the goal factor and rounds to a whole
// calorie figure. Unknown goals behave like maintain.
func TargetCalories(tdee float64, goal Goal) int {
	factor, ok := goalFactors[goal]
	if !ok {
		factor = goalFactors[GoalMaintain]
	}
	return int(math.Round(tdee * factor))
}

type MacroSplit struct {
	ProteinGrams int `json:"proteinGrams"`
	FatsGrams    int `json:"fatsGrams"`
	CarbsGrams   int `json:"carbsGrams"`
}

// Macros splits a calorie target into protein/fats/carbs grams. Each
// macro is rounded independently, so reconstructing calories from the
// grams can drift by a few kcal.
func Macros(calories int) MacroSplit {
	c := float64(calories)
	return MacroSplit{
		ProteinGrams: int(math.Round(c * proteinCaloriesShare / caloriesPerGramProtein)),
		FatsGrams:    int(math.Round(c * fatsCaloriesShare / caloriesPerGramFat)),
		CarbsGrams:   int(math.Round(c * carbsCaloriesShare / caloriesPerGramCarbs)),
	}
}

// Age returns full years between birthDate and asOf, i.e. the year
// difference minus one if the birthday did not yet occur this year.
func Age(birthDate, asOf time.Time) int {
	age := asOf.Year() - birthDate.Year()
	birthdayThisYear := time.Date(
		asOf.Year(), birthDate.Month(), birthDate.Day(),
		0, 0, 0, 0, asOf.Location(),
	)
	if asOf.Before(birthdayThisYear) {
		age--
	}
	return age
}

type DayTargets struct {
	Calories int        `json:"calories"`
	Macros   MacroSplit `json:"macros"`
}

type Targets struct {
	RestDay     DayTargets `json:"restDay"`
	TrainingDay DayTargets `json:"trainingDay"`
}

// ComputeTargets runs the whole pipeline for one client. Training day
// targets get a flat calorie bonus on top of the rest day figure, with
// macros re-derived from the bumped calories.
func ComputeTargets(
	gender Gender,
	weightKg, heightCm float64,
	birthDate time.Time,
	activity ActivityLevel,
	goal Goal,
	asOf time.Time,
) Targets {
	bmr := BMR(gender, weightKg, heightCm, Age(birthDate, asOf))
	tdee := TDEE(bmr, activity)
	restCalories := TargetCalories(tdee, goal)
	trainingCalories := restCalories + trainingDayCaloriesBonus
	return Targets{
		RestDay: DayTargets{
			Calories: restCalories,
			Macros:   Macros(restCalories),
		},
		TrainingDay: DayTargets{
			Calories: trainingCalories,
			Macros:   Macros(trainingCalories),
		},
	}
}
