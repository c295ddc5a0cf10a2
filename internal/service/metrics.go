package service

import (
	"aifit/fitness-app/internal/domain"
	"errors"
	"math"
)

// ErrIncompleteProfile is returned when plan generation is requested before
// the profile carries the numeric fields the pipeline depends on.
var ErrIncompleteProfile = errors.New("profile is incomplete: age, weight and height are required")

// activityMultipliers scale BMR up to total daily energy expenditure.
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  1.2,
	domain.ActivityModerate:   1.55,
	domain.ActivityActive:     1.725,
	domain.ActivityVeryActive: 1.9,
}

// Unknown or unset activity levels fall back to "moderate".
const defaultActivityMultiplier = 1.55

// Goal adjustments applied on top of TDEE, in kcal/day.
const (
	weightLossDeficit = 500
	muscleGainSurplus = 300
)

// CalculateCalorieTarget derives a daily calorie target from the profile using
// the Mifflin-St Jeor equation, scaled by activity level and adjusted for the
// user's goal. Pure function; the only failure mode is a missing body metric.
func CalculateCalorieTarget(p domain.Profile) (int, error) {
	if !p.HasBodyMetrics() {
		return 0, ErrIncompleteProfile
	}

	weight := *p.Weight
	height := float64(*p.Height)
	age := float64(*p.Age)

	bmr := 10*weight + 6.25*height - 5*age
	switch p.Gender {
	case domain.GenderMale:
		bmr += 5
	case domain.GenderFemale, domain.GenderOther:
		// "other" deliberately shares the female constant; the equation has
		// no third set of coefficients.
		bmr -= 161
	default:
		bmr -= 161
	}

	multiplier, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		multiplier = defaultActivityMultiplier
	}
	tdee := bmr * multiplier

	switch p.Goal {
	case domain.GoalWeightLoss:
		tdee -= weightLossDeficit
	case domain.GoalMuscleGain:
		tdee += muscleGainSurplus
	}

	return int(math.Round(tdee)), nil
}
