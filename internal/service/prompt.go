package service

import (
	"aifit/fitness-app/internal/domain"
	"fmt"
	"strings"
)

// WorkoutPreferences are the per-request knobs for workout generation.
type WorkoutPreferences struct {
	Equipment     string `json:"equipment"`
	DaysPerWeek   int    `json:"daysPerWeek"`
	TimeAvailable int    `json:"timeAvailable"` // minutes per session
	FocusArea     string `json:"focusArea"`
}

// DietPreferences are the per-request knobs for diet generation. A non-nil
// CalorieTarget overrides the calculated target entirely.
type DietPreferences struct {
	MealsPerDay       int    `json:"mealsPerDay"`
	CalorieTarget     *int   `json:"calorieTarget,omitempty"`
	CuisinePreference string `json:"cuisinePreference"`
}

// The prompts below end with the exact JSON shape the validator parses, and
// instruct the model to return that document and nothing else. Changing a
// field name here without changing the domain plan structs breaks validation.

// BuildWorkoutPrompt renders the workout generation request. Deterministic:
// same profile and preferences always yield the same prompt.
func BuildWorkoutPrompt(p domain.Profile, prefs WorkoutPreferences) string {
	equipment := prefs.Equipment
	if equipment == "" {
		equipment = "bodyweight only"
	}
	daysPerWeek := prefs.DaysPerWeek
	if daysPerWeek == 0 {
		daysPerWeek = 3
	}
	timeAvailable := prefs.TimeAvailable
	if timeAvailable == 0 {
		timeAvailable = 45
	}
	focusArea := prefs.FocusArea
	if focusArea == "" {
		focusArea = "full body"
	}

	var b strings.Builder
	b.WriteString("You are a professional fitness trainer. Create a detailed workout plan based on the following information:\n\n")
	b.WriteString("User Profile:\n")
	fmt.Fprintf(&b, "- Goal: %s\n", p.Goal)
	fmt.Fprintf(&b, "- Activity Level: %s\n", p.ActivityLevel)
	fmt.Fprintf(&b, "- Age: %s\n", formatInt(p.Age))
	fmt.Fprintf(&b, "- Gender: %s\n\n", p.Gender)
	b.WriteString("Workout Preferences:\n")
	fmt.Fprintf(&b, "- Available Equipment: %s\n", equipment)
	fmt.Fprintf(&b, "- Days per Week: %d\n", daysPerWeek)
	fmt.Fprintf(&b, "- Time per Session: %d minutes\n", timeAvailable)
	fmt.Fprintf(&b, "- Focus Area: %s\n\n", focusArea)
	b.WriteString(`Create a workout plan in valid JSON format with this exact structure:
{
  "planName": "descriptive name",
  "duration": "number of weeks",
  "workouts": [
    {
      "day": "Day 1",
      "focus": "muscle group",
      "exercises": [
        {
          "name": "exercise name",
          "sets": 3,
          "reps": "10-12",
          "rest": "60 seconds",
          "instructions": "brief form tips"
        }
      ]
    }
  ],
  "tips": ["tip 1", "tip 2"],
  "warmup": "warmup routine",
  "cooldown": "cooldown routine"
}

Return ONLY the JSON, no additional text.`)

	return b.String()
}

// BuildDietPrompt renders the diet generation request around the target
// calories (either calculated or caller-supplied).
func BuildDietPrompt(p domain.Profile, prefs DietPreferences, targetCalories int) string {
	mealsPerDay := prefs.MealsPerDay
	if mealsPerDay == 0 {
		mealsPerDay = 3
	}
	cuisine := prefs.CuisinePreference
	if cuisine == "" {
		cuisine = "any"
	}
	restrictions := "none"
	if len(p.DietaryRestrictions) > 0 {
		restrictions = strings.Join(p.DietaryRestrictions, ", ")
	}

	var b strings.Builder
	b.WriteString("You are a professional nutritionist. Create a detailed meal plan based on the following information:\n\n")
	b.WriteString("User Profile:\n")
	fmt.Fprintf(&b, "- Goal: %s\n", p.Goal)
	fmt.Fprintf(&b, "- Weight: %s kg\n", formatFloat(p.Weight))
	fmt.Fprintf(&b, "- Height: %s cm\n", formatInt(p.Height))
	fmt.Fprintf(&b, "- Age: %s\n", formatInt(p.Age))
	fmt.Fprintf(&b, "- Gender: %s\n", p.Gender)
	fmt.Fprintf(&b, "- Activity Level: %s\n", p.ActivityLevel)
	fmt.Fprintf(&b, "- Dietary Restrictions: %s\n\n", restrictions)
	b.WriteString("Meal Plan Preferences:\n")
	fmt.Fprintf(&b, "- Meals per Day: %d\n", mealsPerDay)
	fmt.Fprintf(&b, "- Target Calories: %d kcal/day\n", targetCalories)
	fmt.Fprintf(&b, "- Cuisine Preference: %s\n\n", cuisine)
	fmt.Fprintf(&b, `Create a meal plan in valid JSON format with this exact structure:
{
  "planName": "descriptive name",
  "dailyCalories": %d,
  "macros": {
    "protein": "grams",
    "carbs": "grams",
    "fats": "grams"
  },
  "meals": [
    {
      "mealType": "Breakfast/Lunch/Dinner/Snack",
      "time": "suggested time",
      "name": "meal name",
      "calories": number,
      "ingredients": ["ingredient 1", "ingredient 2"],
      "instructions": "brief cooking instructions",
      "macros": {
        "protein": number,
        "carbs": number,
        "fats": number
      }
    }
  ],
  "tips": ["nutrition tip 1", "tip 2"],
  "hydration": "water intake recommendation"
}

Return ONLY the JSON, no additional text.`, targetCalories)

	return b.String()
}

func formatInt(v *int) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d", *v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%g", *v)
}
