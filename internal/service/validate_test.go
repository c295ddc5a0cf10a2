package service

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

const validWorkoutJSON = `{
  "planName": "Full Body Strength",
  "duration": "4 weeks",
  "workouts": [
    {
      "day": "Day 1",
      "focus": "upper body",
      "exercises": [
        {"name": "Push-up", "sets": 3, "reps": "10-12", "rest": "60 seconds", "instructions": "keep core tight"}
      ]
    }
  ],
  "tips": ["sleep well"],
  "warmup": "5 min jumping jacks",
  "cooldown": "stretch"
}`

const validDietJSON = `{
  "planName": "Lean Cut",
  "dailyCalories": 2056,
  "macros": {"protein": "150g", "carbs": "200g", "fats": "60g"},
  "meals": [
    {
      "mealType": "Breakfast",
      "time": "08:00",
      "name": "Oatmeal with berries",
      "calories": 420,
      "ingredients": ["oats", "berries", "milk"],
      "instructions": "cook oats, add berries",
      "macros": {"protein": 18, "carbs": 60, "fats": 9}
    }
  ],
  "tips": ["meal prep on Sunday"],
  "hydration": "3 liters per day"
}`

func TestParseWorkoutPlanRoundTrip(t *testing.T) {
	plan, err := ParseWorkoutPlan(validWorkoutJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.PlanName != "Full Body Strength" {
		t.Errorf("planName = %q", plan.PlanName)
	}
	if plan.Duration != "4 weeks" {
		t.Errorf("duration = %q", plan.Duration)
	}
	if len(plan.Workouts) != 1 || len(plan.Workouts[0].Exercises) != 1 {
		t.Fatalf("unexpected workout shape: %+v", plan.Workouts)
	}
	ex := plan.Workouts[0].Exercises[0]
	if ex.Name != "Push-up" || ex.Sets != 3 || ex.Reps != "10-12" {
		t.Errorf("unexpected exercise: %+v", ex)
	}
	if plan.Warmup == "" || plan.Cooldown == "" || len(plan.Tips) != 1 {
		t.Errorf("optional fields not preserved: %+v", plan)
	}
}

func TestParseDietPlanRoundTrip(t *testing.T) {
	plan, err := ParseDietPlan(validDietJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.PlanName != "Lean Cut" || plan.DailyCalories != 2056 {
		t.Errorf("unexpected plan header: %+v", plan)
	}
	if plan.Macros.Protein != "150g" {
		t.Errorf("macros not preserved: %+v", plan.Macros)
	}
	if len(plan.Meals) != 1 {
		t.Fatalf("expected 1 meal, got %d", len(plan.Meals))
	}
	meal := plan.Meals[0]
	if meal.Name != "Oatmeal with berries" || meal.Calories != 420 || len(meal.Ingredients) != 3 {
		t.Errorf("unexpected meal: %+v", meal)
	}
	if meal.Macros == nil || meal.Macros.Protein != 18 {
		t.Errorf("meal macros not preserved: %+v", meal.Macros)
	}
}

func TestParseWorkoutPlanInvalidJSON(t *testing.T) {
	text := "Sure! Here is your workout plan: " + strings.Repeat("x", 500)

	_, err := ParseWorkoutPlan(text)
	if err == nil {
		t.Fatal("expected an error")
	}

	var parseErr *ResponseParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ResponseParseError, got %T", err)
	}
	if n := utf8.RuneCountInString(parseErr.Snippet); n > 200 {
		t.Errorf("snippet has %d characters, want <= 200", n)
	}
	if !strings.HasPrefix(text, parseErr.Snippet) {
		t.Errorf("snippet is not a prefix of the offending text")
	}
}

func TestParseWorkoutPlanShapeValidation(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no workouts", `{"planName": "Empty", "duration": "4 weeks", "workouts": []}`},
		{"missing workouts", `{"planName": "Empty", "duration": "4 weeks"}`},
		{"day without exercises", `{"planName": "P", "duration": "1 week", "workouts": [{"day": "Day 1", "focus": "legs", "exercises": []}]}`},
		{"exercise without name", `{"planName": "P", "duration": "1 week", "workouts": [{"day": "Day 1", "focus": "legs", "exercises": [{"sets": 3, "reps": "10"}]}]}`},
		{"exercise with zero sets", `{"planName": "P", "duration": "1 week", "workouts": [{"day": "Day 1", "focus": "legs", "exercises": [{"name": "Squat", "sets": 0, "reps": "10"}]}]}`},
		{"missing planName", `{"duration": "1 week", "workouts": [{"day": "Day 1", "focus": "legs", "exercises": [{"name": "Squat", "sets": 3, "reps": "10"}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWorkoutPlan(tt.text)
			var parseErr *ResponseParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ResponseParseError, got %v", err)
			}
		})
	}
}

func TestParseDietPlanShapeValidation(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no meals", `{"planName": "P", "dailyCalories": 2000, "macros": {"protein": "a", "carbs": "b", "fats": "c"}, "meals": []}`},
		{"zero calories", `{"planName": "P", "dailyCalories": 0, "meals": [{"mealType": "Lunch", "name": "Salad", "calories": 300, "ingredients": ["lettuce"]}]}`},
		{"meal without ingredients", `{"planName": "P", "dailyCalories": 2000, "meals": [{"mealType": "Lunch", "name": "Salad", "calories": 300, "ingredients": []}]}`},
		{"meal without name", `{"planName": "P", "dailyCalories": 2000, "meals": [{"mealType": "Lunch", "calories": 300, "ingredients": ["lettuce"]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDietPlan(tt.text)
			var parseErr *ResponseParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ResponseParseError, got %v", err)
			}
		})
	}
}
