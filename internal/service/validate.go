package service

import (
	"aifit/fitness-app/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
)

// parseSnippetLimit bounds how much of a malformed response is carried in a
// ResponseParseError. Diagnostics only; the full payload is never attached.
const parseSnippetLimit = 200

// ResponseParseError reports a model response that could not be parsed or
// failed shape validation. Snippet holds at most parseSnippetLimit characters
// of the offending text.
type ResponseParseError struct {
	Snippet string
	Err     error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("failed to parse generated plan: %v", e.Err)
}

func (e *ResponseParseError) Unwrap() error {
	return e.Err
}

func newResponseParseError(text string, err error) *ResponseParseError {
	snippet := text
	if runes := []rune(snippet); len(runes) > parseSnippetLimit {
		snippet = string(runes[:parseSnippetLimit])
	}
	return &ResponseParseError{Snippet: snippet, Err: err}
}

// ParseWorkoutPlan parses sanitized text into a WorkoutPlan and validates its
// shape: a named plan with at least one workout day, each day carrying at
// least one fully specified exercise. Partially shaped documents are rejected
// here rather than passed downstream.
func ParseWorkoutPlan(text string) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return nil, newResponseParseError(text, err)
	}
	if err := validateWorkoutPlan(&plan); err != nil {
		return nil, newResponseParseError(text, err)
	}
	return &plan, nil
}

// ParseDietPlan parses sanitized text into a DietPlan and validates its shape.
func ParseDietPlan(text string) (*domain.DietPlan, error) {
	var plan domain.DietPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return nil, newResponseParseError(text, err)
	}
	if err := validateDietPlan(&plan); err != nil {
		return nil, newResponseParseError(text, err)
	}
	return &plan, nil
}

func validateWorkoutPlan(plan *domain.WorkoutPlan) error {
	if plan.PlanName == "" {
		return errors.New("workout plan is missing planName")
	}
	if len(plan.Workouts) == 0 {
		return errors.New("workout plan has no workouts")
	}
	for i, day := range plan.Workouts {
		if len(day.Exercises) == 0 {
			return fmt.Errorf("workout %d (%q) has no exercises", i+1, day.Day)
		}
		for j, ex := range day.Exercises {
			if ex.Name == "" {
				return fmt.Errorf("workout %d exercise %d is missing a name", i+1, j+1)
			}
			if ex.Sets <= 0 {
				return fmt.Errorf("exercise %q has invalid sets", ex.Name)
			}
		}
	}
	return nil
}

func validateDietPlan(plan *domain.DietPlan) error {
	if plan.PlanName == "" {
		return errors.New("diet plan is missing planName")
	}
	if plan.DailyCalories <= 0 {
		return errors.New("diet plan has invalid dailyCalories")
	}
	if len(plan.Meals) == 0 {
		return errors.New("diet plan has no meals")
	}
	for i, meal := range plan.Meals {
		if meal.Name == "" {
			return fmt.Errorf("meal %d is missing a name", i+1)
		}
		if meal.Calories <= 0 {
			return fmt.Errorf("meal %q has invalid calories", meal.Name)
		}
		if len(meal.Ingredients) == 0 {
			return fmt.Errorf("meal %q has no ingredients", meal.Name)
		}
	}
	return nil
}
