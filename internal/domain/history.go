package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHistoryEntry is one persisted workout plan in the user's history.
// Entries are append-only; the only mutation ever applied is the single
// "mark completed" transition, addressed by entry ID.
type WorkoutHistoryEntry struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Date      time.Time          `bson:"date" json:"date"`
	Plan      WorkoutPlan        `bson:"workoutPlan" json:"workoutPlan"`
	Completed bool               `bson:"completed" json:"completed"`
	Duration  *int               `bson:"duration,omitempty" json:"duration,omitempty"` // actual minutes, set on completion
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// MealLog is an ad-hoc logged meal, as opposed to a generated plan.
type MealLog struct {
	MealType  string   `bson:"mealType" json:"mealType"`
	FoodItems []string `bson:"foodItems,omitempty" json:"foodItems,omitempty"`
	Calories  *float64 `bson:"calories,omitempty" json:"calories,omitempty"`
	Notes     string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// MealHistoryEntry is one persisted entry in the user's meal history. Exactly
// one of Plan or Log is set: Plan for generated diet plans, Log for meals the
// user logged manually.
type MealHistoryEntry struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Date time.Time          `bson:"date" json:"date"`
	Plan *DietPlan          `bson:"mealPlan,omitempty" json:"mealPlan,omitempty"`
	Log  *MealLog           `bson:"mealLog,omitempty" json:"mealLog,omitempty"`
}
