package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal is the user's stated fitness objective.
type Goal string

const (
	GoalWeightLoss     Goal = "weight_loss"
	GoalMuscleGain     Goal = "muscle_gain"
	GoalMaintenance    Goal = "maintenance"
	GoalGeneralFitness Goal = "general_fitness"
)

// ActivityLevel describes how active the user is day to day.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Gender as declared by the user.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Profile holds the physical attributes and preferences used to personalize
// generated plans. The numeric fields are pointers because a fresh account has
// no profile yet; plan generation requires weight, height and age to be set.
type Profile struct {
	Age                 *int          `bson:"age,omitempty" json:"age,omitempty"`
	Weight              *float64      `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Height              *int          `bson:"height,omitempty" json:"height,omitempty"` // cm
	Gender              Gender        `bson:"gender,omitempty" json:"gender,omitempty"`
	Goal                Goal          `bson:"goal,omitempty" json:"goal,omitempty"`
	ActivityLevel       ActivityLevel `bson:"activityLevel,omitempty" json:"activityLevel,omitempty"`
	DietaryRestrictions []string      `bson:"dietaryRestrictions,omitempty" json:"dietaryRestrictions,omitempty"`
}

// HasBodyMetrics reports whether the fields required by the calorie
// calculation are all present.
func (p Profile) HasBodyMetrics() bool {
	return p.Weight != nil && p.Height != nil && p.Age != nil
}

// Measurements is a set of optional body measurements (cm) on a progress entry.
type Measurements struct {
	Chest *float64 `bson:"chest,omitempty" json:"chest,omitempty"`
	Waist *float64 `bson:"waist,omitempty" json:"waist,omitempty"`
	Hips  *float64 `bson:"hips,omitempty" json:"hips,omitempty"`
	Arms  *float64 `bson:"arms,omitempty" json:"arms,omitempty"`
	Legs  *float64 `bson:"legs,omitempty" json:"legs,omitempty"`
}

// ProgressEntry is one self-reported progress check-in.
type ProgressEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date         time.Time          `bson:"date" json:"date"`
	Weight       *float64           `bson:"weight,omitempty" json:"weight,omitempty"`
	Measurements *Measurements      `bson:"measurements,omitempty" json:"measurements,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	PhotoKey     string             `bson:"photoKey,omitempty" json:"photoKey,omitempty"` // object storage key, not a URL
}

// User is the aggregate root. The profile, progress log and both plan
// histories are embedded in the user document, so a single lookup yields
// everything the generation pipeline needs.
type User struct {
	ID             primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	Name           string                `bson:"name" json:"name"`
	Email          string                `bson:"email" json:"email"` // unique
	PasswordHash   string                `bson:"passwordHash" json:"-"`
	Profile        Profile               `bson:"profile,omitempty" json:"profile"`
	Progress       []ProgressEntry       `bson:"progress,omitempty" json:"progress,omitempty"`
	WorkoutHistory []WorkoutHistoryEntry `bson:"workoutHistory,omitempty" json:"workoutHistory,omitempty"`
	MealHistory    []MealHistoryEntry    `bson:"mealHistory,omitempty" json:"mealHistory,omitempty"`
	CreatedAt      time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time             `bson:"updatedAt" json:"updatedAt"`
}
