package domain

// Plan documents are the structured output of the generation pipeline. Their
// shape mirrors the JSON schema embedded verbatim in the generation prompt, so
// any field added here must be added to the prompt contract as well.

// Exercise is a single exercise within a workout day.
type Exercise struct {
	Name         string `bson:"name" json:"name"`
	Sets         int    `bson:"sets" json:"sets"`
	Reps         string `bson:"reps" json:"reps"` // free-form range, e.g. "10-12"
	Rest         string `bson:"rest" json:"rest"`
	Instructions string `bson:"instructions,omitempty" json:"instructions,omitempty"`
}

// WorkoutDay groups the exercises for one training day.
type WorkoutDay struct {
	Day       string     `bson:"day" json:"day"`
	Focus     string     `bson:"focus" json:"focus"`
	Exercises []Exercise `bson:"exercises" json:"exercises"`
}

// WorkoutPlan is the workout variant of a generated plan document.
type WorkoutPlan struct {
	PlanName string       `bson:"planName" json:"planName"`
	Duration string       `bson:"duration" json:"duration"` // e.g. "4 weeks"
	Workouts []WorkoutDay `bson:"workouts" json:"workouts"`
	Tips     []string     `bson:"tips,omitempty" json:"tips,omitempty"`
	Warmup   string       `bson:"warmup,omitempty" json:"warmup,omitempty"`
	Cooldown string       `bson:"cooldown,omitempty" json:"cooldown,omitempty"`
}

// MacroTargets are the daily macro targets of a diet plan, expressed as
// human-readable gram strings (e.g. "150g") as produced by the model.
type MacroTargets struct {
	Protein string `bson:"protein" json:"protein"`
	Carbs   string `bson:"carbs" json:"carbs"`
	Fats    string `bson:"fats" json:"fats"`
}

// MealMacros are per-meal macros in grams.
type MealMacros struct {
	Protein float64 `bson:"protein" json:"protein"`
	Carbs   float64 `bson:"carbs" json:"carbs"`
	Fats    float64 `bson:"fats" json:"fats"`
}

// Meal is one meal within a diet plan.
type Meal struct {
	MealType     string      `bson:"mealType" json:"mealType"` // Breakfast/Lunch/Dinner/Snack
	Time         string      `bson:"time,omitempty" json:"time,omitempty"`
	Name         string      `bson:"name" json:"name"`
	Calories     float64     `bson:"calories" json:"calories"`
	Ingredients  []string    `bson:"ingredients" json:"ingredients"`
	Instructions string      `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Macros       *MealMacros `bson:"macros,omitempty" json:"macros,omitempty"`
}

// DietPlan is the diet variant of a generated plan document.
type DietPlan struct {
	PlanName      string       `bson:"planName" json:"planName"`
	DailyCalories float64      `bson:"dailyCalories" json:"dailyCalories"`
	Macros        MacroTargets `bson:"macros" json:"macros"`
	Meals         []Meal       `bson:"meals" json:"meals"`
	Tips          []string     `bson:"tips,omitempty" json:"tips,omitempty"`
	Hydration     string       `bson:"hydration,omitempty" json:"hydration,omitempty"`
}
