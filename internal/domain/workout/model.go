package workout

import (
	"encoding/json"

	"github.com/fitai/fitai-api/internal/domain/relay"
)

// Profile is the workout form payload. Range and enum checks only apply to fields that are present.
type Profile struct {
	Weight               float64 `json:"weight" binding:"omitempty,gte=20,lte=500"`
	Height               float64 `json:"height" binding:"omitempty,gte=100,lte=300"`
	Age                  float64 `json:"age" binding:"omitempty,gte=13,lte=100"`
	FitnessLevel         string  `json:"fitnessLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
	PreferredWorkoutDays float64 `json:"preferredWorkoutDays" binding:"omitempty,gte=1,lte=7"`
	WorkoutDuration      float64 `json:"workoutDuration" binding:"omitempty,gte=15,lte=180"`
	WorkoutSplit         string  `json:"workoutSplit" binding:"omitempty,oneof=bro_split ppl upper_lower full_body chest_back ppl_upper_lower powerlifting bodybuilding powerbuilding crossfit circuit calisthenics athlete five_by_five german_volume"`
	UserConcerns         string  `json:"userConcerns" binding:"max=1000"`
}

// Config wires runtime settings for the workout relay.
type Config struct {
	relay.Settings
	SystemPrompt string
}

// WorkoutPlan mirrors the JSON document requested from the provider. It is only used for strict checks.
type WorkoutPlan struct {
	Routines        []WorkoutRoutine `json:"routines" validate:"required,dive"`
	Recommendations []string         `json:"recommendations"`
	WeeklySchedule  []string         `json:"weeklySchedule"`
}

// WorkoutRoutine is the session for one training day.
type WorkoutRoutine struct {
	Day       string     `json:"day" validate:"required"`
	Exercises []Exercise `json:"exercises" validate:"required,dive"`
	Duration  float64    `json:"duration" validate:"gte=0"`
	Intensity string     `json:"intensity"`
}

// Exercise is a single movement. Reps may be a number or a range such as "8-12".
type Exercise struct {
	Name     string          `json:"name" validate:"required"`
	Sets     float64         `json:"sets" validate:"gte=0"`
	Reps     json.RawMessage `json:"reps"`
	RestTime float64         `json:"restTime" validate:"gte=0"`
	Notes    string          `json:"notes"`
}
