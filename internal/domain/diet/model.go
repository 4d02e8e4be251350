package diet

import "github.com/fitai/fitai-api/internal/domain/relay"

// Profile is the diet form payload. Range and enum checks only apply to fields that are present.
type Profile struct {
	Country           string  `json:"country" binding:"max=100"`
	State             string  `json:"state" binding:"max=100"`
	Weight            float64 `json:"weight" binding:"omitempty,gte=20,lte=500"`
	Height            float64 `json:"height" binding:"omitempty,gte=100,lte=300"`
	Age               float64 `json:"age" binding:"omitempty,gte=13,lte=100"`
	Gender            string  `json:"gender" binding:"omitempty,oneof=male female other"`
	ActivityLevel     string  `json:"activityLevel" binding:"omitempty,oneof=sedentary light moderate very extra"`
	DietaryPreference string  `json:"dietaryPreference" binding:"omitempty,oneof=no_restrictions vegetarian vegan pescatarian keto paleo mediterranean low_carb low_fat gluten_free"`
	Goal              string  `json:"goal" binding:"omitempty,oneof=lose_weight maintain gain_weight build_muscle improve_health"`
	Allergies         string  `json:"allergies" binding:"max=1000"`
	MedicalConditions string  `json:"medicalConditions" binding:"max=1000"`
	UserPref          string  `json:"userPref" binding:"max=1000"`
}

// Config wires runtime settings for the diet relay.
type Config struct {
	relay.Settings
	SystemPrompt string
}

// DietPlan mirrors the JSON document requested from the provider. It is only used for strict checks.
type DietPlan struct {
	DailyCalories   float64        `json:"dailyCalories" validate:"gte=0"`
	Macronutrients  Macronutrients `json:"macronutrients"`
	MealPlan        []MealPlan     `json:"mealPlan" validate:"required,dive"`
	Recommendations []string       `json:"recommendations"`
	Supplements     []string       `json:"supplements"`
	Restrictions    []string       `json:"restrictions"`
}

// Macronutrients are daily targets in grams.
type Macronutrients struct {
	Protein float64 `json:"protein" validate:"gte=0"`
	Carbs   float64 `json:"carbs" validate:"gte=0"`
	Fats    float64 `json:"fats" validate:"gte=0"`
}

// MealPlan is one meal of the day.
type MealPlan struct {
	Name     string     `json:"name" validate:"required"`
	Time     string     `json:"time"`
	Calories float64    `json:"calories" validate:"gte=0"`
	Items    []MealItem `json:"items" validate:"required,dive"`
	Notes    string     `json:"notes"`
}

// MealItem is a single food with its portion and macros.
type MealItem struct {
	Name     string  `json:"name" validate:"required"`
	Portion  string  `json:"portion"`
	Calories float64 `json:"calories" validate:"gte=0"`
	Protein  float64 `json:"protein" validate:"gte=0"`
	Carbs    float64 `json:"carbs" validate:"gte=0"`
	Fats     float64 `json:"fats" validate:"gte=0"`
	Notes    string  `json:"notes"`
}
