// Package profile keeps the single user profile and derives body and
// recommendation figures from it.
package profile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound       = errors.New("profile not found")
	ErrInvalidProfile = errors.New("invalid profile")
)

const (
	ActivitySedentary  = "Sedentary"
	ActivityLight      = "Light"
	ActivityModerate   = "Moderate"
	ActivityActive     = "Active"
	ActivityVeryActive = "Very Active"

	GoalWeightLoss     = "Weight Loss"
	GoalMuscleGain     = "Muscle Gain"
	GoalEndurance      = "Endurance"
	GoalGeneralFitness = "General Fitness"
)

type Profile struct {
	Name          string  `json:"name" db:"name"`
	Age           int     `json:"age" db:"age"`
	WeightKg      float64 `json:"weightKg" db:"weight_kg"`
	HeightCm      float64 `json:"heightCm" db:"height_cm"`
	Gender        string  `json:"gender" db:"gender"`
	ActivityLevel string  `json:"activityLevel" db:"activity_level"`
	FitnessGoal   string  `json:"fitnessGoal" db:"fitness_goal"`
}

func Default() Profile {
	return Profile{
		Age:           25,
		WeightKg:      70,
		HeightCm:      170,
		Gender:        "Not specified",
		ActivityLevel: ActivityModerate,
		FitnessGoal:   GoalGeneralFitness,
	}
}

func (p Profile) Validate() error {
	if p.Age <= 0 || p.Age > 130 {
		return fmt.Errorf("%w: age %d", ErrInvalidProfile, p.Age)
	}
	if p.WeightKg <= 0 || p.HeightCm <= 0 {
		return fmt.Errorf("%w: weight and height must be positive", ErrInvalidProfile)
	}
	return nil
}

func (p Profile) BMI() float64 {
	heightM := p.HeightCm / 100
	if heightM <= 0 {
		return 0
	}
	return p.WeightKg / (heightM * heightM)
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

var activityMultipliers = map[string]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// RecommendedCalories is the Mifflin-St Jeor daily estimate scaled by the
// activity level. Unknown genders use the average of both offsets.
func (p Profile) RecommendedCalories() int {
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	switch strings.ToLower(p.Gender) {
	case "male":
		bmr += 5
	case "female":
		bmr -= 161
	default:
		bmr -= 78
	}

	multiplier, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		multiplier = activityMultipliers[ActivityModerate]
	}
	return int(bmr * multiplier)
}

func (p Profile) RecommendedSteps() int {
	switch p.FitnessGoal {
	case GoalWeightLoss:
		return 12000
	case GoalMuscleGain:
		return 8000
	case GoalEndurance:
		return 15000
	default:
		return 10000
	}
}

func (p Profile) RecommendedWorkoutMinutes() int {
	switch p.ActivityLevel {
	case ActivitySedentary:
		return 20
	case ActivityLight:
		return 25
	case ActivityActive:
		return 45
	case ActivityVeryActive:
		return 60
	default:
		return 30
	}
}
