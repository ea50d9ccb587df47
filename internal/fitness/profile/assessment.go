package profile

type Assessment struct {
	OverallScore    int      `json:"overallScore"`
	FitnessLevel    string   `json:"fitnessLevel"`
	BMI             float64  `json:"bmi"`
	BMICategory     string   `json:"bmiCategory"`
	BMIScore        int      `json:"bmiScore"`
	AgeScore        int      `json:"ageScore"`
	ActivityScore   int      `json:"activityScore"`
	Recommendations []string `json:"recommendations"`

	RecommendedCalories       int `json:"recommendedCalories"`
	RecommendedSteps          int `json:"recommendedSteps"`
	RecommendedWorkoutMinutes int `json:"recommendedWorkoutMinutes"`
}

func (p Profile) Assess() Assessment {
	bmi := p.BMI()
	a := Assessment{
		BMI:           bmi,
		BMICategory:   BMICategory(bmi),
		BMIScore:      bmiScore(bmi),
		AgeScore:      ageScore(p.Age),
		ActivityScore: activityScore(p.ActivityLevel),

		RecommendedCalories:       p.RecommendedCalories(),
		RecommendedSteps:          p.RecommendedSteps(),
		RecommendedWorkoutMinutes: p.RecommendedWorkoutMinutes(),
	}
	a.OverallScore = a.BMIScore + a.AgeScore + a.ActivityScore
	a.FitnessLevel = fitnessLevel(a.OverallScore)
	a.Recommendations = recommendations(a.FitnessLevel, p.FitnessGoal)
	return a
}

func bmiScore(bmi float64) int {
	switch {
	case bmi >= 18.5 && bmi < 25:
		return 4
	case bmi >= 25 && bmi < 30:
		return 3
	case bmi >= 17 && bmi < 18.5:
		return 3
	case bmi >= 30 && bmi < 35:
		return 2
	default:
		return 1
	}
}

func ageScore(age int) int {
	switch {
	case age >= 18 && age <= 25:
		return 5
	case age >= 26 && age <= 35:
		return 4
	case age >= 36 && age <= 45:
		return 3
	case age >= 46 && age <= 55:
		return 2
	default:
		return 1
	}
}

func activityScore(level string) int {
	switch level {
	case ActivityVeryActive:
		return 5
	case ActivityActive:
		return 4
	case ActivityLight:
		return 2
	case ActivitySedentary:
		return 1
	default:
		return 3
	}
}

func fitnessLevel(score int) string {
	switch {
	case score >= 12:
		return "Excellent"
	case score >= 10:
		return "Good"
	case score >= 8:
		return "Average"
	case score >= 6:
		return "Below Average"
	default:
		return "Poor"
	}
}

func recommendations(level, goal string) []string {
	var recs []string
	switch level {
	case "Poor", "Below Average":
		recs = append(recs,
			"Start with 10-15 minute daily walks",
			"Focus on building consistency before intensity",
			"Consider consulting a fitness professional",
		)
	case "Average":
		recs = append(recs,
			"Aim for 150 minutes of moderate activity per week",
			"Include 2-3 strength training sessions",
			"Gradually increase workout intensity",
		)
	default:
		recs = append(recs,
			"Maintain your current activity level",
			"Challenge yourself with varied workouts",
			"Consider training for specific events",
		)
	}

	switch goal {
	case GoalWeightLoss:
		recs = append(recs,
			"Create a moderate calorie deficit",
			"Combine cardio with strength training",
			"Track your food intake",
		)
	case GoalMuscleGain:
		recs = append(recs,
			"Focus on progressive strength training",
			"Ensure adequate protein intake",
			"Allow proper recovery between sessions",
		)
	case GoalEndurance:
		recs = append(recs,
			"Gradually increase workout duration",
			"Include interval training",
			"Focus on cardiovascular activities",
		)
	}
	return recs
}
