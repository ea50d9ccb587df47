package analytics

import (
	"time"

	"github.com/2beens/fittracker/internal/fitness/workouts"
)

type WeeklyProgress struct {
	WeekStart            string  `json:"weekStart"`
	WeekEnd              string  `json:"weekEnd"`
	TotalSteps           int     `json:"totalSteps"`
	TotalDistanceKm      float64 `json:"totalDistanceKm"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	TotalCalories        float64 `json:"totalCalories"`
	WorkoutCount         int     `json:"workoutCount"`
	// AveragePerDay is steps per calendar day of the week.
	AveragePerDay float64 `json:"averagePerDay"`
}

type MonthlyProgress struct {
	Month                string  `json:"month"`
	MonthName            string  `json:"monthName"`
	TotalSteps           int     `json:"totalSteps"`
	TotalDistanceKm      float64 `json:"totalDistanceKm"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	TotalCalories        float64 `json:"totalCalories"`
	WorkoutCount         int     `json:"workoutCount"`
	AveragePerDay        float64 `json:"averagePerDay"`
	// BestDay is the day with the most steps, nil for a month without workouts.
	BestDay      *string `json:"bestDay"`
	BestDaySteps int     `json:"bestDaySteps"`
}

// bucket sums the per-day totals over [from, from+days).
type bucket struct {
	dayTotals
	bestDay      string
	bestDaySteps int
}

func sumDays(totals map[string]*dayTotals, from time.Time, days int) bucket {
	var b bucket
	for i := 0; i < days; i++ {
		key := from.AddDate(0, 0, i).Format(dayLayout)
		d, ok := totals[key]
		if !ok {
			continue
		}
		b.workouts += d.workouts
		b.steps += d.steps
		b.distanceMeters += d.distanceMeters
		b.durationSeconds += d.durationSeconds
		b.calories += d.calories
		if b.bestDay == "" || d.steps > b.bestDaySteps {
			b.bestDay = key
			b.bestDaySteps = d.steps
		}
	}
	return b
}

// Weekly returns the last `weeks` Monday based weeks, oldest first,
// ending with the week that contains now.
func Weekly(history []workouts.Session, weeks int, now time.Time) []WeeklyProgress {
	if weeks <= 0 {
		return []WeeklyProgress{}
	}

	totals := byDay(history, now.Location())
	today := startOfDay(now)
	monday := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))

	progress := make([]WeeklyProgress, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		start := monday.AddDate(0, 0, -7*i)
		b := sumDays(totals, start, 7)
		progress = append(progress, WeeklyProgress{
			WeekStart:            start.Format(dayLayout),
			WeekEnd:              start.AddDate(0, 0, 6).Format(dayLayout),
			TotalSteps:           b.steps,
			TotalDistanceKm:      b.distanceMeters / 1000,
			TotalDurationMinutes: b.durationSeconds / 60,
			TotalCalories:        b.calories,
			WorkoutCount:         b.workouts,
			AveragePerDay:        float64(b.steps) / 7,
		})
	}
	return progress
}

// Monthly returns the last `months` calendar months, oldest first,
// ending with the month that contains now.
func Monthly(history []workouts.Session, months int, now time.Time) []MonthlyProgress {
	if months <= 0 {
		return []MonthlyProgress{}
	}

	totals := byDay(history, now.Location())
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	progress := make([]MonthlyProgress, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := firstOfMonth.AddDate(0, -i, 0)
		daysInMonth := start.AddDate(0, 1, -1).Day()
		b := sumDays(totals, start, daysInMonth)

		mp := MonthlyProgress{
			Month:                start.Format("2006-01"),
			MonthName:            start.Format("January 2006"),
			TotalSteps:           b.steps,
			TotalDistanceKm:      b.distanceMeters / 1000,
			TotalDurationMinutes: b.durationSeconds / 60,
			TotalCalories:        b.calories,
			WorkoutCount:         b.workouts,
			AveragePerDay:        float64(b.steps) / float64(daysInMonth),
		}
		if b.bestDay != "" {
			bestDay := b.bestDay
			mp.BestDay = &bestDay
			mp.BestDaySteps = b.bestDaySteps
		}
		progress = append(progress, mp)
	}
	return progress
}
