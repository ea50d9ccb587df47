// Package analytics derives summary statistics and chart series from the
// workout history. Everything here is a pure function of the history passed in
// and the caller's clock; nothing is stored.
package analytics

import (
	"time"

	"github.com/2beens/fittracker/internal/fitness/streak"
	"github.com/2beens/fittracker/internal/fitness/workouts"
)

const dayLayout = "2006-01-02"

// Snapshot holds totals in raw units, averages in display units (km, minutes)
// and personal records.
type Snapshot struct {
	TotalWorkouts        int     `json:"totalWorkouts"`
	TotalSteps           int     `json:"totalSteps"`
	TotalDistanceMeters  float64 `json:"totalDistanceMeters"`
	TotalDurationSeconds int     `json:"totalDurationSeconds"`
	TotalCalories        float64 `json:"totalCalories"`

	AverageSteps           float64 `json:"averageSteps"`
	AverageDistanceKm      float64 `json:"averageDistanceKm"`
	AverageDurationMinutes float64 `json:"averageDurationMinutes"`
	AverageCalories        float64 `json:"averageCalories"`

	LongestWorkoutSeconds int     `json:"longestWorkoutSeconds"`
	MostStepsInSession    int     `json:"mostStepsInSession"`
	LongestDistanceKm     float64 `json:"longestDistanceKm"`

	CurrentStreak int `json:"currentStreak"`
	BestStreak    int `json:"bestStreak"`
}

// Compute aggregates the whole history. An empty history yields the zero Snapshot.
func Compute(history []workouts.Session, now time.Time) Snapshot {
	if len(history) == 0 {
		return Snapshot{}
	}

	var s Snapshot
	var longestMeters float64
	for _, w := range history {
		s.TotalSteps += w.Steps
		s.TotalDistanceMeters += w.DistanceMeters
		s.TotalDurationSeconds += w.DurationSeconds
		s.TotalCalories += w.CaloriesBurned

		s.LongestWorkoutSeconds = max(s.LongestWorkoutSeconds, w.DurationSeconds)
		s.MostStepsInSession = max(s.MostStepsInSession, w.Steps)
		longestMeters = max(longestMeters, w.DistanceMeters)
	}

	n := float64(len(history))
	s.TotalWorkouts = len(history)
	s.AverageSteps = float64(s.TotalSteps) / n
	s.AverageDistanceKm = s.TotalDistanceMeters / 1000 / n
	s.AverageDurationMinutes = float64(s.TotalDurationSeconds) / 60 / n
	s.AverageCalories = s.TotalCalories / n
	s.LongestDistanceKm = longestMeters / 1000

	streaks := streak.Compute(history, now)
	s.CurrentStreak = streaks.Current
	s.BestStreak = streaks.Best

	return s
}

type dayTotals struct {
	workouts        int
	steps           int
	distanceMeters  float64
	durationSeconds int
	calories        float64
}

func (d *dayTotals) add(w workouts.Session) {
	d.workouts++
	d.steps += w.Steps
	d.distanceMeters += w.DistanceMeters
	d.durationSeconds += w.DurationSeconds
	d.calories += w.CaloriesBurned
}

// byDay sums sessions per local calendar day. Sessions with malformed dates are skipped.
func byDay(history []workouts.Session, loc *time.Location) map[string]*dayTotals {
	days := make(map[string]*dayTotals)
	for _, w := range history {
		t, err := w.Time(loc)
		if err != nil {
			continue
		}
		key := t.Format(dayLayout)
		d, ok := days[key]
		if !ok {
			d = &dayTotals{}
			days[key] = d
		}
		d.add(w)
	}
	return days
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayTotals are the summed values of the sessions completed on one calendar day.
type DayTotals struct {
	Date            string  `json:"date"`
	Workouts        int     `json:"workouts"`
	Steps           int     `json:"steps"`
	DistanceKm      float64 `json:"distanceKm"`
	DurationSeconds int     `json:"durationSeconds"`
	Calories        float64 `json:"calories"`
}

// Day sums the sessions of the calendar day containing day, in day's location.
func Day(history []workouts.Session, day time.Time) DayTotals {
	key := day.Format(dayLayout)
	totals := DayTotals{Date: key}

	d, ok := byDay(history, day.Location())[key]
	if !ok {
		return totals
	}
	totals.Workouts = d.workouts
	totals.Steps = d.steps
	totals.DistanceKm = d.distanceMeters / 1000
	totals.DurationSeconds = d.durationSeconds
	totals.Calories = d.calories
	return totals
}
