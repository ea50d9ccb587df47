// Package fitnesstest holds helpers shared by the fitness package tests.
package fitnesstest

import (
	"time"

	"github.com/2beens/fittracker/internal/fitness/workouts"

	"github.com/brianvoe/gofakeit/v6"
)

// Session builds a session completed at the given instant.
func Session(at time.Time, steps int, distanceMeters float64, durationSeconds int) workouts.Session {
	return workouts.Session{
		ID:              at.UnixMilli(),
		Date:            at.Format(workouts.DateLayout),
		DurationSeconds: durationSeconds,
		Steps:           steps,
		DistanceMeters:  distanceMeters,
		CaloriesBurned:  workouts.EstimateCalories(steps, distanceMeters, durationSeconds),
	}
}

// OnDays returns one small session at 10:00 on each of the given days back from today
// (0 = today), most recent first.
func OnDays(today time.Time, daysAgo ...int) []workouts.Session {
	sessions := make([]workouts.Session, 0, len(daysAgo))
	for _, d := range daysAgo {
		day := time.Date(today.Year(), today.Month(), today.Day(), 10, 0, 0, 0, today.Location()).AddDate(0, 0, -d)
		sessions = append(sessions, Session(day, 1000, 800, 600))
	}
	return sessions
}

// Random generates n sessions spread over the days before end, seeded for repeatable tests.
func Random(seed int64, n int, end time.Time) []workouts.Session {
	faker := gofakeit.New(seed)
	sessions := make([]workouts.Session, 0, n)
	for i := 0; i < n; i++ {
		at := end.Add(-time.Duration(faker.IntRange(0, 60*24)) * time.Hour).
			Add(-time.Duration(faker.IntRange(0, 59)) * time.Minute)
		s := Session(
			at,
			faker.IntRange(0, 20000),
			faker.Float64Range(0, 15000),
			faker.IntRange(60, 7200),
		)
		s.ID += int64(i)
		sessions = append(sessions, s)
	}
	return sessions
}
