// Package streak derives consecutive-day workout runs from the session history.
//
// Days are calendar days in a caller supplied location. Sessions whose date
// text does not parse are ignored.
package streak

import (
	"sort"
	"time"

	"github.com/2beens/fittracker/internal/fitness/workouts"
)

const dayLayout = "2006-01-02"

// Streaks is the pair reported by the analytics endpoints.
type Streaks struct {
	Current int `json:"currentStreak"`
	Best    int `json:"bestStreak"`
}

func Compute(history []workouts.Session, now time.Time) Streaks {
	days := DistinctDays(history, now.Location())
	return Streaks{
		Current: currentFromDays(days, now),
		Best:    bestFromDays(days),
	}
}

// DistinctDays returns each calendar day with at least one session, ascending.
func DistinctDays(history []workouts.Session, loc *time.Location) []time.Time {
	seen := make(map[string]time.Time, len(history))
	for _, s := range history {
		t, err := s.Time(loc)
		if err != nil {
			continue
		}
		day := startOfDay(t)
		seen[day.Format(dayLayout)] = day
	}

	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}

// Current counts consecutive days ending today. The most recent workout day
// must be today itself: a history ending yesterday yields 0. Days after today
// (future dated sessions) also break the run.
func Current(history []workouts.Session, now time.Time) int {
	return currentFromDays(DistinctDays(history, now.Location()), now)
}

// Best is the longest run of consecutive days anywhere in the history.
func Best(history []workouts.Session, loc *time.Location) int {
	return bestFromDays(DistinctDays(history, loc))
}

func currentFromDays(days []time.Time, now time.Time) int {
	today := startOfDay(now)
	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		expected := today.AddDate(0, 0, -streak)
		if !days[i].Equal(expected) {
			break
		}
		streak++
	}
	return streak
}

func bestFromDays(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		best = max(best, run)
	}
	return best
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
