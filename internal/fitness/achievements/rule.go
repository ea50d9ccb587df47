package achievements

import (
	"fmt"
	"time"

	"github.com/2beens/fittracker/internal/fitness/workouts"
)

type Category string

const (
	CategorySteps    Category = "steps"
	CategoryDistance Category = "distance"
	CategoryDuration Category = "duration"
	CategoryWorkouts Category = "workouts"
	CategoryStreak   Category = "streak"
	CategoryCalories Category = "calories"
	CategorySpecial  Category = "special"
)

var AllCategories = []Category{
	CategorySteps,
	CategoryDistance,
	CategoryDuration,
	CategoryWorkouts,
	CategoryStreak,
	CategoryCalories,
	CategorySpecial,
}

func ParseCategory(s string) (Category, error) {
	for _, c := range AllCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown achievement category: %q", s)
}

// Facts is everything a rule may look at for one evaluation pass.
type Facts struct {
	Session workouts.Session
	// SessionTime is the parsed session date; zero when the date is malformed.
	SessionTime   time.Time
	WorkoutCount  int
	CurrentStreak int
}

// Rule is the unlock condition of a definition. The set of implementations
// is closed: every category has exactly one rule type below.
type Rule interface {
	Category() Category
	Target() float64
	Satisfied(f Facts) bool

	sealed()
}

type StepsRule struct{ MinSteps int }

func (r StepsRule) Category() Category { return CategorySteps }
func (r StepsRule) Target() float64 { return float64(r.MinSteps) }
func (r StepsRule) Satisfied(f Facts) bool { return f.Session.Steps >= r.MinSteps }
func (StepsRule) sealed() {}

// DistanceRule compares the session distance in meters.
type DistanceRule struct{ MinMeters float64 }

func (r DistanceRule) Category() Category { return CategoryDistance }
func (r DistanceRule) Target() float64 { return r.MinMeters }
func (r DistanceRule) Satisfied(f Facts) bool { return f.Session.DistanceMeters >= r.MinMeters }
func (DistanceRule) sealed() {}

type DurationRule struct{ MinSeconds int }

func (r DurationRule) Category() Category { return CategoryDuration }
func (r DurationRule) Target() float64 { return float64(r.MinSeconds) }
func (r DurationRule) Satisfied(f Facts) bool { return f.Session.DurationSeconds >= r.MinSeconds }
func (DurationRule) sealed() {}

type WorkoutCountRule struct{ MinWorkouts int }

func (r WorkoutCountRule) Category() Category { return CategoryWorkouts }
func (r WorkoutCountRule) Target() float64 { return float64(r.MinWorkouts) }
func (r WorkoutCountRule) Satisfied(f Facts) bool { return f.WorkoutCount >= r.MinWorkouts }
func (WorkoutCountRule) sealed() {}

type StreakRule struct{ MinDays int }

func (r StreakRule) Category() Category { return CategoryStreak }
func (r StreakRule) Target() float64 { return float64(r.MinDays) }
func (r StreakRule) Satisfied(f Facts) bool { return f.CurrentStreak >= r.MinDays }
func (StreakRule) sealed() {}

type CaloriesRule struct{ MinCalories float64 }

func (r CaloriesRule) Category() Category { return CategoryCalories }
func (r CaloriesRule) Target() float64 { return r.MinCalories }
func (r CaloriesRule) Satisfied(f Facts) bool { return f.Session.CaloriesBurned >= r.MinCalories }
func (CaloriesRule) sealed() {}

// TimeOfDayRule matches sessions completed within [FromHour, ToHour).
// A window with FromHour > ToHour wraps past midnight.
type TimeOfDayRule struct {
	FromHour int
	ToHour   int
}

func (r TimeOfDayRule) Category() Category { return CategorySpecial }
func (r TimeOfDayRule) Target() float64 { return 1 }
func (TimeOfDayRule) sealed() {}

func (r TimeOfDayRule) Satisfied(f Facts) bool {
	if f.SessionTime.IsZero() {
		return false
	}
	h := f.SessionTime.Hour()
	if r.FromHour <= r.ToHour {
		return h >= r.FromHour && h < r.ToHour
	}
	return h >= r.FromHour || h < r.ToHour
}

// newRule builds the rule for a catalog entry.
func newRule(category Category, target float64, fromHour, toHour int) (Rule, error) {
	if target < 0 {
		return nil, fmt.Errorf("negative target %v", target)
	}

	switch category {
	case CategorySteps:
		return StepsRule{MinSteps: int(target)}, nil
	case CategoryDistance:
		return DistanceRule{MinMeters: target}, nil
	case CategoryDuration:
		return DurationRule{MinSeconds: int(target)}, nil
	case CategoryWorkouts:
		return WorkoutCountRule{MinWorkouts: int(target)}, nil
	case CategoryStreak:
		return StreakRule{MinDays: int(target)}, nil
	case CategoryCalories:
		return CaloriesRule{MinCalories: target}, nil
	case CategorySpecial:
		if fromHour < 0 || fromHour > 23 || toHour < 0 || toHour > 24 || fromHour == toHour {
			return nil, fmt.Errorf("invalid hour window [%d, %d)", fromHour, toHour)
		}
		return TimeOfDayRule{FromHour: fromHour, ToHour: toHour}, nil
	default:
		return nil, fmt.Errorf("unknown achievement category: %q", category)
	}
}
