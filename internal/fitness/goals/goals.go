package goals

import (
	"errors"
	"fmt"

	"github.com/2beens/fittracker/pkg"
)

var ErrInvalidGoals = errors.New("invalid goals")

// Goals are the daily targets of the user.
type Goals struct {
	Steps           int     `json:"steps" db:"steps"`
	DistanceKm      float64 `json:"distanceKm" db:"distance_km"`
	DurationSeconds int     `json:"durationSeconds" db:"duration_seconds"`
}

func Default() Goals {
	return Goals{
		Steps:           10000,
		DistanceKm:      5,
		DurationSeconds: 1800,
	}
}

func (g Goals) Validate() error {
	if g.Steps < 0 || g.DistanceKm < 0 || g.DurationSeconds < 0 {
		return fmt.Errorf("%w: negative target", ErrInvalidGoals)
	}
	return nil
}

// Progress compares one day of activity with the goals. Ratios are clamped
// to [0, 1]; a zero goal yields a zero ratio.
type Progress struct {
	Goals           Goals   `json:"goals"`
	Steps           int     `json:"steps"`
	DistanceKm      float64 `json:"distanceKm"`
	DurationSeconds int     `json:"durationSeconds"`
	StepsRatio      float64 `json:"stepsRatio"`
	DistanceRatio   float64 `json:"distanceRatio"`
	DurationRatio   float64 `json:"durationRatio"`
	// Completed is true when every non-zero goal is reached.
	Completed bool `json:"completed"`
}

func ComputeProgress(g Goals, steps int, distanceKm float64, durationSeconds int) Progress {
	p := Progress{
		Goals:           g,
		Steps:           steps,
		DistanceKm:      distanceKm,
		DurationSeconds: durationSeconds,
		StepsRatio:      pkg.ClampRatio(float64(steps), float64(g.Steps)),
		DistanceRatio:   pkg.ClampRatio(distanceKm, g.DistanceKm),
		DurationRatio:   pkg.ClampRatio(float64(durationSeconds), float64(g.DurationSeconds)),
	}

	p.Completed = reached(p.StepsRatio, g.Steps > 0) &&
		reached(p.DistanceRatio, g.DistanceKm > 0) &&
		reached(p.DurationRatio, g.DurationSeconds > 0)
	return p
}

func reached(ratio float64, hasGoal bool) bool {
	return !hasGoal || ratio >= 1
}
