package workouts

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the textual completion timestamp stored with every session.
// It carries no zone; it is read in the configured local calendar.
const DateLayout = "2006-01-02 15:04:05"

var (
	ErrInvalidSession = errors.New("invalid workout session")
	ErrDuplicateID    = errors.New("workout session id already exists")
	ErrNotFound       = errors.New("workout session not found")
)

// Session is one completed, immutable workout.
type Session struct {
	// ID is derived from the creation instant in unix milliseconds.
	ID              int64   `json:"id" db:"id"`
	Date            string  `json:"date" db:"date"`
	DurationSeconds int     `json:"durationSeconds" db:"duration_seconds"`
	Steps           int     `json:"steps" db:"steps"`
	DistanceMeters  float64 `json:"distanceMeters" db:"distance_meters"`
	CaloriesBurned  float64 `json:"caloriesBurned" db:"calories_burned"`
}

// Time parses the session date in loc. Malformed dates return an error and
// are skipped by every calendar based computation.
func (s Session) Time(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s.Date, loc)
}

func (s Session) DistanceKm() float64 {
	return s.DistanceMeters / 1000
}

func (s Session) DurationMinutes() float64 {
	return float64(s.DurationSeconds) / 60
}

func (s Session) Validate() error {
	if s.DurationSeconds < 0 || s.Steps < 0 || s.DistanceMeters < 0 || s.CaloriesBurned < 0 {
		return fmt.Errorf("%w: negative values", ErrInvalidSession)
	}
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return fmt.Errorf("%w: date %q: %s", ErrInvalidSession, s.Date, err)
	}
	return nil
}

// NewSession is the payload of a just-finished workout. CaloriesBurned is
// estimated from the other values when omitted, and CompletedAt defaults to now.
type NewSession struct {
	CompletedAt     string   `json:"completedAt,omitempty"`
	DurationSeconds int      `json:"durationSeconds"`
	Steps           int      `json:"steps"`
	DistanceMeters  float64  `json:"distanceMeters"`
	CaloriesBurned  *float64 `json:"caloriesBurned,omitempty"`
}

// ToSession builds the stored session, stamping it with now.
func (n NewSession) ToSession(now time.Time) (Session, error) {
	s := Session{
		ID:              now.UnixMilli(),
		Date:            now.Format(DateLayout),
		DurationSeconds: n.DurationSeconds,
		Steps:           n.Steps,
		DistanceMeters:  n.DistanceMeters,
	}

	if n.CompletedAt != "" {
		completedAt, err := time.ParseInLocation(DateLayout, n.CompletedAt, now.Location())
		if err != nil {
			return Session{}, fmt.Errorf("%w: completedAt %q", ErrInvalidSession, n.CompletedAt)
		}
		s.Date = completedAt.Format(DateLayout)
	}

	if n.CaloriesBurned != nil {
		s.CaloriesBurned = *n.CaloriesBurned
	} else {
		s.CaloriesBurned = EstimateCalories(s.Steps, s.DistanceMeters, s.DurationSeconds)
	}

	return s, s.Validate()
}

const (
	caloriesPerStep   = 0.04
	caloriesPerKm     = 50.0
	caloriesPerMinute = 5.0
)

// EstimateCalories is a rough kcal estimate for sessions recorded without a measured value.
func EstimateCalories(steps int, distanceMeters float64, durationSeconds int) float64 {
	return float64(steps)*caloriesPerStep +
		distanceMeters/1000*caloriesPerKm +
		float64(durationSeconds)/60*caloriesPerMinute
}
