package achievements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittracker/internal/fitness/streak"
	"github.com/2beens/fittracker/internal/fitness/workouts"
	"github.com/2beens/fittracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=evaluator_mocks_test.go -package=achievements_test

type stateRepo interface {
	Get(ctx context.Context, id string) (*State, error)
	Unlock(ctx context.Context, id string, at time.Time) (bool, error)
}

// Unlocked is a definition that flipped to unlocked during one evaluation pass.
type Unlocked struct {
	Definition
	UnlockedAt time.Time `json:"unlockedAt"`
}

type Evaluator struct {
	catalog *Catalog
	states  stateRepo
	now     func() time.Time
}

// NewEvaluator creates an evaluator reading the clock from now.
// A nil now falls back to time.Now.
func NewEvaluator(catalog *Catalog, states stateRepo, now func() time.Time) *Evaluator {
	if now == nil {
		now = time.Now
	}
	return &Evaluator{
		catalog: catalog,
		states:  states,
		now:     now,
	}
}

// NewFacts gathers the values rules look at. The history must already contain session.
func NewFacts(session workouts.Session, history []workouts.Session, now time.Time) Facts {
	// a malformed date leaves the zero time, which no time-of-day rule matches
	sessionTime, _ := session.Time(now.Location())
	return Facts{
		Session:       session,
		SessionTime:   sessionTime,
		WorkoutCount:  len(history),
		CurrentStreak: streak.Current(history, now),
	}
}

// EvaluateAndUnlock unlocks every locked definition whose rule the new session
// satisfies. All unlocks of one pass share a single timestamp. Failing writes do
// not stop the pass; their errors are combined and returned next to the unlocks
// that did succeed.
func (e *Evaluator) EvaluateAndUnlock(ctx context.Context, session workouts.Session, history []workouts.Session) (_ []Unlocked, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "achievements.evaluate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := e.now()
	facts := NewFacts(session, history, now)
	span.SetAttributes(
		attribute.Int64("workout.id", session.ID),
		attribute.Int("workouts.count", facts.WorkoutCount),
		attribute.Int("streak.current", facts.CurrentStreak),
	)

	unlocked := make([]Unlocked, 0)
	for _, def := range e.catalog.Definitions() {
		if !def.Rule.Satisfied(facts) {
			continue
		}

		state, getErr := e.states.Get(ctx, def.ID)
		if getErr != nil {
			if errors.Is(getErr, ErrNotFound) {
				log.Debugf("achievement %s has no state, skipping", def.ID)
				continue
			}
			err = multierr.Append(err, fmt.Errorf("get state %s: %w", def.ID, getErr))
			continue
		}
		if state.Unlocked {
			continue
		}

		flipped, unlockErr := e.states.Unlock(ctx, def.ID, now)
		if unlockErr != nil {
			err = multierr.Append(err, unlockErr)
			continue
		}
		if !flipped {
			// unlocked concurrently between Get and Unlock
			continue
		}

		unlocked = append(unlocked, Unlocked{
			Definition: def,
			UnlockedAt: now,
		})
	}

	span.SetAttributes(attribute.Int("achievements.unlocked", len(unlocked)))
	return unlocked, err
}
