// Package tracker wires the workout store, the achievement engine and the
// analytics aggregator into the operations served over HTTP and MCP.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittracker/internal/cache"
	"github.com/2beens/fittracker/internal/fitness/achievements"
	"github.com/2beens/fittracker/internal/fitness/analytics"
	"github.com/2beens/fittracker/internal/fitness/goals"
	"github.com/2beens/fittracker/internal/fitness/profile"
	"github.com/2beens/fittracker/internal/fitness/streak"
	"github.com/2beens/fittracker/internal/fitness/workouts"
	"github.com/2beens/fittracker/internal/notify"
	"github.com/2beens/fittracker/internal/telemetry/metrics"
	"github.com/2beens/fittracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

// ErrEvaluation marks a recorded workout whose achievement pass failed.
// The workout itself is persisted; ReevaluateLatest retries the pass.
var ErrEvaluation = errors.New("achievement evaluation failed")

const (
	analyticsKeyPrefix = "analytics::snapshot::"
	maxIDAttempts      = 5
)

type workoutsRepo interface {
	Add(ctx context.Context, session workouts.Session) (*workouts.Session, error)
	ListAll(ctx context.Context) ([]workouts.Session, error)
	List(ctx context.Context, limit int) ([]workouts.Session, error)
	Latest(ctx context.Context) (*workouts.Session, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type statesRepo interface {
	Seed(ctx context.Context, ids []string) error
	List(ctx context.Context) ([]achievements.State, error)
	Get(ctx context.Context, id string) (*achievements.State, error)
	Unlock(ctx context.Context, id string, at time.Time) (bool, error)
	Reset(ctx context.Context) error
}

type goalsRepo interface {
	Get(ctx context.Context) (goals.Goals, error)
	Save(ctx context.Context, g goals.Goals) error
}

type profileRepo interface {
	Get(ctx context.Context) (*profile.Profile, error)
	Save(ctx context.Context, p profile.Profile) error
}

type Topics struct {
	Workouts     string
	Achievements string
}

type NewServiceParams struct {
	Workouts       workoutsRepo
	States         statesRepo
	Goals          goalsRepo
	Profile        profileRepo
	Catalog        *achievements.Catalog
	Cache          cache.Cache
	CacheTTL       time.Duration
	Publisher      notify.Publisher
	Topics         Topics
	MetricsManager *metrics.Manager
	// Location selects the calendar all day based computations run in.
	Location *time.Location
	// Now overrides the clock, mostly in tests.
	Now func() time.Time
}

// RecordResult is what a caller gets back after a workout is stored.
type RecordResult struct {
	Workout       workouts.Session        `json:"workout"`
	Unlocked      []achievements.Unlocked `json:"unlocked"`
	CurrentStreak int                     `json:"currentStreak"`
}

type Service struct {
	workouts  workoutsRepo
	states    statesRepo
	goals     goalsRepo
	profile   profileRepo
	catalog   *achievements.Catalog
	evaluator *achievements.Evaluator

	cache     cache.Cache
	cacheTTL  time.Duration
	publisher notify.Publisher
	topics    Topics

	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(params NewServiceParams) *Service {
	loc := params.Location
	if loc == nil {
		loc = time.Local
	}
	now := params.Now
	if now == nil {
		now = func() time.Time {
			return time.Now().In(loc)
		}
	}
	publisher := params.Publisher
	if publisher == nil {
		publisher = notify.NoopPublisher{}
	}

	return &Service{
		workouts:       params.Workouts,
		states:         params.States,
		goals:          params.Goals,
		profile:        params.Profile,
		catalog:        params.Catalog,
		evaluator:      achievements.NewEvaluator(params.Catalog, params.States, now),
		cache:          params.Cache,
		cacheTTL:       params.CacheTTL,
		publisher:      publisher,
		topics:         params.Topics,
		metricsManager: params.MetricsManager,
		now:            now,
	}
}

// Init seeds a locked state for every catalog definition that has none yet.
func (s *Service) Init(ctx context.Context) error {
	if err := s.states.Seed(ctx, s.catalog.IDs()); err != nil {
		return fmt.Errorf("seed achievement states: %w", err)
	}
	return nil
}

// RecordWorkout appends the session and only then evaluates achievements
// against the full history. When the evaluation fails the stored result is
// still returned together with an error wrapping ErrEvaluation.
func (s *Service) RecordWorkout(ctx context.Context, newSession workouts.NewSession) (_ *RecordResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.tracker.record")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := newSession.ToSession(s.now())
	if err != nil {
		return nil, err
	}

	added, err := s.add(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("add workout: %w", err)
	}
	span.SetAttributes(attribute.Int64("workout.id", added.ID))

	s.metricsManager.CounterWorkoutsRecorded.Inc()
	s.metricsManager.HistogramWorkoutSteps.Observe(float64(added.Steps))

	result := &RecordResult{
		Workout: *added,
	}

	history, err := s.workouts.ListAll(ctx)
	if err != nil {
		return result, fmt.Errorf("%w: list history: %w", ErrEvaluation, err)
	}
	result.CurrentStreak = streak.Current(history, s.now())
	s.metricsManager.GaugeCurrentStreak.Set(float64(result.CurrentStreak))

	unlocked, evalErr := s.evaluate(ctx, *added, history)
	result.Unlocked = unlocked

	s.publishRecorded(ctx, *added, unlocked)

	if evalErr != nil {
		return result, fmt.Errorf("%w: %w", ErrEvaluation, evalErr)
	}
	return result, nil
}

// add stores the session, moving its id forward when two sessions are
// created within the same millisecond.
func (s *Service) add(ctx context.Context, session workouts.Session) (*workouts.Session, error) {
	var err error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		var added *workouts.Session
		added, err = s.workouts.Add(ctx, session)
		if err == nil {
			return added, nil
		}
		if !errors.Is(err, workouts.ErrDuplicateID) {
			return nil, err
		}
		session.ID++
	}
	return nil, err
}

func (s *Service) evaluate(ctx context.Context, session workouts.Session, history []workouts.Session) ([]achievements.Unlocked, error) {
	start := time.Now()
	unlocked, err := s.evaluator.EvaluateAndUnlock(ctx, session, history)
	s.metricsManager.HistogramEvaluateDuration.Observe(time.Since(start).Seconds())

	for _, u := range unlocked {
		s.metricsManager.CounterAchievementsUnlocked.WithLabelValues(string(u.Category)).Inc()
	}
	if err != nil {
		s.metricsManager.CounterUnlockFailures.Add(float64(len(multierr.Errors(err))))
		log.Errorf("evaluate achievements for workout %d: %s", session.ID, err)
	}
	return unlocked, err
}

// ReevaluateLatest runs the achievement pass again for the most recent workout.
func (s *Service) ReevaluateLatest(ctx context.Context) (_ []achievements.Unlocked, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.tracker.reevaluate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	latest, err := s.workouts.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("get latest workout: %w", err)
	}
	history, err := s.workouts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	unlocked, err := s.evaluate(ctx, *latest, history)
	s.publishUnlocked(ctx, unlocked)
	if err != nil {
		return unlocked, fmt.Errorf("%w: %w", ErrEvaluation, err)
	}
	return unlocked, nil
}

// ListWorkouts returns the most recent sessions first. A non-positive limit
// returns the whole history.
func (s *Service) ListWorkouts(ctx context.Context, limit int) ([]workouts.Session, error) {
	if limit <= 0 {
		limit = -1
	}
	sessions, err := s.workouts.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	if sessions == nil {
		sessions = []workouts.Session{}
	}
	return sessions, nil
}

// ClearHistory removes every workout. Achievement states stay untouched.
func (s *Service) ClearHistory(ctx context.Context) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.tracker.clear")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	removed, err := s.workouts.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete workouts: %w", err)
	}
	s.metricsManager.GaugeCurrentStreak.Set(0)

	s.publish(ctx, s.topics.Workouts, notify.EventHistoryCleared, "history", map[string]int64{"removed": removed})
	return removed, nil
}

// Analytics returns today's snapshot, served from the cache when possible.
// The cache key carries a fingerprint of the history, so appending or
// clearing workouts moves readers to a fresh key.
func (s *Service) Analytics(ctx context.Context) (_ analytics.Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.tracker.analytics")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := s.now()
	key, err := s.analyticsKey(ctx, now)
	if err != nil {
		return analytics.Snapshot{}, err
	}

	var snapshot analytics.Snapshot
	found, err := cache.GetJSON(ctx, s.cache, key, &snapshot)
	switch {
	case err != nil:
		s.metricsManager.CounterAnalyticsCache.WithLabelValues("error").Inc()
		log.Warnf("get cached analytics [%s]: %s", key, err)
	case found:
		s.metricsManager.CounterAnalyticsCache.WithLabelValues("hit").Inc()
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return snapshot, nil
	default:
		s.metricsManager.CounterAnalyticsCache.WithLabelValues("miss").Inc()
	}

	history, err := s.workouts.ListAll(ctx)
	if err != nil {
		return analytics.Snapshot{}, fmt.Errorf("list history: %w", err)
	}

	start := time.Now()
	snapshot = analytics.Compute(history, now)
	s.metricsManager.HistogramAnalyticsDuration.Observe(time.Since(start).Seconds())

	// history changed between the fingerprint and the read
	if historyKey(now, history) != key {
		log.Debugf("history moved past [%s], snapshot not cached", key)
		return snapshot, nil
	}
	if err := cache.SetJSON(ctx, s.cache, key, snapshot, s.cacheTTL); err != nil {
		log.Warnf("cache analytics [%s]: %s", key, err)
	}
	return snapshot, nil
}

func (s *Service) DailySeries(ctx context.Context, metric analytics.Metric, days int) ([]analytics.Point, error) {
	history, err := s.workouts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return analytics.DailySeries(history, metric, days, s.now()), nil
}

func (s *Service) Weekly(ctx context.Context, weeks int) ([]analytics.WeeklyProgress, error) {
	history, err := s.workouts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return analytics.Weekly(history, weeks, s.now()), nil
}

func (s *Service) Monthly(ctx context.Context, months int) ([]analytics.MonthlyProgress, error) {
	history, err := s.workouts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return analytics.Monthly(history, months, s.now()), nil
}

func (s *Service) Streaks(ctx context.Context) (streak.Streaks, error) {
	history, err := s.workouts.ListAll(ctx)
	if err != nil {
		return streak.Streaks{}, fmt.Errorf("list history: %w", err)
	}
	return streak.Compute(history, s.now()), nil
}

// Achievements lists every catalog definition joined with its state.
func (s *Service) Achievements(ctx context.Context) ([]achievements.Achievement, error) {
	states, err := s.states.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list achievement states: %w", err)
	}
	return achievements.Join(s.catalog, states), nil
}

func (s *Service) AchievementSummary(ctx context.Context, recent int) (achievements.Summary, error) {
	list, err := s.Achievements(ctx)
	if err != nil {
		return achievements.Summary{}, err
	}
	return achievements.Summarize(list, recent), nil
}

// ResetAchievements locks every achievement again.
func (s *Service) ResetAchievements(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.tracker.achievements.reset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.states.Reset(ctx); err != nil {
		return fmt.Errorf("reset achievement states: %w", err)
	}
	if err := s.Init(ctx); err != nil {
		return err
	}

	s.publish(ctx, s.topics.Achievements, notify.EventAchievementsReset, "achievements", map[string]int{"count": s.catalog.Len()})
	return nil
}

func (s *Service) Goals(ctx context.Context) (goals.Goals, error) {
	g, err := s.goals.Get(ctx)
	if err != nil {
		return goals.Goals{}, fmt.Errorf("get goals: %w", err)
	}
	return g, nil
}

func (s *Service) SaveGoals(ctx context.Context, g goals.Goals) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if err := s.goals.Save(ctx, g); err != nil {
		return fmt.Errorf("save goals: %w", err)
	}
	return nil
}

// TodayGoalProgress compares today's summed sessions with the daily goals.
func (s *Service) TodayGoalProgress(ctx context.Context) (goals.Progress, error) {
	g, err := s.Goals(ctx)
	if err != nil {
		return goals.Progress{}, err
	}
	history, err := s.workouts.ListAll(ctx)
	if err != nil {
		return goals.Progress{}, fmt.Errorf("list history: %w", err)
	}

	today := analytics.Day(history, s.now())
	return goals.ComputeProgress(g, today.Steps, today.DistanceKm, today.DurationSeconds), nil
}

// Profile returns the stored profile, or the defaults when none was saved.
func (s *Service) Profile(ctx context.Context) (profile.Profile, error) {
	p, err := s.profile.Get(ctx)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Default(), nil
		}
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return *p, nil
}

func (s *Service) SaveProfile(ctx context.Context, p profile.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.profile.Save(ctx, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *Service) Assessment(ctx context.Context) (profile.Assessment, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return profile.Assessment{}, err
	}
	return p.Assess(), nil
}

// RollOverDay runs after local midnight: it drops yesterday's analytics
// snapshot and refreshes the streak gauge, which may have fallen to zero.
func (s *Service) RollOverDay(ctx context.Context) error {
	now := s.now()
	if key, err := s.analyticsKey(ctx, now.AddDate(0, 0, -1)); err != nil {
		log.Warnf("previous analytics key: %s", err)
	} else if err := s.cache.Delete(ctx, key); err != nil {
		log.Warnf("drop previous analytics snapshot [%s]: %s", key, err)
	}

	history, err := s.workouts.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	current := streak.Current(history, now)
	s.metricsManager.GaugeCurrentStreak.Set(float64(current))
	log.Debugf("day rolled over, current streak: %d", current)
	return nil
}

func (s *Service) analyticsKey(ctx context.Context, day time.Time) (string, error) {
	count, err := s.workouts.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count workouts: %w", err)
	}

	var latestID int64
	if count > 0 {
		latest, err := s.workouts.Latest(ctx)
		switch {
		case err == nil:
			latestID = latest.ID
		case !errors.Is(err, workouts.ErrNotFound):
			return "", fmt.Errorf("get latest workout: %w", err)
		}
	}
	return fingerprintKey(day, count, latestID), nil
}

// historyKey builds the key from an already loaded history, most recent first.
func historyKey(day time.Time, history []workouts.Session) string {
	var latestID int64
	if len(history) > 0 {
		latestID = history[0].ID
	}
	return fingerprintKey(day, len(history), latestID)
}

func fingerprintKey(day time.Time, count int, latestID int64) string {
	return fmt.Sprintf("%s%s::%d::%d", analyticsKeyPrefix, day.Format("2006-01-02"), count, latestID)
}

func (s *Service) publishRecorded(ctx context.Context, session workouts.Session, unlocked []achievements.Unlocked) {
	s.publish(ctx, s.topics.Workouts, notify.EventWorkoutRecorded, fmt.Sprint(session.ID), session)
	s.publishUnlocked(ctx, unlocked)
}

func (s *Service) publishUnlocked(ctx context.Context, unlocked []achievements.Unlocked) {
	if len(unlocked) == 0 {
		return
	}

	events := make([]notify.Event, 0, len(unlocked))
	for _, u := range unlocked {
		e, err := notify.NewEvent(notify.EventAchievementUnlocked, u.ID, u, u.UnlockedAt)
		if err != nil {
			log.Errorf("new unlock event %s: %s", u.ID, err)
			continue
		}
		events = append(events, e)
	}
	s.send(ctx, s.topics.Achievements, notify.EventAchievementUnlocked, events...)
}

func (s *Service) publish(ctx context.Context, topic, eventType, key string, payload any) {
	e, err := notify.NewEvent(eventType, key, payload, s.now())
	if err != nil {
		log.Errorf("new %s event: %s", eventType, err)
		return
	}
	s.send(ctx, topic, eventType, e)
}

// send never fails the caller: the workout or unlock is already stored.
func (s *Service) send(ctx context.Context, topic, eventType string, events ...notify.Event) {
	if len(events) == 0 {
		return
	}
	status := "ok"
	if err := s.publisher.Publish(ctx, topic, events...); err != nil {
		status = "error"
		log.Errorf("publish %d %s events to [%s]: %s", len(events), eventType, topic, err)
	}
	s.metricsManager.CounterEventsPublished.WithLabelValues(eventType, status).Add(float64(len(events)))
}
