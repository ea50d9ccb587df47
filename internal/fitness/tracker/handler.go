package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittracker/internal/fitness/achievements"
	"github.com/2beens/fittracker/internal/fitness/analytics"
	"github.com/2beens/fittracker/internal/fitness/goals"
	"github.com/2beens/fittracker/internal/fitness/profile"
	"github.com/2beens/fittracker/internal/fitness/streak"
	"github.com/2beens/fittracker/internal/fitness/workouts"
	"github.com/2beens/fittracker/internal/middleware"
	"github.com/2beens/fittracker/internal/telemetry/metrics"
	"github.com/2beens/fittracker/internal/telemetry/tracing"
	"github.com/2beens/fittracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=tracker_test

type trackerService interface {
	RecordWorkout(ctx context.Context, newSession workouts.NewSession) (*RecordResult, error)
	ReevaluateLatest(ctx context.Context) ([]achievements.Unlocked, error)
	ListWorkouts(ctx context.Context, limit int) ([]workouts.Session, error)
	ClearHistory(ctx context.Context) (int64, error)
	Analytics(ctx context.Context) (analytics.Snapshot, error)
	DailySeries(ctx context.Context, metric analytics.Metric, days int) ([]analytics.Point, error)
	Weekly(ctx context.Context, weeks int) ([]analytics.WeeklyProgress, error)
	Monthly(ctx context.Context, months int) ([]analytics.MonthlyProgress, error)
	Streaks(ctx context.Context) (streak.Streaks, error)
	Achievements(ctx context.Context) ([]achievements.Achievement, error)
	AchievementSummary(ctx context.Context, recent int) (achievements.Summary, error)
	ResetAchievements(ctx context.Context) error
	Goals(ctx context.Context) (goals.Goals, error)
	SaveGoals(ctx context.Context, g goals.Goals) error
	TodayGoalProgress(ctx context.Context) (goals.Progress, error)
	Profile(ctx context.Context) (profile.Profile, error)
	SaveProfile(ctx context.Context, p profile.Profile) error
	Assessment(ctx context.Context) (profile.Assessment, error)
}

const (
	defaultDays          = 30
	defaultWeeks         = 4
	defaultMonths        = 6
	defaultRecentUnlocks = 5
	maxQueryValue        = 3650
)

type ClearHistoryResponse struct {
	Removed int64 `json:"removed"`
}

type ReevaluateResponse struct {
	Unlocked []achievements.Unlocked `json:"unlocked"`
}

type Handler struct {
	service           trackerService
	defaultSeriesDays int
}

func NewHandler(service trackerService, defaultSeriesDays int) *Handler {
	if defaultSeriesDays <= 0 {
		defaultSeriesDays = defaultDays
	}
	return &Handler{
		service:           service,
		defaultSeriesDays: defaultSeriesDays,
	}
}

// SetupRoutes registers the tracker endpoints. Recording workouts is rate
// limited when a limiter is given.
func (handler *Handler) SetupRoutes(
	r *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	workoutsAllowedPerMin int,
) {
	var recordHandler http.Handler = http.HandlerFunc(handler.HandleRecordWorkout)
	if rateLimiter != nil {
		recordHandler = middleware.RateLimit(rateLimiter, "workouts", workoutsAllowedPerMin, metricsManager)(recordHandler)
	}

	r.Handle("/workouts", recordHandler).Methods("POST", "OPTIONS").Name("record-workout")
	r.HandleFunc("/workouts", handler.HandleListWorkouts).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts", handler.HandleClearHistory).Methods("DELETE", "OPTIONS").Name("clear-workouts")

	r.HandleFunc("/analytics", handler.HandleAnalytics).Methods("GET", "OPTIONS").Name("analytics")
	r.HandleFunc("/analytics/streaks", handler.HandleStreaks).Methods("GET", "OPTIONS").Name("streaks")
	r.HandleFunc("/analytics/series/{metric}", handler.HandleDailySeries).Methods("GET", "OPTIONS").Name("daily-series")
	r.HandleFunc("/analytics/weekly", handler.HandleWeekly).Methods("GET", "OPTIONS").Name("weekly-progress")
	r.HandleFunc("/analytics/monthly", handler.HandleMonthly).Methods("GET", "OPTIONS").Name("monthly-progress")

	r.HandleFunc("/achievements", handler.HandleAchievements).Methods("GET", "OPTIONS").Name("achievements")
	r.HandleFunc("/achievements", handler.HandleResetAchievements).Methods("DELETE", "OPTIONS").Name("reset-achievements")
	r.HandleFunc("/achievements/summary", handler.HandleAchievementSummary).Methods("GET", "OPTIONS").Name("achievements-summary")
	r.HandleFunc("/achievements/evaluate", handler.HandleReevaluate).Methods("POST", "OPTIONS").Name("reevaluate")

	r.HandleFunc("/goals", handler.HandleGetGoals).Methods("GET", "OPTIONS").Name("get-goals")
	r.HandleFunc("/goals", handler.HandleSaveGoals).Methods("PUT", "OPTIONS").Name("save-goals")
	r.HandleFunc("/goals/progress", handler.HandleGoalProgress).Methods("GET", "OPTIONS").Name("goal-progress")

	r.HandleFunc("/profile", handler.HandleGetProfile).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profile", handler.HandleSaveProfile).Methods("PUT", "OPTIONS").Name("save-profile")
	r.HandleFunc("/profile/assessment", handler.HandleAssessment).Methods("GET", "OPTIONS").Name("assessment")
}

func (handler *Handler) HandleRecordWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.record")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var newSession workouts.NewSession
	if err := json.NewDecoder(r.Body).Decode(&newSession); err != nil {
		log.Tracef("record workout, unmarshal json params: %s", err)
		http.Error(w, "record workout failed", http.StatusBadRequest)
		return
	}

	result, err := handler.service.RecordWorkout(ctx, newSession)
	switch {
	case errors.Is(err, workouts.ErrInvalidSession):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrEvaluation) && result != nil:
		// stored anyway; the client can retry the evaluation later
		log.Warnf("workout %d recorded, evaluation failed: %s", result.Workout.ID, err)
	case err != nil:
		log.Errorf("failed to record workout: %s", err)
		http.Error(w, "error, failed to record workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout recorded: %d, unlocked: %d", result.Workout.ID, len(result.Unlocked))
	pkg.WriteJSONResponse(w, result, http.StatusCreated)
}

func (handler *Handler) HandleListWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		http.Error(w, "error, limit NaN or out of range", http.StatusBadRequest)
		return
	}

	sessions, err := handler.service.ListWorkouts(ctx, limit)
	if err != nil {
		log.Errorf("list workouts: %s", err)
		http.Error(w, "error, failed to list workouts", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, sessions, http.StatusOK)
}

func (handler *Handler) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.clear")
	defer span.End()

	removed, err := handler.service.ClearHistory(ctx)
	if err != nil {
		log.Errorf("clear workout history: %s", err)
		http.Error(w, "error, failed to clear history", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, ClearHistoryResponse{Removed: removed}, http.StatusOK)
}

func (handler *Handler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.get")
	defer span.End()

	snapshot, err := handler.service.Analytics(ctx)
	if err != nil {
		log.Errorf("get analytics: %s", err)
		http.Error(w, "error, failed to get analytics", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, snapshot, http.StatusOK)
}

func (handler *Handler) HandleStreaks(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.streaks")
	defer span.End()

	streaks, err := handler.service.Streaks(ctx)
	if err != nil {
		log.Errorf("get streaks: %s", err)
		http.Error(w, "error, failed to get streaks", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, streaks, http.StatusOK)
}

func (handler *Handler) HandleDailySeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.series")
	defer span.End()

	metric, err := analytics.ParseMetric(mux.Vars(r)["metric"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	days, err := queryInt(r, "days", handler.defaultSeriesDays)
	if err != nil {
		http.Error(w, "error, days NaN or out of range", http.StatusBadRequest)
		return
	}

	points, err := handler.service.DailySeries(ctx, metric, days)
	if err != nil {
		log.Errorf("get %s series: %s", metric, err)
		http.Error(w, "error, failed to get series", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, points, http.StatusOK)
}

func (handler *Handler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.weekly")
	defer span.End()

	weeks, err := queryInt(r, "weeks", defaultWeeks)
	if err != nil {
		http.Error(w, "error, weeks NaN or out of range", http.StatusBadRequest)
		return
	}

	progress, err := handler.service.Weekly(ctx, weeks)
	if err != nil {
		log.Errorf("get weekly progress: %s", err)
		http.Error(w, "error, failed to get weekly progress", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, progress, http.StatusOK)
}

func (handler *Handler) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.monthly")
	defer span.End()

	months, err := queryInt(r, "months", defaultMonths)
	if err != nil {
		http.Error(w, "error, months NaN or out of range", http.StatusBadRequest)
		return
	}

	progress, err := handler.service.Monthly(ctx, months)
	if err != nil {
		log.Errorf("get monthly progress: %s", err)
		http.Error(w, "error, failed to get monthly progress", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, progress, http.StatusOK)
}

func (handler *Handler) HandleAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.list")
	defer span.End()

	list, err := handler.service.Achievements(ctx)
	if err != nil {
		log.Errorf("list achievements: %s", err)
		http.Error(w, "error, failed to list achievements", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, list, http.StatusOK)
}

func (handler *Handler) HandleAchievementSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.summary")
	defer span.End()

	recent, err := queryInt(r, "recent", defaultRecentUnlocks)
	if err != nil {
		http.Error(w, "error, recent NaN or out of range", http.StatusBadRequest)
		return
	}

	summary, err := handler.service.AchievementSummary(ctx, recent)
	if err != nil {
		log.Errorf("get achievements summary: %s", err)
		http.Error(w, "error, failed to get achievements summary", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, summary, http.StatusOK)
}

func (handler *Handler) HandleReevaluate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.evaluate")
	defer span.End()

	unlocked, err := handler.service.ReevaluateLatest(ctx)
	if err != nil {
		if errors.Is(err, workouts.ErrNotFound) {
			http.Error(w, "error, no workouts recorded", http.StatusNotFound)
			return
		}
		log.Errorf("reevaluate latest workout: %s", err)
		http.Error(w, "error, failed to evaluate achievements", http.StatusInternalServerError)
		return
	}
	if unlocked == nil {
		unlocked = []achievements.Unlocked{}
	}
	pkg.WriteJSONResponse(w, ReevaluateResponse{Unlocked: unlocked}, http.StatusOK)
}

func (handler *Handler) HandleResetAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.reset")
	defer span.End()

	if err := handler.service.ResetAchievements(ctx); err != nil {
		log.Errorf("reset achievements: %s", err)
		http.Error(w, "error, failed to reset achievements", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) HandleGetGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.get")
	defer span.End()

	g, err := handler.service.Goals(ctx)
	if err != nil {
		log.Errorf("get goals: %s", err)
		http.Error(w, "error, failed to get goals", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, g, http.StatusOK)
}

func (handler *Handler) HandleSaveGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.save")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var g goals.Goals
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		log.Tracef("save goals, unmarshal json params: %s", err)
		http.Error(w, "save goals failed", http.StatusBadRequest)
		return
	}

	if err := handler.service.SaveGoals(ctx, g); err != nil {
		if errors.Is(err, goals.ErrInvalidGoals) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("save goals: %s", err)
		http.Error(w, "error, failed to save goals", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, g, http.StatusOK)
}

func (handler *Handler) HandleGoalProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.progress")
	defer span.End()

	progress, err := handler.service.TodayGoalProgress(ctx)
	if err != nil {
		log.Errorf("get goal progress: %s", err)
		http.Error(w, "error, failed to get goal progress", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, progress, http.StatusOK)
}

func (handler *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	p, err := handler.service.Profile(ctx)
	if err != nil {
		log.Errorf("get profile: %s", err)
		http.Error(w, "error, failed to get profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, p, http.StatusOK)
}

func (handler *Handler) HandleSaveProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.save")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var p profile.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		log.Tracef("save profile, unmarshal json params: %s", err)
		http.Error(w, "save profile failed", http.StatusBadRequest)
		return
	}

	if err := handler.service.SaveProfile(ctx, p); err != nil {
		if errors.Is(err, profile.ErrInvalidProfile) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("save profile: %s", err)
		http.Error(w, "error, failed to save profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, p, http.StatusOK)
}

func (handler *Handler) HandleAssessment(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.assessment")
	defer span.End()

	assessment, err := handler.service.Assessment(ctx)
	if err != nil {
		log.Errorf("get assessment: %s", err)
		http.Error(w, "error, failed to get assessment", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, assessment, http.StatusOK)
}

// queryInt reads a non-negative integer query value, falling back to def when absent.
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > maxQueryValue {
		return 0, errors.New("out of range")
	}
	return v, nil
}
