package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests              *prometheus.CounterVec
	CounterHandleRequestPanic    prometheus.Counter
	CounterRateLimitedRequests   prometheus.Counter
	CounterWorkoutsRecorded      prometheus.Counter
	CounterAchievementsUnlocked  *prometheus.CounterVec
	CounterUnlockFailures        prometheus.Counter
	CounterAnalyticsCache        *prometheus.CounterVec
	CounterEventsPublished       *prometheus.CounterVec
	CounterScheduledDayRollovers prometheus.Counter

	// gauges
	GaugeRequests      prometheus.Gauge
	GaugeLifeSignal    prometheus.Gauge
	GaugeCurrentStreak prometheus.Gauge

	// histograms
	HistogramRequestDuration   *prometheus.HistogramVec
	HistogramEvaluateDuration  prometheus.Histogram
	HistogramWorkoutSteps      prometheus.Histogram
	HistogramAnalyticsDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("fittracker", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fittracker", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})
	counterWorkoutsRecorded := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_recorded",
		Help:      "The total number of recorded workout sessions",
	})
	counterAchievementsUnlocked := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "achievements_unlocked",
		Help:      "The total number of unlocked achievements",
	}, []string{"category"})
	counterUnlockFailures := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "achievement_unlock_failures",
		Help:      "The total number of failed achievement unlock writes",
	})
	counterAnalyticsCache := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "analytics_cache",
		Help:      "Analytics snapshot cache lookups by result",
	}, []string{"result"})
	counterEventsPublished := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "events_published",
		Help:      "Published domain events by type and status",
	}, []string{"type", "status"})
	counterScheduledDayRollovers := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "day_rollovers",
		Help:      "Number of executed day rollover jobs",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})
	gaugeCurrentStreak := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_streak_days",
		Help:      "Current workout streak in days",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})
	histogramEvaluateDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "achievements_evaluate_duration_seconds",
		Help:      "Duration of a single achievements evaluation pass in seconds",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	})
	histogramWorkoutSteps := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workout_steps",
		Help:      "Steps per recorded workout session",
		Buckets:   []float64{100, 500, 1000, 2500, 5000, 7500, 10000, 15000, 20000, 30000},
	})
	histogramAnalyticsDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "analytics_compute_duration_seconds",
		Help:      "Duration of an uncached analytics computation in seconds",
		Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
	})

	return &Manager{
		CounterRequests:              counterRequests,
		CounterHandleRequestPanic:    counterHandleRequestPanic,
		CounterRateLimitedRequests:   counterRateLimitedRequests,
		CounterWorkoutsRecorded:      counterWorkoutsRecorded,
		CounterAchievementsUnlocked:  counterAchievementsUnlocked,
		CounterUnlockFailures:        counterUnlockFailures,
		CounterAnalyticsCache:        counterAnalyticsCache,
		CounterEventsPublished:       counterEventsPublished,
		CounterScheduledDayRollovers: counterScheduledDayRollovers,
		GaugeRequests:                gaugeRequests,
		GaugeLifeSignal:              gaugeLifeSignal,
		GaugeCurrentStreak:           gaugeCurrentStreak,
		HistogramRequestDuration:     histogramRequestDuration,
		HistogramEvaluateDuration:    histogramEvaluateDuration,
		HistogramWorkoutSteps:        histogramWorkoutSteps,
		HistogramAnalyticsDuration:   histogramAnalyticsDuration,
	}
}
