// Package scheduler runs the periodic maintenance jobs of the service.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fittracker/internal/telemetry/metrics"

	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"
)

const rolloverTimeout = 30 * time.Second

// DayRoller is called right after local midnight.
type DayRoller interface {
	RollOverDay(ctx context.Context) error
}

type Scheduler struct {
	cron           *gocron.Scheduler
	roller         DayRoller
	metricsManager *metrics.Manager
}

// New creates a scheduler whose day boundaries follow loc.
func New(loc *time.Location, roller DayRoller, metricsManager *metrics.Manager) *Scheduler {
	cron := gocron.NewScheduler(loc)
	cron.SingletonModeAll()
	return &Scheduler{
		cron:           cron,
		roller:         roller,
		metricsManager: metricsManager,
	}
}

// Start registers the jobs and runs them in the background.
func (s *Scheduler) Start() error {
	if _, err := s.cron.Every(1).Day().At("00:00").Tag("day-rollover").Do(s.rollOver); err != nil {
		return fmt.Errorf("schedule day rollover: %w", err)
	}
	s.cron.StartAsync()
	log.Debugf("scheduler started, next day rollover at %s", s.NextRun())
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) NextRun() time.Time {
	_, next := s.cron.NextRun()
	return next
}

func (s *Scheduler) rollOver() {
	ctx, cancel := context.WithTimeout(context.Background(), rolloverTimeout)
	defer cancel()
	s.RollOver(ctx)
}

// RollOver runs the day rollover once, outside of the schedule.
func (s *Scheduler) RollOver(ctx context.Context) {
	if err := s.roller.RollOverDay(ctx); err != nil {
		log.Errorf("day rollover: %s", err)
		return
	}
	s.metricsManager.CounterScheduledDayRollovers.Inc()
	log.Debugln("day rollover done")
}
