package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/2beens/fittracker/internal/fitness/achievements"
	"github.com/2beens/fittracker/internal/fitness/analytics"
	"github.com/2beens/fittracker/internal/fitness/goals"
	"github.com/2beens/fittracker/internal/fitness/streak"
)

const (
	defaultSeriesDays = 7
	maxSeriesDays     = 365
)

// TrackerReader is the read side of the tracker service the tools need.
type TrackerReader interface {
	Analytics(ctx context.Context) (analytics.Snapshot, error)
	DailySeries(ctx context.Context, metric analytics.Metric, days int) ([]analytics.Point, error)
	Streaks(ctx context.Context) (streak.Streaks, error)
	Achievements(ctx context.Context) ([]achievements.Achievement, error)
	TodayGoalProgress(ctx context.Context) (goals.Progress, error)
}

// contextService is what the Handler calls; kept small for tests.
type contextService interface {
	GetAnalytics(ctx context.Context) (analytics.Snapshot, error)
	GetDailySeries(ctx context.Context, metric string, days int) ([]analytics.Point, error)
	GetStreaks(ctx context.Context) (streak.Streaks, error)
	GetAchievements(ctx context.Context, onlyUnlocked bool) (string, error)
	GetGoalProgress(ctx context.Context) (goals.Progress, error)
}

// ContextService adapts the tracker to tool friendly inputs and outputs.
type ContextService struct {
	tracker TrackerReader
}

func NewContextService(tracker TrackerReader) *ContextService {
	return &ContextService{
		tracker: tracker,
	}
}

func (s *ContextService) GetAnalytics(ctx context.Context) (analytics.Snapshot, error) {
	return s.tracker.Analytics(ctx)
}

// GetDailySeries resolves the metric name and clamps days to [1, 365]; zero means a week.
func (s *ContextService) GetDailySeries(ctx context.Context, metric string, days int) ([]analytics.Point, error) {
	m, err := analytics.ParseMetric(metric)
	if err != nil {
		return nil, err
	}
	switch {
	case days == 0:
		days = defaultSeriesDays
	case days < 0:
		return nil, fmt.Errorf("days must be positive, got %d", days)
	case days > maxSeriesDays:
		days = maxSeriesDays
	}
	return s.tracker.DailySeries(ctx, m, days)
}

func (s *ContextService) GetStreaks(ctx context.Context) (streak.Streaks, error) {
	return s.tracker.Streaks(ctx)
}

func (s *ContextService) GetGoalProgress(ctx context.Context) (goals.Progress, error) {
	return s.tracker.TodayGoalProgress(ctx)
}

// GetAchievements renders the achievement list as markdown, one table per category.
func (s *ContextService) GetAchievements(ctx context.Context, onlyUnlocked bool) (string, error) {
	list, err := s.tracker.Achievements(ctx)
	if err != nil {
		return "", err
	}
	return formatAchievements(list, onlyUnlocked), nil
}

func formatAchievements(list []achievements.Achievement, onlyUnlocked bool) string {
	summary := achievements.Summarize(list, 0)

	var b strings.Builder
	b.WriteString("# Achievements\n\n")
	fmt.Fprintf(&b, "Unlocked %d of %d, %d of %d points.\n",
		summary.UnlockedCount, summary.TotalCount, summary.TotalPoints, summary.PossiblePoints)

	for _, category := range achievements.AllCategories {
		var rows []achievements.Achievement
		for _, a := range summary.ByCategory[category] {
			if onlyUnlocked && !a.Unlocked {
				continue
			}
			rows = append(rows, a)
		}
		if len(rows) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n## %s\n\n", category)
		b.WriteString("| ID | Title | Points | Unlocked at |\n|----|-------|--------|-------------|\n")
		for _, a := range rows {
			unlockedAt := "locked"
			if a.Unlocked && a.UnlockedAt != nil {
				unlockedAt = a.UnlockedAt.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", a.ID, a.Title, a.Points, unlockedAt)
		}
	}

	return b.String()
}
