package analytics

import (
	"fmt"
	"time"

	"github.com/2beens/fittracker/internal/fitness/workouts"
)

const labelLayout = "Jan 02"

type Metric string

const (
	MetricSteps    Metric = "steps"
	MetricDistance Metric = "distance"
	MetricDuration Metric = "duration"
	MetricCalories Metric = "calories"
)

var AllMetrics = []Metric{MetricSteps, MetricDistance, MetricDuration, MetricCalories}

func ParseMetric(s string) (Metric, error) {
	for _, m := range AllMetrics {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric: %q", s)
}

// Unit is the display unit of the series values.
func (m Metric) Unit() string {
	switch m {
	case MetricSteps:
		return "steps"
	case MetricDistance:
		return "km"
	case MetricDuration:
		return "min"
	case MetricCalories:
		return "kcal"
	default:
		return ""
	}
}

func (m Metric) value(d *dayTotals) float64 {
	if d == nil {
		return 0
	}
	switch m {
	case MetricSteps:
		return float64(d.steps)
	case MetricDistance:
		return d.distanceMeters / 1000
	case MetricDuration:
		return float64(d.durationSeconds) / 60
	case MetricCalories:
		return d.calories
	default:
		return 0
	}
}

// Point is one day of a chart series.
type Point struct {
	Label string  `json:"label"`
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// DailySeries returns exactly max(days, 0) points, oldest first, the last one
// being today. Days without workouts are present with a zero value.
func DailySeries(history []workouts.Session, metric Metric, days int, now time.Time) []Point {
	if days <= 0 {
		return []Point{}
	}

	totals := byDay(history, now.Location())
	today := startOfDay(now)

	points := make([]Point, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := day.Format(dayLayout)
		points = append(points, Point{
			Label: day.Format(labelLayout),
			Date:  key,
			Value: metric.value(totals[key]),
		})
	}
	return points
}
