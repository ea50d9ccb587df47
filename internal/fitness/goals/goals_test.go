package goals_test

import (
	"context"
	"testing"

	"github.com/2beens/fittracker/internal/db"
	"github.com/2beens/fittracker/internal/fitness/goals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestComputeProgress(t *testing.T) {
	testCases := []struct {
		name          string
		goals         goals.Goals
		steps         int
		distanceKm    float64
		duration      int
		wantSteps     float64
		wantDistance  float64
		wantDuration  float64
		wantCompleted bool
	}{
		{
			name:         "halfway",
			goals:        goals.Default(),
			steps:        5000,
			distanceKm:   2.5,
			duration:     900,
			wantSteps:    0.5,
			wantDistance: 0.5,
			wantDuration: 0.5,
		},
		{
			name:          "exceeded_is_clamped",
			goals:         goals.Default(),
			steps:         25000,
			distanceKm:    12,
			duration:      7200,
			wantSteps:     1,
			wantDistance:  1,
			wantDuration:  1,
			wantCompleted: true,
		},
		{
			name:          "zero_goal_yields_zero",
			goals:         goals.Goals{Steps: 0, DistanceKm: 0, DurationSeconds: 600},
			steps:         5000,
			distanceKm:    3,
			duration:      600,
			wantSteps:     0,
			wantDistance:  0,
			wantDuration:  1,
			wantCompleted: true,
		},
		{
			name:  "nothing_done",
			goals: goals.Default(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := goals.ComputeProgress(tc.goals, tc.steps, tc.distanceKm, tc.duration)
			assert.InDelta(t, tc.wantSteps, p.StepsRatio, 1e-9)
			assert.InDelta(t, tc.wantDistance, p.DistanceRatio, 1e-9)
			assert.InDelta(t, tc.wantDuration, p.DurationRatio, 1e-9)
			assert.Equal(t, tc.wantCompleted, p.Completed)
			assert.Equal(t, tc.goals, p.Goals)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, goals.Default().Validate())
	assert.NoError(t, goals.Goals{}.Validate())
	assert.ErrorIs(t, goals.Goals{Steps: -1}.Validate(), goals.ErrInvalidGoals)
	assert.ErrorIs(t, goals.Goals{DistanceKm: -0.1}.Validate(), goals.ErrInvalidGoals)
}

type goalsStore interface {
	Get(ctx context.Context) (goals.Goals, error)
	Save(ctx context.Context, g goals.Goals) error
}

func TestMemoryRepo(t *testing.T) {
	testGoalsStore(t, goals.NewMemoryRepo())
}

func TestSQLiteRepo(t *testing.T) {
	sqliteDB, err := db.NewSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer sqliteDB.Close()

	testGoalsStore(t, goals.NewSQLiteRepo(sqliteDB))
}

func testGoalsStore(t *testing.T, store goalsStore) {
	ctx := context.Background()

	g, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, goals.Default(), g)

	custom := goals.Goals{Steps: 12000, DistanceKm: 7.5, DurationSeconds: 2700}
	require.NoError(t, store.Save(ctx, custom))
	g, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, custom, g)

	updated := goals.Goals{Steps: 8000, DistanceKm: 4, DurationSeconds: 1200}
	require.NoError(t, store.Save(ctx, updated))
	g, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, g)
}
