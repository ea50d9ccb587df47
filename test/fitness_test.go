package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/2beens/fittracker/internal/fitness/achievements"
	"github.com/2beens/fittracker/internal/fitness/analytics"
	"github.com/2beens/fittracker/internal/fitness/goals"
	"github.com/2beens/fittracker/internal/fitness/profile"
	"github.com/2beens/fittracker/internal/fitness/tracker"
	"github.com/2beens/fittracker/internal/fitness/workouts"
	"github.com/2beens/fittracker/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doRequest(method, path string, body any, expectedStatus int) []byte {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(middleware.TokenHeader, testToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, resp.StatusCode, string(respBytes))
	return respBytes
}

func (s *IntegrationTestSuite) countRows(table string) int {
	var count int
	require.NoError(s.T(), s.DB.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&count))
	return count
}

func (s *IntegrationTestSuite) TestUnauthorized() {
	t := s.T()

	req, err := http.NewRequest(http.MethodGet, serverEndpoint+"/workouts", nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestRecordWorkout() {
	t := s.T()

	respBytes := s.doRequest(http.MethodPost, "/workouts", workouts.NewSession{
		DurationSeconds: 4000,
		Steps:           10500,
		DistanceMeters:  7000,
	}, http.StatusCreated)

	var result tracker.RecordResult
	require.NoError(t, json.Unmarshal(respBytes, &result))
	assert.Equal(t, 10500, result.Workout.Steps)
	assert.Equal(t, 1, result.CurrentStreak)

	unlockedIDs := make(map[string]bool)
	for _, u := range result.Unlocked {
		unlockedIDs[u.ID] = true
	}
	for _, id := range []string{"first_workout", "steps_1000", "steps_5000", "steps_10000", "distance_1km", "distance_5km", "duration_30min", "duration_60min"} {
		assert.True(t, unlockedIDs[id], id)
	}
	assert.False(t, unlockedIDs["distance_10km"])

	assert.Equal(t, 1, s.countRows("workout_session"))

	// the same workout again unlocks nothing new
	respBytes = s.doRequest(http.MethodPost, "/workouts", workouts.NewSession{
		DurationSeconds: 4000,
		Steps:           10500,
		DistanceMeters:  7000,
	}, http.StatusCreated)
	require.NoError(t, json.Unmarshal(respBytes, &result))
	assert.Empty(t, result.Unlocked)
	assert.Equal(t, 2, s.countRows("workout_session"))

	var stored []workouts.Session
	require.NoError(t, json.Unmarshal(s.doRequest(http.MethodGet, "/workouts?limit=1", nil, http.StatusOK), &stored))
	assert.Len(t, stored, 1)

	var list []achievements.Achievement
	require.NoError(t, json.Unmarshal(s.doRequest(http.MethodGet, "/achievements", nil, http.StatusOK), &list))
	assert.Len(t, list, 18)

	var summary achievements.Summary
	require.NoError(t, json.Unmarshal(s.doRequest(http.MethodGet, "/achievements/summary", nil, http.StatusOK), &summary))
	assert.Equal(t, len(unlockedIDs), summary.UnlockedCount)
	assert.Equal(t, 18, summary.TotalCount)
}

func (s *IntegrationTestSuite) TestRecordWorkout_Invalid() {
	s.doRequest(http.MethodPost, "/workouts", map[string]any{"steps": -10}, http.StatusBadRequest)
	assert.Equal(s.T(), 0, s.countRows("workout_session"))
}

func (s *IntegrationTestSuite) TestListWorkouts_FullHistory() {
	t := s.T()

	for _, steps := range []int{1200, 2400, 3600} {
		s.doRequest(http.MethodPost, "/workouts", workouts.NewSession{
			DurationSeconds: 600,
			Steps:           steps,
			DistanceMeters:  900,
		}, http.StatusCreated)
	}

	var stored []workouts.Session
	require.NoError(t, json.Unmarshal(s.doRequest(http.MethodGet, "/workouts", nil, http.StatusOK), &stored))
	require.Len(t, stored, 3)

	steps := make(map[int]bool)
	for _, session := range stored {
		steps[session.Steps] = true
	}
	assert.True(t, steps[1200])
	assert.True(t, steps[2400])
	assert.True(t, steps[3600])

	require.NoError(t, json.Unmarshal(s.doRequest(http.MethodGet, "/workouts?limit=2", nil, http.StatusOK), &stored))
	assert.Len(t, stored, 2)
}

func (s *IntegrationTestSuite) TestAnalyticsAndGoals() {
	t := s.T()

	for _, steps := range []int{3000, 4500} {
		s.doRequest(http.MethodPost, "/workouts", workouts.NewSession{
			DurationSeconds: 1200,
			Steps:           steps,
			DistanceMeters:  2000,
		}, http.StatusCreated)
	}

	var snapshot analytics.Snapshot
	require.NoError(t, json.Unmarshal(s.doRequest(http.MethodGet, "/analytics", nil, http.StatusOK), &snapshot))
	assert.Equal(t, 7500, snapshot.TotalSteps)
	assert.Equal(t, 2, snapshot.TotalWorkouts)

	var series []analytics.Point
	require.NoError(t, json.Unmarshal(s.doRequest(http.MethodGet, "/analytics/series/steps?days=3", nil, http.StatusOK), &series))
	require.Len(t, series, 3)
	assert.Equal(t, float64(7500), series[len(series)-1].Value)

	s.doRequest(http.MethodGet, "/analytics/series/sleep", nil, http.StatusBadRequest)

	s.doRequest(http.MethodPut, "/goals", goals.Goals{
		Steps:           10000,
		DistanceKm:      8,
		DurationSeconds: 3600,
	}, http.StatusOK)
	assert.Equal(t, 1, s.countRows("user_goals"))

	var progress goals.Progress
	require.NoError(t, json.Unmarshal(s.doRequest(http.MethodGet, "/goals/progress", nil, http.StatusOK), &progress))
	assert.Equal(t, 7500, progress.Steps)
	assert.InDelta(t, 0.75, progress.StepsRatio, 0.0001)
	assert.False(t, progress.Completed)

	s.doRequest(http.MethodPut, "/goals", goals.Goals{Steps: -1}, http.StatusBadRequest)
}

func (s *IntegrationTestSuite) TestProfile() {
	t := s.T()

	var p profile.Profile
	require.NoError(t, json.Unmarshal(s.doRequest(http.MethodGet, "/profile", nil, http.StatusOK), &p))
	assert.Equal(t, profile.Default(), p)

	s.doRequest(http.MethodPut, "/profile", profile.Profile{
		Name:          "runner",
		Age:           34,
		WeightKg:      72,
		HeightCm:      180,
		Gender:        "Female",
		ActivityLevel: profile.ActivityActive,
		FitnessGoal:   profile.GoalEndurance,
	}, http.StatusOK)

	var assessment profile.Assessment
	require.NoError(t, json.Unmarshal(s.doRequest(http.MethodGet, "/profile/assessment", nil, http.StatusOK), &assessment))
	assert.Equal(t, "Normal weight", assessment.BMICategory)
	assert.InDelta(t, 22.2, assessment.BMI, 0.1)
}
