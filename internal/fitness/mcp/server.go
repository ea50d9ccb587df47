package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds the fittracker MCP server. The main backend mounts it at
// /mcp over HTTP; cmd/fittracker_mcp serves it over stdio.
func NewServer(tracker TrackerReader) *mcp.Server {
	h := NewHandler(NewContextService(tracker))
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "fittracker",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_analytics",
		Description: "Returns workout totals, averages (km, minutes), personal records and the current and best day streaks computed over the whole workout history.",
	}, h.GetAnalyticsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_daily_series",
		Description: "Returns one value per calendar day for the last N days (oldest first, days without workouts are 0). Args: metric (steps, distance, duration, calories); optional days (default 7).",
	}, h.GetDailySeriesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_streaks",
		Description: "Returns the current streak (consecutive days with a workout ending today, 0 when nothing was recorded today) and the best streak ever.",
	}, h.GetStreaksTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_achievements",
		Description: "Returns the achievement catalog as markdown tables grouped by category, with points and unlock dates. Optional: only_unlocked.",
	}, h.GetAchievementsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_goal_progress",
		Description: "Returns today's steps, distance and duration against the daily goals, with completion ratios between 0 and 1.",
	}, h.GetGoalProgressTool())

	return s
}
