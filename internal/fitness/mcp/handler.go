package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler turns tool calls into service calls and service results into MCP results.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return textResult(string(raw))
}

// GetAnalyticsTool returns the MCP tool handler for get_analytics.
func (h *Handler) GetAnalyticsTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		snapshot, err := h.service.GetAnalytics(ctx)
		if err != nil {
			return errorResult("Error computing analytics: " + err.Error()), nil, nil
		}
		return jsonResult(snapshot), nil, nil
	}
}

// DailySeriesInput is the input for get_daily_series.
type DailySeriesInput struct {
	Metric string `json:"metric" jsonschema:"One of steps, distance, duration, calories"`
	Days   int    `json:"days,omitempty" jsonschema:"Number of days ending today (default 7, max 365)"`
}

// GetDailySeriesTool returns the MCP tool handler for get_daily_series.
func (h *Handler) GetDailySeriesTool() func(context.Context, *mcp.CallToolRequest, DailySeriesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in DailySeriesInput) (*mcp.CallToolResult, any, error) {
		points, err := h.service.GetDailySeries(ctx, in.Metric, in.Days)
		if err != nil {
			return errorResult("Error building series: " + err.Error()), nil, nil
		}
		return jsonResult(points), nil, nil
	}
}

// GetStreaksTool returns the MCP tool handler for get_streaks.
func (h *Handler) GetStreaksTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		streaks, err := h.service.GetStreaks(ctx)
		if err != nil {
			return errorResult("Error computing streaks: " + err.Error()), nil, nil
		}
		return jsonResult(streaks), nil, nil
	}
}

// AchievementsInput is the input for get_achievements.
type AchievementsInput struct {
	OnlyUnlocked bool `json:"only_unlocked,omitempty" jsonschema:"List unlocked achievements only"`
}

// GetAchievementsTool returns the MCP tool handler for get_achievements.
func (h *Handler) GetAchievementsTool() func(context.Context, *mcp.CallToolRequest, AchievementsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in AchievementsInput) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetAchievements(ctx, in.OnlyUnlocked)
		if err != nil {
			return errorResult("Error fetching achievements: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}

// GetGoalProgressTool returns the MCP tool handler for get_goal_progress.
func (h *Handler) GetGoalProgressTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		progress, err := h.service.GetGoalProgress(ctx)
		if err != nil {
			return errorResult("Error computing goal progress: " + err.Error()), nil, nil
		}
		return jsonResult(progress), nil, nil
	}
}
