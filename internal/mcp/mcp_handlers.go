package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/divrank/core"
	"github.com/huangsam/divrank/internal/contract"
	"github.com/huangsam/divrank/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	ds      *core.Dataset
}

// toolContext is the context every tool runs the core with.
func toolContext(ctx context.Context) context.Context {
	return core.WithRunSource(core.WithSuppressHeader(ctx), "mcp")
}

func (h *toolHandler) handleRankInstitutions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if m := request.GetString("metric", ""); m != "" {
		metric, ok := schema.LookupMetric(m)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown metric %q. call list_metrics for valid keys", m)), nil
		}
		cfg.Metric = metric
	}
	if s := request.GetString("states", ""); s != "" {
		cfg.States = schema.NormalizeStates([]string{s})
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	view, err := core.GetRankResults(toolContext(ctx), cfg, h.ds, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(view, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListStates(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := h.ds.Table(toolContext(ctx))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading dataset failed: %v", err)), nil
	}

	model := schema.StatesRenderModel{Source: table.Source, States: table.States()}
	jsonData, _ := json.MarshalIndent(model, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListMetrics(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := h.ds.Table(toolContext(ctx))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading dataset failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(core.BuildMetricsModel(table), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
