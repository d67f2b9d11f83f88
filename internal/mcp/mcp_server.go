// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/divrank/core"
	"github.com/huangsam/divrank/internal/contract"
	"github.com/huangsam/divrank/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/afero"
)

// NewMCPServer initializes and configures the divrank MCP server without starting it.
// All tools share one dataset, which is loaded here so a bad CSV fails before
// any tool is registered.
func NewMCPServer(ctx context.Context, baseCfg *contract.Config, mgr contract.CacheManager, fs afero.Fs) (*server.MCPServer, error) {
	ds := core.NewDataset(fs, baseCfg.DataPath, mgr)
	if _, err := ds.Table(ctx); err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", baseCfg.DataPath, err)
	}

	s := server.NewMCPServer(
		"Institutional Diversity Ranking Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		ds:      ds,
	}

	metricKeys := make([]string, 0, len(schema.AllMetrics))
	for _, m := range schema.AllMetrics {
		metricKeys = append(metricKeys, string(m.Key))
	}

	// --- 1. Tool: rank_institutions ---
	s.AddTool(mcp.NewTool("rank_institutions",
		mcp.WithDescription("Rank institutions by a diversity metric, highest score first."),
		mcp.WithString("metric", mcp.Description("Metric key or label ("+strings.Join(metricKeys, ", ")+"). Defaults to the configured metric.")),
		mcp.WithString("states", mcp.Description("Comma-separated state filter, e.g. 'CA,TX'. Empty means all states.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of ranked rows returned.")),
	), h.handleRankInstitutions)

	// --- 2. Tool: list_states ---
	s.AddTool(mcp.NewTool("list_states",
		mcp.WithDescription("List the distinct states present in the dataset, sorted."),
	), h.handleListStates)

	// --- 3. Tool: list_metrics ---
	s.AddTool(mcp.NewTool("list_metrics",
		mcp.WithDescription("List the metric catalogue with availability and scored-row counts."),
	), h.handleListMetrics)

	return s, nil
}

// StartMCPServer starts the divrank MCP server on stdio.
func StartMCPServer(ctx context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s, err := NewMCPServer(ctx, baseCfg, mgr, afero.NewOsFs())
	if err != nil {
		return err
	}
	return server.ServeStdio(s)
}
