package core

import "context"

// Context keys for ranking options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	runSourceKey      contextKey = "runSource"
)

// WithSuppressHeader marks the context so the ranking header is not printed.
// Long-running surfaces (web, MCP) use it since they have no terminal.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithRunSource records which surface started a ranking run (cli, web, mcp).
func WithRunSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, runSourceKey, source)
}

// runSource returns the surface recorded by WithRunSource, or "cli".
func runSource(ctx context.Context) string {
	if source, ok := ctx.Value(runSourceKey).(string); ok && source != "" {
		return source
	}
	return "cli"
}
