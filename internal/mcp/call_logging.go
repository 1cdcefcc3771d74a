package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// callLoggingMiddleware logs every inbound MCP call once it completes. Tool
// calls carry the tool name and the projeto id and subtype they targeted;
// a tool result flagged as an error is logged at warn with its code.
func callLoggingMiddleware(logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || strings.HasPrefix(method, "notifications/") {
				return next(ctx, method, req)
			}

			started := time.Now()
			result, err := next(ctx, method, req)

			level := slog.LevelDebug
			attrs := []any{"method", method, "duration", time.Since(started)}
			if call, ok := req.(*sdkmcp.CallToolRequest); ok && call.Params != nil {
				level = slog.LevelInfo
				attrs = append(attrs, "tool", call.Params.Name)
				attrs = append(attrs, targetAttrs(call.Params.Arguments)...)
				if res, ok := result.(*sdkmcp.CallToolResult); ok && res != nil && res.IsError {
					level = slog.LevelWarn
					code := errorCode(res)
					attrs = append(attrs, "code", code, "backend_failure", code == codeBackendFailure)
				}
			}
			if err != nil {
				level = slog.LevelWarn
				attrs = append(attrs, "error", err)
			}
			logger.Log(ctx, level, "mcp call", attrs...)
			return result, err
		}
	}
}

// targetAttrs picks the projeto id and update subtype out of raw tool
// arguments. Tools without them contribute nothing.
func targetAttrs(raw json.RawMessage) []any {
	if len(raw) == 0 {
		return nil
	}
	var target struct {
		ID      string `json:"id"`
		Subtype string `json:"subtype"`
	}
	if err := json.Unmarshal(raw, &target); err != nil {
		return nil
	}
	var attrs []any
	if target.ID != "" {
		attrs = append(attrs, "id", target.ID)
	}
	if target.Subtype != "" {
		attrs = append(attrs, "subtype", target.Subtype)
	}
	return attrs
}

// errorCode reads the APIError code back out of an error result's text.
func errorCode(res *sdkmcp.CallToolResult) string {
	for _, c := range res.Content {
		if text, ok := c.(*sdkmcp.TextContent); ok {
			if code, _, found := strings.Cut(text.Text, ":"); found {
				return code
			}
		}
	}
	return ""
}
