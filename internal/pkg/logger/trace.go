package logger

import (
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// TraceIDKey 定义 Context 中的 Key
const TraceIDKey = "trace_id"

// ContextHandler 包装器，用于从 ctx 中提取 trace_id
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
			r.AddAttrs(log.String(TraceIDKey, traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &ContextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) log.Handler {
	return &ContextHandler{h.Handler.WithGroup(name)}
}

// NewJobContext 为定时任务生成带 trace_id 的 context
func NewJobContext(prefix string) context.Context {
	return WithTraceID(context.Background(), prefix)
}

func WithTraceID(ctx context.Context, prefix string) context.Context {
	return context.WithValue(ctx, TraceIDKey, prefix+"-"+uuid.NewString())
}
