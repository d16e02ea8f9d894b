package tools

import (
	"context"
	"sync"
)

type usageRecorderKey struct{}

// UsageRecorder notes whether any tool fired during an agent invocation.
// The orchestration service attaches one per request and reads it back for
// the response metadata.
type UsageRecorder struct {
	mu    sync.Mutex
	fired bool
}

// WithUsageRecorder attaches a fresh recorder to ctx.
func WithUsageRecorder(ctx context.Context) (context.Context, *UsageRecorder) {
	rec := &UsageRecorder{}
	return context.WithValue(ctx, usageRecorderKey{}, rec), rec
}

// MarkToolFired records a tool invocation. A context without a recorder is
// a no-op, so tools stay callable outside the orchestration path.
func MarkToolFired(ctx context.Context) {
	rec, ok := ctx.Value(usageRecorderKey{}).(*UsageRecorder)
	if !ok {
		return
	}
	rec.mu.Lock()
	rec.fired = true
	rec.mu.Unlock()
}

func (r *UsageRecorder) ToolFired() bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fired
}
