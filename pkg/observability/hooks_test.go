package observability

import (
	"context"
	"testing"
	"time"
)

type recordingLayoutHooks struct {
	starts    int
	completes int
}

func (h *recordingLayoutHooks) OnLayoutStart(ctx context.Context, nodes, edges int) {
	h.starts++
}

func (h *recordingLayoutHooks) OnLayoutComplete(ctx context.Context, d time.Duration, err error) {
	h.completes++
}

func TestSetAndGetLayoutHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingLayoutHooks{}
	SetLayoutHooks(rec)

	ctx := context.Background()
	Layout().OnLayoutStart(ctx, 10, 20)
	Layout().OnLayoutComplete(ctx, time.Millisecond, nil)

	if rec.starts != 1 || rec.completes != 1 {
		t.Errorf("got starts=%d completes=%d, want 1 and 1", rec.starts, rec.completes)
	}
}

func TestSetNilKeepsCurrentHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingLayoutHooks{}
	SetLayoutHooks(rec)
	SetLayoutHooks(nil)

	Layout().OnLayoutStart(context.Background(), 1, 1)
	if rec.starts != 1 {
		t.Error("nil registration replaced the active hooks")
	}
}

func TestResetRestoresNoops(t *testing.T) {
	SetLayoutHooks(&recordingLayoutHooks{})
	SetCacheHooks(nil)
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() did not restore noop layout hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() did not restore noop cache hooks")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Reset() did not restore noop server hooks")
	}
}
