package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDebouncer_SingleCall(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	debouncer.Debounce(func() {
		atomic.AddInt32(&called, 1)
	})

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected 1 call, got %d", called)
	}
	if debouncer.Pending() {
		t.Error("Expected nothing pending after the call fired")
	}
}

func TestDebouncer_RapidCalls(t *testing.T) {
	var called int32
	var lastValue int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	for i := 1; i <= 10; i++ {
		value := int32(i)
		debouncer.Debounce(func() {
			atomic.StoreInt32(&lastValue, value)
			atomic.AddInt32(&called, 1)
		})
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected 1 call for rapid succession, got %d", called)
	}
	if atomic.LoadInt32(&lastValue) != 10 {
		t.Errorf("Expected last value 10, got %d", lastValue)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	debouncer.Debounce(func() {
		atomic.AddInt32(&called, 1)
	})
	if !debouncer.Pending() {
		t.Fatal("Expected a pending call")
	}

	time.Sleep(10 * time.Millisecond)
	debouncer.Cancel()

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 0 {
		t.Errorf("Expected 0 calls after cancel, got %d", called)
	}
}

func TestDebouncer_Immediate(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	debouncer.Debounce(func() {
		atomic.AddInt32(&called, 1)
	})

	debouncer.Immediate(func() {
		atomic.AddInt32(&called, 10)
	})

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 10 {
		t.Errorf("Expected 10 (immediate only), got %d", called)
	}
}

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) apply(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestSearchInput_Keystrokes(t *testing.T) {
	rec := &recorder{}
	in := NewSearchInput(50*time.Millisecond, "", rec.apply)

	for _, v := range []string{"l", "la", "lam", "lamp"} {
		in.Set(v)
		time.Sleep(10 * time.Millisecond)
	}

	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("Expected no call inside the window, got %v", got)
	}

	time.Sleep(100 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 || got[0] != "lamp" {
		t.Errorf("Expected exactly one call with %q, got %v", "lamp", got)
	}
}

func TestSearchInput_EmptyValueClears(t *testing.T) {
	rec := &recorder{}
	in := NewSearchInput(20*time.Millisecond, "lamp", rec.apply)

	in.Set("  ")
	time.Sleep(60 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 || got[0] != "" {
		t.Errorf("Expected one call with an empty value, got %v", got)
	}
}

func TestSearchInput_ResetDropsPending(t *testing.T) {
	rec := &recorder{}
	in := NewSearchInput(30*time.Millisecond, "", rec.apply)

	in.Set("chair")
	in.Reset()
	time.Sleep(60 * time.Millisecond)

	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("Expected no call after reset, got %v", got)
	}
	if in.Value() != "" {
		t.Errorf("Expected empty value after reset, got %q", in.Value())
	}
}

func TestSearchInput_Flush(t *testing.T) {
	rec := &recorder{}
	in := NewSearchInput(time.Hour, "", rec.apply)

	in.Set("desk")
	in.Flush()

	got := rec.snapshot()
	if len(got) != 1 || got[0] != "desk" {
		t.Errorf("Expected flush to apply %q, got %v", "desk", got)
	}
}
