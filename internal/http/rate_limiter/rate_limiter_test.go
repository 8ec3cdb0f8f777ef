package rate_limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMiddleware_RejectsOverBurst(t *testing.T) {
	l := New(1, 2)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected burst of 2 to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", codes[2])
	}

	other := httptest.NewRequest(http.MethodGet, "/products", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, other)
	if w.Code != http.StatusOK {
		t.Errorf("other client should have its own bucket, got %d", w.Code)
	}
}

func TestCleanup_ForgetsIdleVisitors(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(0, 0)
	l.now = func() time.Time { return now }

	if l.burst != DefaultBurst {
		t.Errorf("expected default burst %d, got %d", DefaultBurst, l.burst)
	}

	l.GetVisitor("a")
	now = now.Add(4 * time.Minute)
	l.GetVisitor("b")
	now = now.Add(2 * time.Minute)
	l.cleanup()

	if _, ok := l.visitors["a"]; ok {
		t.Error("idle visitor a should be gone")
	}
	if _, ok := l.visitors["b"]; !ok {
		t.Error("recent visitor b should remain")
	}

	l.CleanupAllVisitors()
	if len(l.visitors) != 0 {
		t.Errorf("expected no visitors, got %d", len(l.visitors))
	}
}
