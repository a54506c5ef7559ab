package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakePinger struct{ err error }

func (fakePinger) Name() string                  { return "fake" }
func (p fakePinger) Check(context.Context) error { return p.err }

type degradedChecker struct{}

func (degradedChecker) Check(context.Context) Check {
	return Check{Name: "kafka", Status: StatusDegraded, Message: "log publisher in use"}
}

func TestHealthHandler(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.RegisterChecker("storage", FromPinger(fakePinger{}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response Response
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != StatusHealthy {
		t.Errorf("expected status healthy, got %s", response.Status)
	}
	if response.Version != "v1.0.0" {
		t.Errorf("expected version v1.0.0, got %s", response.Version)
	}
	if got := response.Checks["storage"].Name; got != "fake" {
		t.Errorf("expected check name fake, got %q", got)
	}
}

func TestHealthHandler_Unhealthy(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.RegisterChecker("storage", FromPinger(fakePinger{err: errors.New("connection refused")}))
	handler.RegisterChecker("broker", degradedChecker{})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}

	var response Response
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %s", response.Status)
	}
	if msg := response.Checks["storage"].Message; msg != "connection refused" {
		t.Errorf("expected error message in check, got %q", msg)
	}
}

func TestHealthHandler_Degraded(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.RegisterChecker("broker", degradedChecker{})

	response := handler.Evaluate(context.Background())
	if response.Status != StatusDegraded {
		t.Errorf("expected degraded, got %s", response.Status)
	}
}

func TestLivenessHandler(t *testing.T) {
	w := httptest.NewRecorder()
	LivenessHandler(w, httptest.NewRequest(http.MethodGet, "/livez", nil))

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("unexpected liveness response %d %q", w.Code, w.Body.String())
	}
}

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "ready", wantCode: http.StatusOK, wantBody: "ready"},
		{name: "not ready", err: errors.New("down"), wantCode: http.StatusServiceUnavailable, wantBody: "not ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler("v1.0.0")
			handler.RegisterChecker("storage", FromPinger(fakePinger{err: tt.err}))

			w := httptest.NewRecorder()
			handler.ReadinessHandler(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, w.Code)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("expected %q, got %q", tt.wantBody, w.Body.String())
			}
		})
	}
}
