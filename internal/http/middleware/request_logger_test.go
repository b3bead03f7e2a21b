package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestLoggerPassesThrough(t *testing.T) {
	mw := RequestLogger(nil)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/appointments", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rec.Code)
	}
	if rec.Body.String() != `{"ok":true}` {
		t.Fatalf("body altered: %q", rec.Body.String())
	}
}

func TestStatusRecorderDefaultsToOK(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	rec.Write([]byte("hello"))

	if rec.status != http.StatusOK {
		t.Fatalf("implicit write should keep 200, got %d", rec.status)
	}
	if rec.bytes != 5 {
		t.Fatalf("expected 5 bytes recorded, got %d", rec.bytes)
	}
}
