package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/logger"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthValidToken(t *testing.T) {
	var gotUserID string
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "user-123"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUserID != "user-123" {
		t.Errorf("user id = %q, want user-123", gotUserID)
	}
}

func TestAuthRejects(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + mustSign("other-secret", "user-123")},
		{"empty subject", "Bearer " + mustSign(testSecret, "")},
	}

	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for a rejected token")
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", tt.token)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body: %v", err)
			}
			if body["error"] != "Unauthorized" {
				t.Errorf("error = %q", body["error"])
			}
		})
	}
}

func mustSign(secret, subject string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return signed
}

func TestCORSHeaders(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	headers := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "OPTIONS, POST, GET, PUT, DELETE",
		"Access-Control-Allow-Headers": "Content-Type, Authorization",
	}
	for k, want := range headers {
		if got := rec.Header().Get(k); got != want {
			t.Errorf("%s = %q, want %q", k, got, want)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight must short-circuit before the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/transactions", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("preflight response must still carry CORS headers")
	}
}

func TestRequestID(t *testing.T) {
	var buf strings.Builder
	log := logger.NewWithWriter(&buf)
	handler := RequestID(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("generated request id missing from response")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("request id = %q, want the caller's", got)
	}
}

// The request-scoped logger set by RequestID must reach both the access
// log line and anything the handler pulls from the context.
func TestRequestScopedLogger(t *testing.T) {
	var buf strings.Builder
	log := logger.NewWithWriter(&buf)

	handler := RequestID(log)(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info().Msg("inside handler")
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("X-Request-ID", "req-7")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !strings.Contains(out, "inside handler") {
		t.Errorf("handler log missing: %s", out)
	}
	if !strings.Contains(out, "HTTP request") {
		t.Errorf("access log missing: %s", out)
	}
	if got := strings.Count(out, `"request_id":"req-7"`); got != 2 {
		t.Errorf("request_id tagged %d lines, want 2: %s", got, out)
	}
}

func TestRecovery(t *testing.T) {
	var buf strings.Builder
	log := logger.NewWithWriter(&buf)
	handler := Recovery(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(buf.String(), "Panic recovered") {
		t.Error("panic must be logged")
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"ok": "yes"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("content type = %q", got)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"ok":"yes"}` {
		t.Errorf("body = %s", got)
	}
}

func TestWriteErrorDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorDetails(rec, http.StatusBadRequest, "Invalid transaction data", "amount is required")

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if body["error"] != "Invalid transaction data" || body["details"] != "amount is required" {
		t.Errorf("body = %v", body)
	}

	// Without details the key is omitted entirely.
	rec = httptest.NewRecorder()
	WriteErrorDetails(rec, http.StatusBadRequest, "Invalid transaction data", "")
	body = map[string]string{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if _, ok := body["details"]; ok {
		t.Error("empty details must not produce a details key")
	}
}

func TestUserIDRoundTrip(t *testing.T) {
	ctx := WithUserID(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "user-9")
	id, ok := UserID(ctx)
	if !ok || id != "user-9" {
		t.Errorf("UserID = %q, %v", id, ok)
	}

	if _, ok := UserID(httptest.NewRequest(http.MethodGet, "/", nil).Context()); ok {
		t.Error("unauthenticated context must not yield a user id")
	}
}
