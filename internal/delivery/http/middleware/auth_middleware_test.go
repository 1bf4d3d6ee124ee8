package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinical-study/config"
	"clinical-study/internal/usecase"
	"clinical-study/pkg/jwt"
)

type fakeAuthenticator struct{}

func (fakeAuthenticator) Authenticate(_ context.Context, token string) (*jwt.Claims, error) {
	if token != "valid" {
		return nil, usecase.ErrInvalidToken
	}
	return &jwt.Claims{EmployeeID: 7, TokenID: "tok"}, nil
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name        string
		requireAuth bool
		header      string
		status      int
		operatorID  int64
		tokenID     string
	}{
		{name: "default operator", header: "", status: http.StatusOK, operatorID: 1},
		{name: "required", requireAuth: true, header: "", status: http.StatusUnauthorized},
		{name: "bad format", header: "Token valid", status: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "valid token", requireAuth: true, header: "Bearer valid", status: http.StatusOK, operatorID: 7, tokenID: "tok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAuthMiddleware(fakeAuthenticator{}, config.StudyConfig{DefaultOperatorID: 1, RequireAuth: tt.requireAuth})

			var gotOperator int64
			var gotToken string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotOperator, _ = GetOperatorIDFromContext(r.Context())
				gotToken, _ = GetTokenIDFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			m.Authenticate(next).ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if gotOperator != tt.operatorID || gotToken != tt.tokenID {
				t.Errorf("unexpected context operator=%d token=%q", gotOperator, gotToken)
			}
		})
	}
}

func TestRequireSession(t *testing.T) {
	called := false
	h := RequireSession(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/logout", nil))
	if rec.Code != http.StatusUnauthorized || called {
		t.Fatalf("expected rejection, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req = req.WithContext(context.WithValue(req.Context(), TokenIDKey, "tok"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if !called {
		t.Fatal("expected handler to run")
	}
}
