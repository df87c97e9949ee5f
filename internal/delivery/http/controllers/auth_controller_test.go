package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventify/internal/delivery/http/helpers"
	"eventify/internal/domain"
)

type mockAuthService struct {
	user  *domain.User
	token string
	err   error
}

func (m *mockAuthService) SignUp(ctx context.Context, in domain.SignUpInput) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if m.err != nil {
		return "", nil, m.err
	}
	return m.token, m.user, nil
}

func (m *mockAuthService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func TestAuthController_SignUp(t *testing.T) {
	tests := []struct {
		name     string
		svc      *mockAuthService
		body     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "created",
			svc:      &mockAuthService{user: &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com"}},
			body:     `{"username":"alice","email":"alice@example.com","password":"supersecret"}`,
			wantCode: http.StatusCreated,
		},
		{
			name:     "duplicate email maps to 409",
			svc:      &mockAuthService{err: domain.ErrDuplicateEmail},
			body:     `{"username":"alice","email":"alice@example.com","password":"supersecret"}`,
			wantCode: http.StatusConflict,
			wantErr:  helpers.ErrCodeDuplicate,
		},
		{
			name:     "invalid input maps to 400",
			svc:      &mockAuthService{err: domain.ErrInvalidInput},
			body:     `{"username":"alice","email":"bad","password":"supersecret"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  helpers.ErrCodeBadRequest,
		},
		{
			name:     "missing fields rejected before the service",
			svc:      &mockAuthService{},
			body:     `{"email":"alice@example.com"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  helpers.ErrCodeBadRequest,
		},
		{
			name:     "unknown fields rejected",
			svc:      &mockAuthService{},
			body:     `{"username":"alice","email":"a@b.co","password":"supersecret","admin":true}`,
			wantCode: http.StatusBadRequest,
			wantErr:  helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger(), tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			ctrl.SignUp(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, w.Code)
			}
			resp := decodeEnvelope(t, w)
			if tt.wantErr != "" {
				if resp.Error == nil || resp.Error.Code != tt.wantErr {
					t.Fatalf("expected error code %s, got %+v", tt.wantErr, resp.Error)
				}
			}
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	t.Run("success returns token and user", func(t *testing.T) {
		svc := &mockAuthService{token: "tok", user: &domain.User{ID: "u1", Email: "alice@example.com"}}
		ctrl := NewAuthController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"alice@example.com","password":"supersecret"}`))
		w := httptest.NewRecorder()

		ctrl.Login(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		resp := decodeEnvelope(t, w)
		data, ok := resp.Data.(map[string]any)
		if !ok {
			t.Fatalf("expected object payload, got %T", resp.Data)
		}
		if data["token"] != "tok" {
			t.Fatalf("expected token in payload, got %v", data["token"])
		}
	})

	t.Run("bad credentials map to 401", func(t *testing.T) {
		for _, sentinel := range []error{domain.ErrUserNotFound, domain.ErrForbidden} {
			ctrl := NewAuthController(testLogger(), &mockAuthService{err: sentinel})

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`))
			w := httptest.NewRecorder()

			ctrl.Login(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 for %v, got %d", sentinel, w.Code)
			}
		}
	})
}

func TestAuthController_Me(t *testing.T) {
	t.Run("unauthenticated is 401", func(t *testing.T) {
		ctrl := NewAuthController(testLogger(), &mockAuthService{})

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		w := httptest.NewRecorder()

		ctrl.Me(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("returns current user", func(t *testing.T) {
		ctrl := NewAuthController(testLogger(), &mockAuthService{user: &domain.User{ID: "u1"}})

		req := authedRequest(http.MethodGet, "/users/me", "u1")
		w := httptest.NewRecorder()

		ctrl.Me(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
