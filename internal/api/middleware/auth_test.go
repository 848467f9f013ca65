package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

// stubAuthService accepts a single known token and rejects everything else,
// the way the real service rejects tampered or expired tokens.
type stubAuthService struct {
	validToken string
	user       *domain.User
}

func (s *stubAuthService) Register(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.AuthResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) VerifyToken(_ context.Context, token string) (*domain.User, error) {
	if token == s.validToken {
		return s.user, nil
	}
	return nil, domain.ErrInvalidToken
}

func (s *stubAuthService) GetUserByID(context.Context, string) (*domain.User, error) {
	return s.user, nil
}

func newAuthStub() *stubAuthService {
	return &stubAuthService{
		validToken: "good-token",
		user:       &domain.User{ID: "u1", Email: "alice@example.com", Role: domain.RoleAdmin},
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(newAuthStub())
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "u1" {
			t.Fatalf("user id not set")
		}
		if c.Get(CtxEmail) != "alice@example.com" {
			t.Fatalf("email not set")
		}
		if c.Get(CtxRole) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(newAuthStub())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	for _, header := range []string{"good-token", "Basic good-token", "Bearer"} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mw := Auth(newAuthStub())
		handler := mw(func(c echo.Context) error {
			t.Fatalf("header %q should not reach next handler", header)
			return nil
		})

		err := handler(c)
		assertHTTPStatus(t, err, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tampered-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(newAuthStub())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if he.Code != want {
		t.Fatalf("expected status %d, got %d", want, he.Code)
	}
}
