package auth

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"attendance_backend/internals/constants"
	authService "attendance_backend/internals/features/users/auth/service"
	userModel "attendance_backend/internals/features/users/user/model"
	helper "attendance_backend/internals/helpers"
)

type stubAuthenticator struct {
	users map[string]*userModel.UserModel
	err   error
}

func (s stubAuthenticator) Authenticate(ctx context.Context, raw string) (*userModel.UserModel, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[raw]; ok {
		return u, nil
	}
	return nil, authService.ErrInvalidToken
}

func newGateApp(authn Authenticator) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(AuthMiddleware(authn))
	app.Get("/me", func(c *fiber.Ctx) error {
		id, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		return c.SendString(id.String() + " " + helper.GetUserRole(c) + " " + helper.GetRawAccessToken(c))
	})
	app.Get("/manager", OnlyRoles(constants.RoleErrorManager("this resource"), constants.ManagerOnly...), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func do(t *testing.T, app *fiber.App, path string, header map[string]string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware(t *testing.T) {
	employee := &userModel.UserModel{ID: uuid.New(), Role: constants.RoleEmployee}
	manager := &userModel.UserModel{ID: uuid.New(), Role: constants.RoleManager}
	app := newGateApp(stubAuthenticator{users: map[string]*userModel.UserModel{
		"emp-token": employee,
		"mgr-token": manager,
	}})

	t.Run("missing token", func(t *testing.T) {
		code, body := do(t, app, "/me", nil)
		if code != fiber.StatusUnauthorized || !strings.Contains(body, "No token provided") {
			t.Fatalf("got %d %s", code, body)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		code, _ := do(t, app, "/me", map[string]string{"Authorization": "Token emp-token"})
		if code != fiber.StatusUnauthorized {
			t.Fatalf("got %d", code)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		code, body := do(t, app, "/me", map[string]string{"Authorization": "Bearer nope"})
		if code != fiber.StatusUnauthorized || !strings.Contains(body, "Invalid or expired token") {
			t.Fatalf("got %d %s", code, body)
		}
	})

	t.Run("valid bearer populates locals", func(t *testing.T) {
		code, body := do(t, app, "/me", map[string]string{"Authorization": "Bearer emp-token"})
		want := employee.ID.String() + " EMPLOYEE emp-token"
		if code != fiber.StatusOK || body != want {
			t.Fatalf("got %d %q want %q", code, body, want)
		}
	})

	t.Run("cookie fallback", func(t *testing.T) {
		code, _ := do(t, app, "/me", map[string]string{"Cookie": "access_token=emp-token"})
		if code != fiber.StatusOK {
			t.Fatalf("got %d", code)
		}
	})

	t.Run("employee blocked from manager route", func(t *testing.T) {
		code, body := do(t, app, "/manager", map[string]string{"Authorization": "Bearer emp-token"})
		if code != fiber.StatusForbidden || !strings.Contains(body, "Only managers can access") {
			t.Fatalf("got %d %s", code, body)
		}
	})

	t.Run("manager allowed", func(t *testing.T) {
		code, _ := do(t, app, "/manager", map[string]string{"Authorization": "Bearer mgr-token"})
		if code != fiber.StatusOK {
			t.Fatalf("got %d", code)
		}
	})
}

func TestAuthMiddleware_StoreFailure(t *testing.T) {
	app := newGateApp(stubAuthenticator{err: errors.New("redis down")})
	code, body := do(t, app, "/me", map[string]string{"Authorization": "Bearer anything"})
	if code != fiber.StatusInternalServerError || !strings.Contains(body, `"error"`) {
		t.Fatalf("got %d %s", code, body)
	}
}
