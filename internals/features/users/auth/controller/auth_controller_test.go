package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"attendance_backend/internals/features/users/auth/service"
	helper "attendance_backend/internals/helpers"
	"attendance_backend/internals/helpers/metrics"
	authMiddleware "attendance_backend/internals/middlewares/auth"
	"attendance_backend/internals/testfixtures"
)

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	clock := testfixtures.NewClock(time.Time{})
	tokens, err := service.NewTokenService("controller-test-secret", time.Hour, clock.NowFunc())
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	authSvc := service.NewAuthService(
		testfixtures.NewUserStore(),
		tokens,
		service.NewPasswordHasher(bcrypt.MinCost),
		service.NewRedisRevoker(client, clock.NowFunc()),
	)
	ctl := NewAuthController(authSvc, metrics.New(), false)
	protect := authMiddleware.AuthMiddleware(authSvc)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Post("/auth/register", ctl.Register)
	app.Post("/auth/login", ctl.Login)
	app.Get("/auth/me", protect, ctl.Me)
	app.Post("/auth/logout", protect, ctl.Logout)
	return app
}

type result struct {
	code int
	body map[string]any
}

func call(t *testing.T, app *fiber.App, method, path, body, token string) result {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	out := result{code: resp.StatusCode, body: map[string]any{}}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out.body); err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
	}
	return out
}

const aliceBody = `{"name":"Alice","email":"alice@company.com","password":"secret123","employeeId":"EMP001","department":"Engineering","monthlySalary":60000}`

func TestAuthController_Flow(t *testing.T) {
	app := newAuthApp(t)

	reg := call(t, app, fiber.MethodPost, "/auth/register", aliceBody, "")
	if reg.code != fiber.StatusCreated {
		t.Fatalf("register: %d %v", reg.code, reg.body)
	}
	user, _ := reg.body["user"].(map[string]any)
	if user["employeeId"] != "EMP001" || user["role"] != "EMPLOYEE" {
		t.Fatalf("unexpected user %v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatal("password must never be serialised")
	}

	login := call(t, app, fiber.MethodPost, "/auth/login", `{"email":"alice@company.com","password":"secret123"}`, "")
	token, _ := login.body["token"].(string)
	if login.code != fiber.StatusOK || token == "" || login.body["message"] != "Login successful" {
		t.Fatalf("login: %d %v", login.code, login.body)
	}

	me := call(t, app, fiber.MethodGet, "/auth/me", "", token)
	meUser, _ := me.body["user"].(map[string]any)
	if me.code != fiber.StatusOK || meUser["email"] != "alice@company.com" {
		t.Fatalf("me: %d %v", me.code, me.body)
	}

	out := call(t, app, fiber.MethodPost, "/auth/logout", "", token)
	if out.code != fiber.StatusOK {
		t.Fatalf("logout: %d %v", out.code, out.body)
	}
	after := call(t, app, fiber.MethodGet, "/auth/me", "", token)
	if after.code != fiber.StatusUnauthorized {
		t.Fatalf("revoked token still accepted: %d", after.code)
	}
}

func TestAuthController_Errors(t *testing.T) {
	app := newAuthApp(t)
	if r := call(t, app, fiber.MethodPost, "/auth/register", aliceBody, ""); r.code != fiber.StatusCreated {
		t.Fatalf("seed register: %d %v", r.code, r.body)
	}

	cases := []struct {
		name    string
		path    string
		body    string
		code    int
		message string
	}{
		{"duplicate email", "/auth/register", strings.Replace(aliceBody, "EMP001", "EMP002", 1), fiber.StatusBadRequest, "User with this email already exists"},
		{"duplicate employee id", "/auth/register", strings.Replace(aliceBody, "alice@", "other@", 1), fiber.StatusBadRequest, "Employee ID already exists"},
		{"missing fields", "/auth/register", `{"email":"x@company.com"}`, fiber.StatusBadRequest, ""},
		{"bad role", "/auth/register", `{"name":"X","email":"x@company.com","password":"secret123","employeeId":"E9","role":"ADMIN"}`, fiber.StatusBadRequest, ""},
		{"malformed json", "/auth/login", `{`, fiber.StatusBadRequest, "Invalid request body"},
		{"wrong password", "/auth/login", `{"email":"alice@company.com","password":"nope"}`, fiber.StatusUnauthorized, "Invalid credentials"},
		{"unknown email", "/auth/login", `{"email":"ghost@company.com","password":"secret123"}`, fiber.StatusUnauthorized, "Invalid credentials"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := call(t, app, fiber.MethodPost, tc.path, tc.body, "")
			if r.code != tc.code {
				t.Fatalf("status %d want %d (%v)", r.code, tc.code, r.body)
			}
			msg, _ := r.body["error"].(string)
			if msg == "" || (tc.message != "" && msg != tc.message) {
				t.Fatalf("error %q want %q", msg, tc.message)
			}
		})
	}

	t.Run("me without token", func(t *testing.T) {
		r := call(t, app, fiber.MethodGet, "/auth/me", "", "")
		if r.code != fiber.StatusUnauthorized || r.body["error"] != "No token provided" {
			t.Fatalf("got %d %v", r.code, r.body)
		}
	})
}
