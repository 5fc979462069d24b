package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"go-datamonitor/internal/metrics"
	"go-datamonitor/internal/model"
	"go-datamonitor/internal/repository"
	"go-datamonitor/internal/testutil"
	"go-datamonitor/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
)

func withRole(role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_role", string(role))
		c.Locals("user_privileges", role.Privileges())
		return c.Next()
	}
}

func status(t *testing.T, app *fiber.App, method, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp.StatusCode
}

func ok(c *fiber.Ctx) error { return c.SendStatus(200) }

func TestRequirePrivilege(t *testing.T) {
	app := fiber.New()
	app.Get("/engineer", withRole(model.RoleEngineer), RequirePrivilege(model.PrivUnitManage), ok)
	app.Get("/admin", withRole(model.RoleAdmin), RequirePrivilege(model.PrivUnitManage), ok)
	app.Get("/anon", RequirePrivilege(model.PrivUnitManage), ok)

	if got := status(t, app, "GET", "/engineer", ""); got != 403 {
		t.Fatalf("engineer: expected 403, got %d", got)
	}
	if got := status(t, app, "GET", "/admin", ""); got != 200 {
		t.Fatalf("admin: expected 200, got %d", got)
	}
	if got := status(t, app, "GET", "/anon", ""); got != 403 {
		t.Fatalf("anon: expected 403, got %d", got)
	}
}

func TestRequireRole(t *testing.T) {
	app := fiber.New()
	app.Get("/engineer", withRole(model.RoleEngineer), RequireRole(string(model.RoleAdmin)), ok)
	app.Get("/admin", withRole(model.RoleAdmin), RequireRole(string(model.RoleAdmin)), ok)

	if got := status(t, app, "GET", "/engineer", ""); got != 403 {
		t.Fatalf("engineer: expected 403, got %d", got)
	}
	if got := status(t, app, "GET", "/admin", ""); got != 200 {
		t.Fatalf("admin: expected 200, got %d", got)
	}
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-test-secret")
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "eng@example.com", nil)
	users := repository.NewUserRepo(db)
	if err := users.UpdateTokenVersion(user.ID, "v1"); err != nil {
		t.Fatalf("failed to set token version: %v", err)
	}

	app := fiber.New()
	app.Get("/me", RequireAuth(users), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_role").(string) + " " + c.Locals("user_id").(string))
	})

	current, _ := jwt.Sign(jwt.Session{UserID: user.ID, Role: string(user.Role), TokenVersion: "v1"})
	stale, _ := jwt.Sign(jwt.Session{UserID: user.ID, Role: string(user.Role), TokenVersion: "v0"})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", 401},
		{"wrong scheme", "Basic abc", 401},
		{"garbage", "Bearer nope", 401},
		{"stale version", "Bearer " + stale, 401},
		{"current", "Bearer " + current, 200},
	}
	for _, tc := range cases {
		if got := status(t, app, "GET", "/me", tc.header); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}

	if err := db.Model(user).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}
	if got := status(t, app, "GET", "/me", "Bearer "+current); got != 401 {
		t.Fatalf("inactive: expected 401, got %d", got)
	}
}

func TestMetricsRecordsRoutePattern(t *testing.T) {
	m := metrics.New()
	app := fiber.New()
	app.Use(Metrics(m))
	app.Get("/items/:id", ok)

	status(t, app, "GET", "/items/1", "")
	status(t, app, "GET", "/items/2", "")

	count, err := promtest.GatherAndCount(m.Registry, "datamonitor_http_requests_total")
	if err != nil {
		t.Fatalf("failed to gather: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one series for the route pattern, got %d", count)
	}
	body := ""
	mfs, _ := m.Registry.Gather()
	for _, mf := range mfs {
		body += mf.String()
	}
	if !strings.Contains(body, "/items/:id") {
		t.Fatalf("route label missing: %s", body)
	}
}

func TestRequireStreamAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-test-secret")
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "eng@example.com", nil)
	users := repository.NewUserRepo(db)
	if err := users.UpdateTokenVersion(user.ID, "v1"); err != nil {
		t.Fatalf("failed to set token version: %v", err)
	}

	app := fiber.New()
	app.Get("/ws", RequireStreamAuth(users), ok)

	current, _ := jwt.Sign(jwt.Session{UserID: user.ID, Role: string(user.Role), TokenVersion: "v1"})
	stale, _ := jwt.Sign(jwt.Session{UserID: user.ID, Role: string(user.Role), TokenVersion: "v0"})

	if got := status(t, app, "GET", "/ws", ""); got != 401 {
		t.Fatalf("no token: expected 401, got %d", got)
	}
	if got := status(t, app, "GET", "/ws?token="+stale, ""); got != 401 {
		t.Fatalf("stale query token: expected 401, got %d", got)
	}
	if got := status(t, app, "GET", "/ws?token="+current, ""); got != 200 {
		t.Fatalf("query token: expected 200, got %d", got)
	}
	if got := status(t, app, "GET", "/ws", "Bearer "+current); got != 200 {
		t.Fatalf("bearer header: expected 200, got %d", got)
	}
}
