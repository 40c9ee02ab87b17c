package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitledger/internal/db"
	"github.com/terraincognita07/fitledger/internal/logging"
	"gorm.io/gorm"
)

const testSecretKey = "test-secret-key-with-at-least-32-chars"

type testClock struct {
	now time.Time
}

func (clock *testClock) Now() time.Time {
	return clock.now
}

type testApp struct {
	app      *fiber.App
	database *gorm.DB
	clock    *testClock
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithOptions(t, HandlerOptions{LoginRatePerMinute: 1000})
}

func newTestAppWithOptions(t *testing.T, options HandlerOptions) *testApp {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "fitledger-api-test.db")
	database, err := db.OpenSQLite(databasePath, logging.GormWriter{Logger: logging.New("error", "text", io.Discard)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	clock := &testClock{now: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)}
	options.SecretKey = testSecretKey
	options.Location = time.UTC
	options.Clock = clock

	handler, err := NewHandler(database, options)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return &testApp{app: app, database: database, clock: clock}
}

func (env *testApp) do(t *testing.T, method string, path string, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	decoded := map[string]any{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode response %q: %v", string(raw), err)
		}
	}
	return response.StatusCode, decoded
}

func (env *testApp) register(t *testing.T, email string) string {
	t.Helper()

	status, body := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":        email,
		"password":     "StrongPass1",
		"display_name": "Lifter",
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: expected status 201, got %d (%v)", email, status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("register %s: expected token in response", email)
	}
	return token
}

func cutGoalBody() map[string]any {
	return map[string]any{
		"age":               30,
		"sex":               "male",
		"height_cm":         178,
		"weight_lbs":        180,
		"target_weight_lbs": 170,
		"activity_level":    "moderate",
		"goal_type":         "cut",
	}
}

func nestedMap(t *testing.T, body map[string]any, key string) map[string]any {
	t.Helper()
	value, ok := body[key].(map[string]any)
	if !ok {
		t.Fatalf("expected object at %q, got %v", key, body[key])
	}
	return value
}

func numberField(t *testing.T, body map[string]any, key string) float64 {
	t.Helper()
	value, ok := body[key].(float64)
	if !ok {
		t.Fatalf("expected number at %q, got %v", key, body[key])
	}
	return value
}
