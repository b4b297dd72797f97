package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KanishkaMohata21/neighbourAid/internal/config"
	"github.com/KanishkaMohata21/neighbourAid/internal/middleware"
	"github.com/KanishkaMohata21/neighbourAid/internal/repository"
	"github.com/KanishkaMohata21/neighbourAid/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupTestApp wires the handlers against in-memory stores, mirroring the
// route table in internal/api/v1.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger.ErrorLogger = zap.NewNop()
	logger.AuditLogger = zap.NewNop()
	logger.RequestLogger = zap.NewNop()
	logger.SecurityLogger = zap.NewNop()
	logger.SystemLogger = zap.NewNop()

	config.Users = repository.NewMemoryUserStore()
	config.Tasks = repository.NewMemoryTaskStore()
	config.Notifications = repository.NewMemoryNotificationStore()
	config.RedisClient = nil
	config.Hub = nil
	config.SecretKey = []byte("secret")
	config.UploadDir = t.TempDir()

	app := fiber.New()
	app.Use(middleware.ErrorHandler())

	app.Post("/api/auth/register", Register)
	app.Post("/api/auth/login", Login)

	app.Get("/api/user/:userId/profile", middleware.UseToken, GetUserProfile)
	app.Put("/api/user/:userId/profile", middleware.UseToken, UpdateUserProfile)
	app.Get("/api/user/:userId/getMyTasks", GetMyTasks)
	app.Get("/api/user/:userId/completedTasks", GetUserCompletedTasks)

	app.Post("/api/tasks/addtask", CreateTask)
	app.Post("/api/tasks/edittask/:taskId", EditTask)
	app.Delete("/api/tasks/deletetask/:taskId", DeleteTask)
	app.Get("/api/tasks/getAllTask", GetAllTasks)
	app.Get("/api/tasks/getTaskById/:taskId", GetTaskByID)
	app.Get("/api/tasks/status/:status", GetTasksByStatus)
	app.Get("/api/tasks/notifications", GetNotifications)
	app.Post("/api/tasks/:taskId/assign", AssignTask)
	app.Post("/api/tasks/:taskId/complete", CompleteTask)

	return app
}

// doJSON performs a request with an optional JSON body and bearer token and
// decodes the JSON response.
func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func testAddress() map[string]interface{} {
	return map[string]interface{}{
		"street":     "12 MG Road",
		"city":       "Pune",
		"state":      "Maharashtra",
		"postalCode": "411001",
	}
}

var aadharCounter int64 = 100000000000

func nextAadhar() string {
	aadharCounter++
	return fmt.Sprintf("%012d", aadharCounter)
}

// registerUser registers a user of the given category and returns its ID and
// token.
func registerUser(t *testing.T, app *fiber.App, name, category string) (string, string) {
	t.Helper()

	body := map[string]interface{}{
		"name":     name,
		"email":    name + "@example.com",
		"password": "Passw0rd@2024",
		"address":  testAddress(),
		"gender":   "Other",
		"aadharNo": nextAadhar(),
		"phoneNo":  "9876543210",
		"dropdown": category,
		"age":      52,
	}
	code, result := doJSON(t, app, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, code, "register response: %v", result)

	user, ok := result["user"].(map[string]interface{})
	require.True(t, ok, "expected user in register response")
	id, _ := user["_id"].(string)
	token, _ := result["token"].(string)
	require.NotEmpty(t, id)
	require.NotEmpty(t, token)
	return id, token
}

// createTask creates a task owned by creatorID and returns its ID.
func createTask(t *testing.T, app *fiber.App, creatorID, title string) string {
	t.Helper()

	body := map[string]interface{}{
		"userId":      creatorID,
		"title":       title,
		"description": "help needed",
		"phoneNo":     "9876543210",
		"address":     testAddress(),
		"money":       250.0,
	}
	code, result := doJSON(t, app, http.MethodPost, "/api/tasks/addtask", body, "")
	require.Equal(t, http.StatusCreated, code, "create task response: %v", result)

	task, ok := result["task"].(map[string]interface{})
	require.True(t, ok)
	id, _ := task["_id"].(string)
	require.NotEmpty(t, id)
	return id
}

func taskStatus(t *testing.T, app *fiber.App, taskID string) string {
	t.Helper()
	code, result := doJSON(t, app, http.MethodGet, "/api/tasks/getTaskById/"+taskID, nil, "")
	require.Equal(t, http.StatusOK, code)
	task := result["task"].(map[string]interface{})
	status, _ := task["status"].(string)
	return status
}
