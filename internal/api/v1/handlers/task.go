package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KanishkaMohata21/neighbourAid/internal/config"
	"github.com/KanishkaMohata21/neighbourAid/internal/models"
	"github.com/KanishkaMohata21/neighbourAid/internal/repository"
	"github.com/KanishkaMohata21/neighbourAid/pkg/images"
	"github.com/KanishkaMohata21/neighbourAid/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Task reads go through a 1-hour Redis cache keyed task:<id>; writes drop the
// key. Everything no-ops when no Redis client is configured.

func taskCacheKey(id primitive.ObjectID) string {
	return fmt.Sprintf("task:%s", id.Hex())
}

func cachedTask(id primitive.ObjectID) *models.Task {
	if config.RedisClient == nil {
		return nil
	}
	cached, err := config.RedisClient.Get(config.Ctx, taskCacheKey(id)).Result()
	if err != nil {
		return nil
	}
	var t models.Task
	if err := json.Unmarshal([]byte(cached), &t); err != nil {
		return nil
	}
	return &t
}

func cacheTask(t *models.Task) {
	if config.RedisClient == nil {
		return
	}
	if data, err := json.Marshal(t); err == nil {
		config.RedisClient.SetEX(config.Ctx, taskCacheKey(t.ID), data, time.Hour)
	}
}

func dropTaskCache(id primitive.ObjectID) {
	if config.RedisClient == nil {
		return
	}
	config.RedisClient.Del(config.Ctx, taskCacheKey(id))
}

// pushNotification hands the stored notification to any live websocket
// subscribers of the target user.
func pushNotification(n *models.Notification) {
	if config.Hub == nil {
		return
	}
	if data, err := json.Marshal(n); err == nil {
		config.Hub.Push(n.UserID.Hex(), data)
	}
}

func CreateTask(c *fiber.Ctx) error {
	type CreateTaskRequest struct {
		UserID      string         `json:"userId" validate:"required"`
		Title       string         `json:"title" validate:"required"`
		Description string         `json:"description" validate:"required"`
		PhoneNo     string         `json:"phoneNo" validate:"required"`
		Address     models.Address `json:"address" validate:"required"`
		Money       float64        `json:"money" validate:"required"`
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bad request"})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error in create task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title, description, phone number, address and amount are required"})
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	user, err := config.Users.FindByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	if user.Dropdown != models.CategorySenior {
		logger.SecurityLogger.Warn("Non-senior attempted task creation", zap.String("userID", user.ID.Hex()))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only senior citizens can create tasks"})
	}

	task := models.Task{
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		PhoneNo:     req.PhoneNo,
		Address:     req.Address,
		Money:       req.Money,
	}
	if err := config.Tasks.Create(c.Context(), &task); err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating task"})
	}

	if err := config.Users.AddCreatedTask(c.Context(), user.ID, task.ID); err != nil {
		logger.ErrorLogger.Error("Error linking task to creator", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating task"})
	}

	logger.AuditLogger.Info("Task created", zap.String("taskID", task.ID.Hex()))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Task successfully created",
		"task":    task,
	})
}

func EditTask(c *fiber.Ctx) error {
	taskID, err := primitive.ObjectIDFromHex(c.Params("taskId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	// Pointer fields distinguish "leave unchanged" (absent) from an explicit
	// overwrite, including overwriting with an empty value.
	type EditTaskRequest struct {
		UserID      string          `json:"userId" validate:"required"`
		Title       *string         `json:"title"`
		Description *string         `json:"description"`
		Image       *string         `json:"image"`
		Money       *float64        `json:"money"`
		Address     *models.Address `json:"address"`
		PhoneNo     *string         `json:"phoneNo"`
	}

	var req EditTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in edit task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bad request"})
	}
	if err := config.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID is required"})
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	task, err := config.Tasks.FindByID(c.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	user, err := config.Users.FindByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	if task.UserID != userID {
		logger.SecurityLogger.Warn("Edit attempt by non-creator", zap.String("userID", req.UserID), zap.String("taskID", c.Params("taskId")))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not authorized to edit this task"})
	}
	if user.Dropdown != models.CategorySenior {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only senior citizens are allowed to modify tasks"})
	}

	// A new image replaces the stored path; the previous file stays on disk.
	if req.Image != nil && *req.Image != "" {
		imagePath, err := images.SaveBase64(config.UploadDir, *req.Image)
		if err != nil {
			logger.ErrorLogger.Error("Error saving image", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error saving image"})
		}
		task.Image = imagePath
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Money != nil {
		task.Money = *req.Money
	}
	if req.Address != nil {
		task.Address = *req.Address
	}
	if req.PhoneNo != nil {
		task.PhoneNo = *req.PhoneNo
	}

	if err := config.Tasks.Update(c.Context(), task); err != nil {
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error updating task"})
	}
	dropTaskCache(task.ID)

	logger.AuditLogger.Info("Task updated", zap.String("taskID", task.ID.Hex()))
	return c.JSON(fiber.Map{
		"message": "Task updated successfully",
		"task":    task,
	})
}

func DeleteTask(c *fiber.Ctx) error {
	taskID, err := primitive.ObjectIDFromHex(c.Params("taskId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	type DeleteTaskRequest struct {
		UserID string `json:"userId" validate:"required"`
	}
	var req DeleteTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in delete task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bad request"})
	}
	if err := config.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID is required"})
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	user, err := config.Users.FindByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	if user.Dropdown != models.CategorySenior {
		logger.SecurityLogger.Warn("Delete attempt by non-senior", zap.String("userID", req.UserID))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only senior citizens can delete tasks"})
	}

	task, err := config.Tasks.FindByID(c.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	if task.UserID != userID {
		logger.SecurityLogger.Warn("Delete attempt by non-creator", zap.String("userID", req.UserID), zap.String("taskID", c.Params("taskId")))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not authorized to delete this task"})
	}

	// The creator's myCreatedTasks reference is intentionally left behind.
	if err := config.Tasks.Delete(c.Context(), taskID); err != nil {
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error deleting task"})
	}
	dropTaskCache(taskID)

	logger.AuditLogger.Info("Task deleted", zap.String("taskID", taskID.Hex()))
	return c.JSON(fiber.Map{"message": "Task deleted successfully"})
}

func GetAllTasks(c *fiber.Ctx) error {
	tasks, err := config.Tasks.FindAll(c.Context())
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching tasks"})
	}
	return c.JSON(fiber.Map{
		"message": "All tasks fetched successfully",
		"tasks":   tasks,
	})
}

func GetTaskByID(c *fiber.Ctx) error {
	taskID, err := primitive.ObjectIDFromHex(c.Params("taskId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	if task := cachedTask(taskID); task != nil {
		return c.JSON(fiber.Map{
			"message": "Task fetched successfully",
			"task":    task,
		})
	}

	task, err := config.Tasks.FindByID(c.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	cacheTask(task)

	return c.JSON(fiber.Map{
		"message": "Task fetched successfully",
		"task":    task,
	})
}

func AssignTask(c *fiber.Ctx) error {
	taskID, err := primitive.ObjectIDFromHex(c.Params("taskId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	type AssignRequest struct {
		UserID string `json:"userId" validate:"required"`
	}
	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in assign task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bad request"})
	}
	if err := config.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID is required"})
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	task, err := config.Tasks.FindByID(c.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	if task.AssignedTo != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Task is already assigned to another user"})
	}

	user, err := config.Users.FindByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	// The store performs the check-and-set as one conditional update, so only
	// one of any concurrent assigns can win.
	task, err = config.Tasks.Assign(c.Context(), taskID, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyAssigned) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Task is already assigned to another user"})
		}
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		logger.ErrorLogger.Error("Error assigning task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error assigning task"})
	}
	dropTaskCache(taskID)

	if err := config.Users.AddAssignedTask(c.Context(), user.ID, task.ID); err != nil {
		logger.ErrorLogger.Error("Error linking task to assignee", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error assigning task"})
	}

	notification := models.Notification{
		UserID:  user.ID,
		Message: fmt.Sprintf("You have been assigned a new task: %s", task.Title),
		Type:    models.NotifAssignment,
		TaskID:  &task.ID,
	}
	if err := config.Notifications.Create(c.Context(), &notification); err != nil {
		logger.ErrorLogger.Error("Error creating notification", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error assigning task"})
	}
	pushNotification(&notification)

	logger.AuditLogger.Info("Task assigned", zap.String("taskID", task.ID.Hex()), zap.String("assignee", user.ID.Hex()))
	return c.JSON(fiber.Map{
		"message": "Task successfully assigned to the user",
		"task":    task,
	})
}

// CompleteTask has no caller authorization, matching the original behavior:
// anyone holding the task ID may complete it.
func CompleteTask(c *fiber.Ctx) error {
	taskID, err := primitive.ObjectIDFromHex(c.Params("taskId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	task, err := config.Tasks.Complete(c.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyCompleted) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Task is already completed"})
		}
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		logger.ErrorLogger.Error("Error completing task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error completing task"})
	}
	dropTaskCache(taskID)

	notification := models.Notification{
		UserID:  task.UserID,
		Message: fmt.Sprintf("Your task %q has been marked as completed.", task.Title),
		Type:    models.NotifCompletion,
		TaskID:  &task.ID,
	}
	if err := config.Notifications.Create(c.Context(), &notification); err != nil {
		logger.ErrorLogger.Error("Error creating notification", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error completing task"})
	}
	pushNotification(&notification)

	logger.AuditLogger.Info("Task completed", zap.String("taskID", task.ID.Hex()))
	return c.JSON(fiber.Map{
		"message": "Task successfully marked as completed",
		"task":    task,
	})
}

func GetTasksByStatus(c *fiber.Ctx) error {
	status := c.Params("status")
	if !models.ValidStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
	}

	tasks, err := config.Tasks.FindByStatus(c.Context(), status)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks by status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching tasks"})
	}
	return c.JSON(fiber.Map{
		"message": "Tasks retrieved successfully",
		"tasks":   tasks,
	})
}

func GetNotifications(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Query("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if _, err := config.Users.FindByID(c.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	notifications, err := config.Notifications.FindByUser(c.Context(), userID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching notifications", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching notifications"})
	}
	return c.JSON(fiber.Map{
		"message":       "Notifications retrieved successfully",
		"notifications": notifications,
	})
}
