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
	"golang.org/x/crypto/bcrypt"
)

func userCacheKey(id primitive.ObjectID) string {
	return fmt.Sprintf("user:%s", id.Hex())
}

func dropUserCache(id primitive.ObjectID) {
	if config.RedisClient == nil {
		return
	}
	config.RedisClient.Del(config.Ctx, userCacheKey(id))
}

func GetUserProfile(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if config.RedisClient != nil {
		if cached, err := config.RedisClient.Get(config.Ctx, userCacheKey(userID)).Result(); err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(cached), &user); err == nil {
				return c.JSON(fiber.Map{"user": user})
			}
		}
	}

	user, err := config.Users.FindByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	if config.RedisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			config.RedisClient.SetEX(config.Ctx, userCacheKey(userID), data, time.Hour)
		}
	}

	return c.JSON(fiber.Map{"user": user})
}

func UpdateUserProfile(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	// Absent fields leave the profile unchanged; present fields overwrite.
	type UpdateProfileRequest struct {
		Name     *string         `json:"name"`
		Email    *string         `json:"email"`
		Password *string         `json:"password"`
		Address  *models.Address `json:"address"`
		Gender   *string         `json:"gender"`
		AadharNo *string         `json:"aadharNo"`
		PhoneNo  *string         `json:"phoneNo"`
		Photo    *string         `json:"photo"`
		Dropdown *string         `json:"dropdown"`
		Age      *int            `json:"age"`
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update profile", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bad request"})
	}

	user, err := config.Users.FindByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := config.Users.FindByEmail(c.Context(), *req.Email); err == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is already in use"})
		} else if !errors.Is(err, repository.ErrNotFound) {
			logger.ErrorLogger.Error("Error checking email", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
		}
		user.Email = *req.Email
	}

	if req.Name != nil && *req.Name != user.Name {
		if _, err := config.Users.FindByName(c.Context(), *req.Name); err == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username is already taken"})
		} else if !errors.Is(err, repository.ErrNotFound) {
			logger.ErrorLogger.Error("Error checking name", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
		}
		user.Name = *req.Name
	}

	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 10)
		if err != nil {
			logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error hashing password"})
		}
		user.Password = string(hashed)
	}

	// Unlike task edit, a replaced profile photo deletes the old file.
	if req.Photo != nil && *req.Photo != "" {
		if err := images.Remove(config.UploadDir, user.Photo); err != nil {
			logger.ErrorLogger.Error("Error removing old photo", zap.Error(err))
		}
		photoPath, err := images.SaveBase64(config.UploadDir, *req.Photo)
		if err != nil {
			logger.ErrorLogger.Error("Error saving photo", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error saving photo"})
		}
		user.Photo = photoPath
	}

	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.AadharNo != nil {
		user.AadharNo = *req.AadharNo
	}
	if req.PhoneNo != nil {
		user.PhoneNo = *req.PhoneNo
	}
	if req.Dropdown != nil {
		user.Dropdown = *req.Dropdown
	}
	if req.Age != nil {
		user.Age = *req.Age
	}

	if err := config.Users.Update(c.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is already in use"})
		}
		logger.ErrorLogger.Error("Error updating user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error updating user"})
	}
	dropUserCache(userID)

	logger.AuditLogger.Info("Profile updated", zap.String("userID", userID.Hex()))
	return c.JSON(fiber.Map{
		"message": "User profile updated successfully",
		"user":    user,
	})
}

func GetMyTasks(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
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

	createdTasks, err := config.Tasks.FindByCreator(c.Context(), userID, "")
	if err != nil {
		logger.ErrorLogger.Error("Error fetching created tasks", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching tasks"})
	}
	assignedTasks, err := config.Tasks.FindByAssignee(c.Context(), userID, "")
	if err != nil {
		logger.ErrorLogger.Error("Error fetching assigned tasks", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching tasks"})
	}

	return c.JSON(fiber.Map{
		"message":       "Tasks retrieved successfully",
		"createdTasks":  createdTasks,
		"assignedTasks": assignedTasks,
	})
}

// GetUserCompletedTasks concatenates completed assigned and created tasks; a
// task both created by and assigned to the same user appears twice.
func GetUserCompletedTasks(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
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

	assignedTasks, err := config.Tasks.FindByAssignee(c.Context(), userID, models.StatusCompleted)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching assigned tasks", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching tasks"})
	}
	createdTasks, err := config.Tasks.FindByCreator(c.Context(), userID, models.StatusCompleted)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching created tasks", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching tasks"})
	}

	completedTasks := append(assignedTasks, createdTasks...)

	return c.JSON(fiber.Map{
		"message":        "Completed tasks retrieved successfully",
		"completedTasks": completedTasks,
	})
}
