package handlers

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/KanishkaMohata21/neighbourAid/internal/config"
	"github.com/KanishkaMohata21/neighbourAid/internal/models"
	"github.com/KanishkaMohata21/neighbourAid/internal/repository"
	"github.com/KanishkaMohata21/neighbourAid/pkg/images"
	"github.com/KanishkaMohata21/neighbourAid/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const passwordSymbols = "@$!%*?&"

var (
	aadharPattern = regexp.MustCompile(`^\d{12}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// isPasswordValid enforces at least 12 characters with a letter, a digit and
// a symbol, drawn only from the allowed character set.
func isPasswordValid(password string) bool {
	if len(password) < 12 {
		return false
	}
	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit && hasSymbol
}

func isAadharValid(aadharNo string) bool {
	return aadharPattern.MatchString(aadharNo)
}

func isEmailValid(email string) bool {
	return emailPattern.MatchString(email)
}

// generateToken signs a 1-hour HS256 token carrying the user ID.
func generateToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	return token.SignedString(config.SecretKey)
}

func Register(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Name     string         `json:"name" validate:"required"`
		Email    string         `json:"email" validate:"required"`
		Password string         `json:"password" validate:"required"`
		Address  models.Address `json:"address" validate:"required"`
		Gender   string         `json:"gender" validate:"required,oneof=Male Female Other"`
		AadharNo string         `json:"aadharNo" validate:"required"`
		PhoneNo  string         `json:"phoneNo" validate:"required"`
		Photo    string         `json:"photo"`
		Dropdown string         `json:"dropdown" validate:"required,oneof='Senior Citizen' 'Adult'"`
		Age      int            `json:"age" validate:"required"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bad request"})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields except photo are required"})
	}

	if !isEmailValid(req.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}

	if !isPasswordValid(req.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Password must be at least 12 characters long and include numbers, letters, and symbols",
		})
	}

	if !isAadharValid(req.AadharNo) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Aadhar number must be exactly 12 digits without hyphens",
		})
	}

	exists, err := config.Users.EmailOrAadharExists(c.Context(), req.Email, req.AadharNo)
	if err != nil {
		logger.ErrorLogger.Error("Error checking existing user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	if exists {
		logger.SecurityLogger.Warn("Duplicate registration attempt", zap.String("email", req.Email))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User with the same email or aadhar number already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error hashing password"})
	}

	// The photo file is written before the insert; if the insert fails the
	// file stays behind.
	photoPath := ""
	if req.Photo != "" {
		photoPath, err = images.SaveBase64(config.UploadDir, req.Photo)
		if err != nil {
			logger.ErrorLogger.Error("Error saving photo", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error saving photo"})
		}
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Address:  req.Address,
		Gender:   req.Gender,
		AadharNo: req.AadharNo,
		PhoneNo:  req.PhoneNo,
		Photo:    photoPath,
		Dropdown: req.Dropdown,
		Age:      req.Age,
	}
	if err := config.Users.Create(c.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			logger.SecurityLogger.Warn("Duplicate registration attempt", zap.String("email", req.Email))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "User with the same email or aadhar number already exists",
			})
		}
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating user"})
	}

	token, err := generateToken(user.ID.Hex())
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error generating token"})
	}

	logger.AuditLogger.Info("User registered", zap.String("userID", user.ID.Hex()))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
		"token":   token,
	})
}

func Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bad request"})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}

	// Unknown email and wrong password share one message so callers cannot
	// probe which emails are registered.
	user, err := config.Users.FindByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.SecurityLogger.Warn("Login for unknown email", zap.String("email", req.Email))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.SecurityLogger.Warn("Invalid password", zap.String("email", req.Email))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	token, err := generateToken(user.ID.Hex())
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error generating token"})
	}

	// Login deliberately returns only the token, not the profile.
	logger.AuditLogger.Info("Login success", zap.String("userID", user.ID.Hex()))
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}
