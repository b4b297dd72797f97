package config

import (
	"context"

	"github.com/KanishkaMohata21/neighbourAid/internal/repository"
	ws "github.com/KanishkaMohata21/neighbourAid/internal/websocket"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// Shared dependencies wired in main and swapped out by the test suites.
var (
	DB            *mongo.Database
	SecretKey     = []byte("secret")
	Validate      = validator.New()
	Ctx           = context.Background()
	RedisClient   *redis.Client
	Hub           *ws.Hub
	UploadDir     = "uploads"
	Users         repository.UserRepository
	Tasks         repository.TaskRepository
	Notifications repository.NotificationRepository
)
