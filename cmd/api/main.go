package main

import (
	"fmt"
	"time"

	"github.com/KanishkaMohata21/neighbourAid/configs"
	v1 "github.com/KanishkaMohata21/neighbourAid/internal/api/v1"
	"github.com/KanishkaMohata21/neighbourAid/internal/config"
	"github.com/KanishkaMohata21/neighbourAid/internal/middleware"
	"github.com/KanishkaMohata21/neighbourAid/internal/repository"
	myws "github.com/KanishkaMohata21/neighbourAid/internal/websocket"
	"github.com/KanishkaMohata21/neighbourAid/pkg/database"
	"github.com/KanishkaMohata21/neighbourAid/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

func main() {
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	cfg := configs.LoadConfig()
	config.SecretKey = []byte(cfg.JWTSecret)
	config.UploadDir = cfg.UploadDir

	client := database.ConnectDB(cfg)
	defer func() { _ = client.Disconnect(config.Ctx) }()
	config.DB = client.Database(cfg.DBName)
	logger.SystemLogger.Info("Database Connected", zap.String("db", cfg.DBName))

	if err := repository.EnsureIndexes(config.Ctx, config.DB); err != nil {
		logger.ErrorLogger.Error("Index setup failed", zap.Error(err))
		logger.SyncLoggers()
		panic(err)
	}

	config.Users = repository.NewUserStore(config.DB)
	config.Tasks = repository.NewTaskStore(config.DB)
	config.Notifications = repository.NewNotificationStore(config.DB)

	if cfg.RedisHost != "" {
		config.RedisClient = database.ConnectRedis(config.Ctx, cfg)
		defer config.RedisClient.Close()
		logger.SystemLogger.Info("Redis Connected")
	}

	hub := myws.NewHub()
	go hub.Run()
	config.Hub = hub

	app := fiber.New()

	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	v1.RegisterRoutes(app)

	// Live notification subscriptions
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/:userId", websocket.New(func(c *websocket.Conn) {
		client := &myws.Client{UserID: c.Params("userId"), Conn: c}
		hub.Register <- client
		defer func() {
			hub.Unregister <- client
		}()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
