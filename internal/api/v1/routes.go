package v1

import (
	"github.com/KanishkaMohata21/neighbourAid/internal/api/v1/handlers"
	"github.com/KanishkaMohata21/neighbourAid/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	// User profile (token-gated) and task lists
	user := api.Group("/user")
	user.Get("/:userId/profile", middleware.UseToken, handlers.GetUserProfile)
	user.Put("/:userId/profile", middleware.UseToken, handlers.UpdateUserProfile)
	user.Get("/:userId/getMyTasks", handlers.GetMyTasks)
	user.Get("/:userId/completedTasks", handlers.GetUserCompletedTasks)

	// Task workflow
	tasks := api.Group("/tasks")
	tasks.Post("/addtask", handlers.CreateTask)
	tasks.Post("/edittask/:taskId", handlers.EditTask)
	tasks.Delete("/deletetask/:taskId", handlers.DeleteTask)
	tasks.Get("/getAllTask", handlers.GetAllTasks)
	tasks.Get("/getTaskById/:taskId", handlers.GetTaskByID)
	tasks.Get("/status/:status", handlers.GetTasksByStatus)
	tasks.Get("/notifications", handlers.GetNotifications)
	tasks.Post("/:taskId/assign", handlers.AssignTask)
	tasks.Post("/:taskId/complete", handlers.CompleteTask)

	// Stored images
	app.Get("/uploads/:filename", handlers.GetFile)
}
