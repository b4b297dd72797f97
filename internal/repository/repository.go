package repository

import (
	"context"
	"errors"

	"github.com/KanishkaMohata21/neighbourAid/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("duplicate unique field")
	ErrAlreadyAssigned  = errors.New("task already assigned")
	ErrAlreadyCompleted = errors.New("task already completed")
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByName(ctx context.Context, name string) (*models.User, error)
	EmailOrAadharExists(ctx context.Context, email, aadharNo string) (bool, error)
	Update(ctx context.Context, u *models.User) error
	AddCreatedTask(ctx context.Context, userID, taskID primitive.ObjectID) error
	AddAssignedTask(ctx context.Context, userID, taskID primitive.ObjectID) error
}

type TaskRepository interface {
	Create(ctx context.Context, t *models.Task) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindAll(ctx context.Context) ([]models.Task, error)
	FindByStatus(ctx context.Context, status string) ([]models.Task, error)
	// FindByCreator and FindByAssignee filter by status when it is non-empty.
	FindByCreator(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Task, error)
	FindByAssignee(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Task, error)
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// Assign binds the task to userID as a single conditional update; a task
	// that already has an assignee yields ErrAlreadyAssigned.
	Assign(ctx context.Context, taskID, userID primitive.ObjectID) (*models.Task, error)
	// Complete moves the task to completed unless it already is.
	Complete(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	// FindByUser returns the user's notifications, newest first.
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
}
