package repository

import (
	"context"
	"errors"
	"time"

	"github.com/KanishkaMohata21/neighbourAid/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TaskStore struct {
	c *mongo.Collection
}

func NewTaskStore(db *mongo.Database) *TaskStore {
	return &TaskStore{c: db.Collection("tasks")}
}

func (s *TaskStore) Create(ctx context.Context, t *models.Task) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.Status == "" {
		t.Status = models.StatusNotAssigned
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, t)
	return err
}

func (s *TaskStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *TaskStore) FindAll(ctx context.Context) ([]models.Task, error) {
	return s.find(ctx, bson.M{})
}

func (s *TaskStore) FindByStatus(ctx context.Context, status string) ([]models.Task, error) {
	return s.find(ctx, bson.M{"status": status})
}

func (s *TaskStore) FindByCreator(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Task, error) {
	filter := bson.M{"userId": userID}
	if status != "" {
		filter["status"] = status
	}
	return s.find(ctx, filter)
}

func (s *TaskStore) FindByAssignee(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Task, error) {
	filter := bson.M{"assignedTo": userID}
	if status != "" {
		filter["status"] = status
	}
	return s.find(ctx, filter)
}

func (s *TaskStore) find(ctx context.Context, filter bson.M) ([]models.Task, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	tasks := []models.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskStore) Update(ctx context.Context, t *models.Task) error {
	t.UpdatedAt = time.Now()
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *TaskStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Assign is a single conditional update: the filter only matches while
// assignedTo is still null, so concurrent assigns resolve to exactly one
// winner inside the store.
func (s *TaskStore) Assign(ctx context.Context, taskID, userID primitive.ObjectID) (*models.Task, error) {
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Task
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": taskID, "assignedTo": nil},
		bson.M{"$set": bson.M{
			"assignedTo": userID,
			"status":     models.StatusAssigned,
			"updatedAt":  time.Now(),
		}},
		after,
	).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, ferr := s.FindByID(ctx, taskID); ferr != nil {
			return nil, ferr
		}
		return nil, ErrAlreadyAssigned
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Complete uses the same conditional-update shape as Assign; a second call
// finds no matching document and reports ErrAlreadyCompleted.
func (s *TaskStore) Complete(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error) {
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Task
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": taskID, "status": bson.M{"$ne": models.StatusCompleted}},
		bson.M{"$set": bson.M{
			"status":    models.StatusCompleted,
			"updatedAt": time.Now(),
		}},
		after,
	).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, ferr := s.FindByID(ctx, taskID); ferr != nil {
			return nil, ferr
		}
		return nil, ErrAlreadyCompleted
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
