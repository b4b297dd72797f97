package repository

import (
	"context"
	"errors"

	"github.com/KanishkaMohata21/neighbourAid/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserStore struct {
	c *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{c: db.Collection("users")}
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.AssignedTasks == nil {
		u.AssignedTasks = []primitive.ObjectID{}
	}
	if u.MyCreatedTasks == nil {
		u.MyCreatedTasks = []primitive.ObjectID{}
	}
	_, err := s.c.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) FindByName(ctx context.Context, name string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"name": name})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) EmailOrAadharExists(ctx context.Context, email, aadharNo string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"aadharNo": aadharNo},
	}})
	return n > 0, err
}

func (s *UserStore) Update(ctx context.Context, u *models.User) error {
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserStore) AddCreatedTask(ctx context.Context, userID, taskID primitive.ObjectID) error {
	return s.push(ctx, userID, "myCreatedTasks", taskID)
}

func (s *UserStore) AddAssignedTask(ctx context.Context, userID, taskID primitive.ObjectID) error {
	return s.push(ctx, userID, "assignedTasks", taskID)
}

func (s *UserStore) push(ctx context.Context, userID primitive.ObjectID, field string, taskID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, userID, bson.M{"$push": bson.M{field: taskID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
