package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/KanishkaMohata21/neighbourAid/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory implementations used by the test suites. They mirror the Mongo
// stores' semantics, including the conditional assign/complete updates, with
// a mutex standing in for the store's single-document atomicity.

type MemoryUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *MemoryUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email || existing.AadharNo == u.AadharNo {
			return ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.AssignedTasks == nil {
		u.AssignedTasks = []primitive.ObjectID{}
	}
	if u.MyCreatedTasks == nil {
		u.MyCreatedTasks = []primitive.ObjectID{}
	}
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findBy(func(u models.User) bool { return u.Email == email })
}

func (s *MemoryUserStore) FindByName(_ context.Context, name string) (*models.User, error) {
	return s.findBy(func(u models.User) bool { return u.Name == name })
}

func (s *MemoryUserStore) findBy(match func(models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) EmailOrAadharExists(_ context.Context, email, aadharNo string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email || u.AadharNo == aadharNo {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryUserStore) Update(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range s.users {
		if id == u.ID {
			continue
		}
		if existing.Email == u.Email || existing.AadharNo == u.AadharNo {
			return ErrDuplicate
		}
	}
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryUserStore) AddCreatedTask(_ context.Context, userID, taskID primitive.ObjectID) error {
	return s.push(userID, taskID, false)
}

func (s *MemoryUserStore) AddAssignedTask(_ context.Context, userID, taskID primitive.ObjectID) error {
	return s.push(userID, taskID, true)
}

func (s *MemoryUserStore) push(userID, taskID primitive.ObjectID, assigned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	if assigned {
		u.AssignedTasks = append(u.AssignedTasks, taskID)
	} else {
		u.MyCreatedTasks = append(u.MyCreatedTasks, taskID)
	}
	s.users[userID] = u
	return nil
}

type MemoryTaskStore struct {
	mu    sync.Mutex
	tasks map[primitive.ObjectID]models.Task
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: make(map[primitive.ObjectID]models.Task)}
}

func (s *MemoryTaskStore) Create(_ context.Context, t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.Status == "" {
		t.Status = models.StatusNotAssigned
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tasks[t.ID] = *t
	return nil
}

func (s *MemoryTaskStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (s *MemoryTaskStore) FindAll(_ context.Context) ([]models.Task, error) {
	return s.find(func(models.Task) bool { return true })
}

func (s *MemoryTaskStore) FindByStatus(_ context.Context, status string) ([]models.Task, error) {
	return s.find(func(t models.Task) bool { return t.Status == status })
}

func (s *MemoryTaskStore) FindByCreator(_ context.Context, userID primitive.ObjectID, status string) ([]models.Task, error) {
	return s.find(func(t models.Task) bool {
		return t.UserID == userID && (status == "" || t.Status == status)
	})
}

func (s *MemoryTaskStore) FindByAssignee(_ context.Context, userID primitive.ObjectID, status string) ([]models.Task, error) {
	return s.find(func(t models.Task) bool {
		return t.AssignedTo != nil && *t.AssignedTo == userID && (status == "" || t.Status == status)
	})
}

func (s *MemoryTaskStore) find(match func(models.Task) bool) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := []models.Task{}
	for _, t := range s.tasks {
		if match(t) {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.Before(tasks[j].CreatedAt) })
	return tasks, nil
}

func (s *MemoryTaskStore) Update(_ context.Context, t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[t.ID]; !ok {
		return ErrNotFound
	}
	t.UpdatedAt = time.Now()
	s.tasks[t.ID] = *t
	return nil
}

func (s *MemoryTaskStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemoryTaskStore) Assign(_ context.Context, taskID, userID primitive.ObjectID) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return nil, ErrNotFound
	}
	if t.AssignedTo != nil {
		return nil, ErrAlreadyAssigned
	}
	assignee := userID
	t.AssignedTo = &assignee
	t.Status = models.StatusAssigned
	t.UpdatedAt = time.Now()
	s.tasks[taskID] = t
	return &t, nil
}

func (s *MemoryTaskStore) Complete(_ context.Context, taskID primitive.ObjectID) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return nil, ErrNotFound
	}
	if t.Status == models.StatusCompleted {
		return nil, ErrAlreadyCompleted
	}
	t.Status = models.StatusCompleted
	t.UpdatedAt = time.Now()
	s.tasks[taskID] = t
	return &t, nil
}

type MemoryNotificationStore struct {
	mu            sync.Mutex
	notifications []models.Notification
}

func NewMemoryNotificationStore() *MemoryNotificationStore {
	return &MemoryNotificationStore{}
}

func (s *MemoryNotificationStore) Create(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	s.notifications = append(s.notifications, *n)
	return nil
}

func (s *MemoryNotificationStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Notification{}
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}
