package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User categories gating task creation.
const (
	CategorySenior = "Senior Citizen"
	CategoryAdult  = "Adult"
)

// Task lifecycle states. InProgress is declared but no operation sets it;
// it stays a valid filter value.
const (
	StatusNotAssigned = "not_assigned"
	StatusAssigned    = "assigned"
	StatusInProgress  = "in_progress"
	StatusCompleted   = "completed"
)

// Notification types.
const (
	NotifAssignment = "assignment"
	NotifCompletion = "completion"
	NotifUpdate     = "update"
)

// ValidStatus reports whether status is one of the four task states.
func ValidStatus(status string) bool {
	switch status {
	case StatusNotAssigned, StatusAssigned, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

type Address struct {
	Street     string `bson:"street" json:"street" validate:"required"`
	City       string `bson:"city" json:"city" validate:"required"`
	State      string `bson:"state" json:"state" validate:"required"`
	PostalCode string `bson:"postalCode" json:"postalCode" validate:"required"`
}

type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name           string               `bson:"name" json:"name"`
	Email          string               `bson:"email" json:"email"`
	Password       string               `bson:"password" json:"-"`
	Address        Address              `bson:"address" json:"address"`
	Gender         string               `bson:"gender" json:"gender"`
	AadharNo       string               `bson:"aadharNo" json:"aadharNo"`
	PhoneNo        string               `bson:"phoneNo" json:"phoneNo"`
	Photo          string               `bson:"photo,omitempty" json:"photo,omitempty"`
	Dropdown       string               `bson:"dropdown" json:"dropdown"`
	Age            int                  `bson:"age" json:"age"`
	AssignedTasks  []primitive.ObjectID `bson:"assignedTasks" json:"assignedTasks"`
	MyCreatedTasks []primitive.ObjectID `bson:"myCreatedTasks" json:"myCreatedTasks"`
}

type Task struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	UserID      primitive.ObjectID  `bson:"userId" json:"userId"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description" json:"description"`
	Image       string              `bson:"image,omitempty" json:"image,omitempty"`
	Money       float64             `bson:"money" json:"money"`
	PhoneNo     string              `bson:"phoneNo" json:"phoneNo"`
	Address     Address             `bson:"address" json:"address"`
	AssignedTo  *primitive.ObjectID `bson:"assignedTo" json:"assignedTo"`
	Status      string              `bson:"status" json:"status"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type Notification struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID  `bson:"userId" json:"userId"`
	Message   string              `bson:"message" json:"message"`
	Read      bool                `bson:"read" json:"read"`
	Timestamp time.Time           `bson:"timestamp" json:"timestamp"`
	Type      string              `bson:"type" json:"type"`
	TaskID    *primitive.ObjectID `bson:"taskId,omitempty" json:"taskId,omitempty"`
}
