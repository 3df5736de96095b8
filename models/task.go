package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Task struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"user_id" bson:"user_id,omitempty"`
	Title       string             `json:"title" bson:"title,omitempty"`
	Description string             `json:"description" bson:"description,omitempty"`
	DueDate     string             `json:"due_date" bson:"due_date,omitempty"`
	Category    string             `json:"category" bson:"category,omitempty"`
	Priority    string             `json:"priority" bson:"priority,omitempty"`
	Completed   bool               `json:"completed" bson:"completed"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type TaskCreatePayload struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=1000"`
	DueDate     string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Category    string `json:"category" validate:"max=50"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

type TaskCompletionPayload struct {
	Completed *bool `json:"completed" validate:"required"`
}
