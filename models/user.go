package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

type User struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID   string             `json:"employee_id" bson:"employee_id,omitempty"`
	Name         string             `json:"name" bson:"name,omitempty"`
	Email        string             `json:"email" bson:"email,omitempty"`
	PasswordHash string             `json:"-" bson:"password_hash,omitempty"`
	Role         string             `json:"role" bson:"role,omitempty"`
	Phone        string             `json:"phone" bson:"phone,omitempty"`
	Department   string             `json:"department" bson:"department,omitempty"`
	Salary       float64            `json:"salary" bson:"salary,omitempty"`
	DateHired    string             `json:"date_hired" bson:"date_hired,omitempty"`
	Address      string             `json:"address" bson:"address,omitempty"`
	Active       bool               `json:"active" bson:"active"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type UserLoginPayload struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type UserCreatePayload struct {
	EmployeeID string  `json:"employeeId" validate:"required,min=3,max=30"`
	Name       string  `json:"name" validate:"required,min=3,max=100"`
	Role       string  `json:"role" validate:"required,oneof=ADMIN EMPLOYEE"`
	Password   string  `json:"password" validate:"required,min=8,max=50"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary" validate:"min=0"`
	DateHired  string  `json:"date_hired" validate:"omitempty,datetime=2006-01-02"`
	Address    string  `json:"address"`
}

// UserUpdatePayload memakai pointer supaya field yang tidak dikirim bisa
// dibedakan dari field yang dikirim dengan nilai kosong.
type UserUpdatePayload struct {
	Name       *string  `json:"name,omitempty"`
	Role       *string  `json:"role,omitempty" validate:"omitempty,oneof=ADMIN EMPLOYEE"`
	Password   *string  `json:"password,omitempty" validate:"omitempty,min=8,max=50"`
	Active     *bool    `json:"active,omitempty"`
	Email      *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string  `json:"phone,omitempty"`
	Department *string  `json:"department,omitempty"`
	Salary     *float64 `json:"salary,omitempty" validate:"omitempty,min=0"`
	DateHired  *string  `json:"date_hired,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Address    *string  `json:"address,omitempty"`
}

type ChangePasswordPayload struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=50"`
}

// Claims adalah principal hasil verifikasi token, diisi sekali oleh
// AuthMiddleware dan dibaca handler lewat c.Locals("user").
type Claims struct {
	UserID     primitive.ObjectID `json:"user_id"`
	EmployeeID string             `json:"employee_id"`
	Role       string             `json:"role"`
}
