package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LeaveStatusPending  = "PENDING"
	LeaveStatusApproved = "APPROVED"
	LeaveStatusRejected = "REJECTED"
)

type LeaveRequest struct {
	ID            primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        primitive.ObjectID  `json:"user_id" bson:"user_id,omitempty"`
	StartDate     string              `json:"start_date" bson:"start_date,omitempty"`
	EndDate       string              `json:"end_date" bson:"end_date,omitempty"`
	Reason        string              `json:"reason" bson:"reason,omitempty"`
	Status        string              `json:"status" bson:"status,omitempty"`
	AttachmentURL string              `json:"attachment_url,omitempty" bson:"attachment_url,omitempty"`
	ApprovedBy    *primitive.ObjectID `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	ApprovedAt    *time.Time          `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt     time.Time           `json:"updated_at" bson:"updated_at,omitempty"`
}

type LeaveApplyPayload struct {
	StartDate string `json:"startDate" form:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" form:"endDate" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" form:"reason" validate:"required,min=5,max=500"`
}

type LeaveDecisionPayload struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

type LeaveRequestWithUser struct {
	LeaveRequest `bson:",inline"`
	EmployeeName string `json:"employee_name" bson:"employee_name"`
	EmployeeID   string `json:"employee_id" bson:"employee_id"`
}
