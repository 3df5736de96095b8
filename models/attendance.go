package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AttendanceStatusPending  = "PENDING"
	AttendanceStatusApproved = "APPROVED"
)

// Attendance maksimal satu dokumen per (user_id, date); dijaga oleh unique
// index di collection attendances.
type Attendance struct {
	ID         primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     primitive.ObjectID  `json:"user_id" bson:"user_id,omitempty"`
	Date       string              `json:"date" bson:"date,omitempty"`
	CheckInAt  time.Time           `json:"check_in_at" bson:"check_in_at,omitempty"`
	CheckOutAt *time.Time          `json:"check_out_at,omitempty" bson:"check_out_at,omitempty"`
	Status     string              `json:"status" bson:"status,omitempty"`
	ApprovedBy *primitive.ObjectID `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	ApprovedAt *time.Time          `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	CreatedAt  time.Time           `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt  time.Time           `json:"updated_at" bson:"updated_at,omitempty"`
}

// UserTodayStatus adalah satu baris dashboard harian admin: user aktif
// di-outer-join dengan absensi hari ini.
type UserTodayStatus struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	Name       string             `json:"name" bson:"name"`
	EmployeeID string             `json:"employee_id" bson:"employee_id"`
	Role       string             `json:"role" bson:"role"`
	CheckedIn  bool               `json:"checked_in" bson:"checked_in"`
	Status     string             `json:"status,omitempty" bson:"status,omitempty"`
	CheckInAt  *time.Time         `json:"check_in_at,omitempty" bson:"check_in_at,omitempty"`
	CheckOutAt *time.Time         `json:"check_out_at,omitempty" bson:"check_out_at,omitempty"`
}

// AttendanceReportRow adalah proyeksi tabular untuk laporan admin dan
// ekspor CSV/XLSX.
type AttendanceReportRow struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	Name       string             `json:"name" bson:"name"`
	EmployeeID string             `json:"employee_id" bson:"employee_id"`
	Role       string             `json:"role" bson:"role"`
	CheckInAt  time.Time          `json:"check_in_at" bson:"check_in_at"`
	CheckOutAt *time.Time         `json:"check_out_at,omitempty" bson:"check_out_at,omitempty"`
	Status     string             `json:"status" bson:"status"`
}

// AttendanceSummaryRow merangkum kehadiran per user terhadap jumlah hari
// kerja terjadwal pada rentang laporan.
type AttendanceSummaryRow struct {
	UserID      primitive.ObjectID `json:"user_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	EmployeeID  string             `json:"employee_id" bson:"employee_id"`
	DaysPresent int64              `json:"days_present" bson:"days_present"`
	WorkingDays int                `json:"working_days" bson:"-"`
}
