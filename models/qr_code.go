package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QRCode adalah kode absensi harian yang ditampilkan di kiosk kantor.
type QRCode struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Code      string             `json:"code" bson:"code,omitempty"`
	Date      string             `json:"date" bson:"date,omitempty"`
	ExpiresAt time.Time          `json:"expires_at" bson:"expires_at,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at,omitempty"`
}

type QRCodeScanPayload struct {
	QRCodeValue string `json:"qr_code_value" validate:"required"`
}
