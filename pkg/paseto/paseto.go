package paseto

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"digi-hr-backend/models"
)

// Maker menerbitkan dan memverifikasi token PASETO v2.local. Key di-inject
// dari config, bukan diambil dari state global, supaya bisa dibuat ulang di
// test dengan key sendiri.
type Maker struct {
	instance     *paseto.V2
	symmetricKey []byte
	tokenTTL     time.Duration
}

func NewMaker(secretBase64 string) (*Maker, error) {
	decodedKey, err := base64.URLEncoding.DecodeString(secretBase64)
	if err != nil {
		decodedKey, err = base64.StdEncoding.DecodeString(secretBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode PASETO secret: %w", err)
		}
	}

	if len(decodedKey) != 32 {
		return nil, fmt.Errorf("PASETO secret must be exactly 32 bytes after Base64 decoding, got %d bytes", len(decodedKey))
	}

	return &Maker{
		instance:     paseto.NewV2(),
		symmetricKey: decodedKey,
		tokenTTL:     24 * time.Hour,
	}, nil
}

func (m *Maker) GenerateToken(user *models.User) (string, error) {
	now := time.Now()

	token := paseto.JSONToken{
		IssuedAt:   now,
		Expiration: now.Add(m.tokenTTL),
		NotBefore:  now,
	}

	// Custom claims disimpan sebagai string
	token.Set("user_id", user.ID.Hex())
	token.Set("employee_id", user.EmployeeID)
	token.Set("role", user.Role)

	return m.instance.Encrypt(m.symmetricKey, token, "")
}

func (m *Maker) ValidateToken(tokenString string) (*models.Claims, error) {
	var token paseto.JSONToken
	var footer string

	err := m.instance.Decrypt(tokenString, m.symmetricKey, &token, &footer)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt paseto token: %w", err)
	}

	if err := token.Validate(); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	userID, err := primitive.ObjectIDFromHex(token.Get("user_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid user_id format: %v", err)
	}

	return &models.Claims{
		UserID:     userID,
		EmployeeID: token.Get("employee_id"),
		Role:       token.Get("role"),
	}, nil
}
