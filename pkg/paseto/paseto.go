package paseto

import (
	"fmt"
	"time"

	"github.com/o1egl/paseto"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Manajemen-Restoran/config"
	"Sistem-Manajemen-Restoran/models"
)

const tokenTTL = 24 * time.Hour

type Maker struct {
	paseto       *paseto.V2
	symmetricKey []byte
}

// NewMaker membuat token maker dari secret base64 yang panjangnya 32 byte setelah di-decode.
func NewMaker(secret string) (*Maker, error) {
	key, err := config.DecodeSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode PASETO_SECRET: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("PASETO_SECRET must be exactly 32 bytes after Base64 decoding, got %d bytes", len(key))
	}
	return &Maker{paseto: paseto.NewV2(), symmetricKey: key}, nil
}

func (m *Maker) GenerateToken(user *models.User) (string, error) {
	now := time.Now()

	token := paseto.JSONToken{
		IssuedAt:   now,
		Expiration: now.Add(tokenTTL),
		NotBefore:  now,
	}

	token.Set("user_id", user.ID.Hex())
	token.Set("email", user.Email)
	token.Set("role", user.Role)
	token.Set("is_first_login", fmt.Sprintf("%v", user.IsFirstLogin))
	if user.EmployeeID != nil {
		token.Set("employee_id", user.EmployeeID.Hex())
	}

	return m.paseto.Encrypt(m.symmetricKey, token, "")
}

func (m *Maker) ValidateToken(tokenString string) (*models.Claims, error) {
	var token paseto.JSONToken
	var footer string

	err := m.paseto.Decrypt(tokenString, m.symmetricKey, &token, &footer)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt paseto token: %w", err)
	}

	if err := token.Validate(); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	var claims models.Claims

	objectID, err := primitive.ObjectIDFromHex(token.Get("user_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid user_id format: %v", err)
	}
	claims.UserID = objectID
	claims.Email = token.Get("email")
	claims.Role = token.Get("role")
	claims.IsFirstLogin = token.Get("is_first_login") == "true"

	if raw := token.Get("employee_id"); raw != "" {
		employeeID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid employee_id format: %v", err)
		}
		claims.EmployeeID = &employeeID
	}

	return &claims, nil
}
