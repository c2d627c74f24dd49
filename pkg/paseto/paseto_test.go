package paseto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Manajemen-Restoran/models"
	util "Sistem-Manajemen-Restoran/pkg/utils"
)

func newTestMaker(t *testing.T) *Maker {
	t.Helper()
	secret, err := util.GenerateBase64Key(32)
	require.NoError(t, err)
	maker, err := NewMaker(secret)
	require.NoError(t, err)
	return maker
}

func TestTokenRoundTrip(t *testing.T) {
	maker := newTestMaker(t)
	employeeID := primitive.NewObjectID()
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Email:        "staf@restoran.id",
		Role:         models.RoleStaff,
		EmployeeID:   &employeeID,
		IsFirstLogin: true,
	}

	token, err := maker.GenerateToken(user)
	require.NoError(t, err)

	claims, err := maker.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleStaff, claims.Role)
	assert.True(t, claims.IsFirstLogin)
	require.NotNil(t, claims.EmployeeID)
	assert.Equal(t, employeeID, *claims.EmployeeID)
	assert.True(t, claims.CanActOn(employeeID))
	assert.False(t, claims.CanActOn(primitive.NewObjectID()))
}

func TestTokenFromAnotherKeyIsRejected(t *testing.T) {
	token, err := newTestMaker(t).GenerateToken(&models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = newTestMaker(t).ValidateToken(token)
	assert.Error(t, err)
}

func TestNewMakerRejectsShortSecret(t *testing.T) {
	_, err := NewMaker("c2hvcnQ=")
	assert.Error(t, err)
}
