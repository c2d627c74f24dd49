package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Manajemen-Restoran/config/middleware"
	"Sistem-Manajemen-Restoran/models"
	"Sistem-Manajemen-Restoran/pkg/paseto"
	util "Sistem-Manajemen-Restoran/pkg/utils"
)

func newApp(t *testing.T) (*fiber.App, *paseto.Maker) {
	t.Helper()
	secret, err := util.GenerateBase64Key(32)
	require.NoError(t, err)
	maker, err := paseto.NewMaker(secret)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/manager", middleware.AuthMiddleware(maker), middleware.ManagerMiddleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/admin", middleware.AuthMiddleware(maker), middleware.AdminMiddleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, maker
}

func call(t *testing.T, app *fiber.App, path, authorization string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthAndRoleMiddleware(t *testing.T) {
	app, maker := newApp(t)

	token := func(role string) string {
		tok, err := maker.GenerateToken(&models.User{ID: primitive.NewObjectID(), Role: role})
		require.NoError(t, err)
		return "Bearer " + tok
	}

	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, "/manager", ""))
	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, "/manager", "Token abc"))
	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, "/manager", "Bearer abc"))

	assert.Equal(t, fiber.StatusOK, call(t, app, "/manager", token(models.RoleManager)))
	assert.Equal(t, fiber.StatusOK, call(t, app, "/manager", token(models.RoleAdmin)))
	assert.Equal(t, fiber.StatusForbidden, call(t, app, "/manager", token(models.RoleStaff)))

	assert.Equal(t, fiber.StatusForbidden, call(t, app, "/admin", token(models.RoleManager)))
	assert.Equal(t, fiber.StatusOK, call(t, app, "/admin", token(models.RoleAdmin)))
}
