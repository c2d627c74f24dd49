package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Manajemen-Restoran/models"
	"Sistem-Manajemen-Restoran/pkg/paseto"
	"Sistem-Manajemen-Restoran/pkg/password"
	"Sistem-Manajemen-Restoran/repository"
	"Sistem-Manajemen-Restoran/service"
)

type AuthHandler struct {
	userRepo  *repository.UserRepository
	employees service.EmployeeStore
	maker     *paseto.Maker
}

func NewAuthHandler(userRepo *repository.UserRepository, employees service.EmployeeStore, maker *paseto.Maker) *AuthHandler {
	return &AuthHandler{
		userRepo:  userRepo,
		employees: employees,
		maker:     maker,
	}
}

// Register godoc
// @Summary Register User
// @Description Mendaftarkan user baru (admin only). User staff wajib terhubung ke data karyawan.
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body models.UserRegisterPayload true "Data registrasi user"
// @Success 201 {object} object{message=string,user_id=string} "User berhasil didaftarkan"
// @Failure 400 {object} object{error=string,errors=array} "Invalid request body atau validation error"
// @Failure 409 {object} object{error=string} "Email sudah terdaftar"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var payload models.UserRegisterPayload
	if ok, err := bindAndValidate(c, &payload); !ok {
		return err
	}
	if payload.Role == models.RoleStaff && payload.EmployeeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User staff wajib memiliki employee_id"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	newUser := &models.User{
		Name:         payload.Name,
		Email:        payload.Email,
		Role:         payload.Role,
		IsFirstLogin: true,
	}

	if payload.EmployeeID != "" {
		employeeID, err := primitive.ObjectIDFromHex(payload.EmployeeID)
		if err != nil {
			return invalidID(c)
		}
		employee, err := h.employees.FindEmployeeByID(ctx, employeeID)
		if err != nil {
			return handleServiceError(c, err)
		}
		if employee == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Karyawan tidak ditemukan"})
		}
		newUser.EmployeeID = &employeeID
	}

	hashedPassword, err := password.HashPassword(payload.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gagal hash password"})
	}
	newUser.Password = hashedPassword

	result, err := h.userRepo.CreateUser(ctx, newUser)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email sudah terdaftar"})
		}
		log.Printf("ERROR: gagal mendaftarkan user %s: %v", payload.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gagal mendaftarkan user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User berhasil didaftarkan (oleh admin)",
		"user_id": result.InsertedID,
	})
}

// Login godoc
// @Summary Login User
// @Description Melakukan proses login dan mengembalikan token PASETO jika email dan password valid
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.UserLoginPayload true "Kredensial untuk Login"
// @Success 200 {object} models.LoginSuccessResponse "Login berhasil"
// @Failure 400 {object} object{error=string,errors=array} "Payload tidak valid atau validation error"
// @Failure 401 {object} object{error=string} "Kombinasi email dan password salah"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload models.UserLoginPayload
	if ok, err := bindAndValidate(c, &payload); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	user, err := h.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil || user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Kombinasi email dan password salah"})
	}

	if !password.CheckPasswordHash(payload.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Kombinasi email dan password salah"})
	}

	token, err := h.maker.GenerateToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat token"})
	}

	return c.Status(fiber.StatusOK).JSON(models.LoginSuccessResponse{
		Message:      "Login berhasil",
		Token:        token,
		UserID:       user.ID.Hex(),
		Role:         user.Role,
		IsFirstLogin: user.IsFirstLogin,
	})
}

// ChangePassword godoc
// @Summary Change Password
// @Description Mengubah password user yang sedang login
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param password body models.ChangePasswordPayload true "Data untuk mengubah password"
// @Success 200 {object} object{message=string} "Password berhasil diubah"
// @Failure 401 {object} object{error=string} "Tidak terautentikasi atau password lama tidak cocok"
// @Router /users/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var payload models.ChangePasswordPayload
	if ok, err := bindAndValidate(c, &payload); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	user, err := h.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	if !password.CheckPasswordHash(payload.OldPassword, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Password lama tidak cocok"})
	}

	if payload.NewPassword == payload.OldPassword {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password baru tidak boleh sama dengan password lama."})
	}

	newHashedPassword, err := password.HashPassword(payload.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal hash password baru"})
	}

	if err := h.userRepo.UpdateUserPassword(ctx, claims.UserID, newHashedPassword); err != nil {
		log.Printf("ERROR: gagal update password user %s: %v", claims.UserID.Hex(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal update password"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Password berhasil diubah."})
}
