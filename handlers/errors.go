package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Manajemen-Restoran/models"
	util "Sistem-Manajemen-Restoran/pkg/utils"
	"Sistem-Manajemen-Restoran/service"
)

const requestTimeout = 5 * time.Second

var statusByKind = map[service.ErrorKind]int{
	service.KindNotFound:               fiber.StatusNotFound,
	service.KindInvalidState:           fiber.StatusConflict,
	service.KindInsufficientBalance:    fiber.StatusUnprocessableEntity,
	service.KindUnsupportedPayrollType: fiber.StatusUnprocessableEntity,
	service.KindValidation:             fiber.StatusBadRequest,
}

// handleServiceError menerjemahkan error dari service ke response HTTP.
func handleServiceError(c *fiber.Ctx, err error) error {
	kind := service.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		log.Printf("ERROR: %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Terjadi kesalahan pada server"})
	}

	body := fiber.Map{"error": err.Error(), "kind": kind}
	var svcErr *service.Error
	if errors.As(err, &svcErr) && svcErr.Field != "" {
		body["field"] = svcErr.Field
	}
	return c.Status(status).JSON(body)
}

func claimsFrom(c *fiber.Ctx) (*models.Claims, bool) {
	claims, ok := c.Locals("user").(*models.Claims)
	return claims, ok && claims != nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau klaim token tidak valid"})
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format ID tidak valid"})
}

// employeeParam membaca :id dan memastikan pemilik token boleh mengakses karyawan tersebut.
func employeeParam(c *fiber.Ctx) (primitive.ObjectID, *models.Claims, bool, error) {
	claims, ok := claimsFrom(c)
	if !ok {
		return primitive.NilObjectID, nil, false, unauthorized(c)
	}
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, nil, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format ID karyawan tidak valid"})
	}
	if !claims.CanActOn(id) {
		return primitive.NilObjectID, nil, false, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak untuk karyawan ini"})
	}
	return id, claims, true, nil
}

// bindAndValidate mem-parse body ke out lalu menjalankan validator.
func bindAndValidate(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload tidak valid", "details": err.Error()})
	}
	if errs := util.ValidateStruct(out); errs != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}
	return true, nil
}
