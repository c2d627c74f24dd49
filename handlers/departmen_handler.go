package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Manajemen-Restoran/models"
	"Sistem-Manajemen-Restoran/repository"
)

// DepartmentUsage menghitung karyawan aktif per departemen.
type DepartmentUsage interface {
	CountPerDepartment(ctx context.Context) ([]models.DepartmentCount, error)
}

type DepartmentHandler struct {
	deptRepo repository.DepartmentRepository
	usage    DepartmentUsage
}

func NewDepartmentHandler(deptRepo repository.DepartmentRepository, usage DepartmentUsage) *DepartmentHandler {
	return &DepartmentHandler{
		deptRepo: deptRepo,
		usage:    usage,
	}
}

// CreateDepartment godoc
// @Summary Create Department
// @Description Menambahkan departemen baru (admin only)
// @Tags Departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param department body models.DepartmentPayload true "Data departemen baru"
// @Success 201 {object} object{message=string,id=string} "Departemen berhasil ditambahkan"
// @Failure 409 {object} object{error=string} "Nama departemen sudah ada"
// @Router /departments [post]
func (h *DepartmentHandler) CreateDepartment(c *fiber.Ctx) error {
	var payload models.DepartmentPayload
	if ok, err := bindAndValidate(c, &payload); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	existingDept, err := h.deptRepo.FindDepartmentByName(ctx, payload.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("Gagal memeriksa departemen: %v", err)})
	}
	if existingDept != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Nama departemen sudah ada"})
	}

	newDept := &models.Department{Name: payload.Name, Description: payload.Description}
	created, err := h.deptRepo.CreateDepartment(ctx, newDept)
	if err != nil {
		if errors.Is(err, repository.ErrDepartmentExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Nama departemen sudah ada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("Gagal membuat departemen: %v", err)})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Departemen berhasil ditambahkan",
		"id":      created.ID,
	})
}

// GetAllDepartments godoc
// @Summary Get All Departments
// @Description Mendapatkan daftar semua departemen
// @Tags Departments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Department "Daftar departemen berhasil diambil"
// @Router /departments [get]
func (h *DepartmentHandler) GetAllDepartments(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	departments, err := h.deptRepo.GetAllDepartments(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("Gagal mengambil departemen: %v", err)})
	}
	return c.Status(fiber.StatusOK).JSON(departments)
}

// GetDepartmentStats godoc
// @Summary Distribusi karyawan aktif per departemen
// @Tags Departments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.DepartmentCount
// @Router /departments/stats [get]
func (h *DepartmentHandler) GetDepartmentStats(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	counts, err := h.usage.CountPerDepartment(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("Gagal mengambil distribusi departemen: %v", err)})
	}
	return c.Status(fiber.StatusOK).JSON(counts)
}

// departmentError memetakan error repository departemen ke status HTTP.
func departmentError(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, repository.ErrDepartmentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Departemen tidak ditemukan"})
	case errors.Is(err, repository.ErrDepartmentExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Nama departemen sudah ada"})
	case errors.Is(err, repository.ErrDepartmentInUse):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("Gagal %s departemen: %v", action, err)})
}

// UpdateDepartment godoc
// @Summary Update Department
// @Description Memperbarui departemen berdasarkan ID (admin only). Nama tidak bisa diganti selama masih ada karyawan aktif.
// @Tags Departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Department ID"
// @Param department body models.DepartmentPayload true "Data departemen untuk diupdate"
// @Success 200 {object} models.Department "Departemen berhasil diupdate"
// @Failure 404 {object} object{error=string} "Departemen tidak ditemukan"
// @Failure 409 {object} object{error=string} "Nama departemen sudah ada atau masih dipakai"
// @Router /departments/{id} [put]
func (h *DepartmentHandler) UpdateDepartment(c *fiber.Ctx) error {
	objID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}

	var payload models.DepartmentPayload
	if ok, err := bindAndValidate(c, &payload); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	dept, err := h.deptRepo.UpdateDepartment(ctx, objID, payload)
	if err != nil {
		return departmentError(c, "mengupdate", err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Departemen berhasil diupdate", "department": dept})
}

// DeleteDepartment godoc
// @Summary Delete Department
// @Description Menghapus departemen yang tidak lagi memiliki karyawan aktif (admin only)
// @Tags Departments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Department ID"
// @Success 200 {object} object{message=string} "Departemen berhasil dihapus"
// @Failure 404 {object} object{error=string} "Departemen tidak ditemukan"
// @Failure 409 {object} object{error=string} "Departemen masih memiliki karyawan aktif"
// @Router /departments/{id} [delete]
func (h *DepartmentHandler) DeleteDepartment(c *fiber.Ctx) error {
	objID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	if err := h.deptRepo.DeleteDepartment(ctx, objID); err != nil {
		return departmentError(c, "menghapus", err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Departemen berhasil dihapus"})
}
