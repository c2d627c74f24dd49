package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"Sistem-Manajemen-Restoran/models"
	util "Sistem-Manajemen-Restoran/pkg/utils"
	"Sistem-Manajemen-Restoran/repository"
	"Sistem-Manajemen-Restoran/service"
)

type EmployeeHandler struct {
	employees *service.EmployeeService
}

func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// CreateEmployee godoc
// @Summary Tambah karyawan
// @Description Menambahkan karyawan baru beserta shift dan skema gaji (admin/manager)
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employee body models.EmployeeCreatePayload true "Data karyawan"
// @Success 201 {object} models.Employee
// @Failure 400 {object} object{error=string,errors=array} "Validation error"
// @Router /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var payload models.EmployeeCreatePayload
	if ok, err := bindAndValidate(c, &payload); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	employee, err := h.employees.CreateEmployee(ctx, payload)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

// GetAllEmployees godoc
// @Summary Daftar karyawan
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10, max: 100)"
// @Param department query string false "Filter departemen"
// @Param active query bool false "Filter status aktif"
// @Param search query string false "Cari nama atau kode karyawan"
// @Success 200 {object} object{data=array,total=int,page=int,limit=int}
// @Router /employees [get]
func (h *EmployeeHandler) GetAllEmployees(c *fiber.Ctx) error {
	filter := repository.EmployeeFilter{
		Department: c.Query("department"),
		Search:     c.Query("search"),
		Page:       int64(c.QueryInt("page", 1)),
		Limit:      int64(c.QueryInt("limit", 10)),
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parameter 'active' harus true atau false"})
		}
		filter.Active = &active
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	employees, total, err := h.employees.ListEmployees(ctx, filter)
	if err != nil {
		return handleServiceError(c, err)
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  employees,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

func (h *EmployeeHandler) GetEmployeeByID(c *fiber.Ctx) error {
	id, _, ok, err := employeeParam(c)
	if !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	employee, err := h.employees.GetEmployee(ctx, id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(employee)
}

// UpdateEmployee godoc
// @Summary Ubah data karyawan
// @Description Hanya field yang dikirim yang diubah (admin/manager)
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param employee body models.EmployeeUpdatePayload true "Data yang diubah"
// @Success 200 {object} models.Employee
// @Router /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, _, ok, err := employeeParam(c)
	if !ok {
		return err
	}
	var payload models.EmployeeUpdatePayload
	if ok, err := bindAndValidate(c, &payload); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	employee, err := h.employees.UpdateEmployee(ctx, id, payload)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(employee)
}

func (h *EmployeeHandler) TerminateEmployee(c *fiber.Ctx) error {
	id, _, ok, err := employeeParam(c)
	if !ok {
		return err
	}
	var payload models.EmployeeTerminatePayload
	if ok, err := bindAndValidate(c, &payload); !ok {
		return err
	}

	var date time.Time
	if payload.Date != "" {
		if date, err = util.ParseDate(payload.Date, h.employees.Location()); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format tanggal tidak valid"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	employee, err := h.employees.TerminateEmployee(ctx, id, payload.Reason, date)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Karyawan berhasil dinonaktifkan", "employee": employee})
}

// GetLeaveBalance godoc
// @Summary Saldo cuti
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param year query int false "Tahun (default: tahun berjalan)"
// @Success 200 {object} models.LeaveBalance
// @Router /employees/{id}/leave-balance [get]
func (h *EmployeeHandler) GetLeaveBalance(c *fiber.Ctx) error {
	id, _, ok, err := employeeParam(c)
	if !ok {
		return err
	}
	year := c.QueryInt("year", h.employees.Now().Year())

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	balance, err := h.employees.GetLeaveBalance(ctx, id, year)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(balance)
}

func (h *EmployeeHandler) AddPerformanceReview(c *fiber.Ctx) error {
	id, claims, ok, err := employeeParam(c)
	if !ok {
		return err
	}
	var payload models.PerformanceReviewPayload
	if ok, err := bindAndValidate(c, &payload); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	review, err := h.employees.AddPerformanceReview(ctx, id, claims.UserID, payload)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}
