package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"Sistem-Manajemen-Restoran/service"
)

type PayrollHandler struct {
	payroll *service.PayrollService
}

func NewPayrollHandler(payroll *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payroll: payroll}
}

// CalculateSalary godoc
// @Summary Hitung gaji karyawan
// @Description Rincian gaji bulanan berdasarkan rekap absensi
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param month query int false "Bulan (1-12)"
// @Param year query int false "Tahun"
// @Success 200 {object} models.SalaryBreakdown
// @Failure 422 {object} object{error=string} "Tipe penggajian tidak didukung"
// @Router /payroll/{id} [get]
func (h *PayrollHandler) CalculateSalary(c *fiber.Ctx) error {
	id, _, ok, err := employeeParam(c)
	if !ok {
		return err
	}
	month, year := monthYear(c, h.payroll.Now())

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	salary, err := h.payroll.CalculateSalary(ctx, id, month, year)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(salary)
}

// PayrollReport godoc
// @Summary Laporan gaji seluruh karyawan aktif
// @Description Karyawan yang gagal dihitung dicantumkan dengan pesan error
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param month query int false "Bulan (1-12)"
// @Param year query int false "Tahun"
// @Success 200 {object} models.PayrollReport
// @Router /payroll/report [get]
func (h *PayrollHandler) PayrollReport(c *fiber.Ctx) error {
	month, year := monthYear(c, h.payroll.Now())

	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	report, err := h.payroll.PayrollReport(ctx, month, year)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(report)
}
