package handlers

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Manajemen-Restoran/models"
	util "Sistem-Manajemen-Restoran/pkg/utils"
	"Sistem-Manajemen-Restoran/repository"
	"Sistem-Manajemen-Restoran/service"
)

type AttendanceHandler struct {
	attendance *service.AttendanceService
	qrRepo     repository.QRCodeRepository
}

func NewAttendanceHandler(attendance *service.AttendanceService, qrRepo repository.QRCodeRepository) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, qrRepo: qrRepo}
}

// eventTime memakai waktu server; timestamp dari klien hanya dihormati untuk admin dan manager.
func (h *AttendanceHandler) eventTime(claims *models.Claims, ts *time.Time) time.Time {
	if ts == nil || ts.IsZero() || claims == nil {
		return h.attendance.Now()
	}
	if claims.Role != models.RoleAdmin && claims.Role != models.RoleManager {
		return h.attendance.Now()
	}
	return *ts
}

// CheckIn godoc
// @Summary Check-in karyawan
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param payload body models.CheckInPayload false "Waktu dan lokasi check-in"
// @Success 200 {object} models.AttendanceRecord
// @Failure 409 {object} object{error=string} "Sudah check-in hari ini"
// @Router /attendance/{id}/check-in [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	id, claims, ok, err := employeeParam(c)
	if !ok {
		return err
	}
	var payload models.CheckInPayload
	if len(c.Body()) > 0 {
		if ok, err := bindAndValidate(c, &payload); !ok {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	rec, err := h.attendance.CheckIn(ctx, id, h.eventTime(claims, payload.Timestamp), payload.Location, payload.WorkLocation)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Check-in berhasil", "record": rec})
}

// CheckOut godoc
// @Summary Check-out karyawan
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param payload body models.CheckOutPayload false "Waktu dan lokasi check-out"
// @Success 200 {object} models.AttendanceRecord
// @Router /attendance/{id}/check-out [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	id, claims, ok, err := employeeParam(c)
	if !ok {
		return err
	}
	var payload models.CheckOutPayload
	if len(c.Body()) > 0 {
		if ok, err := bindAndValidate(c, &payload); !ok {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	rec, err := h.attendance.CheckOut(ctx, id, h.eventTime(claims, payload.Timestamp), payload.Location)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Check-out berhasil", "record": rec})
}

func (h *AttendanceHandler) StartBreak(c *fiber.Ctx) error {
	id, _, ok, err := employeeParam(c)
	if !ok {
		return err
	}
	var payload models.BreakStartPayload
	if ok, err := bindAndValidate(c, &payload); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	b, err := h.attendance.StartBreak(ctx, id, payload.Type)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Istirahat dimulai", "break": b})
}

func (h *AttendanceHandler) EndBreak(c *fiber.Ctx) error {
	id, _, ok, err := employeeParam(c)
	if !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	b, err := h.attendance.EndBreak(ctx, id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Istirahat selesai", "break": b})
}

// ApplyLeave godoc
// @Summary Ajukan cuti
// @Description Menandai rentang tanggal sebagai cuti. Cuti lebih dari satu hari, annual dan casual menunggu persetujuan kecuali darurat.
// @Tags Leave
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param payload body models.LeaveApplyPayload true "Data cuti"
// @Success 201 {object} models.LeaveOutcome
// @Failure 422 {object} object{error=string} "Sisa cuti tidak mencukupi"
// @Router /attendance/{id}/leave [post]
func (h *AttendanceHandler) ApplyLeave(c *fiber.Ctx) error {
	id, claims, ok, err := employeeParam(c)
	if !ok {
		return err
	}
	var payload models.LeaveApplyPayload
	if ok, err := bindAndValidate(c, &payload); !ok {
		return err
	}

	loc := h.attendance.Location()
	start, err := util.ParseDate(payload.StartDate, loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format start_date tidak valid"})
	}
	end, err := util.ParseDate(payload.EndDate, loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format end_date tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	outcome, err := h.attendance.ApplyLeave(ctx, id, service.LeaveApplication{
		Type:        payload.LeaveType,
		StartDate:   start,
		EndDate:     end,
		Reason:      payload.Reason,
		IsEmergency: payload.IsEmergency,
		RequestedBy: claims.Email,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(outcome)
}

func (h *AttendanceHandler) decideLeave(c *fiber.Ctx, approve bool) error {
	id, claims, ok, err := employeeParam(c)
	if !ok {
		return err
	}
	requestID, err := primitive.ObjectIDFromHex(c.Params("requestId"))
	if err != nil {
		return invalidID(c)
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	var req *models.LeaveRequest
	if approve {
		req, err = h.attendance.ApproveLeave(ctx, id, requestID, claims.Email)
	} else {
		req, err = h.attendance.RejectLeave(ctx, id, requestID, claims.Email)
	}
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *AttendanceHandler) ApproveLeave(c *fiber.Ctx) error {
	return h.decideLeave(c, true)
}

func (h *AttendanceHandler) RejectLeave(c *fiber.Ctx) error {
	return h.decideLeave(c, false)
}

// GetAttendanceHistory godoc
// @Summary Riwayat absensi
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param from query string false "Tanggal awal (YYYY-MM-DD)"
// @Param to query string false "Tanggal akhir (YYYY-MM-DD)"
// @Success 200 {array} models.AttendanceRecord
// @Router /attendance/{id}/history [get]
func (h *AttendanceHandler) GetAttendanceHistory(c *fiber.Ctx) error {
	id, _, ok, err := employeeParam(c)
	if !ok {
		return err
	}

	loc := h.attendance.Location()
	var from, to time.Time
	if v := c.Query("from"); v != "" {
		if from, err = util.ParseDate(v, loc); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format tanggal 'from' tidak valid"})
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = util.ParseDate(v, loc); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format tanggal 'to' tidak valid"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	records, err := h.attendance.GetAttendanceHistory(ctx, id, from, to)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(records)
}

// monthYear membaca query month dan year, default ke bulan berjalan.
func monthYear(c *fiber.Ctx, now time.Time) (int, int) {
	return c.QueryInt("month", int(now.Month())), c.QueryInt("year", now.Year())
}

// GetMonthlyAggregate godoc
// @Summary Rekap absensi bulanan
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param month query int false "Bulan (1-12)"
// @Param year query int false "Tahun"
// @Success 200 {object} models.MonthlyAttendanceAggregate
// @Router /attendance/{id}/monthly [get]
func (h *AttendanceHandler) GetMonthlyAggregate(c *fiber.Ctx) error {
	id, _, ok, err := employeeParam(c)
	if !ok {
		return err
	}
	month, year := monthYear(c, h.attendance.Now())

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	agg, err := h.attendance.GetMonthlyAggregate(ctx, id, month, year)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(agg)
}

// BulkCheckIn godoc
// @Summary Check-in massal
// @Description Check-in beberapa karyawan sekaligus; hasil dilaporkan per karyawan.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.BulkCheckInPayload true "Daftar karyawan"
// @Success 200 {array} models.BulkResult
// @Router /attendance/bulk-check-in [post]
func (h *AttendanceHandler) BulkCheckIn(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var payload models.BulkCheckInPayload
	if ok, err := bindAndValidate(c, &payload); !ok {
		return err
	}

	ids := make([]primitive.ObjectID, 0, len(payload.EmployeeIDs))
	for _, raw := range payload.EmployeeIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format ID karyawan tidak valid: " + raw})
		}
		ids = append(ids, id)
	}

	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	results := h.attendance.BulkCheckIn(ctx, ids, h.eventTime(claims, payload.Timestamp), payload.WorkLocation)
	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"results":   results,
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
	})
}

// GenerateQRCode godoc
// @Summary Buat QR Code absensi harian
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string,qr_code_image=string,expires_at=string}
// @Router /attendance/generate-qr [get]
func (h *AttendanceHandler) GenerateQRCode(c *fiber.Ctx) error {
	now := h.attendance.Now()
	today := util.StartOfDay(now, h.attendance.Location())
	expiresAt := today.Add(23 * time.Hour)

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	existing, err := h.qrRepo.FindActiveQRCodeByDate(ctx, today.Format(util.DateLayout))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memeriksa QR Code aktif."})
	}
	if existing != nil {
		return h.renderQRCode(c, existing.Code, existing.ExpiresAt, "QR Code hari ini sudah tersedia")
	}

	uniqueCode := uuid.New().String()
	newQRCode := &models.QRCode{
		ID:        primitive.NewObjectID(),
		Code:      uniqueCode,
		Date:      today.Format(util.DateLayout),
		ExpiresAt: expiresAt,
		UsedBy:    []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := h.qrRepo.CreateQRCode(ctx, newQRCode); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan data QR Code."})
	}

	return h.renderQRCode(c, uniqueCode, expiresAt, "QR Code berhasil dibuat")
}

func (h *AttendanceHandler) renderQRCode(c *fiber.Ctx, code string, expiresAt time.Time, message string) error {
	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat gambar QR Code."})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       message,
		"code":          code,
		"qr_code_image": "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		"expires_at":    expiresAt,
	})
}

// ScanQRCode godoc
// @Summary Scan QR Code absensi
// @Description Scan pertama hari itu melakukan check-in, scan berikutnya check-out.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.QRCodeScanPayload true "Nilai QR Code"
// @Success 200 {object} object{message=string,record=models.AttendanceRecord}
// @Router /attendance/scan [post]
func (h *AttendanceHandler) ScanQRCode(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c)
	}
	if claims.EmployeeID == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akun ini tidak terhubung dengan data karyawan"})
	}
	employeeID := *claims.EmployeeID

	var payload models.QRCodeScanPayload
	if ok, err := bindAndValidate(c, &payload); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	qr, err := h.qrRepo.FindQRCodeByValue(ctx, payload.QRCodeValue)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memeriksa QR Code."})
	}
	if qr == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "QR Code tidak ditemukan atau tidak valid."})
	}

	now := h.attendance.Now()
	if now.After(qr.ExpiresAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "QR Code sudah kadaluarsa."})
	}
	today := util.StartOfDay(now, h.attendance.Location())
	if qr.Date != today.Format(util.DateLayout) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "QR Code ini tidak berlaku untuk hari ini."})
	}

	records, err := h.attendance.GetAttendanceHistory(ctx, employeeID, today, today)
	if err != nil {
		return handleServiceError(c, err)
	}

	var rec *models.AttendanceRecord
	message := "Berhasil check-in pukul " + now.Format("15:04")
	if len(records) == 0 || records[0].LoginTime == nil {
		rec, err = h.attendance.CheckIn(ctx, employeeID, now, payload.Location, payload.WorkLocation)
	} else {
		rec, err = h.attendance.CheckOut(ctx, employeeID, now, payload.Location)
		message = "Berhasil check-out pukul " + now.Format("15:04")
	}
	if err != nil {
		return handleServiceError(c, err)
	}

	if _, err := h.qrRepo.MarkQRCodeAsUsed(ctx, qr.ID, employeeID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mencatat pemakaian QR Code."})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message, "record": rec})
}
