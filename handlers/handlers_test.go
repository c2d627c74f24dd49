package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Manajemen-Restoran/models"
	"Sistem-Manajemen-Restoran/repository"
	"Sistem-Manajemen-Restoran/repository/memstore"
	"Sistem-Manajemen-Restoran/service"
)

var wib = time.FixedZone("WIB", 7*60*60)

type testEnv struct {
	app   *fiber.App
	store *memstore.Store
}

func newTestEnv(t *testing.T, claims *models.Claims) *testEnv {
	t.Helper()
	store := memstore.New("Kitchen", "Service")
	clock := service.ClockFunc(func() time.Time { return time.Date(2026, time.October, 5, 12, 0, 0, 0, wib) })

	attendance := service.NewAttendanceService(store, clock, wib)
	payroll := service.NewPayrollService(store, attendance)
	employees := service.NewEmployeeService(store, store, clock, wib)

	ah := NewAttendanceHandler(attendance, nil)
	ph := NewPayrollHandler(payroll)
	eh := NewEmployeeHandler(employees)
	dh := NewDepartmentHandler(store, store)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", claims)
		return c.Next()
	})
	app.Post("/attendance/bulk-check-in", ah.BulkCheckIn)
	app.Post("/attendance/:id/check-in", ah.CheckIn)
	app.Post("/attendance/:id/check-out", ah.CheckOut)
	app.Post("/attendance/:id/leave", ah.ApplyLeave)
	app.Post("/attendance/:id/leave/:requestId/approve", ah.ApproveLeave)
	app.Get("/attendance/:id/monthly", ah.GetMonthlyAggregate)
	app.Get("/payroll/report", ph.PayrollReport)
	app.Get("/payroll/:id", ph.CalculateSalary)
	app.Post("/employees", eh.CreateEmployee)
	app.Get("/employees/:id/leave-balance", eh.GetLeaveBalance)
	app.Put("/departments/:id", dh.UpdateDepartment)
	app.Delete("/departments/:id", dh.DeleteDepartment)

	return &testEnv{app: app, store: store}
}

func (e *testEnv) addEmployee(t *testing.T, edit func(*models.Employee)) primitive.ObjectID {
	t.Helper()
	balances, _ := service.EnsureYearBalance(nil, 2026)
	emp := &models.Employee{
		EmployeeCode:  "EMP" + primitive.NewObjectID().Hex()[18:],
		Name:          "Sari Wulandari",
		Role:          "waiter",
		Department:    "Service",
		PayrollType:   models.PayrollMonthly,
		BaseSalary:    20000,
		Shift:         models.ShiftConfig{StartTime: "09:00", EndTime: "18:00", WeeklyOffs: []string{"sunday"}},
		IsActive:      true,
		LeaveBalances: balances,
	}
	if edit != nil {
		edit(emp)
	}
	created, err := e.store.CreateEmployee(context.Background(), emp)
	require.NoError(t, err)
	return created.ID
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func managerClaims() *models.Claims {
	return &models.Claims{UserID: primitive.NewObjectID(), Email: "manager@restoran.id", Role: models.RoleManager}
}

func staffClaims(employeeID primitive.ObjectID) *models.Claims {
	return &models.Claims{UserID: primitive.NewObjectID(), Email: "staf@restoran.id", Role: models.RoleStaff, EmployeeID: &employeeID}
}

func TestCheckInHandler(t *testing.T) {
	env := newTestEnv(t, managerClaims())
	id := env.addEmployee(t, nil)

	status, body := env.do(t, http.MethodPost, "/attendance/"+id.Hex()+"/check-in", fiber.Map{
		"timestamp":     "2026-10-05T09:20:00+07:00",
		"work_location": "terrace",
	})
	require.Equal(t, http.StatusOK, status)
	record := body["record"].(map[string]interface{})
	assert.Equal(t, "late", record["status"])
	assert.Equal(t, float64(20), record["late_minutes"])
	assert.Equal(t, "terrace", record["work_location"])

	status, body = env.do(t, http.MethodPost, "/attendance/"+id.Hex()+"/check-in", fiber.Map{
		"timestamp": "2026-10-05T09:30:00+07:00",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, string(service.KindInvalidState), body["kind"])
}

func TestStaffTimestampUsesServerClock(t *testing.T) {
	employeeID := primitive.NewObjectID()
	env := newTestEnv(t, staffClaims(employeeID))
	env.addEmployee(t, func(e *models.Employee) { e.ID = employeeID })
	path := "/attendance/" + employeeID.Hex()

	status, body := env.do(t, http.MethodPost, path+"/check-in", fiber.Map{
		"timestamp": "2026-10-01T06:00:00+07:00",
	})
	require.Equal(t, http.StatusOK, status)
	record := body["record"].(map[string]interface{})
	assert.Equal(t, float64(180), record["late_minutes"])
	assert.Equal(t, "late", record["status"])

	status, body = env.do(t, http.MethodPost, path+"/check-out", fiber.Map{
		"timestamp": "2026-10-05T23:59:00+07:00",
	})
	require.Equal(t, http.StatusOK, status)
	record = body["record"].(map[string]interface{})
	assert.Equal(t, float64(0), record["hours_worked"])
	assert.Equal(t, float64(0), record["overtime_hours"])
	assert.NotEqual(t, "overtime", record["status"])

	emp, err := env.store.FindEmployeeByID(context.Background(), employeeID)
	require.NoError(t, err)
	require.Len(t, emp.Attendance, 1)
	assert.Equal(t, 5, emp.Attendance[0].Date.In(wib).Day())
}

func TestCheckInOnLeaveDay(t *testing.T) {
	env := newTestEnv(t, managerClaims())
	id := env.addEmployee(t, nil)

	status, _ := env.do(t, http.MethodPost, "/attendance/"+id.Hex()+"/leave", fiber.Map{
		"leave_type": "sick", "start_date": "2026-10-05", "end_date": "2026-10-05", "reason": "demam",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := env.do(t, http.MethodPost, "/attendance/"+id.Hex()+"/check-in", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body["error"], service.ErrOnLeave.Error())
}

func TestCheckInForbiddenForOtherEmployee(t *testing.T) {
	env := newTestEnv(t, staffClaims(primitive.NewObjectID()))
	other := env.addEmployee(t, nil)

	status, _ := env.do(t, http.MethodPost, "/attendance/"+other.Hex()+"/check-in", nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestInvalidEmployeeID(t *testing.T) {
	env := newTestEnv(t, managerClaims())

	status, _ := env.do(t, http.MethodPost, "/attendance/not-an-id/check-in", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	env := newTestEnv(t, managerClaims())
	id := env.addEmployee(t, nil)

	status, body := env.do(t, http.MethodPost, "/attendance/"+id.Hex()+"/check-out", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body["error"], service.ErrNotCheckedIn.Error())
}

func TestApplyLeaveHandler(t *testing.T) {
	env := newTestEnv(t, managerClaims())
	id := env.addEmployee(t, nil)
	path := "/attendance/" + id.Hex() + "/leave"

	status, body := env.do(t, http.MethodPost, path, fiber.Map{"leave_type": "sick", "start_date": "2026-10-06"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["errors"])

	status, body = env.do(t, http.MethodPost, path, fiber.Map{
		"leave_type": "emergency", "start_date": "2026-10-06", "end_date": "2026-10-10",
		"reason": "keluarga", "is_emergency": true,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, string(service.KindInsufficientBalance), body["kind"])

	status, body = env.do(t, http.MethodPost, path, fiber.Map{
		"leave_type": "annual", "start_date": "2026-10-12", "end_date": "2026-10-13", "reason": "liburan",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["requires_approval"])
	assert.Equal(t, false, body["deducted"])

	status, body = env.do(t, http.MethodPost, path+"/"+body["request_id"].(string)+"/approve", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.LeaveRequestApproved, body["status"])
	assert.Equal(t, "manager@restoran.id", body["decided_by"])

	status, body = env.do(t, http.MethodGet, "/employees/"+id.Hex()+"/leave-balance?year=2026", nil)
	require.Equal(t, http.StatusOK, status)
	annual := body["annual"].(map[string]interface{})
	assert.Equal(t, float64(2), annual["used"])
	assert.Equal(t, float64(19), annual["remaining"])
}

func TestPayrollHandlers(t *testing.T) {
	env := newTestEnv(t, managerClaims())
	monthly := env.addEmployee(t, nil)
	weekly := env.addEmployee(t, func(e *models.Employee) { e.PayrollType = models.PayrollWeekly })

	status, body := env.do(t, http.MethodGet, "/payroll/"+monthly.Hex()+"?month=9&year=2026", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "monthly", body["payroll_type"])
	assert.Equal(t, float64(0), body["net_salary"])

	status, body = env.do(t, http.MethodGet, "/payroll/"+weekly.Hex()+"?month=9&year=2026", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, string(service.KindUnsupportedPayrollType), body["kind"])

	status, body = env.do(t, http.MethodGet, "/payroll/report?month=9&year=2026", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["failed_count"])
	assert.Len(t, body["entries"], 2)

	status, _ = env.do(t, http.MethodGet, "/payroll/report?month=13&year=2026", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestBulkCheckInHandler(t *testing.T) {
	env := newTestEnv(t, managerClaims())
	first := env.addEmployee(t, nil)
	inactive := env.addEmployee(t, func(e *models.Employee) { e.IsActive = false })

	status, body := env.do(t, http.MethodPost, "/attendance/bulk-check-in", fiber.Map{
		"employee_ids": []string{first.Hex(), inactive.Hex(), primitive.NewObjectID().Hex()},
		"timestamp":    "2026-10-05T09:00:00+07:00",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["succeeded"])
	assert.Equal(t, float64(2), body["failed"])

	status, _ = env.do(t, http.MethodPost, "/attendance/bulk-check-in", fiber.Map{"employee_ids": []string{"xyz"}})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateEmployeeHandler(t *testing.T) {
	env := newTestEnv(t, managerClaims())

	payload := fiber.Map{
		"name": "Budi Santoso", "role": "chef", "department": "Kitchen", "payroll_type": "hourly",
		"hourly_rate": 25000, "shift_start": "08:00", "shift_end": "17:00", "weekly_offs": []string{"monday"},
	}
	status, body := env.do(t, http.MethodPost, "/employees", payload)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "EMP0001", body["employee_code"])

	payload["weekly_offs"] = []string{"someday"}
	status, _ = env.do(t, http.MethodPost, "/employees", payload)
	assert.Equal(t, http.StatusBadRequest, status)

	payload["weekly_offs"] = []string{"monday"}
	payload["department"] = "Laundry"
	status, body = env.do(t, http.MethodPost, "/employees", payload)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "department", body["field"])
}

func TestMonthlyAggregateHandler(t *testing.T) {
	env := newTestEnv(t, managerClaims())
	id := env.addEmployee(t, nil)

	status, _ := env.do(t, http.MethodPost, "/attendance/"+id.Hex()+"/check-in", fiber.Map{"timestamp": "2026-10-05T09:00:00+07:00"})
	require.Equal(t, http.StatusOK, status)

	status, body := env.do(t, http.MethodGet, "/attendance/"+id.Hex()+"/monthly", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(10), body["month"])
	assert.Equal(t, float64(1), body["present_days"])
	assert.Equal(t, float64(27), body["total_working_days"])
}

func TestDeleteDepartmentInUse(t *testing.T) {
	env := newTestEnv(t, managerClaims())
	env.addEmployee(t, nil)

	inUse, err := env.store.FindDepartmentByName(context.Background(), "Service")
	require.NoError(t, err)
	status, body := env.do(t, http.MethodDelete, "/departments/"+inUse.ID.Hex(), nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body["error"], repository.ErrDepartmentInUse.Error())

	kitchen, err := env.store.FindDepartmentByName(context.Background(), "Kitchen")
	require.NoError(t, err)
	status, _ = env.do(t, http.MethodDelete, "/departments/"+kitchen.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, http.MethodDelete, "/departments/"+kitchen.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdateDepartmentRename(t *testing.T) {
	env := newTestEnv(t, managerClaims())
	env.addEmployee(t, nil)
	ctx := context.Background()

	front, err := env.store.FindDepartmentByName(ctx, "Service")
	require.NoError(t, err)
	kitchen, err := env.store.FindDepartmentByName(ctx, "Kitchen")
	require.NoError(t, err)

	status, _ := env.do(t, http.MethodPut, "/departments/"+front.ID.Hex(), fiber.Map{"name": "Floor"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = env.do(t, http.MethodPut, "/departments/"+front.ID.Hex(), fiber.Map{"name": "Service", "description": "Pelayan"})
	assert.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, http.MethodPut, "/departments/"+kitchen.ID.Hex(), fiber.Map{"name": "Service"})
	assert.Equal(t, http.StatusConflict, status)

	status, body := env.do(t, http.MethodPut, "/departments/"+kitchen.ID.Hex(), fiber.Map{"name": "Dapur"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Dapur", body["department"].(map[string]interface{})["name"])

	renamed, err := env.store.FindDepartmentByName(ctx, "Dapur")
	require.NoError(t, err)
	require.NotNil(t, renamed)
	assert.Equal(t, kitchen.ID, renamed.ID)

	status, _ = env.do(t, http.MethodPut, "/departments/"+primitive.NewObjectID().Hex(), fiber.Map{"name": "Bar"})
	assert.Equal(t, http.StatusNotFound, status)
}
