package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Manajemen-Restoran/models"
	"Sistem-Manajemen-Restoran/repository/memstore"
)

var wib = time.FixedZone("WIB", 7*60*60)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, wib)
}

type fixture struct {
	store      *memstore.Store
	clock      *fakeClock
	attendance *AttendanceService
	payroll    *PayrollService
	employees  *EmployeeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New("Kitchen", "Service")
	clock := &fakeClock{now: at(2026, time.October, 5, 8, 0)}
	attendance := NewAttendanceService(store, clock, wib)
	return &fixture{
		store:      store,
		clock:      clock,
		attendance: attendance,
		payroll:    NewPayrollService(store, attendance),
		employees:  NewEmployeeService(store, store, clock, wib),
	}
}

func baseEmployee() *models.Employee {
	balances, _ := EnsureYearBalance(nil, 2026)
	return &models.Employee{
		EmployeeCode: "EMP" + primitive.NewObjectID().Hex()[18:],
		Name:         "Sari Wulandari",
		Role:         "waiter",
		Department:   "Service",
		PayrollType:  models.PayrollMonthly,
		BaseSalary:   20000,
		OvertimeRate: 250,
		Shift: models.ShiftConfig{
			StartTime:     "09:00",
			EndTime:       "18:00",
			BreakDuration: 60,
			WeeklyOffs:    []string{"sunday"},
		},
		IsActive:      true,
		JoinDate:      at(2026, time.January, 5, 0, 0),
		LeaveBalances: balances,
	}
}

func (f *fixture) addEmployee(t *testing.T, edit func(*models.Employee)) primitive.ObjectID {
	t.Helper()
	emp := baseEmployee()
	if edit != nil {
		edit(emp)
	}
	created, err := f.store.CreateEmployee(context.Background(), emp)
	require.NoError(t, err)
	return created.ID
}

func (f *fixture) load(t *testing.T, id primitive.ObjectID) *models.Employee {
	t.Helper()
	emp, err := f.store.FindEmployeeByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, emp)
	return emp
}

func worked(day time.Time, hours, overtime float64, status models.AttendanceStatus) models.AttendanceRecord {
	login := day.Add(9 * time.Hour)
	return models.AttendanceRecord{
		Date:          day,
		LoginTime:     &login,
		IsPresent:     true,
		HoursWorked:   hours,
		OvertimeHours: overtime,
		Status:        status,
		Breaks:        []models.BreakInterval{},
	}
}
