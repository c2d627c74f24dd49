package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Manajemen-Restoran/models"
	"Sistem-Manajemen-Restoran/repository"
)

func createPayload() models.EmployeeCreatePayload {
	return models.EmployeeCreatePayload{
		Name:         "Budi Santoso",
		Role:         "chef",
		Department:   "Kitchen",
		PayrollType:  models.PayrollMonthly,
		BaseSalary:   6000000,
		OvertimeRate: 40000,
		ShiftStart:   "08:00",
		ShiftEnd:     "17:00",
		BreakMinutes: 60,
		WeeklyOffs:   []string{"Monday", "monday"},
	}
}

func TestCreateEmployee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	emp, err := f.employees.CreateEmployee(ctx, createPayload())
	require.NoError(t, err)
	assert.Equal(t, "EMP0001", emp.EmployeeCode)
	assert.True(t, emp.IsActive)
	assert.Equal(t, []string{"monday"}, emp.Shift.WeeklyOffs)
	require.Len(t, emp.LeaveBalances, 1)
	assert.Equal(t, 2026, emp.LeaveBalances[0].Year)

	second, err := f.employees.CreateEmployee(ctx, createPayload())
	require.NoError(t, err)
	assert.Equal(t, "EMP0002", second.EmployeeCode)
}

func TestCreateEmployeeValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := createPayload()
	p.Department = "Laundry"
	_, err := f.employees.CreateEmployee(ctx, p)
	assert.Equal(t, KindValidation, KindOf(err))

	p = createPayload()
	p.ShiftStart, p.ShiftEnd = "22:00", "06:00"
	_, err = f.employees.CreateEmployee(ctx, p)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestListEmployees(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.employees.CreateEmployee(ctx, createPayload())
		require.NoError(t, err)
	}
	p := createPayload()
	p.Name = "Rina Kasir"
	p.Department = "Service"
	_, err := f.employees.CreateEmployee(ctx, p)
	require.NoError(t, err)

	list, total, err := f.employees.ListEmployees(ctx, repository.EmployeeFilter{Department: "Kitchen", Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)

	list, total, err = f.employees.ListEmployees(ctx, repository.EmployeeFilter{Search: "rina"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Rina Kasir", list[0].Name)
}

func TestUpdateAndTerminateEmployee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.addEmployee(t, nil)

	salary := 25000.0
	updated, err := f.employees.UpdateEmployee(ctx, id, models.EmployeeUpdatePayload{
		BaseSalary: &salary,
		Shift:      &models.ShiftUpdate{StartTime: "10:00", EndTime: "19:00", WeeklyOffs: []string{"Tuesday"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 25000.0, updated.BaseSalary)
	assert.Equal(t, "10:00", updated.Shift.StartTime)
	assert.Equal(t, []string{"tuesday"}, updated.Shift.WeeklyOffs)

	_, err = f.employees.UpdateEmployee(ctx, id, models.EmployeeUpdatePayload{
		Shift: &models.ShiftUpdate{StartTime: "19:00", EndTime: "10:00"},
	})
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "10:00", f.load(t, id).Shift.StartTime)

	terminated, err := f.employees.TerminateEmployee(ctx, id, "kontrak selesai", at(2026, time.October, 31, 0, 0))
	require.NoError(t, err)
	assert.False(t, terminated.IsActive)
	require.NotNil(t, terminated.TerminationDate)
	assert.Equal(t, "kontrak selesai", terminated.TerminationReason)

	_, err = f.employees.TerminateEmployee(ctx, id, "lagi", time.Time{})
	assert.ErrorIs(t, err, ErrEmployeeInactive)

	_, err = f.attendance.CheckIn(ctx, id, at(2026, time.November, 2, 9, 0), nil, "")
	assert.ErrorIs(t, err, ErrEmployeeInactive)
}

func TestGetLeaveBalanceDoesNotPersist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.addEmployee(t, nil)

	balance, err := f.employees.GetLeaveBalance(ctx, id, 2027)
	require.NoError(t, err)
	assert.Equal(t, 2027, balance.Year)
	assert.Equal(t, 21, balance.Annual.Remaining)
	assert.Len(t, f.load(t, id).LeaveBalances, 1)

	_, err = f.employees.GetLeaveBalance(ctx, primitive.NewObjectID(), 2026)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestAddPerformanceReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.addEmployee(t, nil)
	reviewer := primitive.NewObjectID()

	review, err := f.employees.AddPerformanceReview(ctx, id, reviewer, models.PerformanceReviewPayload{
		Period: "2026-09", Rating: 4, Comments: "pelayanan cepat",
	})
	require.NoError(t, err)
	assert.Equal(t, reviewer, review.ReviewerID)

	emp := f.load(t, id)
	require.Len(t, emp.PerformanceReviews, 1)
	assert.Equal(t, 4, emp.PerformanceReviews[0].Rating)

	_, err = f.employees.AddPerformanceReview(ctx, id, reviewer, models.PerformanceReviewPayload{Period: "2026-09", Rating: 6})
	assert.Equal(t, KindValidation, KindOf(err))
}
