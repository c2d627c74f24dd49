package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sistem-Manajemen-Restoran/models"
)

func TestParseClock(t *testing.T) {
	m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	_, err = ParseClock("9.30")
	assert.Error(t, err)
}

func TestShiftWindowRejectsOvernight(t *testing.T) {
	_, _, err := shiftWindow(models.ShiftConfig{StartTime: "22:00", EndTime: "06:00"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCheckoutStatus(t *testing.T) {
	tests := []struct {
		name       string
		current    models.AttendanceStatus
		hours      float64
		overtime   float64
		earlyLeave int
		want       models.AttendanceStatus
	}{
		{"overtime wins over late", models.StatusLate, 10, 1, 0, models.StatusOvertime},
		{"overtime at threshold keeps status", models.StatusPresent, 9.5, 0.5, 0, models.StatusPresent},
		{"early leave", models.StatusPresent, 7, 0, 120, models.StatusEarlyLeave},
		{"early leave at threshold", models.StatusPresent, 8.5, 0, 30, models.StatusPresent},
		{"early leave before half day", models.StatusPresent, 3, 0, 360, models.StatusEarlyLeave},
		{"half day", models.StatusLate, 2.5, 0, 10, models.StatusHalfDay},
		{"late preserved", models.StatusLate, 8.8, 0, 0, models.StatusLate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkoutStatus(tt.current, tt.hours, tt.overtime, tt.earlyLeave))
		})
	}
}

func TestCountWeeklyOffDays(t *testing.T) {
	n, err := CountWeeklyOffDays([]string{"sunday"}, 10, 2026)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = CountWeeklyOffDays([]string{"Saturday", "sunday", "sunday"}, 2, 2024)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	n, err = CountWeeklyOffDays(nil, 2, 2024)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = CountWeeklyOffDays([]string{"funday"}, 2, 2024)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestEnsureYearBalance(t *testing.T) {
	balances, idx := EnsureYearBalance(nil, 2026)
	require.Len(t, balances, 1)
	assert.Equal(t, 0, idx)
	assert.Equal(t, models.LeaveQuota{Total: 12, Remaining: 12}, balances[0].Casual)
	assert.Equal(t, models.LeaveQuota{Total: 12, Remaining: 12}, balances[0].Sick)
	assert.Equal(t, models.LeaveQuota{Total: 21, Remaining: 21}, balances[0].Annual)
	assert.Equal(t, models.LeaveQuota{Total: 3, Remaining: 3}, balances[0].Emergency)

	balances[0].Sick.Used, balances[0].Sick.Remaining = 2, 10
	again, idx := EnsureYearBalance(balances, 2026)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 2, again[0].Sick.Used)

	next, idx := EnsureYearBalance(balances, 2027)
	assert.Equal(t, 1, idx)
	assert.Len(t, next, 2)
	assert.Len(t, balances, 1, "input slice must not grow")
}

func TestRequiresApproval(t *testing.T) {
	assert.False(t, RequiresApproval(models.LeaveSick, 1))
	assert.False(t, RequiresApproval(models.LeaveEmergency, 1))
	assert.True(t, RequiresApproval(models.LeaveSick, 2))
	assert.True(t, RequiresApproval(models.LeaveAnnual, 1))
	assert.True(t, RequiresApproval(models.LeaveCasual, 1))
}

func TestCalendarDays(t *testing.T) {
	assert.Equal(t, 1, calendarDays(at(2026, time.October, 5, 0, 0), at(2026, time.October, 5, 0, 0)))
	assert.Equal(t, 3, calendarDays(at(2026, time.October, 30, 0, 0), at(2026, time.November, 1, 0, 0)))
}

func TestBuildMonthlyAggregate(t *testing.T) {
	emp := baseEmployee()
	emp.Attendance = []models.AttendanceRecord{
		worked(at(2026, time.October, 5, 0, 0), 9, 0, models.StatusPresent),
		worked(at(2026, time.October, 6, 0, 0), 8.5, 0, models.StatusLate),
		worked(at(2026, time.October, 7, 0, 0), 7, 0, models.StatusEarlyLeave),
		worked(at(2026, time.October, 8, 0, 0), 10.5, 1.5, models.StatusOvertime),
		{Date: at(2026, time.October, 9, 0, 0), Status: models.AttendanceStatus(models.LeaveSick), LeaveType: models.LeaveSick},
		worked(at(2026, time.September, 30, 0, 0), 9, 0, models.StatusPresent),
	}
	emp.Attendance[0].TotalBreakTime = 45

	agg, err := BuildMonthlyAggregate(emp, 10, 2026, wib)
	require.NoError(t, err)

	assert.Equal(t, 27, agg.TotalWorkingDays)
	assert.Equal(t, 4, agg.PresentDays)
	assert.Equal(t, 23, agg.AbsentDays)
	assert.Equal(t, agg.TotalWorkingDays, agg.PresentDays+agg.AbsentDays)
	assert.Equal(t, 35.0, agg.TotalHours)
	assert.Equal(t, 1.5, agg.OvertimeHours)
	assert.Equal(t, 0.75, agg.TotalBreakTime)
	assert.Equal(t, 8.75, agg.AverageHoursPerDay)
	assert.Equal(t, 15, agg.AttendancePercentage)
	assert.Equal(t, 1, agg.LateCount)
	assert.Equal(t, 1, agg.EarlyLeaveCount)
	assert.Equal(t, 50, agg.PunctualityScore)

	again, err := BuildMonthlyAggregate(emp, 10, 2026, wib)
	require.NoError(t, err)
	assert.Equal(t, agg, again)
}

func TestBuildMonthlyAggregateEmptyMonth(t *testing.T) {
	agg, err := BuildMonthlyAggregate(baseEmployee(), 10, 2026, wib)
	require.NoError(t, err)
	assert.Equal(t, 0, agg.PresentDays)
	assert.Equal(t, 0.0, agg.AverageHoursPerDay)
	assert.Equal(t, 0, agg.PunctualityScore)
	assert.Equal(t, 0, agg.AttendancePercentage)

	_, err = BuildMonthlyAggregate(baseEmployee(), 13, 2026, wib)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestComputeSalaryMonthly(t *testing.T) {
	emp := baseEmployee()
	agg := &models.MonthlyAttendanceAggregate{Month: 9, Year: 2026, AttendancePercentage: 90, OvertimeHours: 1}

	salary, err := ComputeSalary(emp, agg)
	require.NoError(t, err)
	assert.Equal(t, 0.9, salary.AttendanceMultiplier)
	assert.Equal(t, 18000.0, salary.BasePay)
	assert.Equal(t, 250.0, salary.OvertimePay)
	assert.Equal(t, 18250.0, salary.GrossSalary)
	assert.Equal(t, 18250.0, salary.NetSalary)
}

func TestComputeSalaryHourly(t *testing.T) {
	emp := baseEmployee()
	emp.PayrollType = models.PayrollHourly
	emp.HourlyRate = 100
	emp.Bonus = 500
	emp.Deductions = 200
	agg := &models.MonthlyAttendanceAggregate{Month: 9, Year: 2026, TotalHours: 160, OvertimeHours: 10}

	salary, err := ComputeSalary(emp, agg)
	require.NoError(t, err)
	assert.Equal(t, 16000.0, salary.RegularPay)
	assert.Equal(t, 1500.0, salary.OvertimePay)
	assert.Equal(t, 18000.0, salary.GrossSalary)
	assert.Equal(t, 17800.0, salary.NetSalary)
}

func TestComputeSalaryUnsupportedType(t *testing.T) {
	for _, pt := range []models.PayrollType{models.PayrollWeekly, models.PayrollDaily} {
		emp := baseEmployee()
		emp.PayrollType = pt
		_, err := ComputeSalary(emp, &models.MonthlyAttendanceAggregate{Month: 9, Year: 2026})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedPayrollType)
		assert.Equal(t, KindUnsupportedPayrollType, KindOf(err))
	}
}
