package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"Sistem-Manajemen-Restoran/models"
)

const (
	LateGraceMinutes       = 15
	EarlyLeaveThresholdMin = 30
	OvertimeThresholdHours = 0.5
	HalfDayThresholdHours  = 4.0
	HourlyOvertimeFactor   = 1.5
)

var weekdays = map[string]rrule.Weekday{
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
	"sunday":    rrule.SU,
}

// ParseClock mengubah "15:04" menjadi jumlah menit sejak tengah malam.
func ParseClock(value string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("format jam %q tidak valid, gunakan HH:MM", value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// shiftWindow mengembalikan menit mulai dan selesai shift.
func shiftWindow(shift models.ShiftConfig) (int, int, error) {
	start, err := ParseClock(shift.StartTime)
	if err != nil {
		return 0, 0, invalid("shift.start_time", "%v", err)
	}
	end, err := ParseClock(shift.EndTime)
	if err != nil {
		return 0, 0, invalid("shift.end_time", "%v", err)
	}
	if end <= start {
		return 0, 0, invalid("shift.end_time", "jam selesai shift harus setelah jam mulai")
	}
	return start, end, nil
}

func atMinute(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, day.Location())
}

// wholeMinutes membulatkan ke bawah selisih to-from dalam menit, minimal 0.
func wholeMinutes(from, to time.Time) int {
	m := math.Floor(to.Sub(from).Minutes())
	if m < 0 {
		return 0
	}
	return int(m)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// checkoutStatus memilih status akhir hari; aturan pertama yang cocok menang.
func checkoutStatus(current models.AttendanceStatus, hoursWorked, overtimeHours float64, earlyLeaveMinutes int) models.AttendanceStatus {
	switch {
	case overtimeHours > OvertimeThresholdHours:
		return models.StatusOvertime
	case earlyLeaveMinutes > EarlyLeaveThresholdMin:
		return models.StatusEarlyLeave
	case hoursWorked < HalfDayThresholdHours:
		return models.StatusHalfDay
	}
	return current
}

func daysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CountWeeklyOffDays menghitung tanggal pada bulan tersebut yang jatuh di salah satu hari libur mingguan.
func CountWeeklyOffDays(weeklyOffs []string, month, year int) (int, error) {
	seen := map[rrule.Weekday]bool{}
	var byWeekday []rrule.Weekday
	for _, name := range weeklyOffs {
		wd, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, invalid("shift.weekly_offs", "hari libur %q tidak dikenal", name)
		}
		if !seen[wd] {
			seen[wd] = true
			byWeekday = append(byWeekday, wd)
		}
	}
	if len(byWeekday) == 0 {
		return 0, nil
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.Month(month), daysInMonth(month, year), 0, 0, 0, 0, time.UTC)
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   first,
		Until:     last,
		Byweekday: byWeekday,
	})
	if err != nil {
		return 0, fmt.Errorf("gagal menyusun aturan hari libur: %w", err)
	}
	return len(rule.All()), nil
}

func newLeaveBalance(year int) models.LeaveBalance {
	quota := func(t models.LeaveType) models.LeaveQuota {
		total := models.DefaultLeaveQuota[t]
		return models.LeaveQuota{Total: total, Remaining: total}
	}
	return models.LeaveBalance{
		Year:      year,
		Casual:    quota(models.LeaveCasual),
		Sick:      quota(models.LeaveSick),
		Annual:    quota(models.LeaveAnnual),
		Emergency: quota(models.LeaveEmergency),
	}
}

// EnsureYearBalance mengembalikan salinan balances yang dijamin memuat tahun
// year (dengan jatah default bila baru) beserta indeks entri tahun tersebut.
func EnsureYearBalance(balances []models.LeaveBalance, year int) ([]models.LeaveBalance, int) {
	out := make([]models.LeaveBalance, len(balances), len(balances)+1)
	copy(out, balances)
	for i := range out {
		if out[i].Year == year {
			return out, i
		}
	}
	out = append(out, newLeaveBalance(year))
	return out, len(out) - 1
}

// RequiresApproval: cuti lebih dari satu hari, atau tipe annual/casual, harus disetujui atasan.
func RequiresApproval(leaveType models.LeaveType, days int) bool {
	return days > 1 || leaveType == models.LeaveAnnual || leaveType == models.LeaveCasual
}

// calendarDays menghitung jumlah hari inklusif dari start sampai end berdasarkan tanggal kalender.
func calendarDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Ceil(e.Sub(s).Hours()/24)) + 1
}

// BuildMonthlyAggregate merangkum absensi karyawan untuk satu bulan. Tanggal
// record dibaca di loc.
func BuildMonthlyAggregate(employee *models.Employee, month, year int, loc *time.Location) (*models.MonthlyAttendanceAggregate, error) {
	if month < 1 || month > 12 {
		return nil, invalid("month", "bulan harus 1-12")
	}
	if year < 1 {
		return nil, invalid("year", "tahun tidak valid")
	}

	agg := &models.MonthlyAttendanceAggregate{
		EmployeeID: employee.ID.Hex(),
		Month:      month,
		Year:       year,
	}

	var totalHours, overtimeHours float64
	var breakMinutes int
	for _, rec := range employee.Attendance {
		d := rec.Date.In(loc)
		if int(d.Month()) != month || d.Year() != year {
			continue
		}
		totalHours += rec.HoursWorked
		overtimeHours += rec.OvertimeHours
		breakMinutes += rec.TotalBreakTime
		if !rec.IsPresent {
			continue
		}
		agg.PresentDays++
		switch rec.Status {
		case models.StatusLate:
			agg.LateCount++
		case models.StatusEarlyLeave:
			agg.EarlyLeaveCount++
		}
	}

	offDays, err := CountWeeklyOffDays(employee.Shift.WeeklyOffs, month, year)
	if err != nil {
		return nil, err
	}

	agg.TotalWorkingDays = daysInMonth(month, year) - offDays
	// Bisa negatif bila ada kehadiran di hari libur; sengaja tidak dipotong ke nol.
	agg.AbsentDays = agg.TotalWorkingDays - agg.PresentDays
	agg.TotalHours = round2(totalHours)
	agg.OvertimeHours = round2(overtimeHours)
	agg.TotalBreakTime = round2(float64(breakMinutes) / 60)

	if agg.PresentDays > 0 {
		present := float64(agg.PresentDays)
		agg.AverageHoursPerDay = round2(totalHours / present)
		agg.PunctualityScore = int(math.Round(float64(agg.PresentDays-agg.LateCount-agg.EarlyLeaveCount) / present * 100))
	}
	if agg.TotalWorkingDays != 0 {
		agg.AttendancePercentage = int(math.Round(float64(agg.PresentDays) / float64(agg.TotalWorkingDays) * 100))
	}
	return agg, nil
}

// ComputeSalary menerapkan rumus gaji sesuai PayrollType karyawan.
func ComputeSalary(employee *models.Employee, agg *models.MonthlyAttendanceAggregate) (*models.SalaryBreakdown, error) {
	out := &models.SalaryBreakdown{
		EmployeeID:    employee.ID.Hex(),
		EmployeeCode:  employee.EmployeeCode,
		Name:          employee.Name,
		PayrollType:   employee.PayrollType,
		Month:         agg.Month,
		Year:          agg.Year,
		OvertimeHours: agg.OvertimeHours,
		Bonus:         math.Round(employee.Bonus),
		Deductions:    math.Round(employee.Deductions),
		Attendance:    *agg,
	}

	var gross float64
	switch employee.PayrollType {
	case models.PayrollMonthly:
		multiplier := float64(agg.AttendancePercentage) / 100
		basePay := employee.BaseSalary * multiplier
		overtimePay := employee.OvertimeRate * agg.OvertimeHours
		gross = basePay + overtimePay + employee.Bonus

		out.BaseSalary = employee.BaseSalary
		out.AttendanceMultiplier = multiplier
		out.BasePay = math.Round(basePay)
		out.OvertimePay = math.Round(overtimePay)
	case models.PayrollHourly:
		regularPay := agg.TotalHours * employee.HourlyRate
		overtimePay := agg.OvertimeHours * employee.HourlyRate * HourlyOvertimeFactor
		gross = regularPay + overtimePay + employee.Bonus

		out.HourlyRate = employee.HourlyRate
		out.TotalHours = agg.TotalHours
		out.RegularPay = math.Round(regularPay)
		out.OvertimePay = math.Round(overtimePay)
	default:
		return nil, &Error{Field: "payroll_type", Err: fmt.Errorf("%w: %q", ErrUnsupportedPayrollType, employee.PayrollType)}
	}

	out.GrossSalary = math.Round(gross)
	out.NetSalary = math.Round(gross - employee.Deductions)
	return out, nil
}
