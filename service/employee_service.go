package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Manajemen-Restoran/models"
	util "Sistem-Manajemen-Restoran/pkg/utils"
	"Sistem-Manajemen-Restoran/repository"
)

type EmployeeService struct {
	directory   EmployeeDirectory
	departments DepartmentLookup
	clock       Clock
	loc         *time.Location
}

func NewEmployeeService(directory EmployeeDirectory, departments DepartmentLookup, clock Clock, loc *time.Location) *EmployeeService {
	if clock == nil {
		clock = SystemClock
	}
	if loc == nil {
		loc = time.Local
	}
	return &EmployeeService{directory: directory, departments: departments, clock: clock, loc: loc}
}

func (s *EmployeeService) Location() *time.Location {
	return s.loc
}

func (s *EmployeeService) Now() time.Time {
	return s.clock.Now().In(s.loc)
}

func normalizeWeekdays(days []string) []string {
	out := make([]string, 0, len(days))
	seen := map[string]bool{}
	for _, d := range days {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

func validateShift(shift models.ShiftConfig) error {
	if _, _, err := shiftWindow(shift); err != nil {
		return err
	}
	_, err := CountWeeklyOffDays(shift.WeeklyOffs, 1, 2000)
	return err
}

func (s *EmployeeService) ensureDepartment(ctx context.Context, name string) error {
	dept, err := s.departments.FindDepartmentByName(ctx, name)
	if err != nil {
		return err
	}
	if dept == nil {
		return invalid("department", "departemen %q tidak ditemukan", name)
	}
	return nil
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, p models.EmployeeCreatePayload) (*models.Employee, error) {
	now := s.clock.Now().In(s.loc)
	shift := models.ShiftConfig{
		StartTime:     p.ShiftStart,
		EndTime:       p.ShiftEnd,
		BreakDuration: p.BreakMinutes,
		WeeklyOffs:    normalizeWeekdays(p.WeeklyOffs),
	}
	if err := validateShift(shift); err != nil {
		return nil, wrap("create-employee", primitive.NilObjectID, time.Time{}, err)
	}
	if err := s.ensureDepartment(ctx, p.Department); err != nil {
		return nil, wrap("create-employee", primitive.NilObjectID, time.Time{}, err)
	}

	joinDate := util.StartOfDay(now, s.loc)
	if p.JoinDate != "" {
		parsed, err := util.ParseDate(p.JoinDate, s.loc)
		if err != nil {
			return nil, wrap("create-employee", primitive.NilObjectID, time.Time{}, invalid("join_date", "format tanggal tidak valid"))
		}
		joinDate = parsed
	}

	code, err := s.directory.NextEmployeeCode(ctx)
	if err != nil {
		return nil, wrap("create-employee", primitive.NilObjectID, time.Time{}, err)
	}

	balances, _ := EnsureYearBalance(nil, now.Year())
	employee := &models.Employee{
		EmployeeCode:       code,
		Name:               p.Name,
		Email:              p.Email,
		Phone:              p.Phone,
		Role:               p.Role,
		Department:         p.Department,
		PayrollType:        p.PayrollType,
		BaseSalary:         p.BaseSalary,
		HourlyRate:         p.HourlyRate,
		OvertimeRate:       p.OvertimeRate,
		Bonus:              p.Bonus,
		Deductions:         p.Deductions,
		Shift:              shift,
		IsActive:           true,
		JoinDate:           joinDate,
		Attendance:         []models.AttendanceRecord{},
		LeaveBalances:      balances,
		LeaveRequests:      []models.LeaveRequest{},
		PerformanceReviews: []models.PerformanceReview{},
	}

	created, err := s.directory.CreateEmployee(ctx, employee)
	if err != nil {
		return nil, wrap("create-employee", primitive.NilObjectID, time.Time{}, err)
	}
	return created, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	emp, err := s.directory.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, wrap("get-employee", id, time.Time{}, err)
	}
	if emp == nil {
		return nil, wrap("get-employee", id, time.Time{}, ErrEmployeeNotFound)
	}
	return emp, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context, filter repository.EmployeeFilter) ([]models.Employee, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}
	employees, total, err := s.directory.GetAllEmployees(ctx, filter)
	if err != nil {
		return nil, 0, wrap("list-employees", primitive.NilObjectID, time.Time{}, err)
	}
	return employees, total, nil
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id primitive.ObjectID, p models.EmployeeUpdatePayload) (*models.Employee, error) {
	if p.Department != "" {
		if err := s.ensureDepartment(ctx, p.Department); err != nil {
			return nil, wrap("update-employee", id, time.Time{}, err)
		}
	}

	updated, err := s.directory.UpdateEmployee(ctx, id, func(emp *models.Employee) error {
		if p.Name != "" {
			emp.Name = p.Name
		}
		if p.Email != "" {
			emp.Email = p.Email
		}
		if p.Phone != "" {
			emp.Phone = p.Phone
		}
		if p.Role != "" {
			emp.Role = p.Role
		}
		if p.Department != "" {
			emp.Department = p.Department
		}
		if p.PayrollType != "" {
			emp.PayrollType = p.PayrollType
		}
		if p.BaseSalary != nil {
			emp.BaseSalary = *p.BaseSalary
		}
		if p.HourlyRate != nil {
			emp.HourlyRate = *p.HourlyRate
		}
		if p.OvertimeRate != nil {
			emp.OvertimeRate = *p.OvertimeRate
		}
		if p.Bonus != nil {
			emp.Bonus = *p.Bonus
		}
		if p.Deductions != nil {
			emp.Deductions = *p.Deductions
		}
		if p.Shift != nil {
			shift := models.ShiftConfig{
				StartTime:     p.Shift.StartTime,
				EndTime:       p.Shift.EndTime,
				BreakDuration: p.Shift.BreakDuration,
				WeeklyOffs:    normalizeWeekdays(p.Shift.WeeklyOffs),
			}
			if err := validateShift(shift); err != nil {
				return err
			}
			emp.Shift = shift
		}
		return nil
	})
	if err != nil {
		return nil, wrap("update-employee", id, time.Time{}, err)
	}
	return updated, nil
}

// TerminateEmployee menonaktifkan karyawan; datanya tidak pernah dihapus.
func (s *EmployeeService) TerminateEmployee(ctx context.Context, id primitive.ObjectID, reason string, date time.Time) (*models.Employee, error) {
	if date.IsZero() {
		date = s.clock.Now()
	}
	day := util.StartOfDay(date, s.loc)

	updated, err := s.directory.UpdateEmployee(ctx, id, func(emp *models.Employee) error {
		if !emp.IsActive {
			return ErrEmployeeInactive
		}
		emp.IsActive = false
		emp.TerminationDate = &day
		emp.TerminationReason = reason
		return nil
	})
	if err != nil {
		return nil, wrap("terminate-employee", id, day, err)
	}
	return updated, nil
}

// GetLeaveBalance membaca saldo cuti tahun year; tahun yang belum pernah
// dipakai dikembalikan dengan jatah default tanpa disimpan.
func (s *EmployeeService) GetLeaveBalance(ctx context.Context, id primitive.ObjectID, year int) (*models.LeaveBalance, error) {
	if year < 1 {
		return nil, wrap("leave-balance", id, time.Time{}, invalid("year", "tahun tidak valid"))
	}
	emp, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	balances, idx := EnsureYearBalance(emp.LeaveBalances, year)
	return &balances[idx], nil
}

func (s *EmployeeService) AddPerformanceReview(ctx context.Context, id, reviewer primitive.ObjectID, p models.PerformanceReviewPayload) (*models.PerformanceReview, error) {
	if p.Rating < 1 || p.Rating > 5 {
		return nil, wrap("add-review", id, time.Time{}, invalid("rating", "rating harus 1-5"))
	}
	review := models.PerformanceReview{
		ID:         primitive.NewObjectID(),
		Period:     p.Period,
		Rating:     p.Rating,
		ReviewerID: reviewer,
		Comments:   p.Comments,
		Goals:      p.Goals,
		CreatedAt:  s.clock.Now(),
	}
	_, err := s.directory.UpdateEmployee(ctx, id, func(emp *models.Employee) error {
		emp.PerformanceReviews = append(emp.PerformanceReviews, review)
		return nil
	})
	if err != nil {
		return nil, wrap("add-review", id, time.Time{}, err)
	}
	return &review, nil
}
