package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PayrollType string

const (
	PayrollMonthly PayrollType = "monthly"
	PayrollHourly  PayrollType = "hourly"
	PayrollWeekly  PayrollType = "weekly"
	PayrollDaily   PayrollType = "daily"
)

// ShiftConfig menyimpan jam kerja harian karyawan dalam format "15:04".
type ShiftConfig struct {
	StartTime     string   `json:"start_time" bson:"start_time"`
	EndTime       string   `json:"end_time" bson:"end_time"`
	BreakDuration int      `json:"break_duration" bson:"break_duration"`
	WeeklyOffs    []string `json:"weekly_offs" bson:"weekly_offs"`
}

type PerformanceReview struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	Period     string             `json:"period" bson:"period"`
	Rating     int                `json:"rating" bson:"rating"`
	ReviewerID primitive.ObjectID `json:"reviewer_id" bson:"reviewer_id"`
	Comments   string             `json:"comments,omitempty" bson:"comments,omitempty"`
	Goals      []string           `json:"goals,omitempty" bson:"goals,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

type Employee struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeCode string             `json:"employee_code" bson:"employee_code"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Role         string             `json:"role" bson:"role"`
	Department   string             `json:"department" bson:"department"`

	PayrollType  PayrollType `json:"payroll_type" bson:"payroll_type"`
	BaseSalary   float64     `json:"base_salary" bson:"base_salary"`
	HourlyRate   float64     `json:"hourly_rate" bson:"hourly_rate"`
	OvertimeRate float64     `json:"overtime_rate" bson:"overtime_rate"`
	Bonus        float64     `json:"bonus" bson:"bonus"`
	Deductions   float64     `json:"deductions" bson:"deductions"`

	Shift ShiftConfig `json:"shift" bson:"shift"`

	IsActive          bool       `json:"is_active" bson:"is_active"`
	JoinDate          time.Time  `json:"join_date" bson:"join_date"`
	TerminationDate   *time.Time `json:"termination_date,omitempty" bson:"termination_date,omitempty"`
	TerminationReason string     `json:"termination_reason,omitempty" bson:"termination_reason,omitempty"`
	LastLogin         *time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`

	Attendance         []AttendanceRecord  `json:"attendance,omitempty" bson:"attendance"`
	LeaveBalances      []LeaveBalance      `json:"leave_balances,omitempty" bson:"leave_balances"`
	LeaveRequests      []LeaveRequest      `json:"leave_requests,omitempty" bson:"leave_requests"`
	PerformanceReviews []PerformanceReview `json:"performance_reviews,omitempty" bson:"performance_reviews"`

	// Version dinaikkan setiap kali dokumen disimpan.
	Version   int64     `json:"-" bson:"version"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// FindAttendance mengembalikan pointer ke record pada hari yang sama dengan day.
func (e *Employee) FindAttendance(day time.Time) *AttendanceRecord {
	for i := range e.Attendance {
		if SameDay(e.Attendance[i].Date, day) {
			return &e.Attendance[i]
		}
	}
	return nil
}

// SameDay membandingkan tanggal kalender a dan b di lokasi milik b.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

type EmployeeCreatePayload struct {
	Name         string      `json:"name" validate:"required,min=3,max=100"`
	Email        string      `json:"email" validate:"omitempty,email"`
	Phone        string      `json:"phone" validate:"omitempty,max=20"`
	Role         string      `json:"role" validate:"required,oneof=manager chef cook waiter cashier bartender cleaner host"`
	Department   string      `json:"department" validate:"required"`
	PayrollType  PayrollType `json:"payroll_type" validate:"required,oneof=monthly hourly weekly daily"`
	BaseSalary   float64     `json:"base_salary" validate:"min=0"`
	HourlyRate   float64     `json:"hourly_rate" validate:"min=0"`
	OvertimeRate float64     `json:"overtime_rate" validate:"min=0"`
	Bonus        float64     `json:"bonus" validate:"min=0"`
	Deductions   float64     `json:"deductions" validate:"min=0"`
	ShiftStart   string      `json:"shift_start" validate:"required,datetime=15:04"`
	ShiftEnd     string      `json:"shift_end" validate:"required,datetime=15:04"`
	BreakMinutes int         `json:"break_duration" validate:"min=0,max=240"`
	WeeklyOffs   []string    `json:"weekly_offs" validate:"omitempty,dive,weekday"`
	JoinDate     string      `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
}

type EmployeeUpdatePayload struct {
	Name         string       `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Email        string       `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string       `json:"phone,omitempty" validate:"omitempty,max=20"`
	Role         string       `json:"role,omitempty" validate:"omitempty,oneof=manager chef cook waiter cashier bartender cleaner host"`
	Department   string       `json:"department,omitempty"`
	PayrollType  PayrollType  `json:"payroll_type,omitempty" validate:"omitempty,oneof=monthly hourly weekly daily"`
	BaseSalary   *float64     `json:"base_salary,omitempty" validate:"omitempty,min=0"`
	HourlyRate   *float64     `json:"hourly_rate,omitempty" validate:"omitempty,min=0"`
	OvertimeRate *float64     `json:"overtime_rate,omitempty" validate:"omitempty,min=0"`
	Bonus        *float64     `json:"bonus,omitempty" validate:"omitempty,min=0"`
	Deductions   *float64     `json:"deductions,omitempty" validate:"omitempty,min=0"`
	Shift        *ShiftUpdate `json:"shift,omitempty"`
}

type ShiftUpdate struct {
	StartTime     string   `json:"start_time" validate:"required,datetime=15:04"`
	EndTime       string   `json:"end_time" validate:"required,datetime=15:04"`
	BreakDuration int      `json:"break_duration" validate:"min=0,max=240"`
	WeeklyOffs    []string `json:"weekly_offs" validate:"omitempty,dive,weekday"`
}

type EmployeeTerminatePayload struct {
	Reason string `json:"reason" validate:"required,min=5,max=500"`
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type PerformanceReviewPayload struct {
	Period   string   `json:"period" validate:"required,datetime=2006-01"`
	Rating   int      `json:"rating" validate:"required,min=1,max=5"`
	Comments string   `json:"comments" validate:"omitempty,max=1000"`
	Goals    []string `json:"goals"`
}
