package models

import (
	"time"
)

type AttendanceStatus string

const (
	StatusAbsent     AttendanceStatus = "absent"
	StatusPresent    AttendanceStatus = "present"
	StatusLate       AttendanceStatus = "late"
	StatusOvertime   AttendanceStatus = "overtime"
	StatusEarlyLeave AttendanceStatus = "early-leave"
	StatusHalfDay    AttendanceStatus = "half-day"
)

type BreakType string

const (
	BreakLunch  BreakType = "lunch"
	BreakTea    BreakType = "tea"
	BreakDinner BreakType = "dinner"
	BreakOther  BreakType = "other"
)

func (t BreakType) Valid() bool {
	switch t {
	case BreakLunch, BreakTea, BreakDinner, BreakOther:
		return true
	}
	return false
}

type GeoLocation struct {
	Latitude  float64 `json:"latitude" bson:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" bson:"longitude" validate:"min=-180,max=180"`
	Address   string  `json:"address,omitempty" bson:"address,omitempty"`
}

// BreakInterval dengan EndTime nil berarti istirahat masih berjalan.
type BreakInterval struct {
	StartTime time.Time  `json:"start_time" bson:"start_time"`
	EndTime   *time.Time `json:"end_time" bson:"end_time"`
	Duration  int        `json:"duration" bson:"duration"`
	Type      BreakType  `json:"type" bson:"type"`
}

func (b BreakInterval) Open() bool {
	return b.EndTime == nil
}

type AttendanceRecord struct {
	Date              time.Time        `json:"date" bson:"date"`
	LoginTime         *time.Time       `json:"login_time" bson:"login_time"`
	LogoutTime        *time.Time       `json:"logout_time" bson:"logout_time"`
	IsPresent         bool             `json:"is_present" bson:"is_present"`
	HoursWorked       float64          `json:"hours_worked" bson:"hours_worked"`
	OvertimeHours     float64          `json:"overtime_hours" bson:"overtime_hours"`
	LateMinutes       int              `json:"late_minutes" bson:"late_minutes"`
	EarlyLeaveMinutes int              `json:"early_leave_minutes" bson:"early_leave_minutes"`
	Status            AttendanceStatus `json:"status" bson:"status"`
	Breaks            []BreakInterval  `json:"breaks" bson:"breaks"`
	TotalBreakTime    int              `json:"total_break_time" bson:"total_break_time"`
	LeaveType         LeaveType        `json:"leave_type,omitempty" bson:"leave_type,omitempty"`
	LeaveReason       string           `json:"leave_reason,omitempty" bson:"leave_reason,omitempty"`
	ApprovedBy        string           `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	CheckInLocation   *GeoLocation     `json:"check_in_location,omitempty" bson:"check_in_location,omitempty"`
	CheckOutLocation  *GeoLocation     `json:"check_out_location,omitempty" bson:"check_out_location,omitempty"`
	WorkLocation      string           `json:"work_location,omitempty" bson:"work_location,omitempty"`
}

func (r *AttendanceRecord) OnLeave() bool {
	return r.LeaveType != ""
}

// OpenBreak mengembalikan istirahat yang belum ditutup, atau nil.
func (r *AttendanceRecord) OpenBreak() *BreakInterval {
	for i := range r.Breaks {
		if r.Breaks[i].Open() {
			return &r.Breaks[i]
		}
	}
	return nil
}

// MonthlyAttendanceAggregate dihitung saat diminta dan tidak disimpan.
type MonthlyAttendanceAggregate struct {
	EmployeeID           string  `json:"employee_id"`
	Month                int     `json:"month"`
	Year                 int     `json:"year"`
	TotalWorkingDays     int     `json:"total_working_days"`
	PresentDays          int     `json:"present_days"`
	AbsentDays           int     `json:"absent_days"`
	TotalHours           float64 `json:"total_hours"`
	OvertimeHours        float64 `json:"overtime_hours"`
	TotalBreakTime       float64 `json:"total_break_time"`
	AverageHoursPerDay   float64 `json:"average_hours_per_day"`
	AttendancePercentage int     `json:"attendance_percentage"`
	LateCount            int     `json:"late_count"`
	EarlyLeaveCount      int     `json:"early_leave_count"`
	PunctualityScore     int     `json:"punctuality_score"`
}

type CheckInPayload struct {
	Timestamp    *time.Time   `json:"timestamp,omitempty"`
	Location     *GeoLocation `json:"location,omitempty" validate:"omitempty"`
	WorkLocation string       `json:"work_location" validate:"omitempty,max=100"`
}

type CheckOutPayload struct {
	Timestamp *time.Time   `json:"timestamp,omitempty"`
	Location  *GeoLocation `json:"location,omitempty" validate:"omitempty"`
}

type BreakStartPayload struct {
	Type BreakType `json:"type" validate:"required,oneof=lunch tea dinner other"`
}

type BulkCheckInPayload struct {
	EmployeeIDs  []string   `json:"employee_ids" validate:"required,min=1,max=200,dive,required"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
	WorkLocation string     `json:"work_location" validate:"omitempty,max=100"`
}
