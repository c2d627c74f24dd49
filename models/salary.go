package models

// SalaryBreakdown adalah hasil perhitungan gaji satu periode. Field yang
// diisi bergantung pada PayrollType.
type SalaryBreakdown struct {
	EmployeeID   string      `json:"employee_id"`
	EmployeeCode string      `json:"employee_code"`
	Name         string      `json:"name"`
	PayrollType  PayrollType `json:"payroll_type"`
	Month        int         `json:"month"`
	Year         int         `json:"year"`

	// monthly
	BaseSalary           float64 `json:"base_salary,omitempty"`
	AttendanceMultiplier float64 `json:"attendance_multiplier,omitempty"`
	BasePay              float64 `json:"base_pay,omitempty"`

	// hourly
	HourlyRate float64 `json:"hourly_rate,omitempty"`
	TotalHours float64 `json:"total_hours,omitempty"`
	RegularPay float64 `json:"regular_pay,omitempty"`

	OvertimeHours float64 `json:"overtime_hours"`
	OvertimePay   float64 `json:"overtime_pay"`
	Bonus         float64 `json:"bonus"`
	Deductions    float64 `json:"deductions"`
	GrossSalary   float64 `json:"gross_salary"`
	NetSalary     float64 `json:"net_salary"`

	Attendance MonthlyAttendanceAggregate `json:"attendance"`
}
