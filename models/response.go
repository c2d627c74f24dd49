package models

type LoginSuccessResponse struct {
	Message      string `json:"message" example:"Login berhasil"`
	Token        string `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	UserID       string `json:"user_id" example:"507f1f77bcf86cd799439011"`
	Role         string `json:"role" example:"staff"`
	IsFirstLogin bool   `json:"is_first_login" example:"true"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"validation failed"`
}

// BulkResult adalah hasil per karyawan dari operasi massal.
type BulkResult struct {
	EmployeeID string            `json:"employee_id"`
	Success    bool              `json:"success"`
	Record     *AttendanceRecord `json:"record,omitempty"`
	Error      string            `json:"error,omitempty"`
}

type PayrollReportEntry struct {
	EmployeeID string           `json:"employee_id"`
	Salary     *SalaryBreakdown `json:"salary,omitempty"`
	Error      string           `json:"error,omitempty"`
}

type PayrollReport struct {
	Month          int                  `json:"month"`
	Year           int                  `json:"year"`
	Entries        []PayrollReportEntry `json:"entries"`
	TotalNetSalary float64              `json:"total_net_salary"`
	FailedCount    int                  `json:"failed_count"`
}
