package service

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"Sistem-Manajemen-Restoran/models"
)

type PayrollService struct {
	store  EmployeeStore
	ledger *AttendanceService
}

func NewPayrollService(store EmployeeStore, ledger *AttendanceService) *PayrollService {
	return &PayrollService{store: store, ledger: ledger}
}

// Now adalah waktu saat ini di zona waktu aplikasi.
func (s *PayrollService) Now() time.Time {
	return s.ledger.Now()
}

func (s *PayrollService) CalculateSalary(ctx context.Context, employeeID primitive.ObjectID, month, year int) (*models.SalaryBreakdown, error) {
	emp, err := s.ledger.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, wrap("calculate-salary", employeeID, time.Time{}, err)
	}
	salary, err := s.calculate(emp, month, year)
	if err != nil {
		return nil, wrap("calculate-salary", employeeID, time.Time{}, err)
	}
	return salary, nil
}

func (s *PayrollService) calculate(emp *models.Employee, month, year int) (*models.SalaryBreakdown, error) {
	agg, err := s.ledger.Aggregate(emp, month, year)
	if err != nil {
		return nil, err
	}
	return ComputeSalary(emp, agg)
}

// PayrollReport menghitung gaji seluruh karyawan aktif. Karyawan yang gagal
// dihitung tetap muncul dengan pesan errornya.
func (s *PayrollService) PayrollReport(ctx context.Context, month, year int) (*models.PayrollReport, error) {
	if month < 1 || month > 12 {
		return nil, wrap("payroll-report", primitive.NilObjectID, time.Time{}, invalid("month", "bulan harus 1-12"))
	}
	employees, err := s.store.FindAllActiveEmployees(ctx)
	if err != nil {
		return nil, wrap("payroll-report", primitive.NilObjectID, time.Time{}, err)
	}

	entries := make([]models.PayrollReportEntry, len(employees))
	var g errgroup.Group
	g.SetLimit(bulkConcurrency)
	for i := range employees {
		g.Go(func() error {
			emp := &employees[i]
			entry := models.PayrollReportEntry{EmployeeID: emp.ID.Hex()}
			salary, err := s.calculate(emp, month, year)
			if err != nil {
				entry.Error = wrap("calculate-salary", emp.ID, time.Time{}, err).Error()
			} else {
				entry.Salary = salary
			}
			entries[i] = entry
			return nil
		})
	}
	_ = g.Wait()

	report := &models.PayrollReport{Month: month, Year: year, Entries: entries}
	var total float64
	for _, entry := range entries {
		if entry.Salary == nil {
			report.FailedCount++
			continue
		}
		total += entry.Salary.NetSalary
	}
	report.TotalNetSalary = math.Round(total)
	return report, nil
}
