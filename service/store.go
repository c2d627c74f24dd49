package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Manajemen-Restoran/models"
	"Sistem-Manajemen-Restoran/repository"
)

// EmployeeStore adalah penyimpanan dokumen karyawan. UpdateEmployee harus
// menjalankan mutate secara terserialisasi per karyawan dan tidak menyimpan
// apa pun bila mutate mengembalikan error.
type EmployeeStore interface {
	FindEmployeeByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id primitive.ObjectID, mutate func(*models.Employee) error) (*models.Employee, error)
	FindAllActiveEmployees(ctx context.Context) ([]models.Employee, error)
}

type EmployeeDirectory interface {
	EmployeeStore
	NextEmployeeCode(ctx context.Context) (string, error)
	CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	GetAllEmployees(ctx context.Context, filter repository.EmployeeFilter) ([]models.Employee, int64, error)
}

type DepartmentLookup interface {
	FindDepartmentByName(ctx context.Context, name string) (*models.Department, error)
}
