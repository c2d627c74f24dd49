package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Sistem-Manajemen-Restoran/config"
	"Sistem-Manajemen-Restoran/models"
)

var (
	ErrDepartmentExists   = errors.New("nama departemen sudah ada")
	ErrDepartmentNotFound = errors.New("departemen tidak ditemukan")
	ErrDepartmentInUse    = errors.New("departemen masih memiliki karyawan aktif")
)

// DepartmentRepository menyimpan departemen restoran. Karyawan merujuk departemen
// lewat namanya, sehingga rename dan hapus ditolak selama masih ada karyawan aktif.
type DepartmentRepository interface {
	CreateDepartment(ctx context.Context, department *models.Department) (*models.Department, error)
	GetAllDepartments(ctx context.Context) ([]models.Department, error)
	GetDepartmentByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error)
	FindDepartmentByName(ctx context.Context, name string) (*models.Department, error)
	UpdateDepartment(ctx context.Context, id primitive.ObjectID, payload models.DepartmentPayload) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id primitive.ObjectID) error
}

type departmentRepository struct {
	collection *mongo.Collection
	employees  *mongo.Collection
}

func NewDepartmentRepository() DepartmentRepository {
	return newDepartmentRepository(
		config.GetCollection(config.DepartmentCollection),
		config.GetCollection(config.EmployeeCollection),
	)
}

func newDepartmentRepository(collection, employees *mongo.Collection) *departmentRepository {
	return &departmentRepository{collection: collection, employees: employees}
}

func (r *departmentRepository) CreateDepartment(ctx context.Context, department *models.Department) (*models.Department, error) {
	now := time.Now()
	department.ID = primitive.NewObjectID()
	department.CreatedAt = now
	department.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, department); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDepartmentExists
		}
		return nil, fmt.Errorf("gagal membuat departemen: %w", err)
	}
	return department, nil
}

func (r *departmentRepository) GetAllDepartments(ctx context.Context) ([]models.Department, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("gagal menemukan departemen: %w", err)
	}
	defer cursor.Close(ctx)

	departments := []models.Department{}
	if err = cursor.All(ctx, &departments); err != nil {
		return nil, fmt.Errorf("gagal mendecode departemen: %w", err)
	}
	return departments, nil
}

func (r *departmentRepository) findOne(ctx context.Context, filter bson.M) (*models.Department, error) {
	var department models.Department
	if err := r.collection.FindOne(ctx, filter).Decode(&department); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) GetDepartmentByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error) {
	dept, err := r.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("gagal menemukan departemen berdasarkan ID: %w", err)
	}
	return dept, nil
}

func (r *departmentRepository) FindDepartmentByName(ctx context.Context, name string) (*models.Department, error) {
	dept, err := r.findOne(ctx, bson.M{"name": name})
	if err != nil {
		return nil, fmt.Errorf("gagal menemukan departemen berdasarkan nama: %w", err)
	}
	return dept, nil
}

// activeMembers menghitung karyawan aktif yang masih merujuk nama departemen.
func (r *departmentRepository) activeMembers(ctx context.Context, name string) (int64, error) {
	count, err := r.employees.CountDocuments(ctx, bson.M{"department": name, "is_active": true})
	if err != nil {
		return 0, fmt.Errorf("gagal menghitung karyawan departemen: %w", err)
	}
	return count, nil
}

func (r *departmentRepository) UpdateDepartment(ctx context.Context, id primitive.ObjectID, payload models.DepartmentPayload) (*models.Department, error) {
	current, err := r.GetDepartmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrDepartmentNotFound
	}

	if payload.Name != current.Name {
		members, err := r.activeMembers(ctx, current.Name)
		if err != nil {
			return nil, err
		}
		if members > 0 {
			return nil, fmt.Errorf("%w (%d karyawan)", ErrDepartmentInUse, members)
		}
	}

	current.Name = payload.Name
	current.Description = payload.Description
	current.UpdatedAt = time.Now()
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":        current.Name,
		"description": current.Description,
		"updated_at":  current.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDepartmentExists
		}
		return nil, fmt.Errorf("gagal mengupdate departemen: %w", err)
	}
	return current, nil
}

func (r *departmentRepository) DeleteDepartment(ctx context.Context, id primitive.ObjectID) error {
	current, err := r.GetDepartmentByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrDepartmentNotFound
	}

	members, err := r.activeMembers(ctx, current.Name)
	if err != nil {
		return err
	}
	if members > 0 {
		return fmt.Errorf("%w (%d karyawan)", ErrDepartmentInUse, members)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("gagal menghapus departemen: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}
