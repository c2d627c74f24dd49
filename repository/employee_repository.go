package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Sistem-Manajemen-Restoran/config"
	"Sistem-Manajemen-Restoran/models"
)

var (
	ErrEmployeeNotFound   = errors.New("karyawan tidak ditemukan")
	ErrEmployeeCodeExists = errors.New("kode karyawan sudah ada")
	ErrConcurrentUpdate   = errors.New("data karyawan diubah bersamaan, silakan coba lagi")
)

// Jumlah percobaan ulang saat versi dokumen berubah di tengah read-modify-write.
const maxUpdateAttempts = 5

type EmployeeFilter struct {
	Department string
	Active     *bool
	Search     string
	Page       int64
	Limit      int64
}

type EmployeeRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewEmployeeRepository() *EmployeeRepository {
	return newEmployeeRepository(
		config.GetCollection(config.EmployeeCollection),
		config.GetCollection(config.CounterCollection),
	)
}

func newEmployeeRepository(collection, counters *mongo.Collection) *EmployeeRepository {
	return &EmployeeRepository{collection: collection, counters: counters}
}

// NextEmployeeCode mengalokasikan kode berurutan EMP0001, EMP0002, ... lewat $inc atomik.
func (r *EmployeeRepository) NextEmployeeCode(ctx context.Context) (string, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "employee_code"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return "", fmt.Errorf("gagal membuat kode karyawan: %w", err)
	}
	return fmt.Sprintf("EMP%04d", counter.Seq), nil
}

func (r *EmployeeRepository) CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	now := time.Now()
	employee.ID = primitive.NewObjectID()
	employee.Version = 1
	employee.CreatedAt = now
	employee.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, employee)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmployeeCodeExists
		}
		return nil, fmt.Errorf("gagal membuat karyawan: %w", err)
	}
	return employee, nil
}

func (r *EmployeeRepository) FindEmployeeByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	var employee models.Employee
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan karyawan berdasarkan ID: %w", err)
	}
	return &employee, nil
}

// UpdateEmployee membaca dokumen, menjalankan mutate, lalu menyimpan kembali hanya
// jika versinya belum berubah. Bila bentrok, seluruh siklus diulang dengan data terbaru.
// Error dari mutate dikembalikan apa adanya dan tidak ada yang disimpan.
func (r *EmployeeRepository) UpdateEmployee(ctx context.Context, id primitive.ObjectID, mutate func(*models.Employee) error) (*models.Employee, error) {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		employee, err := r.FindEmployeeByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if employee == nil {
			return nil, ErrEmployeeNotFound
		}

		if err := mutate(employee); err != nil {
			return nil, err
		}

		expected := employee.Version
		employee.Version++
		employee.UpdatedAt = time.Now()

		res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id, "version": expected}, employee)
		if err != nil {
			return nil, fmt.Errorf("gagal menyimpan karyawan: %w", err)
		}
		if res.MatchedCount == 1 {
			return employee, nil
		}
	}
	return nil, ErrConcurrentUpdate
}

func (r *EmployeeRepository) FindAllActiveEmployees(ctx context.Context) ([]models.Employee, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, options.Find().SetSort(bson.D{{Key: "employee_code", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("gagal mencari karyawan aktif: %w", err)
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("gagal decode karyawan aktif: %w", err)
	}
	if len(employees) == 0 {
		return []models.Employee{}, nil
	}
	return employees, nil
}

// GetAllEmployees mengembalikan ringkasan karyawan tanpa riwayat absensi.
func (r *EmployeeRepository) GetAllEmployees(ctx context.Context, f EmployeeFilter) ([]models.Employee, int64, error) {
	filter := bson.M{}
	if f.Department != "" {
		filter["department"] = f.Department
	}
	if f.Active != nil {
		filter["is_active"] = *f.Active
	}
	if f.Search != "" {
		pattern := regexp.QuoteMeta(f.Search)
		filter["$or"] = []bson.M{
			{"name": primitive.Regex{Pattern: pattern, Options: "i"}},
			{"employee_code": primitive.Regex{Pattern: pattern, Options: "i"}},
		}
	}

	findOptions := options.Find().
		SetSkip((f.Page - 1) * f.Limit).
		SetLimit(f.Limit).
		SetSort(bson.D{{Key: "employee_code", Value: 1}}).
		SetProjection(bson.M{"attendance": 0, "leave_requests": 0})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("gagal menemukan karyawan: %w", err)
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, 0, fmt.Errorf("gagal mendecode karyawan: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("gagal menghitung karyawan: %w", err)
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	return employees, total, nil
}

// CountPerDepartment menghitung karyawan aktif per departemen.
func (r *EmployeeRepository) CountPerDepartment(ctx context.Context) ([]models.DepartmentCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "is_active", Value: true}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$department"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("gagal melakukan agregasi distribusi departemen: %w", err)
	}
	defer cursor.Close(ctx)

	counts := []models.DepartmentCount{}
	if err = cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("gagal mendecode distribusi departemen: %w", err)
	}
	return counts, nil
}
