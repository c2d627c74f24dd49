// Package memstore menyediakan penyimpanan karyawan di memori dengan
// perilaku yang sama seperti repository Mongo. Dipakai oleh test.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Manajemen-Restoran/models"
	"Sistem-Manajemen-Restoran/repository"
)

var _ repository.DepartmentRepository = (*Store)(nil)

type Store struct {
	mu          sync.Mutex
	seq         int64
	employees   map[primitive.ObjectID][]byte
	departments map[string]models.Department
}

func New(departments ...string) *Store {
	s := &Store{
		employees:   map[primitive.ObjectID][]byte{},
		departments: map[string]models.Department{},
	}
	for _, name := range departments {
		s.departments[name] = models.Department{ID: primitive.NewObjectID(), Name: name}
	}
	return s
}

// Dokumen disimpan dalam bentuk BSON supaya setiap pembacaan mendapat salinan
// baru, sama seperti decode dari Mongo.
func encode(employee *models.Employee) ([]byte, error) {
	return bson.Marshal(employee)
}

func decode(raw []byte) (*models.Employee, error) {
	var employee models.Employee
	if err := bson.Unmarshal(raw, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (s *Store) NextEmployeeCode(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("EMP%04d", s.seq), nil
}

func (s *Store) CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, raw := range s.employees {
		existing, err := decode(raw)
		if err != nil {
			return nil, err
		}
		if existing.EmployeeCode == employee.EmployeeCode {
			return nil, repository.ErrEmployeeCodeExists
		}
	}

	now := time.Now()
	if employee.ID.IsZero() {
		employee.ID = primitive.NewObjectID()
	}
	employee.Version = 1
	employee.CreatedAt = now
	employee.UpdatedAt = now

	raw, err := encode(employee)
	if err != nil {
		return nil, err
	}
	s.employees[employee.ID] = raw
	return decode(raw)
}

func (s *Store) FindEmployeeByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	return decode(raw)
}

// UpdateEmployee menahan kunci selama mutate sehingga perubahan per karyawan
// selalu berurutan.
func (s *Store) UpdateEmployee(ctx context.Context, id primitive.ObjectID, mutate func(*models.Employee) error) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.employees[id]
	if !ok {
		return nil, repository.ErrEmployeeNotFound
	}
	employee, err := decode(raw)
	if err != nil {
		return nil, err
	}
	if err := mutate(employee); err != nil {
		return nil, err
	}
	employee.Version++
	employee.UpdatedAt = time.Now()

	raw, err = encode(employee)
	if err != nil {
		return nil, err
	}
	s.employees[id] = raw
	return decode(raw)
}

func (s *Store) all() ([]models.Employee, error) {
	out := make([]models.Employee, 0, len(s.employees))
	for _, raw := range s.employees {
		employee, err := decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *employee)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out, nil
}

func (s *Store) FindAllActiveEmployees(ctx context.Context) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.all()
	if err != nil {
		return nil, err
	}
	active := []models.Employee{}
	for _, employee := range all {
		if employee.IsActive {
			active = append(active, employee)
		}
	}
	return active, nil
}

func (s *Store) GetAllEmployees(ctx context.Context, f repository.EmployeeFilter) ([]models.Employee, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.all()
	if err != nil {
		return nil, 0, err
	}
	search := strings.ToLower(f.Search)
	matched := []models.Employee{}
	for _, employee := range all {
		if f.Department != "" && employee.Department != f.Department {
			continue
		}
		if f.Active != nil && employee.IsActive != *f.Active {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(employee.Name), search) &&
			!strings.Contains(strings.ToLower(employee.EmployeeCode), search) {
			continue
		}
		employee.Attendance = nil
		employee.LeaveRequests = nil
		matched = append(matched, employee)
	}

	total := int64(len(matched))
	from := (f.Page - 1) * f.Limit
	if from < 0 || from >= total {
		return []models.Employee{}, total, nil
	}
	to := from + f.Limit
	if to > total {
		to = total
	}
	return matched[from:to], total, nil
}

func (s *Store) FindDepartmentByName(ctx context.Context, name string) (*models.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dept, ok := s.departments[name]
	if !ok {
		return nil, nil
	}
	return &dept, nil
}

func (s *Store) activeMembers(department string) (int64, error) {
	all, err := s.all()
	if err != nil {
		return 0, err
	}
	var n int64
	for _, employee := range all {
		if employee.IsActive && employee.Department == department {
			n++
		}
	}
	return n, nil
}

func (s *Store) CreateDepartment(ctx context.Context, department *models.Department) (*models.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.departments[department.Name]; exists {
		return nil, repository.ErrDepartmentExists
	}
	now := time.Now()
	department.ID = primitive.NewObjectID()
	department.CreatedAt = now
	department.UpdatedAt = now
	s.departments[department.Name] = *department
	return department, nil
}

func (s *Store) GetAllDepartments(ctx context.Context) ([]models.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Department, 0, len(s.departments))
	for _, dept := range s.departments {
		out = append(out, dept)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) departmentByID(id primitive.ObjectID) (models.Department, bool) {
	for _, dept := range s.departments {
		if dept.ID == id {
			return dept, true
		}
	}
	return models.Department{}, false
}

func (s *Store) GetDepartmentByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dept, ok := s.departmentByID(id)
	if !ok {
		return nil, nil
	}
	return &dept, nil
}

func (s *Store) UpdateDepartment(ctx context.Context, id primitive.ObjectID, payload models.DepartmentPayload) (*models.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dept, ok := s.departmentByID(id)
	if !ok {
		return nil, repository.ErrDepartmentNotFound
	}
	if payload.Name != dept.Name {
		if _, taken := s.departments[payload.Name]; taken {
			return nil, repository.ErrDepartmentExists
		}
		members, err := s.activeMembers(dept.Name)
		if err != nil {
			return nil, err
		}
		if members > 0 {
			return nil, fmt.Errorf("%w (%d karyawan)", repository.ErrDepartmentInUse, members)
		}
	}

	delete(s.departments, dept.Name)
	dept.Name = payload.Name
	dept.Description = payload.Description
	dept.UpdatedAt = time.Now()
	s.departments[dept.Name] = dept
	return &dept, nil
}

func (s *Store) DeleteDepartment(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dept, ok := s.departmentByID(id)
	if !ok {
		return repository.ErrDepartmentNotFound
	}
	members, err := s.activeMembers(dept.Name)
	if err != nil {
		return err
	}
	if members > 0 {
		return fmt.Errorf("%w (%d karyawan)", repository.ErrDepartmentInUse, members)
	}
	delete(s.departments, dept.Name)
	return nil
}

func (s *Store) CountPerDepartment(ctx context.Context) ([]models.DepartmentCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.all()
	if err != nil {
		return nil, err
	}
	counts := map[string]int64{}
	for _, employee := range all {
		if employee.IsActive {
			counts[employee.Department]++
		}
	}
	out := make([]models.DepartmentCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, models.DepartmentCount{Department: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out, nil
}
