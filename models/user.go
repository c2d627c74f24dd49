package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

type User struct {
	ID           primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string              `json:"name" bson:"name,omitempty"`
	Email        string              `json:"email" bson:"email,omitempty"`
	Password     string              `json:"password,omitempty" bson:"password,omitempty"`
	Role         string              `json:"role" bson:"role,omitempty"`
	EmployeeID   *primitive.ObjectID `json:"employee_id,omitempty" bson:"employee_id,omitempty"`
	IsFirstLogin bool                `json:"is_first_login" bson:"is_first_login"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt    time.Time           `json:"updated_at" bson:"updated_at,omitempty"`
}

type UserRegisterPayload struct {
	Name       string `json:"name" validate:"required,min=3,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=50,hasuppercase"`
	Role       string `json:"role" validate:"required,oneof=admin manager staff"`
	EmployeeID string `json:"employee_id" validate:"omitempty,len=24,hexadecimal"`
}

type UserLoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordPayload struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=50,hasuppercase"`
}

type Claims struct {
	UserID       primitive.ObjectID  `json:"user_id"`
	Email        string              `json:"email"`
	Role         string              `json:"role"`
	EmployeeID   *primitive.ObjectID `json:"employee_id,omitempty"`
	IsFirstLogin bool                `json:"is_first_login"`
}

// CanActOn melaporkan apakah pemilik klaim boleh mengubah data karyawan employeeID.
func (c *Claims) CanActOn(employeeID primitive.ObjectID) bool {
	if c.Role == RoleAdmin || c.Role == RoleManager {
		return true
	}
	return c.EmployeeID != nil && *c.EmployeeID == employeeID
}
