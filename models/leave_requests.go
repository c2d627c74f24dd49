package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeaveType string

const (
	LeaveCasual    LeaveType = "casual"
	LeaveSick      LeaveType = "sick"
	LeaveAnnual    LeaveType = "annual"
	LeaveEmergency LeaveType = "emergency"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveCasual, LeaveSick, LeaveAnnual, LeaveEmergency:
		return true
	}
	return false
}

// Jatah cuti default per tahun.
var DefaultLeaveQuota = map[LeaveType]int{
	LeaveCasual:    12,
	LeaveSick:      12,
	LeaveAnnual:    21,
	LeaveEmergency: 3,
}

type LeaveQuota struct {
	Total     int `json:"total" bson:"total"`
	Used      int `json:"used" bson:"used"`
	Remaining int `json:"remaining" bson:"remaining"`
}

type LeaveBalance struct {
	Year      int        `json:"year" bson:"year"`
	Casual    LeaveQuota `json:"casual" bson:"casual"`
	Sick      LeaveQuota `json:"sick" bson:"sick"`
	Annual    LeaveQuota `json:"annual" bson:"annual"`
	Emergency LeaveQuota `json:"emergency" bson:"emergency"`
}

// Quota mengembalikan pointer ke jatah untuk tipe cuti t, atau nil jika tipe tidak dikenal.
func (b *LeaveBalance) Quota(t LeaveType) *LeaveQuota {
	switch t {
	case LeaveCasual:
		return &b.Casual
	case LeaveSick:
		return &b.Sick
	case LeaveAnnual:
		return &b.Annual
	case LeaveEmergency:
		return &b.Emergency
	}
	return nil
}

const (
	LeaveRequestPending  = "pending"
	LeaveRequestApproved = "approved"
	LeaveRequestRejected = "rejected"
)

type LeaveRequest struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Type        LeaveType          `json:"type" bson:"type"`
	StartDate   time.Time          `json:"start_date" bson:"start_date"`
	EndDate     time.Time          `json:"end_date" bson:"end_date"`
	Days        int                `json:"days" bson:"days"`
	Reason      string             `json:"reason" bson:"reason"`
	IsEmergency bool               `json:"is_emergency" bson:"is_emergency"`
	Status      string             `json:"status" bson:"status"`
	Deducted    bool               `json:"deducted" bson:"deducted"`
	DecidedBy   string             `json:"decided_by,omitempty" bson:"decided_by,omitempty"`
	DecidedAt   *time.Time         `json:"decided_at,omitempty" bson:"decided_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

type LeaveApplyPayload struct {
	LeaveType   LeaveType `json:"leave_type" validate:"required,oneof=casual sick annual emergency"`
	StartDate   string    `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string    `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason      string    `json:"reason" validate:"required,min=3,max=500"`
	IsEmergency bool      `json:"is_emergency"`
}

type LeaveOutcome struct {
	RequestID        string `json:"request_id"`
	DaysApplied      int    `json:"days_applied"`
	RequiresApproval bool   `json:"requires_approval"`
	Deducted         bool   `json:"deducted"`
}
