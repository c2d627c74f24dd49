package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Manajemen-Restoran/repository"
)

type ErrorKind string

const (
	KindNotFound               ErrorKind = "not_found"
	KindInvalidState           ErrorKind = "invalid_state"
	KindInsufficientBalance    ErrorKind = "insufficient_balance"
	KindUnsupportedPayrollType ErrorKind = "unsupported_payroll_type"
	KindValidation             ErrorKind = "validation"
	KindInternal               ErrorKind = "internal"
)

var (
	ErrEmployeeNotFound       = repository.ErrEmployeeNotFound
	ErrEmployeeInactive       = errors.New("karyawan tidak aktif")
	ErrAlreadyCheckedIn       = errors.New("sudah check-in hari ini")
	ErrNotCheckedIn           = errors.New("belum check-in hari ini")
	ErrAlreadyCheckedOut      = errors.New("sudah check-out hari ini")
	ErrBreakInProgress        = errors.New("masih ada istirahat yang berjalan")
	ErrNoOpenBreak            = errors.New("tidak ada istirahat yang berjalan")
	ErrOnLeave                = errors.New("hari ini tercatat sebagai cuti")
	ErrLeaveRequestNotFound   = errors.New("pengajuan cuti tidak ditemukan")
	ErrLeaveAlreadyDecided    = errors.New("pengajuan cuti sudah diproses")
	ErrInsufficientBalance    = errors.New("sisa cuti tidak mencukupi")
	ErrUnsupportedPayrollType = errors.New("tipe penggajian tidak didukung")
	ErrValidation             = errors.New("input tidak valid")
)

// Error membawa konteks operasi (karyawan, tanggal, field) di sekitar error domain.
type Error struct {
	Op         string
	EmployeeID string
	Date       string
	Field      string
	Err        error
}

func (e *Error) Error() string {
	var details []string
	if e.EmployeeID != "" {
		details = append(details, "employee="+e.EmployeeID)
	}
	if e.Date != "" {
		details = append(details, "date="+e.Date)
	}
	if e.Field != "" {
		details = append(details, "field="+e.Field)
	}
	msg := e.Op + ": " + e.Err.Error()
	if len(details) > 0 {
		msg += " (" + strings.Join(details, ", ") + ")"
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf mengklasifikasikan err ke dalam salah satu ErrorKind.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmployeeNotFound), errors.Is(err, ErrLeaveRequestNotFound):
		return KindNotFound
	case errors.Is(err, ErrEmployeeInactive),
		errors.Is(err, ErrAlreadyCheckedIn),
		errors.Is(err, ErrNotCheckedIn),
		errors.Is(err, ErrAlreadyCheckedOut),
		errors.Is(err, ErrBreakInProgress),
		errors.Is(err, ErrNoOpenBreak),
		errors.Is(err, ErrOnLeave),
		errors.Is(err, ErrLeaveAlreadyDecided),
		errors.Is(err, repository.ErrConcurrentUpdate):
		return KindInvalidState
	case errors.Is(err, ErrInsufficientBalance):
		return KindInsufficientBalance
	case errors.Is(err, ErrUnsupportedPayrollType):
		return KindUnsupportedPayrollType
	case errors.Is(err, ErrValidation):
		return KindValidation
	}
	return KindInternal
}

func invalid(field, format string, args ...interface{}) error {
	return &Error{Field: field, Err: fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))}
}

// wrap melengkapi err dengan konteks operasi. Error yang sudah bertipe *Error
// hanya diisi bagian yang masih kosong.
func wrap(op string, id primitive.ObjectID, day time.Time, err error) error {
	if err == nil {
		return nil
	}
	date := ""
	if !day.IsZero() {
		date = day.Format("2006-01-02")
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Op == "" {
			e.Op = op
		}
		if e.EmployeeID == "" && !id.IsZero() {
			e.EmployeeID = id.Hex()
		}
		if e.Date == "" {
			e.Date = date
		}
		return e
	}
	out := &Error{Op: op, Date: date, Err: err}
	if !id.IsZero() {
		out.EmployeeID = id.Hex()
	}
	return out
}
