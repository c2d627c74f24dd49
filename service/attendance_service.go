package service

import (
	"context"
	"math"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"Sistem-Manajemen-Restoran/models"
	util "Sistem-Manajemen-Restoran/pkg/utils"
)

const bulkConcurrency = 8

// AttendanceService mencatat kehadiran harian, istirahat dan cuti karyawan.
// Semua perubahan berjalan lewat EmployeeStore.UpdateEmployee sehingga
// terserialisasi per karyawan.
type AttendanceService struct {
	store EmployeeStore
	clock Clock
	loc   *time.Location
}

func NewAttendanceService(store EmployeeStore, clock Clock, loc *time.Location) *AttendanceService {
	if clock == nil {
		clock = SystemClock
	}
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceService{store: store, clock: clock, loc: loc}
}

func (s *AttendanceService) Location() *time.Location {
	return s.loc
}

func (s *AttendanceService) Now() time.Time {
	return s.clock.Now().In(s.loc)
}

// todayRecord mengembalikan record hari day, membuatnya bila belum ada.
func todayRecord(emp *models.Employee, day time.Time) *models.AttendanceRecord {
	if rec := emp.FindAttendance(day); rec != nil {
		return rec
	}
	emp.Attendance = append(emp.Attendance, models.AttendanceRecord{
		Date:   day,
		Status: models.StatusAbsent,
		Breaks: []models.BreakInterval{},
	})
	return &emp.Attendance[len(emp.Attendance)-1]
}

func (s *AttendanceService) CheckIn(ctx context.Context, employeeID primitive.ObjectID, ts time.Time, geo *models.GeoLocation, workLocation string) (*models.AttendanceRecord, error) {
	ts = ts.In(s.loc)
	day := util.StartOfDay(ts, s.loc)

	var result models.AttendanceRecord
	_, err := s.store.UpdateEmployee(ctx, employeeID, func(emp *models.Employee) error {
		if !emp.IsActive {
			return ErrEmployeeInactive
		}
		start, _, err := shiftWindow(emp.Shift)
		if err != nil {
			return err
		}
		if rec := emp.FindAttendance(day); rec != nil {
			if rec.OnLeave() {
				return ErrOnLeave
			}
			if rec.LoginTime != nil {
				return ErrAlreadyCheckedIn
			}
		}

		rec := todayRecord(emp, day)
		login := ts
		rec.LoginTime = &login
		rec.IsPresent = true
		rec.LateMinutes = wholeMinutes(atMinute(day, start), ts)
		rec.Status = models.StatusPresent
		if rec.LateMinutes > LateGraceMinutes {
			rec.Status = models.StatusLate
		}
		rec.CheckInLocation = geo
		rec.WorkLocation = workLocation
		emp.LastLogin = &login

		result = *rec
		return nil
	})
	if err != nil {
		return nil, wrap("check-in", employeeID, day, err)
	}
	return &result, nil
}

func (s *AttendanceService) CheckOut(ctx context.Context, employeeID primitive.ObjectID, ts time.Time, geo *models.GeoLocation) (*models.AttendanceRecord, error) {
	ts = ts.In(s.loc)
	day := util.StartOfDay(ts, s.loc)

	var result models.AttendanceRecord
	_, err := s.store.UpdateEmployee(ctx, employeeID, func(emp *models.Employee) error {
		rec := emp.FindAttendance(day)
		if rec == nil || rec.LoginTime == nil {
			return ErrNotCheckedIn
		}
		if rec.OnLeave() {
			return ErrOnLeave
		}
		if rec.LogoutTime != nil {
			return ErrAlreadyCheckedOut
		}
		start, end, err := shiftWindow(emp.Shift)
		if err != nil {
			return err
		}

		minutesWorked := ts.Sub(*rec.LoginTime).Minutes() - float64(rec.TotalBreakTime)
		hoursWorked := minutesWorked / 60
		standardHours := float64(end-start) / 60
		overtimeHours := math.Max(0, hoursWorked-standardHours)
		earlyLeave := wholeMinutes(ts, atMinute(day, end))

		status := checkoutStatus(rec.Status, hoursWorked, overtimeHours, earlyLeave)
		if status == models.StatusEarlyLeave {
			rec.EarlyLeaveMinutes = earlyLeave
		}

		logout := ts
		rec.LogoutTime = &logout
		rec.HoursWorked = round2(hoursWorked)
		rec.OvertimeHours = round2(overtimeHours)
		rec.Status = status
		rec.CheckOutLocation = geo

		result = *rec
		return nil
	})
	if err != nil {
		return nil, wrap("check-out", employeeID, day, err)
	}
	return &result, nil
}

func (s *AttendanceService) StartBreak(ctx context.Context, employeeID primitive.ObjectID, breakType models.BreakType) (*models.BreakInterval, error) {
	now := s.Now()
	day := util.StartOfDay(now, s.loc)
	if !breakType.Valid() {
		return nil, wrap("start-break", employeeID, day, invalid("type", "tipe istirahat %q tidak dikenal", breakType))
	}

	var result models.BreakInterval
	_, err := s.store.UpdateEmployee(ctx, employeeID, func(emp *models.Employee) error {
		rec := emp.FindAttendance(day)
		if rec == nil || rec.LoginTime == nil {
			return ErrNotCheckedIn
		}
		if rec.OnLeave() {
			return ErrOnLeave
		}
		if rec.LogoutTime != nil {
			return ErrAlreadyCheckedOut
		}
		if rec.OpenBreak() != nil {
			return ErrBreakInProgress
		}

		result = models.BreakInterval{StartTime: now, Type: breakType}
		rec.Breaks = append(rec.Breaks, result)
		return nil
	})
	if err != nil {
		return nil, wrap("start-break", employeeID, day, err)
	}
	return &result, nil
}

func (s *AttendanceService) EndBreak(ctx context.Context, employeeID primitive.ObjectID) (*models.BreakInterval, error) {
	now := s.Now()
	day := util.StartOfDay(now, s.loc)

	var result models.BreakInterval
	_, err := s.store.UpdateEmployee(ctx, employeeID, func(emp *models.Employee) error {
		rec := emp.FindAttendance(day)
		if rec == nil {
			return ErrNoOpenBreak
		}
		open := rec.OpenBreak()
		if open == nil {
			return ErrNoOpenBreak
		}

		end := now
		open.EndTime = &end
		open.Duration = int(math.Round(end.Sub(open.StartTime).Minutes()))

		total := 0
		for _, b := range rec.Breaks {
			if !b.Open() {
				total += b.Duration
			}
		}
		rec.TotalBreakTime = total

		result = *open
		return nil
	})
	if err != nil {
		return nil, wrap("end-break", employeeID, day, err)
	}
	return &result, nil
}

// BulkCheckIn memproses check-in tiap karyawan secara independen; kegagalan
// satu karyawan tidak menghentikan yang lain.
func (s *AttendanceService) BulkCheckIn(ctx context.Context, employeeIDs []primitive.ObjectID, ts time.Time, workLocation string) []models.BulkResult {
	results := make([]models.BulkResult, len(employeeIDs))

	var g errgroup.Group
	g.SetLimit(bulkConcurrency)
	for i, id := range employeeIDs {
		g.Go(func() error {
			res := models.BulkResult{EmployeeID: id.Hex()}
			rec, err := s.CheckIn(ctx, id, ts, nil, workLocation)
			if err != nil {
				res.Error = err.Error()
			} else {
				res.Success = true
				res.Record = rec
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *AttendanceService) loadEmployee(ctx context.Context, employeeID primitive.ObjectID) (*models.Employee, error) {
	emp, err := s.store.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}
	return emp, nil
}

// Aggregate menghitung rekap bulanan dari karyawan yang sudah dimuat.
func (s *AttendanceService) Aggregate(emp *models.Employee, month, year int) (*models.MonthlyAttendanceAggregate, error) {
	return BuildMonthlyAggregate(emp, month, year, s.loc)
}

func (s *AttendanceService) GetMonthlyAggregate(ctx context.Context, employeeID primitive.ObjectID, month, year int) (*models.MonthlyAttendanceAggregate, error) {
	emp, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, wrap("monthly-aggregate", employeeID, time.Time{}, err)
	}
	agg, err := s.Aggregate(emp, month, year)
	if err != nil {
		return nil, wrap("monthly-aggregate", employeeID, time.Time{}, err)
	}
	return agg, nil
}

// GetAttendanceHistory mengembalikan record antara from dan to (inklusif), terurut menurut tanggal.
// Nilai zero pada from atau to berarti tanpa batas.
func (s *AttendanceService) GetAttendanceHistory(ctx context.Context, employeeID primitive.ObjectID, from, to time.Time) ([]models.AttendanceRecord, error) {
	emp, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, wrap("attendance-history", employeeID, time.Time{}, err)
	}

	records := []models.AttendanceRecord{}
	for _, rec := range emp.Attendance {
		if !from.IsZero() && rec.Date.Before(from) {
			continue
		}
		if !to.IsZero() && rec.Date.After(to) {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}
