package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Manajemen-Restoran/models"
	util "Sistem-Manajemen-Restoran/pkg/utils"
)

type LeaveApplication struct {
	Type        models.LeaveType
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
	IsEmergency bool
	// RequestedBy dicatat sebagai approvedBy untuk cuti darurat.
	RequestedBy string
}

func leaveStatus(t models.LeaveType) models.AttendanceStatus {
	return models.AttendanceStatus(t)
}

func forEachDay(start, end time.Time, fn func(day time.Time)) {
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// ApplyLeave menandai setiap hari pada rentang sebagai cuti. Saldo dipotong
// langsung hanya untuk cuti darurat atau tipe yang tidak butuh persetujuan;
// sisanya menunggu ApproveLeave. Bila saldo kurang, tidak ada yang diubah.
func (s *AttendanceService) ApplyLeave(ctx context.Context, employeeID primitive.ObjectID, app LeaveApplication) (*models.LeaveOutcome, error) {
	if !app.Type.Valid() {
		return nil, wrap("apply-leave", employeeID, time.Time{}, invalid("leave_type", "tipe cuti %q tidak dikenal", app.Type))
	}
	start := util.StartOfDay(app.StartDate, s.loc)
	end := util.StartOfDay(app.EndDate, s.loc)
	if end.Before(start) {
		return nil, wrap("apply-leave", employeeID, start, invalid("end_date", "tanggal selesai sebelum tanggal mulai"))
	}

	days := calendarDays(start, end)
	year := s.Now().Year()
	requiresApproval := RequiresApproval(app.Type, days)
	deduct := app.IsEmergency || !requiresApproval

	outcome := &models.LeaveOutcome{
		DaysApplied:      days,
		RequiresApproval: requiresApproval,
		Deducted:         deduct,
	}

	_, err := s.store.UpdateEmployee(ctx, employeeID, func(emp *models.Employee) error {
		if !emp.IsActive {
			return ErrEmployeeInactive
		}
		balances, idx := EnsureYearBalance(emp.LeaveBalances, year)
		quota := balances[idx].Quota(app.Type)
		if quota.Remaining < days {
			return &Error{Field: "leave_type", Err: ErrInsufficientBalance}
		}

		forEachDay(start, end, func(day time.Time) {
			rec := todayRecord(emp, day)
			rec.IsPresent = false
			rec.Status = leaveStatus(app.Type)
			rec.LeaveType = app.Type
			rec.LeaveReason = app.Reason
			if app.IsEmergency {
				rec.ApprovedBy = app.RequestedBy
			}
		})

		if deduct {
			quota.Used += days
			quota.Remaining -= days
		}
		emp.LeaveBalances = balances

		request := models.LeaveRequest{
			ID:          primitive.NewObjectID(),
			Type:        app.Type,
			StartDate:   start,
			EndDate:     end,
			Days:        days,
			Reason:      app.Reason,
			IsEmergency: app.IsEmergency,
			Status:      models.LeaveRequestPending,
			Deducted:    deduct,
			CreatedAt:   s.Now(),
		}
		if deduct {
			request.Status = models.LeaveRequestApproved
		}
		emp.LeaveRequests = append(emp.LeaveRequests, request)
		outcome.RequestID = request.ID.Hex()
		return nil
	})
	if err != nil {
		return nil, wrap("apply-leave", employeeID, start, err)
	}
	return outcome, nil
}

func findLeaveRequest(emp *models.Employee, requestID primitive.ObjectID) *models.LeaveRequest {
	for i := range emp.LeaveRequests {
		if emp.LeaveRequests[i].ID == requestID {
			return &emp.LeaveRequests[i]
		}
	}
	return nil
}

// ApproveLeave memotong saldo untuk pengajuan yang masih pending.
func (s *AttendanceService) ApproveLeave(ctx context.Context, employeeID, requestID primitive.ObjectID, approver string) (*models.LeaveRequest, error) {
	var result models.LeaveRequest
	_, err := s.store.UpdateEmployee(ctx, employeeID, func(emp *models.Employee) error {
		req := findLeaveRequest(emp, requestID)
		if req == nil {
			return ErrLeaveRequestNotFound
		}
		if req.Status != models.LeaveRequestPending {
			return ErrLeaveAlreadyDecided
		}

		balances, idx := EnsureYearBalance(emp.LeaveBalances, req.CreatedAt.In(s.loc).Year())
		quota := balances[idx].Quota(req.Type)
		if quota.Remaining < req.Days {
			return &Error{Field: "leave_type", Err: ErrInsufficientBalance}
		}
		quota.Used += req.Days
		quota.Remaining -= req.Days
		emp.LeaveBalances = balances

		forEachDay(req.StartDate.In(s.loc), req.EndDate.In(s.loc), func(day time.Time) {
			if rec := emp.FindAttendance(day); rec != nil && rec.LeaveType == req.Type {
				rec.ApprovedBy = approver
			}
		})

		now := s.Now()
		req.Status = models.LeaveRequestApproved
		req.Deducted = true
		req.DecidedBy = approver
		req.DecidedAt = &now
		result = *req
		return nil
	})
	if err != nil {
		return nil, wrap("approve-leave", employeeID, time.Time{}, err)
	}
	return &result, nil
}

// RejectLeave menolak pengajuan pending dan mengembalikan status hari-hari yang ditandai cuti.
func (s *AttendanceService) RejectLeave(ctx context.Context, employeeID, requestID primitive.ObjectID, approver string) (*models.LeaveRequest, error) {
	var result models.LeaveRequest
	_, err := s.store.UpdateEmployee(ctx, employeeID, func(emp *models.Employee) error {
		req := findLeaveRequest(emp, requestID)
		if req == nil {
			return ErrLeaveRequestNotFound
		}
		if req.Status != models.LeaveRequestPending {
			return ErrLeaveAlreadyDecided
		}

		forEachDay(req.StartDate.In(s.loc), req.EndDate.In(s.loc), func(day time.Time) {
			rec := emp.FindAttendance(day)
			if rec == nil || rec.LeaveType != req.Type {
				return
			}
			rec.LeaveType = ""
			rec.LeaveReason = ""
			rec.ApprovedBy = ""
			if rec.LoginTime == nil {
				rec.Status = models.StatusAbsent
				return
			}
			rec.IsPresent = true
			rec.Status = models.StatusPresent
			if rec.LateMinutes > LateGraceMinutes {
				rec.Status = models.StatusLate
			}
			if rec.LogoutTime != nil {
				rec.Status = checkoutStatus(rec.Status, rec.HoursWorked, rec.OvertimeHours, rec.EarlyLeaveMinutes)
			}
		})

		now := s.Now()
		req.Status = models.LeaveRequestRejected
		req.DecidedBy = approver
		req.DecidedAt = &now
		result = *req
		return nil
	})
	if err != nil {
		return nil, wrap("reject-leave", employeeID, time.Time{}, err)
	}
	return &result, nil
}
