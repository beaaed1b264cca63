package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	attendanceerrors "hr-portal/internal/attendance/errors"
	"hr-portal/internal/employee"
	"hr-portal/internal/events"
	"hr-portal/internal/leave"
	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	// Upsert replaces the override for one employee/period and returns the
	// freshly recomputed summary, so callers never observe a raw override
	// without its derived view.
	Upsert(ctx context.Context, req UpsertAttendanceRequest) (AttendanceSummaryResponse, error)
	GetSummary(ctx context.Context, employeeCode string, month, year int) (AttendanceSummaryResponse, error)
	GetAllSummaries(ctx context.Context, month, year int) ([]BatchSummaryItemResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	leaveRepo    leave.Repository
	outbox       kafka.OutboxRepository
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	leaveRepo leave.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, employeeRepo, leaveRepo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	leaveRepo leave.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		leaveRepo:    leaveRepo,
		outbox:       outbox,
		logger:       l,
	}
}

func (s *service) Upsert(ctx context.Context, req UpsertAttendanceRequest) (AttendanceSummaryResponse, error) {
	s.logger.Debug("upsert attendance requested",
		zap.String("employee_code", req.EmployeeCode),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)

	p, err := NewPeriod(req.Month, req.Year)
	if err != nil {
		return AttendanceSummaryResponse{}, err
	}
	if req.AbsentDays < 0 {
		return AttendanceSummaryResponse{}, attendanceerrors.ErrNegativeAbsentDays
	}
	if req.DailyDeduction != nil && *req.DailyDeduction < 0 {
		return AttendanceSummaryResponse{}, attendanceerrors.ErrNegativeDailyDeduction
	}

	emp, err := s.employeeRepo.FindByCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceSummaryResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		return AttendanceSummaryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("upsert attendance begin tx failed", zap.Error(err))
		return AttendanceSummaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Whole-record replace: the previous value for this key is discarded,
	// no history kept.
	override, err := qtx.FindByEmployeeAndPeriod(ctx, req.EmployeeCode, p.Month, p.Year)
	switch {
	case err == nil:
		override.AbsentDays = req.AbsentDays
		override.DailyDeduction = req.DailyDeduction
		if err := qtx.Update(ctx, override); err != nil {
			s.logger.Error("upsert attendance update failed", zap.Error(err))
			return AttendanceSummaryResponse{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		override = &AttendanceOverride{
			ID:             uuid.New(),
			EmployeeCode:   req.EmployeeCode,
			Month:          p.Month,
			Year:           p.Year,
			AbsentDays:     req.AbsentDays,
			DailyDeduction: req.DailyDeduction,
		}
		if err := qtx.Create(ctx, override); err != nil {
			s.logger.Error("upsert attendance create failed", zap.Error(err))
			return AttendanceSummaryResponse{}, err
		}
	default:
		return AttendanceSummaryResponse{}, err
	}

	leaves, err := s.leaveRepo.FindByEmployee(ctx, req.EmployeeCode)
	if err != nil {
		return AttendanceSummaryResponse{}, err
	}

	summary, err := Reconcile(*emp, p, override, leaves)
	if err != nil {
		return AttendanceSummaryResponse{}, err
	}

	if s.outbox != nil {
		if err := s.enqueueRecomputed(ctx, tx, summary); err != nil {
			s.logger.Error("enqueue summary recomputed event failed", zap.Error(err))
			return AttendanceSummaryResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("upsert attendance commit failed", zap.Error(err))
		return AttendanceSummaryResponse{}, err
	}
	s.logger.Info("upsert attendance success",
		zap.String("employee_code", req.EmployeeCode),
		zap.Int("month", p.Month),
		zap.Int("year", p.Year),
		zap.Int("absent_days", req.AbsentDays),
	)

	return mapSummaryToResponse(summary, emp.FullName), nil
}

func (s *service) GetSummary(ctx context.Context, employeeCode string, month, year int) (AttendanceSummaryResponse, error) {
	p, err := NewPeriod(month, year)
	if err != nil {
		return AttendanceSummaryResponse{}, err
	}

	emp, err := s.employeeRepo.FindByCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceSummaryResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		return AttendanceSummaryResponse{}, err
	}

	// A missing override is not an error: it degrades to zero absences
	// and the fallback rate.
	override, err := s.repo.FindByEmployeeAndPeriod(ctx, employeeCode, p.Month, p.Year)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceSummaryResponse{}, err
		}
		override = nil
	}

	leaves, err := s.leaveRepo.FindByEmployee(ctx, employeeCode)
	if err != nil {
		return AttendanceSummaryResponse{}, err
	}

	summary, err := Reconcile(*emp, p, override, leaves)
	if err != nil {
		return AttendanceSummaryResponse{}, err
	}

	return mapSummaryToResponse(summary, emp.FullName), nil
}

func (s *service) GetAllSummaries(ctx context.Context, month, year int) ([]BatchSummaryItemResponse, error) {
	p, err := NewPeriod(month, year)
	if err != nil {
		return nil, err
	}

	roster, err := s.employeeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	allLeaves, err := s.leaveRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	leavesByEmployee := make(map[string][]leave.Leave, len(roster))
	for _, l := range allLeaves {
		leavesByEmployee[l.EmployeeCode] = append(leavesByEmployee[l.EmployeeCode], l)
	}

	overrides, err := s.repo.FindAllByPeriod(ctx, p.Month, p.Year)
	if err != nil {
		return nil, err
	}
	overridesByEmployee := make(map[string]*AttendanceOverride, len(overrides))
	for i := range overrides {
		overridesByEmployee[overrides[i].EmployeeCode] = &overrides[i]
	}

	results, _, err := RecomputeAll(ctx, p, roster, leavesByEmployee, overridesByEmployee)
	if err != nil {
		return nil, err
	}

	namesByCode := make(map[string]string, len(roster))
	for _, e := range roster {
		namesByCode[e.EmployeeCode] = e.FullName
	}

	resp := make([]BatchSummaryItemResponse, len(results))
	for i, r := range results {
		item := BatchSummaryItemResponse{EmployeeCode: r.EmployeeCode}
		if r.Err != nil {
			item.Error = r.Err.Error()
		} else if r.Summary != nil {
			mapped := mapSummaryToResponse(*r.Summary, namesByCode[r.EmployeeCode])
			item.Summary = &mapped
		}
		resp[i] = item
	}
	return resp, nil
}

func (s *service) enqueueRecomputed(ctx context.Context, tx *sql.Tx, summary Summary) error {
	event := events.AttendanceSummaryRecomputedEvent{
		EventType:             "attendance.summary.recomputed",
		EmployeeCode:          summary.EmployeeCode,
		Month:                 summary.Month,
		Year:                  summary.Year,
		AbsentDays:            summary.AbsentDays,
		ApprovedLeaveDays:     summary.ApprovedLeaveDays,
		UnapprovedAbsenceDays: summary.UnapprovedAbsenceDays,
		EffectiveDailyRate:    summary.EffectiveDailyDeduction,
		TotalDeduction:        summary.TotalDeduction,
		FinalSalary:           summary.FinalSalary,
		Warnings:              summary.Warnings,
		OccurredAt:            time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "attendance_override",
		AggregateID:   summary.EmployeeCode,
		EventType:     event.EventType,
		Topic:         events.AttendanceSummaryRecomputedTopic,
		Payload:       payload,
	})
}
