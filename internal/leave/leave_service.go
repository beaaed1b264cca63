package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"hr-portal/internal/events"
	leaveerrors "hr-portal/internal/leave/errors"
	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	TypeSick   = "SICK"
	TypeCasual = "CASUAL"
	TypeAnnual = "ANNUAL"
	// TypeUnpaidLegacy exists for historical rows imported from the old
	// system. New requests may still carry it, but it has no quota window.
	TypeUnpaidLegacy = "UNPAID"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByEmployee(ctx context.Context, employeeCode string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateLeaveStatusRequest) (LeaveResponse, error)

	// GetQuota is informational only; it never blocks a request that
	// exceeds an allowance.
	GetQuota(ctx context.Context, employeeCode string, asOf time.Time) (LeaveQuotaResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("employee_code", req.EmployeeCode),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	startDate, endDate, err := validateDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !isKnownLeaveType(req.LeaveType) {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	l := &Leave{
		ID:           uuid.New(),
		EmployeeCode: req.EmployeeCode,
		LeaveType:    req.LeaveType,
		StartDate:    startDate,
		EndDate:      endDate,
		TotalDays:    totalDays,
		Reason:       req.Reason,
		Status:       StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_code", req.EmployeeCode),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeCode string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByEmployee(ctx, employeeCode)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

// UpdateStatus moves a pending request to APPROVED or REJECTED. The
// transition is one-way: once decided, only the admin comment may change.
func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateLeaveStatusRequest) (LeaveResponse, error) {
	s.logger.Debug("update leave status requested",
		zap.String("leave_id", id),
		zap.String("target_status", req.Status),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	transitioned := false
	switch l.Status {
	case StatusPending:
		l.Status = req.Status
		now := time.Now().UTC()
		l.DecidedAt = &now
		if req.AdminComment != nil {
			l.AdminComment = req.AdminComment
		}
		transitioned = true
	case StatusApproved, StatusRejected:
		// Decided rows stay immutable except for the admin comment.
		if req.Status != l.Status {
			s.logger.Warn("update leave status invalid transition",
				zap.String("leave_id", id),
				zap.String("from_status", l.Status),
				zap.String("to_status", req.Status),
			)
			return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
		}
		if req.AdminComment == nil {
			return LeaveResponse{}, leaveerrors.ErrDecidedLeaveImmutable
		}
		l.AdminComment = req.AdminComment
	default:
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave status persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if transitioned && s.outbox != nil {
		if err := s.enqueueStatusChanged(ctx, tx, *l); err != nil {
			s.logger.Error("enqueue leave status event failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave status commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	s.logger.Info("update leave status success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetQuota(ctx context.Context, employeeCode string, asOf time.Time) (LeaveQuotaResponse, error) {
	leaves, err := s.repo.FindByEmployee(ctx, employeeCode)
	if err != nil {
		return LeaveQuotaResponse{}, err
	}

	q := ComputeQuota(leaves, asOf)
	return LeaveQuotaResponse{
		EmployeeCode: employeeCode,
		AsOf:         asOf.Format("2006-01-02"),
		Sick:         mapQuotaUsage(q.Sick),
		Casual:       mapQuotaUsage(q.Casual),
		Annual:       mapQuotaUsage(q.Annual),
	}, nil
}

func (s *service) enqueueStatusChanged(ctx context.Context, tx *sql.Tx, l Leave) error {
	event := events.LeaveStatusChangedEvent{
		EventType:    "leave.status.changed",
		LeaveID:      l.ID.String(),
		EmployeeCode: l.EmployeeCode,
		LeaveType:    l.LeaveType,
		Status:       l.Status,
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		OccurredAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveStatusChangedTopic,
		Payload:       payload,
	})
}

func validateDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func isKnownLeaveType(t string) bool {
	switch t {
	case TypeSick, TypeCasual, TypeAnnual, TypeUnpaidLegacy:
		return true
	}
	return false
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapQuotaUsage(u QuotaUsage) QuotaUsageResponse {
	return QuotaUsageResponse{
		Allowance: u.Allowance,
		Used:      u.Used,
		Remaining: u.Remaining,
	}
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:           l.ID.String(),
		EmployeeCode: l.EmployeeCode,
		LeaveType:    l.LeaveType,
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		TotalDays:    l.TotalDays,
		Reason:       l.Reason,
		Status:       l.Status,
		AdminComment: l.AdminComment,
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
