package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-uerp/internal/events"
	leaveerrors "go-uerp/internal/leave/errors"
	"go-uerp/internal/messaging/kafka"
	"go-uerp/internal/shared/approval"
	"go-uerp/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, campusID, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetPage(ctx context.Context, campusID string, page, limit int) ([]LeaveResponse, int64, error)
	GetByID(ctx context.Context, campusID, id string) (LeaveResponse, error)
	Approve(ctx context.Context, campusID, actorID, id string, remarks string) (LeaveResponse, error)
	Reject(ctx context.Context, campusID, actorID, id, rejectionReason string) (LeaveResponse, error)
	Cancel(ctx context.Context, campusID, actorID, id string) (LeaveResponse, error)
	Delete(ctx context.Context, campusID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Create(ctx context.Context, campusID, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("campus_id", campusID),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
	)

	campusUUID, employeeUUID, createdByUUID, startDate, endDate, err := validateCreateRequest(campusID, actorID, req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.EmployeeBelongsToCampus(ctx, campusID, req.EmployeeID)
	if err != nil {
		s.logger.Error("create leave employee campus check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !belongs {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotInCampus
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, campusID, req.EmployeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	l := &Leave{
		ID:         uuid.New(),
		CampusID:   campusUUID,
		EmployeeID: employeeUUID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  totalDays,
		Reason:     req.Reason,
		Status:     approval.StatusPending,
		CreatedBy:  createdByUUID,
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
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetPage(ctx context.Context, campusID string, page, limit int) ([]LeaveResponse, int64, error) {
	offset := (page - 1) * limit
	leaves, total, err := s.repo.FindPageByCampus(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

func (s *service) GetByID(ctx context.Context, campusID, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, campusID, actorID, id string, remarks string) (LeaveResponse, error) {
	return s.decide(ctx, campusID, actorID, id, func(current string, actor uuid.UUID) (approval.Decision, error) {
		var r *string
		if remarks != "" {
			r = &remarks
		}
		return approval.Approve(current, actor, r)
	})
}

func (s *service) Reject(ctx context.Context, campusID, actorID, id, rejectionReason string) (LeaveResponse, error) {
	return s.decide(ctx, campusID, actorID, id, func(current string, actor uuid.UUID) (approval.Decision, error) {
		return approval.Reject(current, actor, rejectionReason)
	})
}

// Cancel is requester-initiated and allowed from PENDING only; it carries no
// audit stamps.
func (s *service) Cancel(ctx context.Context, campusID, actorID, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(campusID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCampusID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	l, err := s.repo.FindByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if l.CreatedBy.String() != actorID {
		return LeaveResponse{}, leaveerrors.ErrOnlyRequesterMayCancel
	}

	decision, err := approval.Advance(l.Status, approval.StatusCancelled)
	if err != nil {
		return LeaveResponse{}, err
	}

	expected := l.Status
	l.Status = decision.Status
	if err := s.repo.UpdateStatusFrom(ctx, l, expected); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("cancel leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) decide(
	ctx context.Context,
	campusID, actorID, id string,
	resolve func(current string, actor uuid.UUID) (approval.Decision, error),
) (LeaveResponse, error) {
	if _, err := uuid.Parse(campusID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCampusID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	decision, err := resolve(l.Status, actorUUID)
	if err != nil {
		s.logger.Warn("decide leave transition invalid",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	expected := l.Status
	l.Status = decision.Status
	l.ApprovedBy = decision.ApprovedBy
	l.ApprovedAt = decision.ApprovedAt
	l.RejectionReason = decision.RejectionReason
	l.Remarks = decision.Remarks

	if err := qtx.UpdateStatusFrom(ctx, l, expected); err != nil {
		s.logger.Error("decide leave persist failed",
			zap.String("leave_id", id),
			zap.String("target_status", decision.Status),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if decision.Status == approval.StatusApproved && s.outbox != nil {
		if err := s.enqueueApprovedEvent(ctx, tx, l); err != nil {
			s.logger.Error("decide leave enqueue event failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", decision.Status),
	)
	return mapToResponse(*l), nil
}

func (s *service) enqueueApprovedEvent(ctx context.Context, tx *sql.Tx, l *Leave) error {
	event := events.LeaveApprovedEvent{
		EventType:  "leave.approved",
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		CampusID:   l.CampusID.String(),
		ApprovedBy: l.ApprovedBy.String(),
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Same tx as the status change: the event exists iff the approval commits
	return s.outbox.WithTx(tx).Enqueue(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveApprovedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Delete(ctx context.Context, campusID, id string) error {
	return s.repo.Delete(ctx, campusID, id)
}

func validateCreateRequest(campusID, actorID string, req CreateLeaveRequest) (uuid.UUID, uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	campusUUID, err := uuid.Parse(campusID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidCampusID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidEmployeeID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return campusUUID, employeeUUID, createdByUUID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		CampusID:   l.CampusID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		TotalDays:  l.TotalDays,
		Reason:     l.Reason,
		Status:     l.Status,
		CreatedBy:  l.CreatedBy.String(),
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	resp.Remarks = l.Remarks
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
