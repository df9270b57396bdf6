package transfer

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-uerp/internal/shared/approval"
	transfererrors "go-uerp/internal/transfer/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=transfer_service.go -destination=mock/transfer_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, campusID, actorID string, req CreateTransferRequest) (TransferResponse, error)
	GetPage(ctx context.Context, campusID string, page, limit int) ([]TransferResponse, int64, error)
	GetByID(ctx context.Context, campusID, id string) (TransferResponse, error)
	Approve(ctx context.Context, campusID, actorID, id string, remarks string) (TransferResponse, error)
	Reject(ctx context.Context, campusID, actorID, id, rejectionReason string) (TransferResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("transfer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("transfer.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, campusID, actorID string, req CreateTransferRequest) (TransferResponse, error) {
	fromCampusUUID, err := uuid.Parse(campusID)
	if err != nil {
		return TransferResponse{}, transfererrors.ErrInvalidCampusID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TransferResponse{}, transfererrors.ErrInvalidActorID
	}
	if req.ToCampusID == campusID {
		return TransferResponse{}, transfererrors.ErrSameCampus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create transfer begin tx failed", zap.Error(err))
		return TransferResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.SubjectExistsInCampus(ctx, req.SubjectType, req.SubjectID, campusID)
	if err != nil {
		s.logger.Error("create transfer subject check failed", zap.Error(err))
		return TransferResponse{}, err
	}
	if !exists {
		return TransferResponse{}, transfererrors.ErrSubjectNotFound
	}

	destExists, err := qtx.CampusExists(ctx, req.ToCampusID)
	if err != nil {
		s.logger.Error("create transfer destination check failed", zap.Error(err))
		return TransferResponse{}, err
	}
	if !destExists {
		return TransferResponse{}, transfererrors.ErrDestinationCampusNotFound
	}

	pending, err := qtx.HasPendingTransfer(ctx, req.SubjectType, req.SubjectID)
	if err != nil {
		s.logger.Error("create transfer pending check failed", zap.Error(err))
		return TransferResponse{}, err
	}
	if pending {
		return TransferResponse{}, transfererrors.ErrPendingTransferExists
	}

	tr := &Transfer{
		ID:           uuid.New(),
		SubjectType:  req.SubjectType,
		SubjectID:    uuid.MustParse(req.SubjectID),
		FromCampusID: fromCampusUUID,
		ToCampusID:   uuid.MustParse(req.ToCampusID),
		Reason:       req.Reason,
		Status:       approval.StatusPending,
		CreatedBy:    createdByUUID,
	}

	if err := qtx.Create(ctx, tr); err != nil {
		s.logger.Error("create transfer persist failed", zap.Error(err))
		return TransferResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create transfer commit failed", zap.Error(err))
		return TransferResponse{}, err
	}
	s.logger.Info("create transfer success",
		zap.String("transfer_id", tr.ID.String()),
		zap.String("subject_type", req.SubjectType),
		zap.String("subject_id", req.SubjectID),
	)

	return mapToResponse(*tr), nil
}

func (s *service) GetPage(ctx context.Context, campusID string, page, limit int) ([]TransferResponse, int64, error) {
	offset := (page - 1) * limit
	transfers, total, err := s.repo.FindPageByCampus(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(transfers), total, nil
}

func (s *service) GetByID(ctx context.Context, campusID, id string) (TransferResponse, error) {
	tr, err := s.repo.FindByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TransferResponse{}, transfererrors.ErrTransferNotFound
		}
		return TransferResponse{}, err
	}
	return mapToResponse(*tr), nil
}

// Approve decides the transfer and moves the subject to the destination
// campus in the same transaction.
func (s *service) Approve(ctx context.Context, campusID, actorID, id string, remarks string) (TransferResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TransferResponse{}, transfererrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve transfer begin tx failed", zap.Error(err))
		return TransferResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	tr, err := qtx.FindByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TransferResponse{}, transfererrors.ErrTransferNotFound
		}
		return TransferResponse{}, err
	}

	var r *string
	if remarks != "" {
		r = &remarks
	}
	decision, err := approval.Approve(tr.Status, actorUUID, r)
	if err != nil {
		return TransferResponse{}, err
	}

	expected := tr.Status
	tr.Status = decision.Status
	tr.ApprovedBy = decision.ApprovedBy
	tr.ApprovedAt = decision.ApprovedAt
	tr.Remarks = decision.Remarks

	if err := qtx.UpdateStatusFrom(ctx, tr, expected); err != nil {
		return TransferResponse{}, err
	}

	if err := qtx.MoveSubject(ctx, tr.SubjectType, tr.SubjectID.String(), tr.ToCampusID.String()); err != nil {
		s.logger.Error("approve transfer move subject failed",
			zap.String("transfer_id", id),
			zap.Error(err),
		)
		return TransferResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve transfer commit failed", zap.Error(err))
		return TransferResponse{}, err
	}
	s.logger.Info("approve transfer success",
		zap.String("transfer_id", id),
		zap.String("subject_id", tr.SubjectID.String()),
		zap.String("to_campus_id", tr.ToCampusID.String()),
	)

	return mapToResponse(*tr), nil
}

func (s *service) Reject(ctx context.Context, campusID, actorID, id, rejectionReason string) (TransferResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TransferResponse{}, transfererrors.ErrInvalidActorID
	}

	tr, err := s.repo.FindByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TransferResponse{}, transfererrors.ErrTransferNotFound
		}
		return TransferResponse{}, err
	}

	decision, err := approval.Reject(tr.Status, actorUUID, rejectionReason)
	if err != nil {
		return TransferResponse{}, err
	}

	expected := tr.Status
	tr.Status = decision.Status
	tr.ApprovedBy = decision.ApprovedBy
	tr.ApprovedAt = decision.ApprovedAt
	tr.RejectionReason = decision.RejectionReason

	if err := s.repo.UpdateStatusFrom(ctx, tr, expected); err != nil {
		return TransferResponse{}, err
	}

	s.logger.Info("reject transfer success", zap.String("transfer_id", id))
	return mapToResponse(*tr), nil
}

func mapToResponse(tr Transfer) TransferResponse {
	resp := TransferResponse{
		ID:           tr.ID.String(),
		SubjectType:  tr.SubjectType,
		SubjectID:    tr.SubjectID.String(),
		FromCampusID: tr.FromCampusID.String(),
		ToCampusID:   tr.ToCampusID.String(),
		Reason:       tr.Reason,
		Status:       tr.Status,
		CreatedBy:    tr.CreatedBy.String(),
	}
	if tr.ApprovedBy != nil {
		v := tr.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if tr.ApprovedAt != nil {
		v := tr.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = tr.RejectionReason
	resp.Remarks = tr.Remarks
	return resp
}

func mapToListResponse(transfers []Transfer) []TransferResponse {
	resp := make([]TransferResponse, len(transfers))
	for i, tr := range transfers {
		resp[i] = mapToResponse(tr)
	}
	return resp
}
