package finance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	financeerrors "go-uerp/internal/finance/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=finance_service.go -destination=mock/finance_service_mock.go -package=mock
type Service interface {
	CreateFee(ctx context.Context, campusID, actorID string, req CreateFeeRequest) (FeeResponse, error)
	GetFeePage(ctx context.Context, campusID string, studentID *string, page, limit int) ([]FeeResponse, int64, error)
	GetFeeByID(ctx context.Context, campusID, id string) (FeeResponse, error)
	DeleteFee(ctx context.Context, campusID, id string) error
	RecordPayment(ctx context.Context, campusID, actorID, feeID string, req RecordPaymentRequest) (PaymentResponse, error)
	GetPaymentsByFee(ctx context.Context, campusID, feeID string) ([]PaymentResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("finance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("finance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreateFee(ctx context.Context, campusID, actorID string, req CreateFeeRequest) (FeeResponse, error) {
	campusUUID, err := uuid.Parse(campusID)
	if err != nil {
		return FeeResponse{}, financeerrors.ErrInvalidCampusID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return FeeResponse{}, financeerrors.ErrInvalidActorID
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return FeeResponse{}, financeerrors.ErrInvalidDueDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create fee begin tx failed", zap.Error(err))
		return FeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.StudentBelongsToCampus(ctx, campusID, req.StudentID)
	if err != nil {
		s.logger.Error("create fee student check failed", zap.Error(err))
		return FeeResponse{}, err
	}
	if !belongs {
		return FeeResponse{}, financeerrors.ErrStudentNotInCampus
	}

	f := &Fee{
		ID:        uuid.New(),
		CampusID:  campusUUID,
		StudentID: uuid.MustParse(req.StudentID),
		FeeType:   req.FeeType,
		Amount:    req.Amount,
		DueDate:   dueDate,
		Status:    FeeStatusUnpaid,
		CreatedBy: createdByUUID,
	}

	if err := qtx.CreateFee(ctx, f); err != nil {
		s.logger.Error("create fee persist failed", zap.Error(err))
		return FeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create fee commit failed", zap.Error(err))
		return FeeResponse{}, err
	}
	s.logger.Info("create fee success",
		zap.String("fee_id", f.ID.String()),
		zap.String("student_id", req.StudentID),
		zap.Int64("amount", req.Amount),
	)

	return mapFeeToResponse(*f), nil
}

func (s *service) GetFeePage(ctx context.Context, campusID string, studentID *string, page, limit int) ([]FeeResponse, int64, error) {
	offset := (page - 1) * limit
	fees, total, err := s.repo.FindFeePageByCampus(ctx, campusID, studentID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]FeeResponse, len(fees))
	for i, f := range fees {
		resp[i] = mapFeeToResponse(f)
	}
	return resp, total, nil
}

func (s *service) GetFeeByID(ctx context.Context, campusID, id string) (FeeResponse, error) {
	f, err := s.repo.FindFeeByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FeeResponse{}, financeerrors.ErrFeeNotFound
		}
		return FeeResponse{}, err
	}
	return mapFeeToResponse(*f), nil
}

func (s *service) DeleteFee(ctx context.Context, campusID, id string) error {
	return s.repo.DeleteFee(ctx, campusID, id)
}

// RecordPayment inserts the payment row and updates the fee balance in one
// transaction; a failure in either leaves both untouched.
func (s *service) RecordPayment(ctx context.Context, campusID, actorID, feeID string, req RecordPaymentRequest) (PaymentResponse, error) {
	campusUUID, err := uuid.Parse(campusID)
	if err != nil {
		return PaymentResponse{}, financeerrors.ErrInvalidCampusID
	}
	receivedByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PaymentResponse{}, financeerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("record payment begin tx failed", zap.Error(err))
		return PaymentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	f, err := qtx.FindFeeByIDAndCampus(ctx, campusID, feeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentResponse{}, financeerrors.ErrFeeNotFound
		}
		return PaymentResponse{}, err
	}

	if f.Status == FeeStatusPaid {
		return PaymentResponse{}, financeerrors.ErrFeeAlreadyPaid
	}
	outstanding := f.Amount - f.PaidAmount
	if req.Amount > outstanding {
		return PaymentResponse{}, financeerrors.ErrOverpayment
	}

	p := &Payment{
		ID:         uuid.New(),
		CampusID:   campusUUID,
		FeeID:      f.ID,
		Amount:     req.Amount,
		Method:     req.Method,
		Reference:  req.Reference,
		ReceivedBy: receivedByUUID,
		PaidAt:     time.Now().UTC(),
	}

	if err := qtx.CreatePayment(ctx, p); err != nil {
		s.logger.Error("record payment persist failed", zap.Error(err))
		return PaymentResponse{}, err
	}

	f.PaidAmount += req.Amount
	if f.PaidAmount >= f.Amount {
		f.Status = FeeStatusPaid
	} else {
		f.Status = FeeStatusPartial
	}

	if err := qtx.UpdateFeePayment(ctx, f); err != nil {
		s.logger.Error("record payment fee update failed", zap.Error(err))
		return PaymentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("record payment commit failed", zap.Error(err))
		return PaymentResponse{}, err
	}
	s.logger.Info("record payment success",
		zap.String("payment_id", p.ID.String()),
		zap.String("fee_id", feeID),
		zap.Int64("amount", req.Amount),
		zap.String("fee_status", f.Status),
	)

	resp := mapPaymentToResponse(*p)
	fee := mapFeeToResponse(*f)
	resp.Fee = &fee
	return resp, nil
}

func (s *service) GetPaymentsByFee(ctx context.Context, campusID, feeID string) ([]PaymentResponse, error) {
	payments, err := s.repo.FindPaymentsByFee(ctx, campusID, feeID)
	if err != nil {
		return nil, err
	}

	resp := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = mapPaymentToResponse(p)
	}
	return resp, nil
}

func mapFeeToResponse(f Fee) FeeResponse {
	return FeeResponse{
		ID:         f.ID.String(),
		CampusID:   f.CampusID.String(),
		StudentID:  f.StudentID.String(),
		FeeType:    f.FeeType,
		Amount:     f.Amount,
		PaidAmount: f.PaidAmount,
		DueDate:    f.DueDate.Format("2006-01-02"),
		Status:     f.Status,
		CreatedBy:  f.CreatedBy.String(),
	}
}

func mapPaymentToResponse(p Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID.String(),
		CampusID:   p.CampusID.String(),
		FeeID:      p.FeeID.String(),
		Amount:     p.Amount,
		Method:     p.Method,
		Reference:  p.Reference,
		ReceivedBy: p.ReceivedBy.String(),
		PaidAt:     p.PaidAt.Format(time.RFC3339),
	}
}
