package certification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	certificationerrors "go-uerp/internal/certification/errors"
	"go-uerp/internal/events"
	"go-uerp/internal/messaging/kafka"
	"go-uerp/internal/shared/approval"
	"go-uerp/internal/shared/contextutil"
	"go-uerp/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	counterTypeCertificate = "certificate_number"

	// Bounded retries when a generated number or verification code loses a
	// unique-constraint race.
	maxCodeAttempts = 5

	verifyCacheTTL = 5 * time.Minute
)

//go:generate mockgen -source=certification_service.go -destination=mock/certification_service_mock.go -package=mock
type Service interface {
	CreateRequest(ctx context.Context, campusID, actorID string, req CreateRequestRequest) (RequestResponse, error)
	GetRequestPage(ctx context.Context, campusID string, page, limit int) ([]RequestResponse, int64, error)
	GetRequestByID(ctx context.Context, campusID, id string) (RequestResponse, error)
	MarkFeePaid(ctx context.Context, campusID, id string) (RequestResponse, error)
	Approve(ctx context.Context, campusID, actorID, id string, remarks string) (RequestResponse, error)
	Reject(ctx context.Context, campusID, actorID, id, rejectionReason string) (RequestResponse, error)
	Verify(ctx context.Context, req VerifyRequest) (VerifyResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	group   singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("certification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("certification.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		outbox:  outbox,
		rdb:     rdb,
		logger:  l,
	}
}

func (s *service) CreateRequest(ctx context.Context, campusID, actorID string, req CreateRequestRequest) (RequestResponse, error) {
	campusUUID, err := uuid.Parse(campusID)
	if err != nil {
		return RequestResponse{}, certificationerrors.ErrInvalidCampusID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, certificationerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create cert request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.StudentBelongsToCampus(ctx, campusID, req.StudentID)
	if err != nil {
		s.logger.Error("create cert request student check failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if !belongs {
		return RequestResponse{}, certificationerrors.ErrStudentNotInCampus
	}

	cr := &CertificateRequest{
		ID:              uuid.New(),
		CampusID:        campusUUID,
		StudentID:       uuid.MustParse(req.StudentID),
		CertificateType: req.CertificateType,
		Purpose:         req.Purpose,
		FeeAmount:       req.FeeAmount,
		FeePaid:         req.FeeAmount == 0,
		Status:          approval.StatusPending,
		CreatedBy:       createdByUUID,
	}

	if err := qtx.CreateRequest(ctx, cr); err != nil {
		s.logger.Error("create cert request persist failed", zap.Error(err))
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create cert request commit failed", zap.Error(err))
		return RequestResponse{}, err
	}
	s.logger.Info("create cert request success",
		zap.String("request_id", cr.ID.String()),
		zap.String("certificate_type", req.CertificateType),
	)

	return mapRequestToResponse(*cr, nil), nil
}

func (s *service) GetRequestPage(ctx context.Context, campusID string, page, limit int) ([]RequestResponse, int64, error) {
	offset := (page - 1) * limit
	requests, total, err := s.repo.FindRequestPageByCampus(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]RequestResponse, len(requests))
	for i, cr := range requests {
		resp[i] = mapRequestToResponse(cr, nil)
	}
	return resp, total, nil
}

func (s *service) GetRequestByID(ctx context.Context, campusID, id string) (RequestResponse, error) {
	cr, err := s.repo.FindRequestByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, certificationerrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}

	var cert *Certificate
	if cr.Status == approval.StatusApproved {
		if c, err := s.repo.FindCertificateByRequest(ctx, id); err == nil {
			cert = c
		}
	}
	return mapRequestToResponse(*cr, cert), nil
}

func (s *service) MarkFeePaid(ctx context.Context, campusID, id string) (RequestResponse, error) {
	cr, err := s.repo.FindRequestByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, certificationerrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}

	if !cr.FeePaid {
		if err := s.repo.MarkFeePaid(ctx, campusID, id); err != nil {
			s.logger.Error("mark fee paid persist failed", zap.Error(err))
			return RequestResponse{}, err
		}
		cr.FeePaid = true
	}

	return mapRequestToResponse(*cr, nil), nil
}

// Approve decides the request and issues the certificate in the same
// transaction. The fee guard runs before any status transition: an unpaid
// fee blocks approval no matter what state the request is in.
func (s *service) Approve(ctx context.Context, campusID, actorID, id string, remarks string) (RequestResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, certificationerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve cert request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cr, err := qtx.FindRequestByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, certificationerrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}

	if cr.FeeAmount > 0 && !cr.FeePaid {
		return RequestResponse{}, certificationerrors.ErrFeeUnpaid
	}

	var r *string
	if remarks != "" {
		r = &remarks
	}
	decision, err := approval.Approve(cr.Status, actorUUID, r)
	if err != nil {
		s.logger.Warn("approve cert request transition invalid",
			zap.String("request_id", id),
			zap.String("from_status", cr.Status),
		)
		return RequestResponse{}, err
	}

	expected := cr.Status
	cr.Status = decision.Status
	cr.ApprovedBy = decision.ApprovedBy
	cr.ApprovedAt = decision.ApprovedAt
	cr.Remarks = decision.Remarks

	if err := qtx.UpdateRequestStatusFrom(ctx, cr, expected); err != nil {
		return RequestResponse{}, err
	}

	cert, err := s.issueCertificate(ctx, qtx, cr)
	if err != nil {
		s.logger.Error("issue certificate failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}

	if s.outbox != nil {
		if err := s.enqueueIssuedEvent(ctx, tx, cert); err != nil {
			s.logger.Error("approve cert request enqueue event failed", zap.Error(err))
			return RequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve cert request commit failed", zap.Error(err))
		return RequestResponse{}, err
	}
	s.logger.Info("approve cert request success",
		zap.String("request_id", id),
		zap.String("certificate_number", cert.CertificateNumber),
	)

	return mapRequestToResponse(*cr, cert), nil
}

// issueCertificate generates codes and inserts the certificate, retrying a
// bounded number of times when a unique constraint rejects a generated value.
func (s *service) issueCertificate(ctx context.Context, qtx Repository, cr *CertificateRequest) (*Certificate, error) {
	issuedAt := time.Now().UTC()

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		seq, err := s.counter.GetNextValue(ctx, cr.CampusID.String(), counterTypeCertificate)
		if err != nil {
			return nil, err
		}

		code, err := GenerateVerificationCode()
		if err != nil {
			return nil, err
		}

		cert := &Certificate{
			ID:                uuid.New(),
			RequestID:         cr.ID,
			CampusID:          cr.CampusID,
			StudentID:         cr.StudentID,
			CertificateType:   cr.CertificateType,
			CertificateNumber: FormatCertificateNumber(issuedAt, seq),
			VerificationCode:  code,
			IssuedAt:          issuedAt,
		}

		err = qtx.CreateCertificate(ctx, cert)
		if err == nil {
			return cert, nil
		}
		if !isUniqueViolation(err, "uq_certificates_number") && !isUniqueViolation(err, "uq_certificates_verification") {
			return nil, err
		}
		s.logger.Warn("certificate code collision, regenerating",
			zap.String("request_id", cr.ID.String()),
			zap.Int("attempt", attempt+1),
		)
	}

	return nil, certificationerrors.ErrCodeGenerationExhausted
}

func (s *service) enqueueIssuedEvent(ctx context.Context, tx *sql.Tx, cert *Certificate) error {
	event := events.CertificateIssuedEvent{
		EventType:         "certificate.issued",
		CertificateID:     cert.ID.String(),
		CertificateNumber: cert.CertificateNumber,
		StudentID:         cert.StudentID.String(),
		CampusID:          cert.CampusID.String(),
		OccurredAt:        time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Enqueue(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "certificate",
		AggregateID:   cert.ID.String(),
		EventType:     event.EventType,
		Topic:         events.CertificateIssuedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Reject(ctx context.Context, campusID, actorID, id, rejectionReason string) (RequestResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, certificationerrors.ErrInvalidActorID
	}

	cr, err := s.repo.FindRequestByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, certificationerrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}

	decision, err := approval.Reject(cr.Status, actorUUID, rejectionReason)
	if err != nil {
		return RequestResponse{}, err
	}

	expected := cr.Status
	cr.Status = decision.Status
	cr.ApprovedBy = decision.ApprovedBy
	cr.ApprovedAt = decision.ApprovedAt
	cr.RejectionReason = decision.RejectionReason

	if err := s.repo.UpdateRequestStatusFrom(ctx, cr, expected); err != nil {
		return RequestResponse{}, err
	}

	s.logger.Info("reject cert request success", zap.String("request_id", id))
	return mapRequestToResponse(*cr, nil), nil
}

// Verify is the public lookup. Identical concurrent lookups collapse through
// singleflight; hits are cached in redis for a short window.
func (s *service) Verify(ctx context.Context, req VerifyRequest) (VerifyResponse, error) {
	var key string
	switch {
	case req.VerificationCode != "":
		key = "cert:verify:code:" + req.VerificationCode
	case req.CertificateNumber != "":
		key = "cert:verify:number:" + req.CertificateNumber
	default:
		return VerifyResponse{}, certificationerrors.ErrVerifyInputRequired
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var resp VerifyResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.verifyUncached(ctx, key, req)
	})
	if err != nil {
		return VerifyResponse{}, err
	}
	return v.(VerifyResponse), nil
}

func (s *service) verifyUncached(ctx context.Context, cacheKey string, req VerifyRequest) (VerifyResponse, error) {
	var (
		cert *Certificate
		err  error
	)
	if req.VerificationCode != "" {
		cert, err = s.repo.FindCertificateByCode(ctx, req.VerificationCode)
	} else {
		cert, err = s.repo.FindCertificateByNumber(ctx, req.CertificateNumber)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VerifyResponse{}, certificationerrors.ErrCertificateNotFound
		}
		return VerifyResponse{}, err
	}

	if !cert.IsVerified {
		if err := s.repo.MarkVerified(ctx, cert.ID.String()); err != nil {
			s.logger.Error("mark certificate verified failed",
				zap.String("certificate_id", cert.ID.String()),
				zap.Error(err),
			)
			return VerifyResponse{}, err
		}
		cert.IsVerified = true
	}

	resp := VerifyResponse{
		Valid:             true,
		CertificateNumber: cert.CertificateNumber,
		CertificateType:   cert.CertificateType,
		StudentID:         cert.StudentID.String(),
		IssuedAt:          cert.IssuedAt.Format(time.RFC3339),
		IsVerified:        cert.IsVerified,
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, payload, verifyCacheTTL).Err(); err != nil {
				s.logger.Warn("verify cache set failed", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func mapRequestToResponse(cr CertificateRequest, cert *Certificate) RequestResponse {
	resp := RequestResponse{
		ID:              cr.ID.String(),
		CampusID:        cr.CampusID.String(),
		StudentID:       cr.StudentID.String(),
		CertificateType: cr.CertificateType,
		Purpose:         cr.Purpose,
		FeeAmount:       cr.FeeAmount,
		FeePaid:         cr.FeePaid,
		Status:          cr.Status,
		CreatedBy:       cr.CreatedBy.String(),
	}
	if cr.ApprovedBy != nil {
		v := cr.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if cr.ApprovedAt != nil {
		v := cr.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = cr.RejectionReason
	resp.Remarks = cr.Remarks

	if cert != nil {
		resp.Certificate = &CertificateResponse{
			ID:                cert.ID.String(),
			RequestID:         cert.RequestID.String(),
			CampusID:          cert.CampusID.String(),
			StudentID:         cert.StudentID.String(),
			CertificateType:   cert.CertificateType,
			CertificateNumber: cert.CertificateNumber,
			VerificationCode:  cert.VerificationCode,
			IsVerified:        cert.IsVerified,
			IssuedAt:          cert.IssuedAt.Format(time.RFC3339),
		}
	}
	return resp
}
