package admission

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	admissionerrors "go-uerp/internal/admission/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=admission_service.go -destination=mock/admission_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, campusID string, req CreateApplicationRequest) (ApplicationResponse, error)
	GetPage(ctx context.Context, campusID string, programID *string, page, limit int) ([]ApplicationResponse, int64, error)
	GetByID(ctx context.Context, campusID, id string) (ApplicationResponse, error)
	Update(ctx context.Context, campusID, id string, req UpdateApplicationRequest) (ApplicationResponse, error)
	Delete(ctx context.Context, campusID, id string) error
	GenerateMeritList(ctx context.Context, campusID string, req GenerateMeritListRequest) (MeritListResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("admission.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("admission.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, campusID string, req CreateApplicationRequest) (ApplicationResponse, error) {
	campusUUID, err := uuid.Parse(campusID)
	if err != nil {
		return ApplicationResponse{}, admissionerrors.ErrInvalidCampusID
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create application begin tx failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	applied, err := qtx.EmailAppliedToProgram(ctx, campusID, req.ProgramID, email)
	if err != nil {
		s.logger.Error("create application duplicate check failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	if applied {
		return ApplicationResponse{}, admissionerrors.ErrDuplicateApplication
	}

	a := &Application{
		ID:               uuid.New(),
		CampusID:         campusUUID,
		ProgramID:        uuid.MustParse(req.ProgramID),
		ApplicantName:    req.ApplicantName,
		Email:            email,
		Phone:            req.Phone,
		EligibilityScore: req.EligibilityScore,
		Status:           StatusApplied,
		SubmittedAt:      time.Now().UTC(),
	}

	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("create application persist failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create application commit failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	s.logger.Info("create application success",
		zap.String("application_id", a.ID.String()),
		zap.String("program_id", req.ProgramID),
	)

	return mapToResponse(*a), nil
}

func (s *service) GetPage(ctx context.Context, campusID string, programID *string, page, limit int) ([]ApplicationResponse, int64, error) {
	offset := (page - 1) * limit
	applications, total, err := s.repo.FindPageByCampus(ctx, campusID, programID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(applications), total, nil
}

func (s *service) GetByID(ctx context.Context, campusID, id string) (ApplicationResponse, error) {
	a, err := s.repo.FindByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApplicationResponse{}, admissionerrors.ErrApplicationNotFound
		}
		return ApplicationResponse{}, err
	}
	return mapToResponse(*a), nil
}

func (s *service) Update(ctx context.Context, campusID, id string, req UpdateApplicationRequest) (ApplicationResponse, error) {
	a, err := s.repo.FindByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApplicationResponse{}, admissionerrors.ErrApplicationNotFound
		}
		return ApplicationResponse{}, err
	}

	// Edits are closed once a merit list has placed the application
	if a.MeritRank != nil {
		return ApplicationResponse{}, admissionerrors.ErrApplicationDecided
	}

	a.ApplicantName = req.ApplicantName
	a.Email = strings.ToLower(strings.TrimSpace(req.Email))
	a.Phone = req.Phone
	a.EligibilityScore = req.EligibilityScore

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("update application persist failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	return mapToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, campusID, id string) error {
	return s.repo.Delete(ctx, campusID, id)
}

// GenerateMeritList ranks all non-withdrawn applications of a program by
// score descending, earlier submission first on equal scores. Ranks run
// contiguously from 1; the top totalSeats become SELECTED and the remainder
// WAITLISTED. Regeneration re-ranks the same pool.
func (s *service) GenerateMeritList(ctx context.Context, campusID string, req GenerateMeritListRequest) (MeritListResponse, error) {
	if _, err := uuid.Parse(campusID); err != nil {
		return MeritListResponse{}, admissionerrors.ErrInvalidCampusID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("merit list begin tx failed", zap.Error(err))
		return MeritListResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	applications, err := qtx.FindForMeritRanking(ctx, campusID, req.ProgramID)
	if err != nil {
		s.logger.Error("merit list load failed", zap.Error(err))
		return MeritListResponse{}, err
	}
	if len(applications) == 0 {
		return MeritListResponse{}, admissionerrors.ErrNoApplications
	}

	rankApplications(applications)

	for i := range applications {
		a := &applications[i]
		rank := i + 1
		status := StatusWaitlisted
		if rank <= req.TotalSeats {
			status = StatusSelected
		}
		a.MeritRank = &rank
		a.Status = status

		if err := qtx.UpdateMeritPlacement(ctx, a.ID.String(), rank, status); err != nil {
			s.logger.Error("merit list placement persist failed",
				zap.String("application_id", a.ID.String()),
				zap.Error(err),
			)
			return MeritListResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("merit list commit failed", zap.Error(err))
		return MeritListResponse{}, err
	}
	s.logger.Info("merit list generated",
		zap.String("program_id", req.ProgramID),
		zap.Int("total_seats", req.TotalSeats),
		zap.Int("candidates", len(applications)),
	)

	return MeritListResponse{
		ProgramID:    req.ProgramID,
		TotalSeats:   req.TotalSeats,
		Applications: mapToListResponse(applications),
	}, nil
}

// rankApplications re-sorts in service code as well so ranking does not
// silently depend on the query's ORDER BY.
func rankApplications(applications []Application) {
	sort.SliceStable(applications, func(i, j int) bool {
		if applications[i].EligibilityScore != applications[j].EligibilityScore {
			return applications[i].EligibilityScore > applications[j].EligibilityScore
		}
		return applications[i].SubmittedAt.Before(applications[j].SubmittedAt)
	})
}

func mapToResponse(a Application) ApplicationResponse {
	return ApplicationResponse{
		ID:               a.ID.String(),
		CampusID:         a.CampusID.String(),
		ProgramID:        a.ProgramID.String(),
		ApplicantName:    a.ApplicantName,
		Email:            a.Email,
		Phone:            a.Phone,
		EligibilityScore: a.EligibilityScore,
		Status:           a.Status,
		MeritRank:        a.MeritRank,
		SubmittedAt:      a.SubmittedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(applications []Application) []ApplicationResponse {
	resp := make([]ApplicationResponse, len(applications))
	for i, a := range applications {
		resp[i] = mapToResponse(a)
	}
	return resp
}
