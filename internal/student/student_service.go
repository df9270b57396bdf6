package student

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-uerp/internal/shared/counter"
	studenterrors "go-uerp/internal/student/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusActive      = "ACTIVE"
	StatusTransferred = "TRANSFERRED"
	StatusGraduated   = "GRADUATED"
	StatusWithdrawn   = "WITHDRAWN"

	counterType = "student_roll"
)

//go:generate mockgen -source=student_service.go -destination=mock/student_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, campusID string, req CreateStudentRequest) (StudentResponse, error)
	GetPage(ctx context.Context, campusID string, page, limit int) ([]StudentResponse, int64, error)
	GetByID(ctx context.Context, campusID, id string) (StudentResponse, error)
	Update(ctx context.Context, campusID, id string, req UpdateStudentRequest) (StudentResponse, error)
	Delete(ctx context.Context, campusID, id string) error
}

type service struct {
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(repo Repository, counterRepo counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("student.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("student.service")
	}
	return &service{repo: repo, counter: counterRepo, logger: l}
}

func (s *service) Create(ctx context.Context, campusID string, req CreateStudentRequest) (StudentResponse, error) {
	campusUUID, err := uuid.Parse(campusID)
	if err != nil {
		return StudentResponse{}, studenterrors.ErrInvalidCampusID
	}

	enrollmentDate, err := time.Parse("2006-01-02", req.EnrollmentDate)
	if err != nil {
		return StudentResponse{}, studenterrors.ErrInvalidDateFormat
	}

	seq, err := s.counter.GetNextValue(ctx, campusID, counterType)
	if err != nil {
		s.logger.Error("create student roll sequence failed", zap.Error(err))
		return StudentResponse{}, err
	}

	st := &Student{
		ID:             uuid.New(),
		CampusID:       campusUUID,
		RollNumber:     fmt.Sprintf("%d-%05d", enrollmentDate.Year(), seq),
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Program:        req.Program,
		EnrollmentDate: enrollmentDate,
		Status:         StatusActive,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		mapped := mapRepositoryError(err)
		s.logger.Error("create student persist failed", zap.Error(err))
		return StudentResponse{}, mapped
	}

	s.logger.Info("create student success",
		zap.String("student_id", st.ID.String()),
		zap.String("roll_number", st.RollNumber),
	)
	return mapToResponse(*st), nil
}

func (s *service) GetPage(ctx context.Context, campusID string, page, limit int) ([]StudentResponse, int64, error) {
	offset := (page - 1) * limit
	students, total, err := s.repo.FindPageByCampus(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]StudentResponse, len(students))
	for i, st := range students {
		resp[i] = mapToResponse(st)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, campusID, id string) (StudentResponse, error) {
	st, err := s.repo.FindByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StudentResponse{}, studenterrors.ErrStudentNotFound
		}
		return StudentResponse{}, err
	}
	return mapToResponse(*st), nil
}

func (s *service) Update(ctx context.Context, campusID, id string, req UpdateStudentRequest) (StudentResponse, error) {
	st, err := s.repo.FindByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StudentResponse{}, studenterrors.ErrStudentNotFound
		}
		return StudentResponse{}, err
	}

	st.FullName = req.FullName
	st.Email = req.Email
	st.Phone = req.Phone
	st.Program = req.Program
	st.Status = req.Status

	if err := s.repo.Update(ctx, st); err != nil {
		s.logger.Error("update student persist failed", zap.String("student_id", id), zap.Error(err))
		return StudentResponse{}, err
	}

	return mapToResponse(*st), nil
}

func (s *service) Delete(ctx context.Context, campusID, id string) error {
	return s.repo.Delete(ctx, campusID, id)
}

func mapToResponse(st Student) StudentResponse {
	return StudentResponse{
		ID:             st.ID.String(),
		CampusID:       st.CampusID.String(),
		RollNumber:     st.RollNumber,
		FullName:       st.FullName,
		Email:          st.Email,
		Phone:          st.Phone,
		Program:        st.Program,
		EnrollmentDate: st.EnrollmentDate.Format("2006-01-02"),
		Status:         st.Status,
	}
}
