package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	employeeerrors "go-uerp/internal/employee/errors"
	"go-uerp/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusActive      = "ACTIVE"
	StatusInactive    = "INACTIVE"
	StatusTransferred = "TRANSFERRED"

	counterType = "employee_code"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, campusID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetPage(ctx context.Context, campusID string, page, limit int) ([]EmployeeResponse, int64, error)
	GetByID(ctx context.Context, campusID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, campusID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, campusID, id string) error
}

type service struct {
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(repo Repository, counterRepo counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, counter: counterRepo, logger: l}
}

func (s *service) Create(ctx context.Context, campusID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	campusUUID, err := uuid.Parse(campusID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidCampusID
	}

	joinDate, err := time.Parse("2006-01-02", req.JoinDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
	}

	taken, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		s.logger.Error("create employee email check failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if taken {
		return EmployeeResponse{}, employeeerrors.ErrEmailTaken
	}

	seq, err := s.counter.GetNextValue(ctx, campusID, counterType)
	if err != nil {
		s.logger.Error("create employee code sequence failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	e := &Employee{
		ID:           uuid.New(),
		CampusID:     campusUUID,
		EmployeeCode: fmt.Sprintf("EMP-%05d", seq),
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Designation:  req.Designation,
		Department:   req.Department,
		JoinDate:     joinDate,
		Status:       StatusActive,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("employee_id", e.ID.String()),
		zap.String("employee_code", e.EmployeeCode),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetPage(ctx context.Context, campusID string, page, limit int) ([]EmployeeResponse, int64, error) {
	offset := (page - 1) * limit
	employees, total, err := s.repo.FindPageByCampus(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, campusID, id string) (EmployeeResponse, error) {
	e, err := s.repo.FindByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, campusID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	e, err := s.repo.FindByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	e.FullName = req.FullName
	e.Phone = req.Phone
	e.Designation = req.Designation
	e.Department = req.Department
	e.Status = req.Status

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, campusID, id string) error {
	return s.repo.Delete(ctx, campusID, id)
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID.String(),
		CampusID:     e.CampusID.String(),
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Email:        e.Email,
		Phone:        e.Phone,
		Designation:  e.Designation,
		Department:   e.Department,
		JoinDate:     e.JoinDate.Format("2006-01-02"),
		Status:       e.Status,
	}
}
