package campus

import (
	"context"
	"errors"
	"strings"

	campuserrors "go-uerp/internal/campus/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=campus_service.go -destination=mock/campus_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCampusRequest) (CampusResponse, error)
	GetPage(ctx context.Context, page, limit int) ([]CampusResponse, int64, error)
	GetByID(ctx context.Context, id string) (CampusResponse, error)
	Update(ctx context.Context, id string, req UpdateCampusRequest) (CampusResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("campus.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("campus.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCampusRequest) (CampusResponse, error) {
	code := strings.ToUpper(req.Code)

	taken, err := s.repo.CodeExists(ctx, code)
	if err != nil {
		s.logger.Error("create campus code check failed", zap.Error(err))
		return CampusResponse{}, err
	}
	if taken {
		return CampusResponse{}, campuserrors.ErrCampusCodeTaken
	}

	c := &Campus{
		ID:       uuid.New(),
		Name:     req.Name,
		Code:     code,
		City:     req.City,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("create campus persist failed", zap.Error(err))
		return CampusResponse{}, err
	}

	s.logger.Info("create campus success", zap.String("campus_id", c.ID.String()), zap.String("code", c.Code))
	return mapToResponse(*c), nil
}

func (s *service) GetPage(ctx context.Context, page, limit int) ([]CampusResponse, int64, error) {
	offset := (page - 1) * limit
	campuses, total, err := s.repo.FindPage(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]CampusResponse, len(campuses))
	for i, c := range campuses {
		resp[i] = mapToResponse(c)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CampusResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CampusResponse{}, campuserrors.ErrInvalidCampusID
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CampusResponse{}, campuserrors.ErrCampusNotFound
		}
		return CampusResponse{}, err
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCampusRequest) (CampusResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CampusResponse{}, campuserrors.ErrInvalidCampusID
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CampusResponse{}, campuserrors.ErrCampusNotFound
		}
		return CampusResponse{}, err
	}

	c.Name = req.Name
	c.City = req.City
	c.Address = req.Address
	c.Phone = req.Phone
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("update campus persist failed", zap.String("campus_id", id), zap.Error(err))
		return CampusResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return campuserrors.ErrInvalidCampusID
	}
	return s.repo.Delete(ctx, id)
}

func mapToResponse(c Campus) CampusResponse {
	return CampusResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		Code:     c.Code,
		City:     c.City,
		Address:  c.Address,
		Phone:    c.Phone,
		IsActive: c.IsActive,
	}
}
