package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-uerp/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 8 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Register(ctx context.Context, req RegisterUserRequest) (UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a wrong password so the response does not reveal
			// which accounts exist
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("email", req.Email))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return LoginResponse{}, autherrors.ErrUserInactive
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":   u.ID.String(),
		"campus_id": u.CampusID.String(),
		"role":      u.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(tokenTTL).Unix(),
	}
	if u.EmployeeID != nil {
		claims["employee_id"] = u.EmployeeID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		s.logger.Error("login token sign failed", zap.Error(err))
		return LoginResponse{}, err
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.String()))
	return LoginResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(tokenTTL.Seconds()),
		User:        mapToUserResponse(*u),
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterUserRequest) (UserResponse, error) {
	taken, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return UserResponse{}, err
	}
	if taken {
		return UserResponse{}, autherrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	u := &User{
		ID:           uuid.New(),
		CampusID:     uuid.MustParse(req.CampusID),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         req.Role,
		IsActive:     true,
	}
	if req.EmployeeID != nil {
		employeeID := uuid.MustParse(*req.EmployeeID)
		u.EmployeeID = &employeeID
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("register persist failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("register success", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return mapToUserResponse(*u), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, autherrors.ErrInvalidToken
		}
		return UserResponse{}, err
	}
	return mapToUserResponse(*u), nil
}

func mapToUserResponse(u User) UserResponse {
	resp := UserResponse{
		ID:       u.ID.String(),
		CampusID: u.CampusID.String(),
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
	if u.EmployeeID != nil {
		v := u.EmployeeID.String()
		resp.EmployeeID = &v
	}
	return resp
}
