package payroll

import (
	"context"
	"database/sql"
	"errors"
	"time"

	payrollerrors "go-uerp/internal/payroll/errors"
	"go-uerp/internal/shared/approval"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending   = approval.StatusPending
	StatusProcessed = "PROCESSED"
	StatusApproved  = approval.StatusApproved
	StatusPaid      = "PAID"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, campusID, actorID string, req CreateSalaryRequest) (SalaryResponse, error)
	GetPage(ctx context.Context, campusID string, page, limit int) ([]SalaryResponse, int64, error)
	GetByID(ctx context.Context, campusID, id string) (SalaryResponse, error)
	Process(ctx context.Context, campusID, id string) (SalaryResponse, error)
	Approve(ctx context.Context, campusID, actorID, id string, remarks string) (SalaryResponse, error)
	MarkPaid(ctx context.Context, campusID, id string) (SalaryResponse, error)
	Delete(ctx context.Context, campusID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// GrossSalary is the sum of basic pay and all allowances.
func GrossSalary(basic, houseRent, medical, transport, other int64) int64 {
	return basic + houseRent + medical + transport + other
}

// NetSalary subtracts all deductions from gross.
func NetSalary(gross, providentFund, tax, otherDeductions int64) int64 {
	return gross - (providentFund + tax + otherDeductions)
}

func (s *service) Create(ctx context.Context, campusID, actorID string, req CreateSalaryRequest) (SalaryResponse, error) {
	campusUUID, err := uuid.Parse(campusID)
	if err != nil {
		return SalaryResponse{}, payrollerrors.ErrInvalidCampusID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SalaryResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SalaryResponse{}, payrollerrors.ErrInvalidActorID
	}
	periodStart, err := parsePeriod(req.PeriodStart)
	if err != nil {
		return SalaryResponse{}, err
	}
	periodEnd, err := parsePeriod(req.PeriodEnd)
	if err != nil {
		return SalaryResponse{}, err
	}
	if periodStart.After(periodEnd) {
		return SalaryResponse{}, payrollerrors.ErrInvalidPeriodRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create salary begin tx failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.EmployeeBelongsToCampus(ctx, campusID, req.EmployeeID)
	if err != nil {
		s.logger.Error("create salary employee check failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	if !belongs {
		return SalaryResponse{}, payrollerrors.ErrEmployeeNotInCampus
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, campusID, req.EmployeeID, periodStart, periodEnd)
	if err != nil {
		s.logger.Error("create salary overlap check failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	if overlap {
		return SalaryResponse{}, payrollerrors.ErrPeriodOverlap
	}

	gross := GrossSalary(req.BasicSalary, req.HouseRent, req.MedicalAllow, req.TransportAllow, req.OtherAllowances)
	net := NetSalary(gross, req.ProvidentFund, req.Tax, req.OtherDeductions)

	sal := &Salary{
		ID:              uuid.New(),
		CampusID:        campusUUID,
		EmployeeID:      employeeUUID,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		BasicSalary:     req.BasicSalary,
		HouseRent:       req.HouseRent,
		MedicalAllow:    req.MedicalAllow,
		TransportAllow:  req.TransportAllow,
		OtherAllowances: req.OtherAllowances,
		ProvidentFund:   req.ProvidentFund,
		Tax:             req.Tax,
		OtherDeductions: req.OtherDeductions,
		GrossSalary:     gross,
		NetSalary:       net,
		Status:          StatusPending,
		CreatedBy:       createdByUUID,
	}

	if err := qtx.Create(ctx, sal); err != nil {
		s.logger.Error("create salary persist failed", zap.Error(err))
		return SalaryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create salary commit failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	s.logger.Info("create salary success",
		zap.String("salary_id", sal.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int64("net_salary", net),
	)

	return mapToResponse(*sal), nil
}

func (s *service) GetPage(ctx context.Context, campusID string, page, limit int) ([]SalaryResponse, int64, error) {
	offset := (page - 1) * limit
	salaries, total, err := s.repo.FindPageByCampus(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(salaries), total, nil
}

func (s *service) GetByID(ctx context.Context, campusID, id string) (SalaryResponse, error) {
	sal, err := s.repo.FindByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, payrollerrors.ErrSalaryNotFound
		}
		return SalaryResponse{}, err
	}
	return mapToResponse(*sal), nil
}

// Process moves a pending record into PROCESSED, the only state an approver
// may act on.
func (s *service) Process(ctx context.Context, campusID, id string) (SalaryResponse, error) {
	return s.advance(ctx, campusID, id, StatusProcessed, StatusPending)
}

// MarkPaid finalizes an approved record and stamps the payout time.
func (s *service) MarkPaid(ctx context.Context, campusID, id string) (SalaryResponse, error) {
	return s.advance(ctx, campusID, id, StatusPaid, StatusApproved)
}

func (s *service) advance(ctx context.Context, campusID, id, target string, allowedFrom ...string) (SalaryResponse, error) {
	sal, err := s.repo.FindByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, payrollerrors.ErrSalaryNotFound
		}
		return SalaryResponse{}, err
	}

	decision, err := approval.Advance(sal.Status, target, allowedFrom...)
	if err != nil {
		s.logger.Warn("advance salary transition invalid",
			zap.String("salary_id", id),
			zap.String("from_status", sal.Status),
			zap.String("target_status", target),
		)
		return SalaryResponse{}, err
	}

	expected := sal.Status
	sal.Status = decision.Status
	if target == StatusPaid {
		now := time.Now().UTC()
		sal.PaidAt = &now
	}

	if err := s.repo.UpdateStatusFrom(ctx, sal, expected); err != nil {
		return SalaryResponse{}, err
	}

	s.logger.Info("advance salary success",
		zap.String("salary_id", id),
		zap.String("status", target),
	)
	return mapToResponse(*sal), nil
}

func (s *service) Approve(ctx context.Context, campusID, actorID, id string, remarks string) (SalaryResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SalaryResponse{}, payrollerrors.ErrInvalidActorID
	}

	sal, err := s.repo.FindByIDAndCampus(ctx, campusID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, payrollerrors.ErrSalaryNotFound
		}
		return SalaryResponse{}, err
	}

	var r *string
	if remarks != "" {
		r = &remarks
	}
	decision, err := approval.Approve(sal.Status, actorUUID, r, StatusProcessed)
	if err != nil {
		s.logger.Warn("approve salary transition invalid",
			zap.String("salary_id", id),
			zap.String("from_status", sal.Status),
		)
		return SalaryResponse{}, err
	}

	expected := sal.Status
	sal.Status = decision.Status
	sal.ApprovedBy = decision.ApprovedBy
	sal.ApprovedAt = decision.ApprovedAt
	sal.Remarks = decision.Remarks

	if err := s.repo.UpdateStatusFrom(ctx, sal, expected); err != nil {
		return SalaryResponse{}, err
	}

	s.logger.Info("approve salary success", zap.String("salary_id", id))
	return mapToResponse(*sal), nil
}

func (s *service) Delete(ctx context.Context, campusID, id string) error {
	return s.repo.Delete(ctx, campusID, id)
}

func parsePeriod(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidPeriodFormat
	}
	return t, nil
}

func mapToResponse(sal Salary) SalaryResponse {
	resp := SalaryResponse{
		ID:              sal.ID.String(),
		CampusID:        sal.CampusID.String(),
		EmployeeID:      sal.EmployeeID.String(),
		PeriodStart:     sal.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       sal.PeriodEnd.Format("2006-01-02"),
		BasicSalary:     sal.BasicSalary,
		HouseRent:       sal.HouseRent,
		MedicalAllow:    sal.MedicalAllow,
		TransportAllow:  sal.TransportAllow,
		OtherAllowances: sal.OtherAllowances,
		ProvidentFund:   sal.ProvidentFund,
		Tax:             sal.Tax,
		OtherDeductions: sal.OtherDeductions,
		GrossSalary:     sal.GrossSalary,
		NetSalary:       sal.NetSalary,
		Status:          sal.Status,
		CreatedBy:       sal.CreatedBy.String(),
	}
	if sal.ApprovedBy != nil {
		v := sal.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if sal.ApprovedAt != nil {
		v := sal.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if sal.PaidAt != nil {
		v := sal.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	resp.Remarks = sal.Remarks
	return resp
}

func mapToListResponse(salaries []Salary) []SalaryResponse {
	resp := make([]SalaryResponse, len(salaries))
	for i, sal := range salaries {
		resp[i] = mapToResponse(sal)
	}
	return resp
}
