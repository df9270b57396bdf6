package admission_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-uerp/internal/admission"
	admissionerrors "go-uerp/internal/admission/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAdmissionRepository struct {
	withTxFn                func(tx *sql.Tx) admission.Repository
	createFn                func(ctx context.Context, a *admission.Application) error
	findPageByCampusFn      func(ctx context.Context, campusID string, programID *string, offset, limit int) ([]admission.Application, int64, error)
	findByIDAndCampusFn     func(ctx context.Context, campusID, id string) (*admission.Application, error)
	updateFn                func(ctx context.Context, a *admission.Application) error
	deleteFn                func(ctx context.Context, campusID, id string) error
	emailAppliedToProgramFn func(ctx context.Context, campusID, programID, email string) (bool, error)
	findForMeritRankingFn   func(ctx context.Context, campusID, programID string) ([]admission.Application, error)
	updateMeritPlacementFn  func(ctx context.Context, id string, rank int, status string) error
}

func (f *fakeAdmissionRepository) WithTx(tx *sql.Tx) admission.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeAdmissionRepository) Create(ctx context.Context, a *admission.Application) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAdmissionRepository) FindPageByCampus(ctx context.Context, campusID string, programID *string, offset, limit int) ([]admission.Application, int64, error) {
	if f.findPageByCampusFn != nil {
		return f.findPageByCampusFn(ctx, campusID, programID, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeAdmissionRepository) FindByIDAndCampus(ctx context.Context, campusID, id string) (*admission.Application, error) {
	if f.findByIDAndCampusFn != nil {
		return f.findByIDAndCampusFn(ctx, campusID, id)
	}
	return nil, nil
}

func (f *fakeAdmissionRepository) Update(ctx context.Context, a *admission.Application) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

func (f *fakeAdmissionRepository) Delete(ctx context.Context, campusID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, campusID, id)
	}
	return nil
}

func (f *fakeAdmissionRepository) EmailAppliedToProgram(ctx context.Context, campusID, programID, email string) (bool, error) {
	if f.emailAppliedToProgramFn != nil {
		return f.emailAppliedToProgramFn(ctx, campusID, programID, email)
	}
	return false, nil
}

func (f *fakeAdmissionRepository) FindForMeritRanking(ctx context.Context, campusID, programID string) ([]admission.Application, error) {
	if f.findForMeritRankingFn != nil {
		return f.findForMeritRankingFn(ctx, campusID, programID)
	}
	return nil, nil
}

func (f *fakeAdmissionRepository) UpdateMeritPlacement(ctx context.Context, id string, rank int, status string) error {
	if f.updateMeritPlacementFn != nil {
		return f.updateMeritPlacementFn(ctx, id, rank, status)
	}
	return nil
}

type admissionServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service admission.Service
	repo    *fakeAdmissionRepository
}

func setupAdmissionServiceTest(t *testing.T) *admissionServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAdmissionRepository{}
	svc := admission.NewService(db, repo)

	return &admissionServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func applicant(campusID, programID string, score float64, submittedAt time.Time) admission.Application {
	return admission.Application{
		ID:               uuid.New(),
		CampusID:         uuid.MustParse(campusID),
		ProgramID:        uuid.MustParse(programID),
		ApplicantName:    "Applicant",
		Email:            uuid.New().String() + "@example.com",
		EligibilityScore: score,
		Status:           admission.StatusApplied,
		SubmittedAt:      submittedAt,
	}
}

func TestAdmissionService_Create(t *testing.T) {
	ctx := context.Background()
	campusID := uuid.New().String()
	programID := uuid.New().String()

	t.Run("success normalizes email", func(t *testing.T) {
		deps := setupAdmissionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, a *admission.Application) error {
			assert.Equal(t, "jane.doe@example.com", a.Email)
			assert.Equal(t, admission.StatusApplied, a.Status)
			assert.Nil(t, a.MeritRank)
			assert.False(t, a.SubmittedAt.IsZero())
			return nil
		}

		resp, err := deps.service.Create(ctx, campusID, admission.CreateApplicationRequest{
			ProgramID:        programID,
			ApplicantName:    "Jane Doe",
			Email:            "  Jane.Doe@Example.COM ",
			EligibilityScore: 88.5,
		})

		assert.NoError(t, err)
		assert.Equal(t, admission.StatusApplied, resp.Status)
		assert.Equal(t, 88.5, resp.EligibilityScore)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative duplicate application", func(t *testing.T) {
		deps := setupAdmissionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.emailAppliedToProgramFn = func(ctx context.Context, cid, pid, email string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, campusID, admission.CreateApplicationRequest{
			ProgramID:        programID,
			ApplicantName:    "Jane Doe",
			Email:            "jane.doe@example.com",
			EligibilityScore: 70,
		})

		assert.ErrorIs(t, err, admissionerrors.ErrDuplicateApplication)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAdmissionService_GenerateMeritList(t *testing.T) {
	ctx := context.Background()
	campusID := uuid.New().String()
	programID := uuid.New().String()

	t.Run("ranks by score then submission time", func(t *testing.T) {
		deps := setupAdmissionServiceTest(t)
		defer deps.db.Close()

		base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
		early := applicant(campusID, programID, 80, base)
		late := applicant(campusID, programID, 80, base.Add(2*time.Hour))
		top := applicant(campusID, programID, 95, base.Add(time.Hour))
		low := applicant(campusID, programID, 60, base)

		expectTx(t, deps.sqlMock, true)
		deps.repo.findForMeritRankingFn = func(ctx context.Context, cid, pid string) ([]admission.Application, error) {
			assert.Equal(t, campusID, cid)
			assert.Equal(t, programID, pid)
			// deliberately unsorted input
			return []admission.Application{late, low, top, early}, nil
		}

		placements := map[string]struct {
			rank   int
			status string
		}{}
		deps.repo.updateMeritPlacementFn = func(ctx context.Context, id string, rank int, status string) error {
			placements[id] = struct {
				rank   int
				status string
			}{rank, status}
			return nil
		}

		resp, err := deps.service.GenerateMeritList(ctx, campusID, admission.GenerateMeritListRequest{
			ProgramID:  programID,
			TotalSeats: 2,
		})

		assert.NoError(t, err)
		assert.Len(t, resp.Applications, 4)

		// contiguous ranks 1..4
		for i, a := range resp.Applications {
			assert.NotNil(t, a.MeritRank)
			assert.Equal(t, i+1, *a.MeritRank)
		}

		assert.Equal(t, 1, placements[top.ID.String()].rank)
		assert.Equal(t, admission.StatusSelected, placements[top.ID.String()].status)
		assert.Equal(t, 2, placements[early.ID.String()].rank)
		assert.Equal(t, admission.StatusSelected, placements[early.ID.String()].status)
		assert.Equal(t, 3, placements[late.ID.String()].rank)
		assert.Equal(t, admission.StatusWaitlisted, placements[late.ID.String()].status)
		assert.Equal(t, 4, placements[low.ID.String()].rank)
		assert.Equal(t, admission.StatusWaitlisted, placements[low.ID.String()].status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("seats exceeding candidates selects everyone", func(t *testing.T) {
		deps := setupAdmissionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findForMeritRankingFn = func(ctx context.Context, cid, pid string) ([]admission.Application, error) {
			return []admission.Application{
				applicant(campusID, programID, 75, time.Now().UTC()),
				applicant(campusID, programID, 50, time.Now().UTC()),
			}, nil
		}

		resp, err := deps.service.GenerateMeritList(ctx, campusID, admission.GenerateMeritListRequest{
			ProgramID:  programID,
			TotalSeats: 10,
		})

		assert.NoError(t, err)
		for _, a := range resp.Applications {
			assert.Equal(t, admission.StatusSelected, a.Status)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative no applications", func(t *testing.T) {
		deps := setupAdmissionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findForMeritRankingFn = func(ctx context.Context, cid, pid string) ([]admission.Application, error) {
			return nil, nil
		}

		_, err := deps.service.GenerateMeritList(ctx, campusID, admission.GenerateMeritListRequest{
			ProgramID:  programID,
			TotalSeats: 5,
		})

		assert.ErrorIs(t, err, admissionerrors.ErrNoApplications)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAdmissionService_Update(t *testing.T) {
	ctx := context.Background()
	campusID := uuid.New().String()
	programID := uuid.New().String()
	id := uuid.New().String()

	t.Run("negative placed on merit list", func(t *testing.T) {
		deps := setupAdmissionServiceTest(t)
		defer deps.db.Close()

		rank := 3
		deps.repo.findByIDAndCampusFn = func(ctx context.Context, cid, targetID string) (*admission.Application, error) {
			a := applicant(campusID, programID, 80, time.Now().UTC())
			a.ID = uuid.MustParse(targetID)
			a.MeritRank = &rank
			a.Status = admission.StatusWaitlisted
			return &a, nil
		}

		_, err := deps.service.Update(ctx, campusID, id, admission.UpdateApplicationRequest{
			ApplicantName:    "Jane Doe",
			Email:            "jane.doe@example.com",
			EligibilityScore: 90,
		})

		assert.ErrorIs(t, err, admissionerrors.ErrApplicationDecided)
	})
}
