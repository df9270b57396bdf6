package transfer_test

import (
	"context"
	"database/sql"
	"testing"

	"go-uerp/internal/shared/approval"
	"go-uerp/internal/transfer"
	transfererrors "go-uerp/internal/transfer/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeTransferRepository struct {
	withTxFn                func(tx *sql.Tx) transfer.Repository
	createFn                func(ctx context.Context, tr *transfer.Transfer) error
	findPageByCampusFn      func(ctx context.Context, campusID string, offset, limit int) ([]transfer.Transfer, int64, error)
	findByIDAndCampusFn     func(ctx context.Context, campusID, id string) (*transfer.Transfer, error)
	updateStatusFromFn      func(ctx context.Context, tr *transfer.Transfer, expectedStatus string) error
	subjectExistsInCampusFn func(ctx context.Context, subjectType, subjectID, campusID string) (bool, error)
	campusExistsFn          func(ctx context.Context, campusID string) (bool, error)
	hasPendingTransferFn    func(ctx context.Context, subjectType, subjectID string) (bool, error)
	moveSubjectFn           func(ctx context.Context, subjectType, subjectID, toCampusID string) error
}

func (f *fakeTransferRepository) WithTx(tx *sql.Tx) transfer.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeTransferRepository) Create(ctx context.Context, tr *transfer.Transfer) error {
	if f.createFn != nil {
		return f.createFn(ctx, tr)
	}
	return nil
}

func (f *fakeTransferRepository) FindPageByCampus(ctx context.Context, campusID string, offset, limit int) ([]transfer.Transfer, int64, error) {
	if f.findPageByCampusFn != nil {
		return f.findPageByCampusFn(ctx, campusID, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeTransferRepository) FindByIDAndCampus(ctx context.Context, campusID, id string) (*transfer.Transfer, error) {
	if f.findByIDAndCampusFn != nil {
		return f.findByIDAndCampusFn(ctx, campusID, id)
	}
	return nil, nil
}

func (f *fakeTransferRepository) UpdateStatusFrom(ctx context.Context, tr *transfer.Transfer, expectedStatus string) error {
	if f.updateStatusFromFn != nil {
		return f.updateStatusFromFn(ctx, tr, expectedStatus)
	}
	return nil
}

func (f *fakeTransferRepository) SubjectExistsInCampus(ctx context.Context, subjectType, subjectID, campusID string) (bool, error) {
	if f.subjectExistsInCampusFn != nil {
		return f.subjectExistsInCampusFn(ctx, subjectType, subjectID, campusID)
	}
	return true, nil
}

func (f *fakeTransferRepository) CampusExists(ctx context.Context, campusID string) (bool, error) {
	if f.campusExistsFn != nil {
		return f.campusExistsFn(ctx, campusID)
	}
	return true, nil
}

func (f *fakeTransferRepository) HasPendingTransfer(ctx context.Context, subjectType, subjectID string) (bool, error) {
	if f.hasPendingTransferFn != nil {
		return f.hasPendingTransferFn(ctx, subjectType, subjectID)
	}
	return false, nil
}

func (f *fakeTransferRepository) MoveSubject(ctx context.Context, subjectType, subjectID, toCampusID string) error {
	if f.moveSubjectFn != nil {
		return f.moveSubjectFn(ctx, subjectType, subjectID, toCampusID)
	}
	return nil
}

type transferServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service transfer.Service
	repo    *fakeTransferRepository
}

func setupTransferServiceTest(t *testing.T) *transferServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeTransferRepository{}
	svc := transfer.NewService(db, repo)

	return &transferServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
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

func pendingTransfer(id, fromCampusID, toCampusID string) *transfer.Transfer {
	return &transfer.Transfer{
		ID:           uuid.MustParse(id),
		SubjectType:  transfer.SubjectStudent,
		SubjectID:    uuid.New(),
		FromCampusID: uuid.MustParse(fromCampusID),
		ToCampusID:   uuid.MustParse(toCampusID),
		Status:       approval.StatusPending,
		CreatedBy:    uuid.New(),
	}
}

func TestTransferService_Create(t *testing.T) {
	ctx := context.Background()
	campusID := uuid.New().String()
	toCampusID := uuid.New().String()
	actorID := uuid.New().String()
	subjectID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupTransferServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := transfer.CreateTransferRequest{
			SubjectType: transfer.SubjectStudent,
			SubjectID:   subjectID,
			ToCampusID:  toCampusID,
			Reason:      "Family relocation",
		}

		deps.repo.createFn = func(ctx context.Context, tr *transfer.Transfer) error {
			assert.Equal(t, uuid.MustParse(campusID), tr.FromCampusID)
			assert.Equal(t, uuid.MustParse(toCampusID), tr.ToCampusID)
			assert.Equal(t, approval.StatusPending, tr.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, campusID, actorID, req)

		assert.NoError(t, err)
		assert.Equal(t, campusID, resp.FromCampusID)
		assert.Equal(t, approval.StatusPending, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative same campus", func(t *testing.T) {
		deps := setupTransferServiceTest(t)
		defer deps.db.Close()

		req := transfer.CreateTransferRequest{
			SubjectType: transfer.SubjectStaff,
			SubjectID:   subjectID,
			ToCampusID:  campusID,
		}

		_, err := deps.service.Create(ctx, campusID, actorID, req)

		assert.ErrorIs(t, err, transfererrors.ErrSameCampus)
	})

	t.Run("negative subject missing", func(t *testing.T) {
		deps := setupTransferServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.subjectExistsInCampusFn = func(ctx context.Context, st, sid, cid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, campusID, actorID, transfer.CreateTransferRequest{
			SubjectType: transfer.SubjectStudent,
			SubjectID:   subjectID,
			ToCampusID:  toCampusID,
		})

		assert.ErrorIs(t, err, transfererrors.ErrSubjectNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative pending transfer exists", func(t *testing.T) {
		deps := setupTransferServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.hasPendingTransferFn = func(ctx context.Context, st, sid string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, campusID, actorID, transfer.CreateTransferRequest{
			SubjectType: transfer.SubjectStudent,
			SubjectID:   subjectID,
			ToCampusID:  toCampusID,
		})

		assert.ErrorIs(t, err, transfererrors.ErrPendingTransferExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestTransferService_Approve(t *testing.T) {
	ctx := context.Background()
	campusID := uuid.New().String()
	toCampusID := uuid.New().String()
	actorID := uuid.New().String()
	id := uuid.New().String()

	t.Run("success moves subject in same tx", func(t *testing.T) {
		deps := setupTransferServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		tr := pendingTransfer(id, campusID, toCampusID)
		deps.repo.findByIDAndCampusFn = func(ctx context.Context, cid, targetID string) (*transfer.Transfer, error) {
			return tr, nil
		}

		moved := false
		deps.repo.moveSubjectFn = func(ctx context.Context, st, sid, tcid string) error {
			assert.Equal(t, transfer.SubjectStudent, st)
			assert.Equal(t, tr.SubjectID.String(), sid)
			assert.Equal(t, toCampusID, tcid)
			moved = true
			return nil
		}

		resp, err := deps.service.Approve(ctx, campusID, actorID, id, "verified")

		assert.NoError(t, err)
		assert.Equal(t, approval.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, actorID, *resp.ApprovedBy)
		assert.True(t, moved)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already decided", func(t *testing.T) {
		deps := setupTransferServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCampusFn = func(ctx context.Context, cid, targetID string) (*transfer.Transfer, error) {
			tr := pendingTransfer(targetID, campusID, toCampusID)
			tr.Status = approval.StatusRejected
			return tr, nil
		}

		_, err := deps.service.Approve(ctx, campusID, actorID, id, "")

		assert.ErrorIs(t, err, approval.ErrInvalidTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative lost concurrent race does not move subject", func(t *testing.T) {
		deps := setupTransferServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCampusFn = func(ctx context.Context, cid, targetID string) (*transfer.Transfer, error) {
			return pendingTransfer(targetID, campusID, toCampusID), nil
		}
		deps.repo.updateStatusFromFn = func(ctx context.Context, tr *transfer.Transfer, expectedStatus string) error {
			return approval.ErrConcurrentTransition
		}

		moved := false
		deps.repo.moveSubjectFn = func(ctx context.Context, st, sid, tcid string) error {
			moved = true
			return nil
		}

		_, err := deps.service.Approve(ctx, campusID, actorID, id, "")

		assert.ErrorIs(t, err, approval.ErrConcurrentTransition)
		assert.False(t, moved)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestTransferService_Reject(t *testing.T) {
	ctx := context.Background()
	campusID := uuid.New().String()
	actorID := uuid.New().String()
	id := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupTransferServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCampusFn = func(ctx context.Context, cid, targetID string) (*transfer.Transfer, error) {
			return pendingTransfer(targetID, campusID, uuid.New().String()), nil
		}

		resp, err := deps.service.Reject(ctx, campusID, actorID, id, "capacity reached")

		assert.NoError(t, err)
		assert.Equal(t, approval.StatusRejected, resp.Status)
		assert.NotNil(t, resp.RejectionReason)
		assert.Equal(t, "capacity reached", *resp.RejectionReason)
	})

	t.Run("negative empty reason", func(t *testing.T) {
		deps := setupTransferServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCampusFn = func(ctx context.Context, cid, targetID string) (*transfer.Transfer, error) {
			return pendingTransfer(targetID, campusID, uuid.New().String()), nil
		}

		_, err := deps.service.Reject(ctx, campusID, actorID, id, "")

		assert.ErrorIs(t, err, approval.ErrRejectionReasonRequired)
	})
}
