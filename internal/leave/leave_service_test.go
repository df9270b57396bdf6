package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-uerp/internal/leave"
	leaveerrors "go-uerp/internal/leave/errors"
	"go-uerp/internal/messaging/kafka"
	"go-uerp/internal/shared/approval"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveRepository struct {
	withTxFn                func(tx *sql.Tx) leave.Repository
	createFn                func(ctx context.Context, l *leave.Leave) error
	findPageByCampusFn      func(ctx context.Context, campusID string, offset, limit int) ([]leave.Leave, int64, error)
	findByIDAndCampusFn     func(ctx context.Context, campusID, id string) (*leave.Leave, error)
	updateStatusFromFn      func(ctx context.Context, l *leave.Leave, expectedStatus string) error
	deleteFn                func(ctx context.Context, campusID, id string) error
	employeeBelongsToCampus func(ctx context.Context, campusID, employeeID string) (bool, error)
	hasOverlappingPeriodFn  func(ctx context.Context, campusID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindPageByCampus(ctx context.Context, campusID string, offset, limit int) ([]leave.Leave, int64, error) {
	if f.findPageByCampusFn != nil {
		return f.findPageByCampusFn(ctx, campusID, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeLeaveRepository) FindByIDAndCampus(ctx context.Context, campusID, id string) (*leave.Leave, error) {
	if f.findByIDAndCampusFn != nil {
		return f.findByIDAndCampusFn(ctx, campusID, id)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) UpdateStatusFrom(ctx context.Context, l *leave.Leave, expectedStatus string) error {
	if f.updateStatusFromFn != nil {
		return f.updateStatusFromFn(ctx, l, expectedStatus)
	}
	return nil
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, campusID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, campusID, id)
	}
	return nil
}

func (f *fakeLeaveRepository) EmployeeBelongsToCampus(ctx context.Context, campusID, employeeID string) (bool, error) {
	if f.employeeBelongsToCampus != nil {
		return f.employeeBelongsToCampus(ctx, campusID, employeeID)
	}
	return true, nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, campusID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, campusID, employeeID, startDate, endDate, excludeID)
	}
	return false, nil
}

type fakeOutboxRepository struct {
	withTxFn  func(tx *sql.Tx) kafka.OutboxRepository
	enqueueFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Enqueue(ctx context.Context, event kafka.OutboxEvent) error {
	if f.enqueueFn != nil {
		return f.enqueueFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) DuePending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type leaveServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leave.Service
	repo    *fakeLeaveRepository
	outbox  *fakeOutboxRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	outbox := &fakeOutboxRepository{}
	svc := leave.NewService(db, repo, outbox)

	return &leaveServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		outbox:  outbox,
	}
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

func pendingLeave(campusID, id, createdBy string) *leave.Leave {
	return &leave.Leave{
		ID:         uuid.MustParse(id),
		CampusID:   uuid.MustParse(campusID),
		EmployeeID: uuid.New(),
		LeaveType:  "ANNUAL",
		StartDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		TotalDays:  3,
		Status:     approval.StatusPending,
		CreatedBy:  uuid.MustParse(createdBy),
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	campusID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "ANNUAL",
			StartDate:  "2026-09-01",
			EndDate:    "2026-09-03",
			Reason:     "Family event",
		}

		deps.repo.employeeBelongsToCampus = func(ctx context.Context, cid, eid string) (bool, error) {
			assert.Equal(t, campusID, cid)
			assert.Equal(t, employeeID, eid)
			return true, nil
		}
		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, cid, eid string, startDate, endDate time.Time, excludeID *string) (bool, error) {
			assert.Nil(t, excludeID)
			assert.Equal(t, "2026-09-01", startDate.Format("2006-01-02"))
			assert.Equal(t, "2026-09-03", endDate.Format("2006-01-02"))
			return false, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			assert.Equal(t, uuid.MustParse(campusID), l.CampusID)
			assert.Equal(t, uuid.MustParse(employeeID), l.EmployeeID)
			assert.Equal(t, uuid.MustParse(actorID), l.CreatedBy)
			assert.Equal(t, 3, l.TotalDays)
			assert.Equal(t, approval.StatusPending, l.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, campusID, actorID, req)

		assert.NoError(t, err)
		assert.Equal(t, campusID, resp.CampusID)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, approval.StatusPending, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative overlap period", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "ANNUAL",
			StartDate:  "2026-09-01",
			EndDate:    "2026-09-02",
		}

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, cid, eid string, startDate, endDate time.Time, excludeID *string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, campusID, actorID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee outside campus", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "SICK",
			StartDate:  "2026-09-01",
			EndDate:    "2026-09-01",
		}

		deps.repo.employeeBelongsToCampus = func(ctx context.Context, cid, eid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, campusID, actorID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotInCampus)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "ANNUAL",
			StartDate:  "2026-09-05",
			EndDate:    "2026-09-01",
		}

		_, err := deps.service.Create(ctx, campusID, actorID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	campusID := uuid.New().String()
	actorID := uuid.New().String()
	id := uuid.New().String()
	requesterID := uuid.New().String()

	t.Run("success with remarks", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndCampusFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			return pendingLeave(cid, targetID, requesterID), nil
		}

		var persisted *leave.Leave
		deps.repo.updateStatusFromFn = func(ctx context.Context, l *leave.Leave, expectedStatus string) error {
			assert.Equal(t, approval.StatusPending, expectedStatus)
			persisted = l
			return nil
		}

		var enqueued *kafka.OutboxEvent
		deps.outbox.enqueueFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			enqueued = &event
			return nil
		}

		resp, err := deps.service.Approve(ctx, campusID, actorID, id, "ok")

		assert.NoError(t, err)
		assert.Equal(t, approval.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, actorID, *resp.ApprovedBy)
		assert.NotNil(t, resp.ApprovedAt)
		assert.Nil(t, resp.RejectionReason)
		assert.NotNil(t, resp.Remarks)
		assert.Equal(t, "ok", *resp.Remarks)

		assert.NotNil(t, persisted)
		assert.Equal(t, approval.StatusApproved, persisted.Status)

		assert.NotNil(t, enqueued)
		assert.Equal(t, "leave.approved", enqueued.EventType)
		assert.Equal(t, "leave", enqueued.AggregateType)
		assert.Equal(t, id, enqueued.AggregateID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCampusFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			l := pendingLeave(cid, targetID, requesterID)
			l.Status = approval.StatusApproved
			return l, nil
		}

		_, err := deps.service.Approve(ctx, campusID, actorID, id, "")

		assert.ErrorIs(t, err, approval.ErrInvalidTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative lost concurrent race", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCampusFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			return pendingLeave(cid, targetID, requesterID), nil
		}
		deps.repo.updateStatusFromFn = func(ctx context.Context, l *leave.Leave, expectedStatus string) error {
			return approval.ErrConcurrentTransition
		}

		_, err := deps.service.Approve(ctx, campusID, actorID, id, "")

		assert.ErrorIs(t, err, approval.ErrConcurrentTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	campusID := uuid.New().String()
	actorID := uuid.New().String()
	id := uuid.New().String()
	requesterID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndCampusFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			return pendingLeave(cid, targetID, requesterID), nil
		}

		enqueueCalled := false
		deps.outbox.enqueueFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			enqueueCalled = true
			return nil
		}

		resp, err := deps.service.Reject(ctx, campusID, actorID, id, "insufficient balance")

		assert.NoError(t, err)
		assert.Equal(t, approval.StatusRejected, resp.Status)
		assert.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, actorID, *resp.ApprovedBy)
		assert.NotNil(t, resp.ApprovedAt)
		assert.NotNil(t, resp.RejectionReason)
		assert.Equal(t, "insufficient balance", *resp.RejectionReason)
		assert.False(t, enqueueCalled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative empty reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCampusFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			return pendingLeave(cid, targetID, requesterID), nil
		}

		_, err := deps.service.Reject(ctx, campusID, actorID, id, "")

		assert.ErrorIs(t, err, approval.ErrRejectionReasonRequired)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	campusID := uuid.New().String()
	requesterID := uuid.New().String()
	id := uuid.New().String()

	t.Run("success by requester", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCampusFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			return pendingLeave(cid, targetID, requesterID), nil
		}
		deps.repo.updateStatusFromFn = func(ctx context.Context, l *leave.Leave, expectedStatus string) error {
			assert.Equal(t, approval.StatusPending, expectedStatus)
			assert.Equal(t, approval.StatusCancelled, l.Status)
			return nil
		}

		resp, err := deps.service.Cancel(ctx, campusID, requesterID, id)

		assert.NoError(t, err)
		assert.Equal(t, approval.StatusCancelled, resp.Status)
		assert.Nil(t, resp.ApprovedBy)
		assert.Nil(t, resp.ApprovedAt)
	})

	t.Run("negative not the requester", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCampusFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			return pendingLeave(cid, targetID, requesterID), nil
		}

		_, err := deps.service.Cancel(ctx, campusID, uuid.New().String(), id)

		assert.ErrorIs(t, err, leaveerrors.ErrOnlyRequesterMayCancel)
	})

	t.Run("negative already approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCampusFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			l := pendingLeave(cid, targetID, requesterID)
			l.Status = approval.StatusApproved
			return l, nil
		}

		_, err := deps.service.Cancel(ctx, campusID, requesterID, id)

		assert.ErrorIs(t, err, approval.ErrInvalidTransition)
	})
}

func TestLeaveService_GetPage(t *testing.T) {
	ctx := context.Background()
	campusID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findPageByCampusFn = func(ctx context.Context, cid string, offset, limit int) ([]leave.Leave, int64, error) {
			assert.Equal(t, campusID, cid)
			assert.Equal(t, 20, offset)
			assert.Equal(t, 20, limit)
			return []leave.Leave{*pendingLeave(cid, uuid.New().String(), uuid.New().String())}, 41, nil
		}

		resp, total, err := deps.service.GetPage(ctx, campusID, 2, 20)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, int64(41), total)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findPageByCampusFn = func(ctx context.Context, cid string, offset, limit int) ([]leave.Leave, int64, error) {
			return nil, 0, errors.New("db error")
		}

		resp, _, err := deps.service.GetPage(ctx, campusID, 1, 20)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}
