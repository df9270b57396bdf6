package leave_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-uerp/internal/leave"
	"go-uerp/internal/messaging/kafka"
	"go-uerp/internal/shared/approval"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupLeaveTxTest wires the real repository and outbox over the same mocked
// connection as the service, so the test sees every statement of an approval
// on the one transaction the service opens.
func setupLeaveTxTest(t *testing.T) (sqlmock.Sqlmock, leave.Service) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	svc := leave.NewService(db, leave.NewRepository(gormDB), kafka.NewOutboxRepository(db))
	return mock, svc
}

func pendingLeaveRows(leaveID, campusID, employeeID, createdBy uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "campus_id", "employee_id", "leave_type", "start_date", "end_date", "total_days", "reason", "status", "created_by",
	}).AddRow(
		leaveID.String(), campusID.String(), employeeID.String(), "ANNUAL",
		time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
		3, "family matter", approval.StatusPending, createdBy.String(),
	)
}

func TestLeaveService_ApproveSingleTransaction(t *testing.T) {
	ctx := context.Background()
	campusID := uuid.New()
	actorID := uuid.New()
	leaveID := uuid.New()
	employeeID := uuid.New()
	createdBy := uuid.New()

	t.Run("status change and outbox event commit together", func(t *testing.T) {
		mock, svc := setupLeaveTxTest(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "leaves"`).
			WillReturnRows(pendingLeaveRows(leaveID, campusID, employeeID, createdBy))
		mock.ExpectExec(`UPDATE "leaves" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO outbox_events`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		resp, err := svc.Approve(ctx, campusID.String(), actorID.String(), leaveID.String(), "ok")

		assert.NoError(t, err)
		assert.Equal(t, approval.StatusApproved, resp.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative outbox failure rolls back the approval", func(t *testing.T) {
		mock, svc := setupLeaveTxTest(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "leaves"`).
			WillReturnRows(pendingLeaveRows(leaveID, campusID, employeeID, createdBy))
		mock.ExpectExec(`UPDATE "leaves" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO outbox_events`).
			WillReturnError(errors.New("insert failed"))
		mock.ExpectRollback()

		_, err := svc.Approve(ctx, campusID.String(), actorID.String(), leaveID.String(), "ok")

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
