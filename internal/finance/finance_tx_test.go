package finance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-uerp/internal/finance"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupFinanceTxTest wires the real repository and the service over the same
// mocked connection, so every statement the repository issues is visible on
// the connection the service runs its transaction on.
func setupFinanceTxTest(t *testing.T) (sqlmock.Sqlmock, finance.Service) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	svc := finance.NewService(db, finance.NewRepository(gormDB))
	return mock, svc
}

func feeRows(feeID, campusID, studentID, createdBy uuid.UUID, amount, paid int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "campus_id", "student_id", "fee_type", "amount", "paid_amount", "due_date", "status", "created_by",
	}).AddRow(
		feeID.String(), campusID.String(), studentID.String(), "TUITION",
		amount, paid, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), status, createdBy.String(),
	)
}

func TestFinanceService_RecordPaymentSingleTransaction(t *testing.T) {
	ctx := context.Background()
	campusID := uuid.New()
	actorID := uuid.New()
	feeID := uuid.New()
	studentID := uuid.New()
	createdBy := uuid.New()

	t.Run("payment insert and fee update ride the service transaction", func(t *testing.T) {
		mock, svc := setupFinanceTxTest(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "fees"`).
			WillReturnRows(feeRows(feeID, campusID, studentID, createdBy, 50000, 0, finance.FeeStatusUnpaid))
		mock.ExpectQuery(`INSERT INTO "payments"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
		mock.ExpectExec(`UPDATE "fees" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		resp, err := svc.RecordPayment(ctx, campusID.String(), actorID.String(), feeID.String(), finance.RecordPaymentRequest{
			Amount: 50000,
			Method: "CASH",
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp.Fee)
		assert.Equal(t, finance.FeeStatusPaid, resp.Fee.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative fee update failure rolls back the payment insert", func(t *testing.T) {
		mock, svc := setupFinanceTxTest(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "fees"`).
			WillReturnRows(feeRows(feeID, campusID, studentID, createdBy, 50000, 0, finance.FeeStatusUnpaid))
		mock.ExpectQuery(`INSERT INTO "payments"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
		mock.ExpectExec(`UPDATE "fees" SET`).
			WillReturnError(errors.New("update failed"))
		mock.ExpectRollback()

		_, err := svc.RecordPayment(ctx, campusID.String(), actorID.String(), feeID.String(), finance.RecordPaymentRequest{
			Amount: 50000,
			Method: "CASH",
		})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
