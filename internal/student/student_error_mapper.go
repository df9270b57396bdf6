package student

import (
	"errors"
	"strings"

	studenterrors "go-uerp/internal/student/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError classifies datastore failures before they leave the
// service, keeping the original error as the cause.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_students_campus_roll" {
			return studenterrors.ErrDuplicateRollNumber.WithCause(err)
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_students_campus_roll") {
		return studenterrors.ErrDuplicateRollNumber.WithCause(err)
	}

	return err
}
