package financeerrors

import (
	"net/http"

	"go-uerp/internal/shared/apperror"
)

var (
	ErrInvalidCampusID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid campus id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid due date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrStudentNotInCampus = apperror.New(
		apperror.CodeInvalidInput,
		"student does not belong to this campus",
		http.StatusBadRequest,
	)
	ErrFeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"fee not found",
		http.StatusNotFound,
	)
	ErrFeeAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"fee is already fully paid",
		http.StatusUnprocessableEntity,
	)
	ErrOverpayment = apperror.New(
		apperror.CodeInvalidInput,
		"payment exceeds outstanding fee balance",
		http.StatusBadRequest,
	)
)
