package certificationerrors

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
	ErrStudentNotInCampus = apperror.New(
		apperror.CodeInvalidInput,
		"student does not belong to this campus",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"certificate request not found",
		http.StatusNotFound,
	)
	ErrFeeUnpaid = apperror.New(
		apperror.CodeInvalidState,
		"certificate fee must be paid before approval",
		http.StatusUnprocessableEntity,
	)
	ErrCertificateNotFound = apperror.New(
		apperror.CodeNotFound,
		"certificate not found",
		http.StatusNotFound,
	)
	ErrVerifyInputRequired = apperror.New(
		apperror.CodeInvalidInput,
		"verification_code or certificate_number is required",
		http.StatusBadRequest,
	)
	ErrCodeGenerationExhausted = apperror.New(
		apperror.CodeInternalError,
		"could not generate a unique certificate code",
		http.StatusInternalServerError,
	)
)
