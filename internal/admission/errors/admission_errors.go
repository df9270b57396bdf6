package admissionerrors

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
	ErrApplicationNotFound = apperror.New(
		apperror.CodeNotFound,
		"application not found",
		http.StatusNotFound,
	)
	ErrDuplicateApplication = apperror.New(
		apperror.CodeConflict,
		"applicant already applied to this program",
		http.StatusConflict,
	)
	ErrApplicationDecided = apperror.New(
		apperror.CodeInvalidState,
		"application already placed on a merit list",
		http.StatusUnprocessableEntity,
	)
	ErrNoApplications = apperror.New(
		apperror.CodeNotFound,
		"no applications found for this program",
		http.StatusNotFound,
	)
)
