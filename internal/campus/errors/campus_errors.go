package campuserrors

import (
	"net/http"

	"go-uerp/internal/shared/apperror"
)

var (
	ErrCampusNotFound = apperror.New(
		apperror.CodeNotFound,
		"campus not found",
		http.StatusNotFound,
	)
	ErrCampusCodeTaken = apperror.New(
		apperror.CodeConflict,
		"campus code already exists",
		http.StatusConflict,
	)
	ErrInvalidCampusID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid campus id",
		http.StatusBadRequest,
	)
)
