package transfererrors

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
	ErrSameCampus = apperror.New(
		apperror.CodeInvalidInput,
		"destination campus must differ from source campus",
		http.StatusBadRequest,
	)
	ErrSubjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"transfer subject not found in source campus",
		http.StatusNotFound,
	)
	ErrDestinationCampusNotFound = apperror.New(
		apperror.CodeNotFound,
		"destination campus not found",
		http.StatusNotFound,
	)
	ErrTransferNotFound = apperror.New(
		apperror.CodeNotFound,
		"transfer not found",
		http.StatusNotFound,
	)
	ErrPendingTransferExists = apperror.New(
		apperror.CodeConflict,
		"subject already has a pending transfer",
		http.StatusConflict,
	)
)
