package leavecycleerrors

import (
	"net/http"

	"go-leaveledger/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrInvalidCycleID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid cycle id",
		http.StatusBadRequest,
	)
	ErrCycleNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave cycle not found",
		http.StatusNotFound,
	)
	ErrNoActiveCycle = apperror.New(
		apperror.CodeNotFound,
		"no active leave cycle for this employee and leave type",
		http.StatusNotFound,
	)
	ErrCycleOverlap = apperror.New(
		apperror.CodeConflict,
		"an overlapping leave cycle already exists",
		http.StatusConflict,
	)
	ErrCycleCompleted = apperror.New(
		apperror.CodeInvalidState,
		"a completed cycle cannot be modified",
		http.StatusBadRequest,
	)
)
