package leaverequesterrors

import (
	"net/http"

	"go-leaveledger/internal/shared/apperror"
)

var (
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
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
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start date must not be after end date",
		http.StatusBadRequest,
	)
	ErrInvalidTotalDays = apperror.New(
		apperror.CodeInvalidInput,
		"total days must be between 0.5 and 365 and fit the date span",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrNoActivePolicy = apperror.New(
		apperror.CodeNotFound,
		"no active policy for this leave type",
		http.StatusNotFound,
	)
	ErrRequestOverlap = apperror.New(
		apperror.CodeConflict,
		"an overlapping pending or approved request already exists",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"leave request status transition not allowed",
		http.StatusBadRequest,
	)
	ErrRemarksRequired = apperror.New(
		apperror.CodeInvalidInput,
		"remarks are required when rejecting a request",
		http.StatusBadRequest,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeInvalidInput,
		"only the requesting employee may cancel this request",
		http.StatusBadRequest,
	)
)
