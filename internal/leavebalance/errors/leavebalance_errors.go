package leavebalanceerrors

import (
	"net/http"

	"go-leaveledger/internal/shared/apperror"
)

var (
	ErrInvalidBalanceID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid balance id",
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
	ErrInvalidPolicyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid policy id",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"day amounts must be non-negative decimals with at most 2 places",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"a year label is required",
		http.StatusBadRequest,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrBalanceExists = apperror.New(
		apperror.CodeConflict,
		"a balance for this employee, leave type and year already exists",
		http.StatusConflict,
	)
	ErrBalanceClosed = apperror.New(
		apperror.CodeInvalidState,
		"a closed balance cannot be modified",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient leave balance",
		http.StatusUnprocessableEntity,
	)
	ErrEncashLimitExceeded = apperror.New(
		apperror.CodeInvalidState,
		"encashment would exceed the policy encash limit",
		http.StatusBadRequest,
	)
)
