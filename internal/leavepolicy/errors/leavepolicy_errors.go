package leavepolicyerrors

import (
	"net/http"

	"go-leaveledger/internal/shared/apperror"
)

var (
	ErrInvalidPolicyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid policy id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrInvalidEntitlement = apperror.New(
		apperror.CodeInvalidInput,
		"annual_entitlement, carry_limit and encash_limit must be non-negative decimals",
		http.StatusBadRequest,
	)
	ErrInvalidCycleLength = apperror.New(
		apperror.CodeInvalidInput,
		"cycle_length_years must be at least 1",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidEffectiveWindow = apperror.New(
		apperror.CodeInvalidInput,
		"effective_date must be before expiry_date",
		http.StatusBadRequest,
	)
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave policy not found",
		http.StatusNotFound,
	)
	ErrNoActivePolicy = apperror.New(
		apperror.CodeNotFound,
		"no active leave policy for this leave type",
		http.StatusNotFound,
	)
	ErrPolicyRetired = apperror.New(
		apperror.CodeInvalidState,
		"a retired policy cannot be modified",
		http.StatusBadRequest,
	)
)
