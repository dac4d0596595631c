package leaveyearerrors

import (
	"net/http"

	"go-leaveledger/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidCutoffRange = apperror.New(
		apperror.CodeInvalidInput,
		"cutoff_start_date must be before cutoff_end_date",
		http.StatusBadRequest,
	)
	ErrConfigurationNotFound = apperror.New(
		apperror.CodeNotFound,
		"no leave year configuration covers this date",
		http.StatusNotFound,
	)
	ErrDuplicateYear = apperror.New(
		apperror.CodeConflict,
		"a configuration for this year already exists",
		http.StatusConflict,
	)
)
