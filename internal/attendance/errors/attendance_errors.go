package attendanceerrors

import (
	"net/http"

	"hr-portal/internal/shared/apperror"
)

var (
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period, month must be 1-12 and year 1900 or later",
		http.StatusBadRequest,
	)
	ErrNegativeAbsentDays = apperror.New(
		apperror.CodeInvalidInput,
		"absent_days cannot be negative",
		http.StatusBadRequest,
	)
	ErrNegativeDailyDeduction = apperror.New(
		apperror.CodeInvalidInput,
		"daily_deduction cannot be negative",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
)
