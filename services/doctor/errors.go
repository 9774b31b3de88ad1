package doctor

import (
	"net/http"

	"amedick/utils"
)

var (
	ErrMissingFields      = utils.NewAppError(http.StatusBadRequest, "missing_fields", "Missing required fields")
	ErrCredentialsMissing = utils.NewAppError(http.StatusBadRequest, "missing_fields", "Email and password required")
	ErrDoctorExists       = utils.NewAppError(http.StatusConflict, "doctor_exists", "Doctor already exists")
	ErrDoctorNotFound     = utils.NewAppError(http.StatusNotFound, "doctor_not_found", "Doctor not found")
	ErrNotVerified        = utils.NewAppError(http.StatusForbidden, "not_verified", "Account not verified yet")
	ErrInvalidCredentials = utils.NewAppError(http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
	ErrInvalidDay         = utils.NewAppError(http.StatusBadRequest, "invalid_day", "day must be between 0 and 6")
	ErrSlotsRequired      = utils.NewAppError(http.StatusBadRequest, "missing_fields", "day and slots required")
	ErrInvalidSlot        = utils.NewAppError(http.StatusBadRequest, "invalid_slot", "Slots must be HH:MM times")
	ErrInvalidRange       = utils.NewAppError(http.StatusBadRequest, "invalid_range", "Invalid time range")
	ErrDayNotFound        = utils.NewAppError(http.StatusNotFound, "day_not_found", "Day not found")
	ErrUploadFailed       = utils.NewAppError(http.StatusBadGateway, "upload_failed", "Could not store uploaded file")
)
