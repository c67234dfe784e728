package service

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
)

// ValidationError carries the business reason a roster was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErr(reason string) error {
	return &ValidationError{Reason: reason}
}

// ProtocolError is a trip-protocol failure with its wire code, surfaced
// verbatim to the driver app.
type ProtocolError struct {
	Code    string
	Message string
	Status  int
}

func (e *ProtocolError) Error() string {
	return e.Message
}

var (
	ErrAlreadyCompletedToday = &ProtocolError{Code: "FLT_500", Message: "you have already finished the roster for today", Status: http.StatusBadRequest}
	ErrPreviousTripActive    = &ProtocolError{Code: "FLT_501", Message: "previous trip not ended", Status: http.StatusForbidden}
	ErrCannotStartYet        = &ProtocolError{Code: "FLT_502", Message: "you cannot start the roster now", Status: http.StatusBadRequest}
	ErrNotAssigned           = &ProtocolError{Code: "FLT_503", Message: "you are not assigned to this roster", Status: http.StatusForbidden}
	ErrInvalidAction         = &ProtocolError{Code: "FLT_504", Message: "the roster action is invalid", Status: http.StatusBadRequest}
	ErrVehicleNotAssigned    = &ProtocolError{Code: "FLT_505", Message: "vehicle is not assigned to the roster", Status: http.StatusForbidden}
)
