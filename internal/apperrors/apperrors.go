// Package apperrors defines the closed set of domain error kinds shared by every layer.
// Each kind carries its HTTP status, a stable machine-readable code and a default reason.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindDuplicateUserEmail
	KindUserNotFound
	KindInvalidUserData
	KindResourceNotFound
	KindDuplicateResource
	KindStoreNotFound
	KindDuplicateStore
	KindReviewNotFound
	KindDuplicateReview
	KindMissionNotFound
	KindDuplicateMissionChallenge
	KindMissionChallengeNotFound
	KindMissionAlreadyCompleted
	KindInvalidRequest
	KindAuthentication
	KindPermissionDenied
	KindDatabase
	KindExternalService
)

type kindInfo struct {
	status int
	code   string
	reason string
}

var kinds = map[Kind]kindInfo{
	KindDuplicateUserEmail:        {http.StatusConflict, "U001", "email is already registered"},
	KindUserNotFound:              {http.StatusNotFound, "U002", "user not found"},
	KindInvalidUserData:           {http.StatusBadRequest, "U003", "invalid user data"},
	KindResourceNotFound:          {http.StatusNotFound, "R001", "requested resource not found"},
	KindDuplicateResource:         {http.StatusConflict, "R002", "resource already exists"},
	KindStoreNotFound:             {http.StatusNotFound, "S001", "store not found"},
	KindDuplicateStore:            {http.StatusConflict, "S002", "store already exists"},
	KindReviewNotFound:            {http.StatusNotFound, "V001", "review not found"},
	KindDuplicateReview:           {http.StatusConflict, "V002", "review already exists for this store"},
	KindMissionNotFound:           {http.StatusNotFound, "M001", "mission not found"},
	KindDuplicateMissionChallenge: {http.StatusConflict, "M002", "mission is already being challenged"},
	KindMissionChallengeNotFound:  {http.StatusNotFound, "M003", "mission challenge not found"},
	KindMissionAlreadyCompleted:   {http.StatusConflict, "M004", "mission challenge is already completed"},
	KindInvalidRequest:            {http.StatusBadRequest, "Q001", "invalid request"},
	KindAuthentication:            {http.StatusUnauthorized, "A001", "authentication failed"},
	KindPermissionDenied:          {http.StatusForbidden, "A002", "permission denied"},
	KindDatabase:                  {http.StatusInternalServerError, "D001", "database operation failed"},
	KindExternalService:           {http.StatusBadGateway, "E001", "external service call failed"},
}

// Status returns the HTTP status for k. Unknown kinds map to 500.
func (k Kind) Status() int {
	if info, ok := kinds[k]; ok {
		return info.status
	}

	return http.StatusInternalServerError
}

// Code returns the stable machine-readable code for k.
func (k Kind) Code() string {
	if info, ok := kinds[k]; ok {
		return info.code
	}

	return "UNKNOWN"
}

// Reason returns the default human-readable reason for k.
func (k Kind) Reason() string {
	if info, ok := kinds[k]; ok {
		return info.reason
	}

	return "unexpected server error"
}

func (k Kind) String() string {
	return k.Code()
}

// Error is a domain error tagged with its Kind. Data is optional context that is safe to
// show to the caller; Err is the underlying cause and is only ever logged.
type Error struct {
	Kind   Kind
	Reason string
	Data   map[string]any
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Code(), e.Reason, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind.Code(), e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind, so sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// New creates an error of the given kind. An empty reason falls back to the kind default.
func New(kind Kind, reason string, data map[string]any) *Error {
	if reason == "" {
		reason = kind.Reason()
	}

	return &Error{Kind: kind, Reason: reason, Data: data}
}

// Wrap attaches cause to a new error of the given kind.
func Wrap(kind Kind, cause error, reason string, data map[string]any) *Error {
	e := New(kind, reason, data)
	e.Err = cause

	return e
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return KindUnknown
}

// Sentinels for errors.Is checks.
var (
	ErrDuplicateUserEmail        = &Error{Kind: KindDuplicateUserEmail}
	ErrUserNotFound              = &Error{Kind: KindUserNotFound}
	ErrInvalidUserData           = &Error{Kind: KindInvalidUserData}
	ErrResourceNotFound          = &Error{Kind: KindResourceNotFound}
	ErrDuplicateResource         = &Error{Kind: KindDuplicateResource}
	ErrStoreNotFound             = &Error{Kind: KindStoreNotFound}
	ErrDuplicateStore            = &Error{Kind: KindDuplicateStore}
	ErrReviewNotFound            = &Error{Kind: KindReviewNotFound}
	ErrDuplicateReview           = &Error{Kind: KindDuplicateReview}
	ErrMissionNotFound           = &Error{Kind: KindMissionNotFound}
	ErrDuplicateMissionChallenge = &Error{Kind: KindDuplicateMissionChallenge}
	ErrChallengeNotFound         = &Error{Kind: KindMissionChallengeNotFound}
	ErrMissionAlreadyCompleted   = &Error{Kind: KindMissionAlreadyCompleted}
	ErrInvalidRequest            = &Error{Kind: KindInvalidRequest}
	ErrAuthentication            = &Error{Kind: KindAuthentication}
	ErrPermissionDenied          = &Error{Kind: KindPermissionDenied}
	ErrDatabase                  = &Error{Kind: KindDatabase}
	ErrExternalService           = &Error{Kind: KindExternalService}
)
