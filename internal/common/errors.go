package common

import "errors"

var (

	// repository specific errors
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// service specific errors
	ErrInternal         = errors.New("internal error")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidState     = errors.New("invalid state")
	ErrInvalidArgument  = errors.New("invalid argument")

	ErrInvalidToken = errors.New("invalid token")
)
