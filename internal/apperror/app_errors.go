package apperror

import "errors"

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidMark       = errors.New("invalid mark")
	ErrSessionNotFound   = errors.New("session not found")
	ErrUnknownAction     = errors.New("unknown action")
	ErrCorruptedSnapshot = errors.New("corrupted game snapshot")
)
