// errors.go defines sentinel errors for validation failures.

package validate

import "errors"

var (
	ErrInvalidPath     = errors.New("invalid path")
	ErrPathTooLong     = errors.New("path too long")
	ErrUnknownDir      = errors.New("unknown theme directory")
	ErrContentTooLarge = errors.New("content too large")
)
