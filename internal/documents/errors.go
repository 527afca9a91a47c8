package documents

import "errors"

var (
	ErrNotFound           = errors.New("document not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidContentType = errors.New("only PDF and Word documents are allowed")
	ErrCapExceeded        = errors.New("maximum of 10 documents allowed per user")
)
