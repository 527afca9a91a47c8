package analyses

import "errors"

var (
	// ErrNoDocuments is returned when no document in a batch resolved to the
	// caller. No remote call is made in that case.
	ErrNoDocuments = errors.New("no documents found")

	// ErrParse is returned when no JSON object can be recovered from the raw
	// model output.
	ErrParse = errors.New("analysis response parse failed")

	ErrNotFound = errors.New("not found")
)
