package documents

import "time"

// MaxPerUser is the fixed cap on documents a single user may own.
const MaxPerUser = 10

// AllowedContentTypes are the declared content types accepted at upload.
var AllowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/msword": {},
}

// Document represents an uploaded document owned by a user. Immutable once
// uploaded except for the analysis attached to it.
type Document struct {
	ID          string
	UserID      string
	FileName    string
	StorageKey  string
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
}
