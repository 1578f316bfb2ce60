package repositories

import "errors"

var (
	// ErrNotFound is returned when a document or row does not exist
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned when a whole-document replace lost a race:
	// the stored version advanced after the document was read
	ErrVersionConflict = errors.New("document version conflict")
	// ErrSessionInvalid is returned for missing or expired sessions
	ErrSessionInvalid = errors.New("session is invalid")
	// ErrCacheMiss is returned when a key is absent from the cache
	ErrCacheMiss = errors.New("cache miss")
)
