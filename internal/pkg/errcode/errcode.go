package errcode

const (
	ErrUnknown = 10000000 + iota
	ErrNotFound
	ErrInvalid
	ErrConflict
	ErrBadReference
	ErrTooMany
	ErrInternal
	ErrAIUnavailable
	ErrSeedFailed
)
