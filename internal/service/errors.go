package service

import "errors"

// Domain errors returned by the core services. Handlers map these onto
// HTTP statuses; anything not in this list is an internal error.
var (
	// Validation failures: bad or insufficient input, nothing written.
	ErrValidation          = errors.New("validation failed")
	ErrEmptyComment        = errors.New("comment cannot be empty")
	ErrInvalidReactionType = errors.New("invalid reaction type")
	ErrInvalidEmail        = errors.New("invalid email format")

	// Missing referents.
	ErrNotFound = errors.New("not found")

	// Business-rule rejections. The caller can retry with different
	// input or wait; no state changed.
	ErrDuplicateVote      = errors.New("already voted on this poll")
	ErrPollClosed         = errors.New("poll has expired")
	ErrPollNotYetVisible  = errors.New("poll is scheduled for the future")
	ErrCommentQuota       = errors.New("maximum 5 comments per poll allowed")
	ErrConcurrentReaction = errors.New("reaction changed concurrently, retry")

	// Authorization.
	ErrUnauthorized = errors.New("not allowed")
)

// IsPolicyViolation reports whether err is a business-rule rejection
// rather than a validation or lookup failure.
func IsPolicyViolation(err error) bool {
	return errors.Is(err, ErrDuplicateVote) ||
		errors.Is(err, ErrPollClosed) ||
		errors.Is(err, ErrPollNotYetVisible) ||
		errors.Is(err, ErrCommentQuota) ||
		errors.Is(err, ErrConcurrentReaction)
}
