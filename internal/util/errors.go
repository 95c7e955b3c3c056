package util

import "errors"

// Kind classifies a domain failure so the controller boundary can map it to
// an HTTP status without inspecting message strings.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindTooManyRequests
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func E(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the classification from err; plain errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var (
	ErrQuizNotFound       = E(KindNotFound, "quiz not found")
	ErrQuestionNotFound   = E(KindNotFound, "question not found")
	ErrAttemptNotFound    = E(KindNotFound, "attempt not found")
	ErrCategoryNotFound   = E(KindNotFound, "category not found")
	ErrUserNotFound       = E(KindNotFound, "user not found")
	ErrQuizHasNoQuestions = E(KindConflict, "quiz has no questions")
	ErrAttemptCompleted   = E(KindConflict, "attempt already completed")
	ErrUsernameTaken      = E(KindConflict, "username already taken")
	ErrPermissionDenied   = E(KindForbidden, "permission denied")
	ErrAccessKeyRequired  = E(KindForbidden, "this quiz is private; a valid access key is required")
	ErrInvalidCredentials = E(KindUnauthorized, "invalid credentials")
	ErrTooManyLogins      = E(KindTooManyRequests, "too many failed login attempts, try again later")
)
