package service

import (
	"strings"

	"quiz_backend/internal/model"
)

// AttemptScope describes which attempts on a quiz a caller may list.
type AttemptScope int

const (
	ScopeDenied AttemptScope = iota
	ScopeAll                 // quiz author: every attempt
	ScopeOwnUser             // authenticated non-author: own attempts
	ScopeOwnGuest            // guest: attempts matching the session id
)

// AccessPolicy concentrates every visibility decision. It holds no state and
// touches no storage, so each rule is testable in isolation.
type AccessPolicy struct{}

func (AccessPolicy) IsAuthor(quiz *model.Quiz, p model.Principal) bool {
	return p.IsUser() && quiz.AuthorID == p.UserID
}

func (AccessPolicy) keyMatches(quiz *model.Quiz, accessKey string) bool {
	return quiz.AccessKey != nil && accessKey != "" &&
		*quiz.AccessKey == strings.ToUpper(accessKey)
}

// CanViewQuiz gates the quiz detail payload. Public quizzes are open; a
// private quiz requires authorship or the access key.
func (pol AccessPolicy) CanViewQuiz(quiz *model.Quiz, p model.Principal, accessKey string) bool {
	if quiz.IsPublic {
		return true
	}
	return pol.IsAuthor(quiz, p) || pol.keyMatches(quiz, accessKey)
}

// CanPlayQuiz gates StartAttempt and question listing; same rule as viewing.
func (pol AccessPolicy) CanPlayQuiz(quiz *model.Quiz, p model.Principal, accessKey string) bool {
	return pol.CanViewQuiz(quiz, p, accessKey)
}

// CanSeeCorrectness: only the author ever receives option correctness flags.
func (pol AccessPolicy) CanSeeCorrectness(quiz *model.Quiz, p model.Principal) bool {
	return pol.IsAuthor(quiz, p)
}

// CanSeeAccessKey: the key is echoed to its author and nobody else.
func (pol AccessPolicy) CanSeeAccessKey(quiz *model.Quiz, p model.Principal) bool {
	return pol.IsAuthor(quiz, p)
}

func (pol AccessPolicy) AttemptListingScope(quiz *model.Quiz, p model.Principal) AttemptScope {
	switch {
	case pol.IsAuthor(quiz, p):
		return ScopeAll
	case p.IsUser():
		return ScopeOwnUser
	case p.IsGuest():
		return ScopeOwnGuest
	default:
		return ScopeDenied
	}
}

// CanViewAttempt gates single-attempt reads and answer listings: the quiz
// author, the attempt's user, or the owning guest session.
func (pol AccessPolicy) CanViewAttempt(quiz *model.Quiz, attempt *model.Attempt, p model.Principal) bool {
	return pol.IsAuthor(quiz, p) || attempt.OwnedBy(p)
}

// CanViewLeaderboard additionally admits any caller with at least one
// attempt on a private quiz; hasAttempt is resolved by the caller.
func (pol AccessPolicy) CanViewLeaderboard(quiz *model.Quiz, p model.Principal, accessKey string, hasAttempt bool) bool {
	if quiz.IsPublic {
		return true
	}
	return pol.IsAuthor(quiz, p) || pol.keyMatches(quiz, accessKey) || hasAttempt
}
