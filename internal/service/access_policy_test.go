package service

import (
	"testing"

	"quiz_backend/internal/model"
)

func strptr(s string) *string { return &s }

func TestPolicyViewQuiz(t *testing.T) {
	var pol AccessPolicy
	author := model.UserPrincipal(1)
	stranger := model.UserPrincipal(2)
	guest := model.GuestPrincipal("s1")

	public := &model.Quiz{AuthorID: 1, IsPublic: true}
	private := &model.Quiz{AuthorID: 1, IsPublic: false, AccessKey: strptr("ABC12")}

	if !pol.CanViewQuiz(public, guest, "") {
		t.Fatal("public quiz must be open to guests")
	}
	if pol.CanViewQuiz(private, stranger, "") {
		t.Fatal("private quiz must be closed without key")
	}
	if !pol.CanViewQuiz(private, author, "") {
		t.Fatal("author must see their private quiz")
	}
	if !pol.CanViewQuiz(private, stranger, "abc12") {
		t.Fatal("key match must be case-insensitive on input")
	}
	if pol.CanViewQuiz(private, stranger, "XYZ99") {
		t.Fatal("wrong key must not open a private quiz")
	}
}

func TestPolicyAttemptListingScope(t *testing.T) {
	var pol AccessPolicy
	quiz := &model.Quiz{AuthorID: 1, IsPublic: true}

	if got := pol.AttemptListingScope(quiz, model.UserPrincipal(1)); got != ScopeAll {
		t.Fatalf("author scope = %v", got)
	}
	if got := pol.AttemptListingScope(quiz, model.UserPrincipal(2)); got != ScopeOwnUser {
		t.Fatalf("user scope = %v", got)
	}
	if got := pol.AttemptListingScope(quiz, model.GuestPrincipal("s1")); got != ScopeOwnGuest {
		t.Fatalf("guest scope = %v", got)
	}
	if got := pol.AttemptListingScope(quiz, model.Principal{}); got != ScopeDenied {
		t.Fatalf("anonymous scope = %v", got)
	}
}

func TestPolicyViewAttempt(t *testing.T) {
	var pol AccessPolicy
	quiz := &model.Quiz{AuthorID: 1}
	userID := uint(2)
	sessionID := "s1"
	userAttempt := &model.Attempt{QuizID: 1, UserID: &userID}
	guestAttempt := &model.Attempt{QuizID: 1, GuestSessionID: &sessionID}

	if !pol.CanViewAttempt(quiz, userAttempt, model.UserPrincipal(1)) {
		t.Fatal("author must view any attempt")
	}
	if !pol.CanViewAttempt(quiz, userAttempt, model.UserPrincipal(2)) {
		t.Fatal("owner must view their attempt")
	}
	if pol.CanViewAttempt(quiz, userAttempt, model.UserPrincipal(3)) {
		t.Fatal("stranger must not view the attempt")
	}
	if !pol.CanViewAttempt(quiz, guestAttempt, model.GuestPrincipal("s1")) {
		t.Fatal("guest session must view its own attempt")
	}
	if pol.CanViewAttempt(quiz, guestAttempt, model.GuestPrincipal("s2")) {
		t.Fatal("other guest session must not view the attempt")
	}
}

func TestPolicyLeaderboard(t *testing.T) {
	var pol AccessPolicy
	private := &model.Quiz{AuthorID: 1, IsPublic: false, AccessKey: strptr("ABC12")}
	stranger := model.UserPrincipal(2)

	if pol.CanViewLeaderboard(private, stranger, "", false) {
		t.Fatal("closed without key or attempt")
	}
	if !pol.CanViewLeaderboard(private, stranger, "ABC12", false) {
		t.Fatal("key must open the leaderboard")
	}
	if !pol.CanViewLeaderboard(private, stranger, "", true) {
		t.Fatal("a prior attempt must open the leaderboard")
	}
	if !pol.CanViewLeaderboard(private, model.UserPrincipal(1), "", false) {
		t.Fatal("author must see the leaderboard")
	}
}
