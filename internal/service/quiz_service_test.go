package service

import (
	"errors"
	"strings"
	"testing"

	"quiz_backend/internal/model"
	"quiz_backend/internal/util"
)

func TestCreateQuizKeyIffPrivate(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")

	public := env.createQuiz(t, author, true)
	if public.AccessKey != nil {
		t.Fatal("public quiz must not carry an access key")
	}

	private := env.createQuiz(t, author, false)
	if private.AccessKey == nil {
		t.Fatal("private quiz must carry an access key")
	}
	key := *private.AccessKey
	if len(key) != util.AccessKeyLength || key != strings.ToUpper(key) {
		t.Fatalf("malformed access key %q", key)
	}
}

func TestPrivateQuizPersistsAsPrivate(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	stranger := env.createUser(t, "bob")
	quiz := env.createQuiz(t, author, false)
	env.addQuestion(t, author, quiz.ID)

	// The stored row must carry the false flag, not a column default.
	var stored model.Quiz
	if err := env.db.First(&stored, quiz.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.IsPublic {
		t.Fatal("private quiz persisted as public")
	}

	if _, err := env.attempt.Start(quiz.ID, stranger, ""); util.KindOf(err) != util.KindForbidden {
		t.Fatalf("stranger start without key should be Forbidden, got %v", err)
	}
}

func TestCreateQuizRequiresUser(t *testing.T) {
	env := newTestEnv(t)

	guest := model.GuestPrincipal("11111111-2222-3333-4444-555555555555")
	if _, err := env.quiz.Create(guest, QuizCreateRequest{Title: "x"}); util.KindOf(err) != util.KindForbidden {
		t.Fatalf("expected Forbidden for guest, got %v", err)
	}
}

func TestCreateQuizUnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")

	missing := uint(9999)
	_, err := env.quiz.Create(author, QuizCreateRequest{Title: "x", CategoryID: &missing})
	if !errors.Is(err, util.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestVisibilityToggleRotatesKey(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	quiz := env.createQuiz(t, author, false)
	if quiz.AccessKey == nil {
		t.Fatal("expected key on private quiz")
	}

	public := true
	updated, err := env.quiz.Update(author, quiz.ID, QuizUpdateRequest{IsPublic: &public})
	if err != nil {
		t.Fatalf("make public: %v", err)
	}
	if updated.AccessKey != nil {
		t.Fatal("key must be cleared when quiz turns public")
	}

	private := false
	updated, err = env.quiz.Update(author, quiz.ID, QuizUpdateRequest{IsPublic: &private})
	if err != nil {
		t.Fatalf("make private: %v", err)
	}
	if updated.AccessKey == nil {
		t.Fatal("key must be minted when quiz turns private")
	}
}

func TestQuizAccessKeyHiddenFromOthers(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	viewer := env.createUser(t, "bob")
	quiz := env.createQuiz(t, author, false)
	key := *quiz.AccessKey

	view, err := env.quiz.GetForViewer(quiz.ID, viewer, key)
	if err != nil {
		t.Fatalf("view with key: %v", err)
	}
	if view.AccessKey != nil {
		t.Fatal("access key must not leak to non-authors")
	}

	authorView, err := env.quiz.GetForViewer(quiz.ID, author, "")
	if err != nil {
		t.Fatalf("author view: %v", err)
	}
	if authorView.AccessKey == nil {
		t.Fatal("author must see the access key")
	}
}

func TestGetPrivateQuizForbiddenWithoutKey(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	viewer := env.createUser(t, "bob")
	quiz := env.createQuiz(t, author, false)

	_, err := env.quiz.GetForViewer(quiz.ID, viewer, "")
	if util.KindOf(err) != util.KindForbidden {
		t.Fatalf("expected Forbidden, got %v", err)
	}

	// Key comparison is case-insensitive on input.
	lower := strings.ToLower(*quiz.AccessKey)
	if _, err := env.quiz.GetForViewer(quiz.ID, viewer, lower); err != nil {
		t.Fatalf("lowercased key should match: %v", err)
	}
}

func TestConnectByCode(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	quiz := env.createQuiz(t, author, false)
	key := *quiz.AccessKey

	view, err := env.quiz.ConnectByCode(strings.ToLower(key))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if view.ID != quiz.ID {
		t.Fatalf("connected to wrong quiz %d", view.ID)
	}

	if _, err := env.quiz.ConnectByCode("AB"); util.KindOf(err) != util.KindValidation {
		t.Fatalf("short code should be Validation, got %v", err)
	}
	if _, err := env.quiz.ConnectByCode("ZZZZZ"); util.KindOf(err) != util.KindNotFound {
		t.Fatalf("unknown code should be NotFound, got %v", err)
	}
}

func TestSoftDeletedQuizBehavesAsMissing(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	player := env.createUser(t, "bob")
	quiz := env.createQuiz(t, author, true)
	env.addQuestion(t, author, quiz.ID)

	if err := env.quiz.Delete(author, quiz.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := env.quiz.GetForViewer(quiz.ID, player, ""); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound on view, got %v", err)
	}
	if _, err := env.attempt.Start(quiz.ID, player, ""); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound on start, got %v", err)
	}
	if err := env.quiz.Delete(author, quiz.ID); util.KindOf(err) != util.KindConflict {
		t.Fatalf("double delete should be Conflict, got %v", err)
	}

	public, err := env.quiz.ListPublic()
	if err != nil {
		t.Fatalf("list public: %v", err)
	}
	for _, q := range public {
		if q.ID == quiz.ID {
			t.Fatal("deleted quiz leaked into the public listing")
		}
	}
}

func TestQuizUpdateAuthorOnly(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	other := env.createUser(t, "bob")
	quiz := env.createQuiz(t, author, true)

	title := "Renamed"
	if _, err := env.quiz.Update(other, quiz.ID, QuizUpdateRequest{Title: &title}); util.KindOf(err) != util.KindForbidden {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	if err := env.quiz.Delete(other, quiz.ID); util.KindOf(err) != util.KindForbidden {
		t.Fatalf("expected Forbidden, got %v", err)
	}
}

func TestListPublicByCategory(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")

	category := &model.Category{Name: "Geography", Description: "Maps and places"}
	if err := env.category.Create(category); err != nil {
		t.Fatalf("create category: %v", err)
	}

	isPublic := true
	if _, err := env.quiz.Create(author, QuizCreateRequest{
		Title:      "Rivers of the World",
		CategoryID: &category.ID,
		IsPublic:   &isPublic,
	}); err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	env.createQuiz(t, author, true)

	quizzes, err := env.quiz.ListPublicByCategory("Geography")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(quizzes) != 1 || quizzes[0].Title != "Rivers of the World" {
		t.Fatalf("unexpected listing %+v", quizzes)
	}

	if _, err := env.quiz.ListPublicByCategory("Nope"); !errors.Is(err, util.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
