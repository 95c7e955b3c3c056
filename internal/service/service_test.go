package service

import (
	"testing"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	users    *repository.UserRepository
	category *repository.CategoryRepository
	quiz     *QuizService
	question *QuestionService
	attempt  *AttemptService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// One connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	optionRepo := repository.NewOptionRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	userAnswerRepo := repository.NewUserAnswerRepository(db)

	return &testEnv{
		db:       db,
		users:    userRepo,
		category: categoryRepo,
		quiz:     NewQuizService(quizRepo, questionRepo, categoryRepo),
		question: NewQuestionService(questionRepo, optionRepo, quizRepo, userAnswerRepo, db),
		attempt:  NewAttemptService(attemptRepo, quizRepo, questionRepo, optionRepo, userAnswerRepo, userRepo, db),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) model.Principal {
	t.Helper()
	user := &model.User{Username: username, Password: "x"}
	if err := e.users.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return model.UserPrincipal(user.ID)
}

func (e *testEnv) createQuiz(t *testing.T, author model.Principal, isPublic bool) *QuizView {
	t.Helper()
	view, err := e.quiz.Create(author, QuizCreateRequest{
		Title:    "Capitals of Europe",
		IsPublic: &isPublic,
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return view
}

// addQuestion attaches a single-choice question with one correct and one
// wrong option and returns the resulting view with correctness flags.
func (e *testEnv) addQuestion(t *testing.T, author model.Principal, quizID uint) *QuestionView {
	t.Helper()
	view, err := e.question.Create(author, QuestionCreateRequest{
		QuizID: quizID,
		Text:   "What is the capital of France?",
		Type:   model.SingleChoice,
		Options: []OptionInput{
			{Text: "Paris", IsCorrect: true},
			{Text: "Lyon"},
		},
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	return view
}

func correctOption(t *testing.T, q *QuestionView) uint {
	t.Helper()
	for _, o := range q.Options {
		if o.IsCorrect != nil && *o.IsCorrect {
			return o.ID
		}
	}
	t.Fatal("no correct option in view")
	return 0
}

func wrongOption(t *testing.T, q *QuestionView) uint {
	t.Helper()
	for _, o := range q.Options {
		if o.IsCorrect == nil || !*o.IsCorrect {
			return o.ID
		}
	}
	t.Fatal("no wrong option in view")
	return 0
}
