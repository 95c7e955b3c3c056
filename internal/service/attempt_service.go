package service

import (
	"errors"
	"time"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"gorm.io/gorm"
)

type AttemptService struct {
	AttemptRepo    *repository.AttemptRepository
	QuizRepo       *repository.QuizRepository
	QuestionRepo   *repository.QuestionRepository
	OptionRepo     *repository.OptionRepository
	UserAnswerRepo *repository.UserAnswerRepository
	UserRepo       *repository.UserRepository
	Policy         AccessPolicy
	DB             *gorm.DB
}

func NewAttemptService(attemptRepo *repository.AttemptRepository, quizRepo *repository.QuizRepository, questionRepo *repository.QuestionRepository, optionRepo *repository.OptionRepository, userAnswerRepo *repository.UserAnswerRepository, userRepo *repository.UserRepository, db *gorm.DB) *AttemptService {
	return &AttemptService{
		AttemptRepo:    attemptRepo,
		QuizRepo:       quizRepo,
		QuestionRepo:   questionRepo,
		OptionRepo:     optionRepo,
		UserAnswerRepo: userAnswerRepo,
		UserRepo:       userRepo,
		DB:             db,
	}
}

type AnswerSubmission struct {
	QuestionID        uint   `json:"questionId" binding:"required"`
	SelectedOptionIDs []uint `json:"selectedOptionIds"`
}

type LeaderboardEntry struct {
	AttemptID        uint       `json:"attemptId"`
	Username         string     `json:"username"`
	Score            int        `json:"score"`
	TimeSpentSeconds int        `json:"timeSpentSeconds"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	UserID           *uint      `json:"userId,omitempty"`
	GuestSessionID   *string    `json:"guestSessionId,omitempty"`
}

// Start creates an in-progress attempt for the principal. Multiple
// concurrent in-progress attempts per (principal, quiz) are allowed.
func (s *AttemptService) Start(quizID uint, p model.Principal, accessKey string) (*model.Attempt, error) {
	if p.IsZero() {
		return nil, util.ErrPermissionDenied
	}

	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if quiz.IsDeleted {
		return nil, util.ErrQuizNotFound
	}
	if !s.Policy.CanPlayQuiz(quiz, p, accessKey) {
		return nil, util.ErrAccessKeyRequired
	}

	count, err := s.QuestionRepo.CountByQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, util.ErrQuizHasNoQuestions
	}

	attempt := &model.Attempt{
		QuizID:    quizID,
		Status:    model.AttemptInProgress,
		StartedAt: time.Now().UTC(),
	}
	if p.IsUser() {
		uid := p.UserID
		attempt.UserID = &uid
	} else {
		sid := p.GuestSessionID
		attempt.GuestSessionID = &sid
	}

	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// Finish grades the submission and completes the attempt exactly once.
// Answers and the completed state persist in one transaction; any rejected
// answer aborts the whole call with zero rows written.
func (s *AttemptService) Finish(attemptID uint, p model.Principal, answers []AnswerSubmission) (*model.Attempt, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if !attempt.OwnedBy(p) {
		return nil, util.E(util.KindForbidden, "only the participant who started the attempt can finish it")
	}
	if attempt.IsCompleted() {
		return nil, util.ErrAttemptCompleted
	}

	questions, err := s.QuestionRepo.ListByQuiz(attempt.QuizID)
	if err != nil {
		return nil, err
	}
	questionIDs := make([]uint, 0, len(questions))
	for _, q := range questions {
		questionIDs = append(questionIDs, q.ID)
	}
	options, err := s.OptionRepo.ListByQuestionIDs(questionIDs)
	if err != nil {
		return nil, err
	}

	correctSets := make(map[uint]map[uint]bool, len(questions))
	optionOwner := make(map[uint]uint, len(options))
	for _, id := range questionIDs {
		correctSets[id] = make(map[uint]bool)
	}
	for _, o := range options {
		optionOwner[o.ID] = o.QuestionID
		if o.IsCorrect {
			correctSets[o.QuestionID][o.ID] = true
		}
	}

	selected := make(map[uint]map[uint]bool, len(answers))
	var rows []model.UserAnswer
	for _, a := range answers {
		if _, ok := correctSets[a.QuestionID]; !ok {
			return nil, util.E(util.KindConflict, "answer references a question outside this quiz")
		}
		if _, dup := selected[a.QuestionID]; dup {
			return nil, util.E(util.KindValidation, "duplicate answer for the same question")
		}
		set := make(map[uint]bool, len(a.SelectedOptionIDs))
		for _, optID := range a.SelectedOptionIDs {
			owner, ok := optionOwner[optID]
			if !ok || owner != a.QuestionID {
				return nil, util.E(util.KindConflict, "selected option does not belong to the answered question")
			}
			if set[optID] {
				continue
			}
			set[optID] = true
			rows = append(rows, model.UserAnswer{
				AttemptID:      attempt.ID,
				QuestionID:     a.QuestionID,
				ChosenOptionID: optID,
			})
		}
		selected[a.QuestionID] = set
	}

	// Grade by iterating the quiz's question list so the score is
	// independent of submission order; unanswered questions grade as the
	// empty set. A question is correct only on exact set equality.
	score := 0
	for _, q := range questions {
		if setsEqual(selected[q.ID], correctSets[q.ID]) {
			score++
		}
	}

	now := time.Now().UTC()
	timeSpent := int(now.Sub(attempt.StartedAt).Seconds())
	if timeSpent < 0 {
		timeSpent = 0
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.UserAnswerRepo.CreateAll(tx, rows); err != nil {
			return err
		}
		completed, err := s.AttemptRepo.CompleteInProgress(tx, attempt.ID, score, timeSpent, now)
		if err != nil {
			return err
		}
		if !completed {
			// A concurrent Finish won the race; roll everything back.
			return util.ErrAttemptCompleted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.AttemptRepo.FindByID(attempt.ID)
}

func setsEqual(a, b map[uint]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// GetForViewer returns an attempt if the caller is the quiz author, the
// attempt's user, or the owning guest session.
func (s *AttemptService) GetForViewer(id uint, p model.Principal) (*model.Attempt, error) {
	attempt, err := s.AttemptRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	quiz, err := s.QuizRepo.FindByID(attempt.QuizID)
	if err != nil {
		return nil, err
	}
	if quiz.IsDeleted {
		return nil, util.ErrQuizNotFound
	}
	if !s.Policy.CanViewAttempt(quiz, attempt, p) {
		return nil, util.E(util.KindForbidden, "only the quiz author, the attempt owner, or the guest session owner can view this attempt")
	}
	return attempt, nil
}

// AnswersForViewer lists the chosen options of an attempt, same gate as
// GetForViewer.
func (s *AttemptService) AnswersForViewer(attemptID uint, p model.Principal) ([]model.UserAnswer, error) {
	if _, err := s.GetForViewer(attemptID, p); err != nil {
		return nil, err
	}
	return s.UserAnswerRepo.ListByAttempt(attemptID)
}

// ListByQuiz applies the listing scope: author sees all, an authenticated
// non-author their own, a guest the attempts of their session.
func (s *AttemptService) ListByQuiz(quizID uint, p model.Principal) ([]model.Attempt, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if quiz.IsDeleted {
		return nil, util.ErrQuizNotFound
	}

	switch s.Policy.AttemptListingScope(quiz, p) {
	case ScopeAll:
		return s.AttemptRepo.ListByQuiz(quizID)
	case ScopeOwnUser:
		return s.AttemptRepo.ListByUserAndQuiz(p.UserID, quizID)
	case ScopeOwnGuest:
		return s.AttemptRepo.ListByGuestAndQuiz(p.GuestSessionID, quizID)
	default:
		return nil, util.E(util.KindForbidden, "viewing attempts requires authorization or a guest session id")
	}
}

func (s *AttemptService) ListByUser(p model.Principal) ([]model.Attempt, error) {
	if !p.IsUser() {
		return nil, util.ErrPermissionDenied
	}
	return s.AttemptRepo.ListByUser(p.UserID)
}

// Leaderboard ranks completed attempts. A private quiz's board is visible
// to the author, key holders, and anyone with at least one attempt on it.
func (s *AttemptService) Leaderboard(quizID uint, p model.Principal, accessKey string) ([]LeaderboardEntry, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if quiz.IsDeleted {
		return nil, util.ErrQuizNotFound
	}

	hasAttempt, err := s.AttemptRepo.HasAttemptOnQuiz(p, quizID)
	if err != nil {
		return nil, err
	}
	if !s.Policy.CanViewLeaderboard(quiz, p, accessKey, hasAttempt) {
		return nil, util.E(util.KindForbidden, "the leaderboard of a private quiz requires an access key or a prior attempt")
	}

	attempts, err := s.AttemptRepo.ListCompletedByQuiz(quizID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(attempts))
	for _, a := range attempts {
		if a.UserID != nil {
			userIDs = append(userIDs, *a.UserID)
		}
	}
	users, err := s.UserRepo.FindByIDs(userIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(attempts))
	for _, a := range attempts {
		entry := LeaderboardEntry{
			AttemptID:        a.ID,
			Username:         "Guest",
			Score:            a.Score,
			TimeSpentSeconds: a.TimeSpentSeconds,
			CompletedAt:      a.CompletedAt,
			UserID:           a.UserID,
			GuestSessionID:   a.GuestSessionID,
		}
		if a.UserID != nil {
			if u, ok := users[*a.UserID]; ok {
				entry.Username = u.Username
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
