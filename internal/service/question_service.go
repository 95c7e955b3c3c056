package service

import (
	"errors"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	QuestionRepo   *repository.QuestionRepository
	OptionRepo     *repository.OptionRepository
	QuizRepo       *repository.QuizRepository
	UserAnswerRepo *repository.UserAnswerRepository
	Policy         AccessPolicy
	DB             *gorm.DB
}

func NewQuestionService(questionRepo *repository.QuestionRepository, optionRepo *repository.OptionRepository, quizRepo *repository.QuizRepository, userAnswerRepo *repository.UserAnswerRepository, db *gorm.DB) *QuestionService {
	return &QuestionService{
		QuestionRepo:   questionRepo,
		OptionRepo:     optionRepo,
		QuizRepo:       quizRepo,
		UserAnswerRepo: userAnswerRepo,
		DB:             db,
	}
}

type OptionInput struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionCreateRequest struct {
	QuizID  uint               `json:"quizId" binding:"required"`
	Text    string             `json:"text" binding:"required"`
	Type    model.QuestionType `json:"type" binding:"required,oneof=single multiple"`
	Options []OptionInput      `json:"options" binding:"required"`
}

type QuestionUpdateRequest struct {
	Text    *string             `json:"text"`
	Type    *model.QuestionType `json:"type"`
	Options []OptionInput       `json:"options"`
}

// OptionView elides IsCorrect for everyone but the quiz author.
type OptionView struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect *bool  `json:"isCorrect,omitempty"`
}

type QuestionView struct {
	ID      uint               `json:"id"`
	QuizID  uint               `json:"quizId"`
	Text    string             `json:"text"`
	Type    model.QuestionType `json:"type"`
	Options []OptionView       `json:"options"`
}

// validateOptions enforces the authoring rules: at least two options, and a
// correct-count matching the question type (single: exactly 1, multiple: 2+).
func validateOptions(qtype model.QuestionType, options []OptionInput) error {
	if len(options) < 2 {
		return util.E(util.KindConflict, "a question needs at least 2 options")
	}
	correct := 0
	for _, o := range options {
		if o.IsCorrect {
			correct++
		}
	}
	switch qtype {
	case model.SingleChoice:
		if correct != 1 {
			return util.E(util.KindConflict, "a single-choice question needs exactly one correct option")
		}
	case model.MultipleChoice:
		if correct < 2 {
			return util.E(util.KindConflict, "a multiple-choice question needs at least two correct options")
		}
	default:
		return util.E(util.KindValidation, "unknown question type")
	}
	return nil
}

func (s *QuestionService) Create(p model.Principal, req QuestionCreateRequest) (*QuestionView, error) {
	quiz, err := s.QuizRepo.FindByID(req.QuizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if quiz.IsDeleted {
		return nil, util.E(util.KindConflict, "quiz was deleted")
	}
	if !s.Policy.IsAuthor(quiz, p) {
		return nil, util.E(util.KindForbidden, "only the quiz author can add questions")
	}
	if err := validateOptions(req.Type, req.Options); err != nil {
		return nil, err
	}

	count, err := s.QuestionRepo.CountByQuiz(quiz.ID)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		QuizID:   quiz.ID,
		Text:     req.Text,
		Type:     req.Type,
		Position: int(count) + 1,
	}

	// Question and options persist as a unit, or not at all.
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		options := make([]model.Option, 0, len(req.Options))
		for _, o := range req.Options {
			options = append(options, model.Option{
				QuestionID: question.ID,
				Text:       o.Text,
				IsCorrect:  o.IsCorrect,
			})
		}
		return tx.Create(&options).Error
	})
	if err != nil {
		return nil, err
	}

	return s.viewByID(question.ID, true)
}

func (s *QuestionService) Update(p model.Principal, id uint, req QuestionUpdateRequest) (*QuestionView, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	quiz, err := s.QuizRepo.FindByID(question.QuizID)
	if err != nil {
		return nil, err
	}
	if !s.Policy.IsAuthor(quiz, p) {
		return nil, util.E(util.KindForbidden, "only the quiz author can edit a question")
	}

	if req.Text != nil {
		question.Text = *req.Text
	}
	if req.Type != nil {
		question.Type = *req.Type
	}
	if req.Options != nil {
		if err := validateOptions(question.Type, req.Options); err != nil {
			return nil, err
		}
	} else if req.Type != nil {
		// Type changed without a new option set: the existing options must
		// still satisfy the new type's correct-count rule.
		existing, err := s.OptionRepo.ListByQuestion(question.ID)
		if err != nil {
			return nil, err
		}
		inputs := make([]OptionInput, 0, len(existing))
		for _, o := range existing {
			inputs = append(inputs, OptionInput{Text: o.Text, IsCorrect: o.IsCorrect})
		}
		if err := validateOptions(question.Type, inputs); err != nil {
			return nil, err
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(question).Error; err != nil {
			return err
		}
		if req.Options == nil {
			return nil
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		options := make([]model.Option, 0, len(req.Options))
		for _, o := range req.Options {
			options = append(options, model.Option{
				QuestionID: question.ID,
				Text:       o.Text,
				IsCorrect:  o.IsCorrect,
			})
		}
		return tx.Create(&options).Error
	})
	if err != nil {
		return nil, err
	}

	return s.viewByID(question.ID, true)
}

func (s *QuestionService) Delete(p model.Principal, id uint) error {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	quiz, err := s.QuizRepo.FindByID(question.QuizID)
	if err != nil {
		return err
	}
	if !s.Policy.IsAuthor(quiz, p) {
		return util.E(util.KindForbidden, "only the quiz author can delete a question")
	}

	// Restrict: recorded answers reference the question and its options.
	answered, err := s.UserAnswerRepo.CountByQuestion(question.ID)
	if err != nil {
		return err
	}
	if answered > 0 {
		return util.E(util.KindConflict, "question has recorded answers and cannot be deleted")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, question.ID).Error
	})
}

// ListForViewer returns a quiz's questions with correctness flags included
// only when the policy allows (author); play access is gated the same way
// as viewing the quiz itself.
func (s *QuestionService) ListForViewer(quizID uint, p model.Principal, accessKey string) ([]QuestionView, error) {
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
		return nil, util.E(util.KindForbidden, "an access key is required to view the questions in this quiz")
	}

	withCorrectness := s.Policy.CanSeeCorrectness(quiz, p)

	questions, err := s.QuestionRepo.ListByQuiz(quizID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	options, err := s.OptionRepo.ListByQuestionIDs(ids)
	if err != nil {
		return nil, err
	}
	byQuestion := make(map[uint][]model.Option, len(questions))
	for _, o := range options {
		byQuestion[o.QuestionID] = append(byQuestion[o.QuestionID], o)
	}

	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, buildQuestionView(q, byQuestion[q.ID], withCorrectness))
	}
	return views, nil
}

func (s *QuestionService) viewByID(id uint, withCorrectness bool) (*QuestionView, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	options, err := s.OptionRepo.ListByQuestion(id)
	if err != nil {
		return nil, err
	}
	v := buildQuestionView(*question, options, withCorrectness)
	return &v, nil
}

func buildQuestionView(q model.Question, options []model.Option, withCorrectness bool) QuestionView {
	view := QuestionView{
		ID:      q.ID,
		QuizID:  q.QuizID,
		Text:    q.Text,
		Type:    q.Type,
		Options: make([]OptionView, 0, len(options)),
	}
	for _, o := range options {
		ov := OptionView{ID: o.ID, Text: o.Text}
		if withCorrectness {
			correct := o.IsCorrect
			ov.IsCorrect = &correct
		}
		view.Options = append(view.Options, ov)
	}
	return view
}
