package service

import (
	"errors"
	"strings"
	"time"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"gorm.io/gorm"
)

const accessKeyRetries = 5

type QuizService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	CategoryRepo *repository.CategoryRepository
	Policy       AccessPolicy
}

func NewQuizService(quizRepo *repository.QuizRepository, questionRepo *repository.QuestionRepository, categoryRepo *repository.CategoryRepository) *QuizService {
	return &QuizService{
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		CategoryRepo: categoryRepo,
	}
}

type QuizCreateRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	CategoryID       *uint  `json:"categoryId"`
	IsPublic         *bool  `json:"isPublic"`
	TimeLimitSeconds int    `json:"timeLimitSeconds"`
}

type QuizUpdateRequest struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	CategoryID       *uint   `json:"categoryId"`
	IsPublic         *bool   `json:"isPublic"`
	TimeLimitSeconds *int    `json:"timeLimitSeconds"`
}

// QuizView is the outbound quiz payload; AccessKey is present only when the
// viewer is the author of a private quiz.
type QuizView struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	CategoryID       *uint     `json:"categoryId,omitempty"`
	IsPublic         bool      `json:"isPublic"`
	TimeLimitSeconds int       `json:"timeLimitSeconds"`
	AuthorID         uint      `json:"authorId"`
	IsDeleted        bool      `json:"isDeleted"`
	CreatedAt        time.Time `json:"createdAt"`
	AccessKey        *string   `json:"accessKey,omitempty"`
}

func (s *QuizService) view(quiz *model.Quiz, p model.Principal) QuizView {
	v := QuizView{
		ID:               quiz.ID,
		Title:            quiz.Title,
		Description:      quiz.Description,
		CategoryID:       quiz.CategoryID,
		IsPublic:         quiz.IsPublic,
		TimeLimitSeconds: quiz.TimeLimitSeconds,
		AuthorID:         quiz.AuthorID,
		IsDeleted:        quiz.IsDeleted,
		CreatedAt:        quiz.CreatedAt,
	}
	if s.Policy.CanSeeAccessKey(quiz, p) {
		v.AccessKey = quiz.AccessKey
	}
	return v
}

func (s *QuizService) Views(quizzes []model.Quiz, p model.Principal) []QuizView {
	views := make([]QuizView, 0, len(quizzes))
	for i := range quizzes {
		views = append(views, s.view(&quizzes[i], p))
	}
	return views
}

// findPlayable resolves a quiz treating soft-deleted rows as absent.
func (s *QuizService) findPlayable(id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if quiz.IsDeleted {
		return nil, util.ErrQuizNotFound
	}
	return quiz, nil
}

func (s *QuizService) Create(p model.Principal, req QuizCreateRequest) (*QuizView, error) {
	if !p.IsUser() {
		return nil, util.ErrPermissionDenied
	}
	if req.CategoryID != nil {
		if _, err := s.CategoryRepo.FindByID(*req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrCategoryNotFound
			}
			return nil, err
		}
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	quiz := &model.Quiz{
		Title:            req.Title,
		Description:      req.Description,
		CategoryID:       req.CategoryID,
		IsPublic:         isPublic,
		TimeLimitSeconds: req.TimeLimitSeconds,
		AuthorID:         p.UserID,
	}

	if !isPublic {
		key, err := s.uniqueAccessKey()
		if err != nil {
			return nil, err
		}
		quiz.AccessKey = &key
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	v := s.view(quiz, p)
	return &v, nil
}

func (s *QuizService) Update(p model.Principal, id uint, req QuizUpdateRequest) (*QuizView, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !s.Policy.IsAuthor(quiz, p) {
		return nil, util.E(util.KindForbidden, "only the author of a quiz can edit it")
	}
	if quiz.IsDeleted {
		return nil, util.E(util.KindConflict, "quiz was deleted")
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.CategoryID != nil {
		if _, err := s.CategoryRepo.FindByID(*req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrCategoryNotFound
			}
			return nil, err
		}
		quiz.CategoryID = req.CategoryID
	}
	if req.TimeLimitSeconds != nil {
		quiz.TimeLimitSeconds = *req.TimeLimitSeconds
	}

	// Visibility toggles keep the key-iff-private invariant.
	if req.IsPublic != nil && *req.IsPublic != quiz.IsPublic {
		if *req.IsPublic {
			quiz.IsPublic = true
			quiz.AccessKey = nil
		} else {
			key, err := s.uniqueAccessKey()
			if err != nil {
				return nil, err
			}
			quiz.IsPublic = false
			quiz.AccessKey = &key
		}
	}

	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	v := s.view(quiz, p)
	return &v, nil
}

// Delete soft-deletes; the row and its questions stay in storage.
func (s *QuizService) Delete(p model.Principal, id uint) error {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}
	if !s.Policy.IsAuthor(quiz, p) {
		return util.E(util.KindForbidden, "only the author of a quiz can delete it")
	}
	if quiz.IsDeleted {
		return util.E(util.KindConflict, "quiz was deleted")
	}
	quiz.IsDeleted = true
	return s.QuizRepo.Update(quiz)
}

func (s *QuizService) GetForViewer(id uint, p model.Principal, accessKey string) (*QuizView, error) {
	quiz, err := s.findPlayable(id)
	if err != nil {
		return nil, err
	}
	if !s.Policy.CanViewQuiz(quiz, p, accessKey) {
		return nil, util.ErrAccessKeyRequired
	}
	v := s.view(quiz, p)
	return &v, nil
}

// ConnectByCode resolves a private quiz from its 5-character access code.
func (s *QuizService) ConnectByCode(code string) (*QuizView, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != util.AccessKeyLength {
		return nil, util.E(util.KindValidation, "access code must be 5 characters long")
	}
	quiz, err := s.QuizRepo.FindByAccessKey(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.E(util.KindNotFound, "quiz not found or code is invalid")
		}
		return nil, err
	}
	if quiz.IsDeleted {
		return nil, util.E(util.KindNotFound, "quiz not found or code is invalid")
	}
	v := s.view(quiz, model.Principal{})
	return &v, nil
}

func (s *QuizService) ListPublic() ([]model.Quiz, error) {
	return s.QuizRepo.ListPublic()
}

func (s *QuizService) ListByAuthor(p model.Principal) ([]model.Quiz, error) {
	if !p.IsUser() {
		return nil, util.ErrPermissionDenied
	}
	return s.QuizRepo.ListByAuthor(p.UserID)
}

func (s *QuizService) ListPublicByCategory(categoryName string) ([]model.Quiz, error) {
	category, err := s.CategoryRepo.FindByName(categoryName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}
	return s.QuizRepo.ListPublicByCategory(category.ID)
}

func (s *QuizService) uniqueAccessKey() (string, error) {
	for i := 0; i < accessKeyRetries; i++ {
		key, err := util.GenerateAccessKey()
		if err != nil {
			return "", err
		}
		_, err = s.QuizRepo.FindByAccessKey(key)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return key, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("could not generate a unique access key")
}
