package repository

import (
	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var q model.Quiz
	if err := r.DB.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepository) FindByAccessKey(key string) (*model.Quiz, error) {
	var q model.Quiz
	if err := r.DB.Where("access_key = ?", key).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepository) ListPublic() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("is_public = ? AND is_deleted = ?", true, false).
		Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListByAuthor(authorID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("author_id = ?", authorID).
		Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListPublicByCategory(categoryID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("category_id = ? AND is_public = ? AND is_deleted = ?", categoryID, true, false).
		Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}
