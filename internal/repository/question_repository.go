package repository

import (
	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	if err := r.DB.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) ListByQuiz(quizID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("quiz_id = ?", quizID).
		Order("position, id").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CountByQuiz(quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}
