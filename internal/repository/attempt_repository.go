package repository

import (
	"time"

	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.Attempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var a model.Attempt
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttemptRepository) ListByUser(userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByQuiz(quizID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("quiz_id = ?", quizID).Order("created_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByUserAndQuiz(userID, quizID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByGuestAndQuiz(guestSessionID string, quizID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("guest_session_id = ? AND quiz_id = ?", guestSessionID, quizID).
		Order("created_at DESC").Find(&attempts).Error
	return attempts, err
}

// ListCompletedByQuiz returns completed attempts in leaderboard order:
// best score first, ties broken by faster time, then earlier completion.
func (r *AttemptRepository) ListCompletedByQuiz(quizID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("quiz_id = ? AND status = ?", quizID, model.AttemptCompleted).
		Order("score DESC, time_spent_seconds ASC, completed_at ASC").
		Find(&attempts).Error
	return attempts, err
}

// HasAttemptOnQuiz reports whether the principal has started at least one
// attempt on the quiz; used by the private-leaderboard visibility rule.
func (r *AttemptRepository) HasAttemptOnQuiz(p model.Principal, quizID uint) (bool, error) {
	query := r.DB.Model(&model.Attempt{}).Where("quiz_id = ?", quizID)
	switch {
	case p.IsUser():
		query = query.Where("user_id = ?", p.UserID)
	case p.IsGuest():
		query = query.Where("guest_session_id = ?", p.GuestSessionID)
	default:
		return false, nil
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CompleteInProgress performs the conditional completion update inside tx.
// The status guard makes completion exactly-once: the second of two racing
// Finish calls matches zero rows and is rejected upstream.
func (r *AttemptRepository) CompleteInProgress(tx *gorm.DB, attemptID uint, score, timeSpentSeconds int, completedAt time.Time) (bool, error) {
	res := tx.Model(&model.Attempt{}).
		Where("id = ? AND status = ?", attemptID, model.AttemptInProgress).
		Updates(map[string]interface{}{
			"status":             model.AttemptCompleted,
			"score":              score,
			"time_spent_seconds": timeSpentSeconds,
			"completed_at":       completedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
