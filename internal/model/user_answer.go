package model

// UserAnswer records one chosen option. A multi-select answer produces one
// row per selected option; rows are written in bulk during Finish and never
// mutated afterwards.
type UserAnswer struct {
	BaseModel
	AttemptID      uint `gorm:"not null;uniqueIndex:idx_attempt_question_option" json:"attemptId"`
	QuestionID     uint `gorm:"not null;uniqueIndex:idx_attempt_question_option" json:"questionId"`
	ChosenOptionID uint `gorm:"not null;uniqueIndex:idx_attempt_question_option" json:"chosenOptionId"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
