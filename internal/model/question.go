package model

type QuestionType string

const (
	SingleChoice   QuestionType = "single"
	MultipleChoice QuestionType = "multiple"
)

type Question struct {
	BaseModel
	QuizID   uint         `gorm:"index;not null" json:"quizId"`
	Text     string       `gorm:"size:1000;not null" json:"text"`
	Type     QuestionType `gorm:"size:20;not null" json:"type"`
	Position int          `json:"position"`
}

func (Question) TableName() string {
	return "questions"
}
