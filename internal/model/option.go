package model

// Option carries the correctness flag; it is stripped from payloads for
// everyone but the quiz author (see service.AccessPolicy).
type Option struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"size:500;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Option) TableName() string {
	return "options"
}
