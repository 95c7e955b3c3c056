package model

// Quiz is referenced by questions and attempts through its id only;
// related rows are resolved via repository lookups, never embedded.
type Quiz struct {
	BaseModel
	Title            string  `gorm:"size:255;not null" json:"title"`
	Description      string  `gorm:"size:1000" json:"description"`
	CategoryID       *uint   `gorm:"index" json:"categoryId,omitempty"`
	IsPublic         bool    `gorm:"not null" json:"isPublic"`
	TimeLimitSeconds int     `json:"timeLimitSeconds"`
	AuthorID         uint    `gorm:"index;not null" json:"authorId"`
	IsDeleted        bool    `gorm:"default:false" json:"isDeleted"`
	// AccessKey is set iff the quiz is private: 5 uppercase characters,
	// unique across all quizzes. Nil for public quizzes.
	AccessKey *string `gorm:"size:5;uniqueIndex" json:"-"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
