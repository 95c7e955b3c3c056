package model

type Category struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}

func (Category) TableName() string {
	return "categories"
}
