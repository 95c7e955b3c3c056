package model

type User struct {
	BaseModel
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:100;not null" json:"-"`
	Avatar   string `gorm:"size:255" json:"avatar"`
}

func (User) TableName() string {
	return "users"
}
