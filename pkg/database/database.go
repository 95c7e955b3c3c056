package database

import (
	"fmt"
	"log"

	"quiz_backend/internal/config"
	"quiz_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate creates the schema and seeds the default categories.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Quiz{},
		&model.Question{},
		&model.Option{},
		&model.Attempt{},
		&model.UserAnswer{},
	)
	if err != nil {
		return err
	}

	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count == 0 {
		defaultCategories := []model.Category{
			{Name: "General Knowledge", Description: "A bit of everything"},
			{Name: "Science", Description: "Physics, chemistry and biology"},
			{Name: "History", Description: "Events and people of the past"},
			{Name: "Technology", Description: "Computers, programming and the web"},
			{Name: "Sports", Description: "Games, teams and records"},
		}
		for _, c := range defaultCategories {
			db.Create(&c)
		}
	}

	return nil
}
