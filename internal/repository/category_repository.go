package repository

import (
	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(category *model.Category) error {
	return r.DB.Create(category).Error
}

func (r *CategoryRepository) Update(category *model.Category) error {
	return r.DB.Save(category).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Category{}, id).Error
}

func (r *CategoryRepository) FindByID(id uint) (*model.Category, error) {
	var c model.Category
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) FindByName(name string) (*model.Category, error) {
	var c model.Category
	if err := r.DB.Where("name = ?", name).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) List() ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Order("name").Find(&categories).Error
	return categories, err
}
