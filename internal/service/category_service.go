package service

import (
	"errors"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"gorm.io/gorm"
)

type CategoryService struct {
	CategoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{CategoryRepo: categoryRepo}
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *CategoryService) List() ([]model.Category, error) {
	return s.CategoryRepo.List()
}

func (s *CategoryService) GetByID(id uint) (*model.Category, error) {
	category, err := s.CategoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Create(p model.Principal, req CategoryRequest) (*model.Category, error) {
	if !p.IsUser() {
		return nil, util.ErrPermissionDenied
	}
	_, err := s.CategoryRepo.FindByName(req.Name)
	if err == nil {
		return nil, util.E(util.KindConflict, "a category with that name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.CategoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(p model.Principal, id uint, req CategoryRequest) (*model.Category, error) {
	if !p.IsUser() {
		return nil, util.ErrPermissionDenied
	}
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != category.Name {
		_, err := s.CategoryRepo.FindByName(req.Name)
		if err == nil {
			return nil, util.E(util.KindConflict, "a category with that name already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := s.CategoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}
