package category

import (
	"context"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/logger"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uint) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) Create(ctx context.Context, category *domain.Category) (domain.Category, error) {
	if category.Name == "" || category.Slug == "" {
		return domain.Category{}, apperr.Validation("category name and slug are required")
	}

	newCategory := domain.Category{
		Name: category.Name,
		Slug: category.Slug,
	}

	if err := s.categoryRepo.Create(ctx, &newCategory); err != nil {
		logger.Error("Failed to create category", err)
		return domain.Category{}, err
	}

	return newCategory, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uint) (domain.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *categoryService) GetAll(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

func (s *categoryService) Update(ctx context.Context, id uint, updateData *domain.Category) (domain.Category, error) {
	existing, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}

	if updateData.Name != "" {
		existing.Name = updateData.Name
	}

	if updateData.Slug != "" {
		existing.Slug = updateData.Slug
	}

	if err := s.categoryRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update category", err)
		return domain.Category{}, err
	}

	return existing, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.categoryRepo.Delete(ctx, id)
}
