package postgres

import (
	"context"

	"learnDesk/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	err := r.DB.WithContext(ctx).Create(category).Error
	return translate(err, "category not found", "category name or slug already exists")
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (domain.Category, error) {
	var category domain.Category

	err := r.DB.WithContext(ctx).First(&category, id).Error
	if err != nil {
		return domain.Category{}, translate(err, "category not found", "")
	}

	return category, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category

	if err := r.DB.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	result := r.DB.WithContext(ctx).Model(&domain.Category{}).
		Where("id = ?", category.ID).
		Select("name", "slug", "updated_at").
		Updates(category)
	if result.Error != nil {
		return translate(result.Error, "category not found", "category name or slug already exists")
	}

	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "category not found", "")
	}

	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Category{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "category not found", "")
	}

	return nil
}
