package postgres

import (
	"context"

	"learnDesk/domain"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{
		DB: db,
	}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	err := r.DB.WithContext(ctx).Create(post).Error
	return translate(err, "post not found", "post slug already exists")
}

func (r *PostRepository) FindByID(ctx context.Context, id uint) (domain.Post, error) {
	var post domain.Post

	err := r.DB.WithContext(ctx).First(&post, id).Error
	if err != nil {
		return domain.Post{}, translate(err, "post not found", "")
	}

	return post, nil
}

func (r *PostRepository) FindAll(ctx context.Context, page, limit int, status string) ([]domain.Post, int64, error) {
	var posts []domain.Post
	var total int64

	query := r.DB.WithContext(ctx).Model(&domain.Post{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(page, limit)).Order("id desc").Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	result := r.DB.WithContext(ctx).Model(&domain.Post{}).
		Where("id = ?", post.ID).
		Select("title", "slug", "body", "status", "updated_at").
		Updates(post)
	if result.Error != nil {
		return translate(result.Error, "post not found", "post slug already exists")
	}

	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "post not found", "")
	}

	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Post{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "post not found", "")
	}

	return nil
}
