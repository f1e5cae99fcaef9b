package post

import (
	"context"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/logger"
)

// PostRepository contract interface
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id uint) (domain.Post, error)
	FindAll(ctx context.Context, page, limit int, status string) ([]domain.Post, int64, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id uint) error
}

type postService struct {
	postRepo PostRepository
}

func NewPostService(postRepo PostRepository) *postService {
	return &postService{
		postRepo: postRepo,
	}
}

func (s *postService) Create(ctx context.Context, post *domain.Post) (domain.Post, error) {
	if post.Title == "" || post.Slug == "" {
		return domain.Post{}, apperr.Validation("post title and slug are required")
	}

	if post.Status == "" {
		post.Status = domain.PostStatusDraft
	}

	if post.Status != domain.PostStatusDraft && post.Status != domain.PostStatusPublished {
		return domain.Post{}, apperr.Validation("post status must be DRAFT or PUBLISHED")
	}

	newPost := domain.Post{
		Title:    post.Title,
		Slug:     post.Slug,
		Body:     post.Body,
		Status:   post.Status,
		AuthorID: post.AuthorID,
	}

	if err := s.postRepo.Create(ctx, &newPost); err != nil {
		logger.Error("Failed to create post", err)
		return domain.Post{}, err
	}

	return newPost, nil
}

func (s *postService) GetByID(ctx context.Context, id uint) (domain.Post, error) {
	return s.postRepo.FindByID(ctx, id)
}

func (s *postService) GetAll(ctx context.Context, page, limit int, status string) ([]domain.Post, int64, error) {
	return s.postRepo.FindAll(ctx, page, limit, status)
}

func (s *postService) Update(ctx context.Context, id uint, updateData *domain.Post) (domain.Post, error) {
	existing, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Post not found for update", err)
		return domain.Post{}, err
	}

	if updateData.Title != "" {
		existing.Title = updateData.Title
	}

	if updateData.Slug != "" {
		existing.Slug = updateData.Slug
	}

	if updateData.Body != "" {
		existing.Body = updateData.Body
	}

	if updateData.Status != "" {
		if updateData.Status != domain.PostStatusDraft && updateData.Status != domain.PostStatusPublished {
			return domain.Post{}, apperr.Validation("post status must be DRAFT or PUBLISHED")
		}
		existing.Status = updateData.Status
	}

	if err := s.postRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update post", err)
		return domain.Post{}, err
	}

	return existing, nil
}

func (s *postService) Delete(ctx context.Context, id uint) error {
	if _, err := s.postRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.postRepo.Delete(ctx, id)
}
