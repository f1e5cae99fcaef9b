package rest

import (
	"context"
	"net/http"
	"time"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PostService interface {
	Create(ctx context.Context, post *domain.Post) (domain.Post, error)
	GetByID(ctx context.Context, id uint) (domain.Post, error)
	GetAll(ctx context.Context, page, limit int, status string) ([]domain.Post, int64, error)
	Update(ctx context.Context, id uint, updateData *domain.Post) (domain.Post, error)
	Delete(ctx context.Context, id uint) error
}

type PostHandler struct {
	postService PostService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewPostHandler(postService PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type PostRequest struct {
	Title  string `json:"title" validate:"required,min=3"`
	Slug   string `json:"slug" validate:"required"`
	Body   string `json:"body,omitempty"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=DRAFT PUBLISHED"`
}

type PostUpdateRequest struct {
	Title  string `json:"title,omitempty"`
	Slug   string `json:"slug,omitempty"`
	Body   string `json:"body,omitempty"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=DRAFT PUBLISHED"`
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	var req PostRequest

	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	adminID, _ := c.Get("admin_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	post, err := h.postService.Create(ctx, &domain.Post{
		Title:    req.Title,
		Slug:     req.Slug,
		Body:     req.Body,
		Status:   req.Status,
		AuthorID: adminID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.Success("Post created", post))
}

func (h *PostHandler) GetPostByID(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	post, err := h.postService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Post found", post))
}

func (h *PostHandler) GetAllPosts(c echo.Context) error {
	page, limit := pageLimit(c)
	status := c.QueryParam("status")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	posts, total, err := h.postService.GetAll(ctx, page, limit, status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.SuccessWithMeta("Posts found", posts, paginationMeta(page, limit, total)))
}

func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req PostUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	post, err := h.postService.Update(ctx, id, &domain.Post{
		Title:  req.Title,
		Slug:   req.Slug,
		Body:   req.Body,
		Status: req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Post updated", post))
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.postService.Delete(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Post deleted", nil))
}
