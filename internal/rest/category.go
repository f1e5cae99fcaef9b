package rest

import (
	"context"
	"net/http"
	"time"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/response"

	"github.com/labstack/echo/v4"
)

type CategoryService interface {
	Create(ctx context.Context, category *domain.Category) (domain.Category, error)
	GetByID(ctx context.Context, id uint) (domain.Category, error)
	GetAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, id uint, updateData *domain.Category) (domain.Category, error)
	Delete(ctx context.Context, id uint) error
}

type CategoryHandler struct {
	categoryService CategoryService
	timeout         time.Duration
}

func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		timeout:         10 * time.Second,
	}
}

type CategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest

	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	category, err := h.categoryService.Create(ctx, &domain.Category{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.Success("Category created", category))
}

func (h *CategoryHandler) GetCategoryByID(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	category, err := h.categoryService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Category found", category))
}

func (h *CategoryHandler) GetAllCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.categoryService.GetAll(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Categories found", categories))
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	category, err := h.categoryService.Update(ctx, id, &domain.Category{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Category updated", category))
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.categoryService.Delete(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Category deleted", nil))
}
