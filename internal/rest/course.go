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

type CourseService interface {
	Create(ctx context.Context, course *domain.Course) (domain.Course, error)
	GetByID(ctx context.Context, id uint) (domain.Course, error)
	GetAll(ctx context.Context, page, limit int, categoryID, tutorID uint) ([]domain.Course, int64, error)
	Update(ctx context.Context, id uint, updateData *domain.Course) (domain.Course, error)
	Delete(ctx context.Context, id uint) error
}

type CourseHandler struct {
	courseService CourseService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewCourseHandler(courseService CourseService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type CourseRequest struct {
	Title         string `json:"title" validate:"required,min=3"`
	Slug          string `json:"slug" validate:"required"`
	Price         int64  `json:"price" validate:"gte=0"`
	OriginalPrice int64  `json:"original_price" validate:"gte=0"`
	CategoryID    uint   `json:"category_id" validate:"required"`
	TutorID       uint   `json:"tutor_id" validate:"required"`
}

type CourseUpdateRequest struct {
	Title         string `json:"title,omitempty"`
	Slug          string `json:"slug,omitempty"`
	Price         int64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	OriginalPrice int64  `json:"original_price,omitempty" validate:"omitempty,gte=0"`
	CategoryID    uint   `json:"category_id,omitempty"`
	TutorID       uint   `json:"tutor_id,omitempty"`
}

func (h *CourseHandler) CreateCourse(c echo.Context) error {
	var req CourseRequest

	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	course, err := h.courseService.Create(ctx, &domain.Course{
		Title:         req.Title,
		Slug:          req.Slug,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		CategoryID:    req.CategoryID,
		TutorID:       req.TutorID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.Success("Course created", course))
}

func (h *CourseHandler) GetCourseByID(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	course, err := h.courseService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Course found", course))
}

func (h *CourseHandler) GetAllCourses(c echo.Context) error {
	page, limit := pageLimit(c)
	categoryID := uintQuery(c, "category_id")
	tutorID := uintQuery(c, "tutor_id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	courses, total, err := h.courseService.GetAll(ctx, page, limit, categoryID, tutorID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.SuccessWithMeta("Courses found", courses, paginationMeta(page, limit, total)))
}

func (h *CourseHandler) UpdateCourse(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req CourseUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	course, err := h.courseService.Update(ctx, id, &domain.Course{
		Title:         req.Title,
		Slug:          req.Slug,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		CategoryID:    req.CategoryID,
		TutorID:       req.TutorID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Course updated", course))
}

func (h *CourseHandler) DeleteCourse(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.courseService.Delete(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Course deleted", nil))
}
