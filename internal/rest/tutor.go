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

type TutorService interface {
	Create(ctx context.Context, tutor *domain.Tutor) (domain.Tutor, error)
	GetByID(ctx context.Context, id uint) (domain.Tutor, error)
	GetAll(ctx context.Context, page, limit int) ([]domain.Tutor, int64, error)
	Update(ctx context.Context, id uint, updateData *domain.Tutor) (domain.Tutor, error)
}

type TutorHandler struct {
	tutorService TutorService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewTutorHandler(tutorService TutorService) *TutorHandler {
	return &TutorHandler{
		tutorService: tutorService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type TutorRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Profit   int    `json:"profit" validate:"gte=0,lte=100"`
}

type TutorUpdateRequest struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Profit   int    `json:"profit,omitempty" validate:"omitempty,gte=0,lte=100"`
}

func (h *TutorHandler) CreateTutor(c echo.Context) error {
	var req TutorRequest

	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tutor, err := h.tutorService.Create(ctx, &domain.Tutor{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Profit:   req.Profit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.Success("Tutor created", tutor))
}

func (h *TutorHandler) GetTutorByID(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tutor, err := h.tutorService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Tutor found", tutor))
}

func (h *TutorHandler) GetAllTutors(c echo.Context) error {
	page, limit := pageLimit(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tutors, total, err := h.tutorService.GetAll(ctx, page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.SuccessWithMeta("Tutors found", tutors, paginationMeta(page, limit, total)))
}

func (h *TutorHandler) UpdateTutor(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req TutorUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tutor, err := h.tutorService.Update(ctx, id, &domain.Tutor{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Profit:   req.Profit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Tutor updated", tutor))
}
