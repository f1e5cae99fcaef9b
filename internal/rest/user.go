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

type UserService interface {
	Create(ctx context.Context, user *domain.User) (domain.User, error)
	GetByID(ctx context.Context, id uint) (domain.User, error)
	GetAll(ctx context.Context, page, limit int, search string) ([]domain.User, int64, error)
	Update(ctx context.Context, id uint, updateData *domain.User) (domain.User, error)
	Delete(ctx context.Context, id uint) error
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type UserRequest struct {
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=10,max=15"`
	NationalID string `json:"national_id,omitempty"`
}

type UserUpdateRequest struct {
	FullName   string `json:"full_name,omitempty"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	NationalID string `json:"national_id,omitempty"`
	IsActive   bool   `json:"is_active"`
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req UserRequest

	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.Create(ctx, &domain.User{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		NationalID: req.NationalID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.Success("User created", user))
}

func (h *UserHandler) GetUserByID(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("User found", user))
}

func (h *UserHandler) GetAllUsers(c echo.Context) error {
	page, limit := pageLimit(c)
	search := c.QueryParam("search")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, total, err := h.userService.GetAll(ctx, page, limit, search)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.SuccessWithMeta("Users found", users, paginationMeta(page, limit, total)))
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.Update(ctx, id, &domain.User{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		NationalID: req.NationalID,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("User updated", user))
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.Delete(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("User deleted", nil))
}
