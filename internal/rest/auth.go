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

type AdminService interface {
	Login(ctx context.Context, identifier, password string) error
	VerifyOTP(ctx context.Context, identifier, code string) (string, domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) (domain.Admin, error)
	GetByID(ctx context.Context, id uint) (domain.Admin, error)
	GetAll(ctx context.Context, page, limit int) ([]domain.Admin, int64, error)
	Update(ctx context.Context, id uint, updateData *domain.Admin) (domain.Admin, error)
	Delete(ctx context.Context, id uint) error
}

type AuthHandler struct {
	adminService AdminService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewAuthHandler(adminService AdminService) *AuthHandler {
	return &AuthHandler{
		adminService: adminService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type VerifyOTPRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Code       string `json:"code" validate:"required,len=6"`
}

type AdminRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=SUPER ADMIN SUPPORT"`
}

type AdminUpdateRequest struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=SUPER ADMIN SUPPORT"`
}

// Login checks credentials and dispatches a one-time code. The
// response is the same whether or not the identifier exists.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.adminService.Login(ctx, req.Identifier, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Verification code sent", nil))
}

func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req VerifyOTPRequest

	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, admin, err := h.adminService.VerifyOTP(ctx, req.Identifier, req.Code)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Login successful", map[string]interface{}{
		"token": token,
		"admin": admin,
	}))
}

func (h *AuthHandler) CreateAdmin(c echo.Context) error {
	var req AdminRequest

	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	admin, err := h.adminService.Create(ctx, &domain.Admin{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.Success("Admin created", admin))
}

func (h *AuthHandler) GetAdminByID(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	admin, err := h.adminService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Admin found", admin))
}

func (h *AuthHandler) GetAllAdmins(c echo.Context) error {
	page, limit := pageLimit(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	admins, total, err := h.adminService.GetAll(ctx, page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.SuccessWithMeta("Admins found", admins, paginationMeta(page, limit, total)))
}

func (h *AuthHandler) UpdateAdmin(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req AdminUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	admin, err := h.adminService.Update(ctx, id, &domain.Admin{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Admin updated", admin))
}

func (h *AuthHandler) DeleteAdmin(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.adminService.Delete(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Admin deleted", nil))
}
