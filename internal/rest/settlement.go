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

type SettlementService interface {
	Create(ctx context.Context, tutorID uint, from, to time.Time) (domain.Settlement, error)
	UpdateStatus(ctx context.Context, id uint, status string) (domain.Settlement, error)
	GetByID(ctx context.Context, id uint) (domain.Settlement, error)
	GetAll(ctx context.Context, page, limit int, tutorID uint, status string) ([]domain.Settlement, int64, error)
}

type SettlementHandler struct {
	settlementService SettlementService
	validator         *validator.Validate
	timeout           time.Duration
}

func NewSettlementHandler(settlementService SettlementService) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementService,
		validator:         validator.New(),
		timeout:           15 * time.Second,
	}
}

type SettlementRequest struct {
	TutorID  uint      `json:"tutor_id" validate:"required"`
	FromDate time.Time `json:"from_date" validate:"required"`
	ToDate   time.Time `json:"to_date" validate:"required"`
}

type SettlementStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PAID"`
}

func (h *SettlementHandler) CreateSettlement(c echo.Context) error {
	var req SettlementRequest

	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	settlement, err := h.settlementService.Create(ctx, req.TutorID, req.FromDate, req.ToDate)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.Success("Settlement created", settlement))
}

func (h *SettlementHandler) UpdateSettlementStatus(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req SettlementStatusRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	settlement, err := h.settlementService.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Settlement updated", settlement))
}

func (h *SettlementHandler) GetSettlementByID(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	settlement, err := h.settlementService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Settlement found", settlement))
}

func (h *SettlementHandler) GetAllSettlements(c echo.Context) error {
	page, limit := pageLimit(c)
	tutorID := uintQuery(c, "tutor_id")
	status := c.QueryParam("status")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	settlements, total, err := h.settlementService.GetAll(ctx, page, limit, tutorID, status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.SuccessWithMeta("Settlements found", settlements, paginationMeta(page, limit, total)))
}
