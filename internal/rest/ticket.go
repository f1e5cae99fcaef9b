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

type TicketService interface {
	Open(ctx context.Context, userID uint, subject, body string) (domain.Ticket, error)
	Reply(ctx context.Context, ticketID, adminID uint, body string) (domain.Ticket, error)
	Close(ctx context.Context, ticketID uint) error
	GetByID(ctx context.Context, id uint) (domain.Ticket, error)
	GetAll(ctx context.Context, page, limit int, userID uint, status string) ([]domain.Ticket, int64, error)
}

type TicketHandler struct {
	ticketService TicketService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewTicketHandler(ticketService TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type TicketOpenRequest struct {
	UserID  uint   `json:"user_id" validate:"required"`
	Subject string `json:"subject" validate:"required,min=3"`
	Body    string `json:"body" validate:"required"`
}

type TicketReplyRequest struct {
	Body string `json:"body" validate:"required"`
}

func (h *TicketHandler) OpenTicket(c echo.Context) error {
	var req TicketOpenRequest

	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ticket, err := h.ticketService.Open(ctx, req.UserID, req.Subject, req.Body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.Success("Ticket opened", ticket))
}

// ReplyTicket answers the thread as the authenticated admin.
func (h *TicketHandler) ReplyTicket(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req TicketReplyRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	adminID, _ := c.Get("admin_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ticket, err := h.ticketService.Reply(ctx, id, adminID, req.Body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Reply sent", ticket))
}

func (h *TicketHandler) CloseTicket(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.ticketService.Close(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Ticket closed", nil))
}

func (h *TicketHandler) GetTicketByID(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ticket, err := h.ticketService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Ticket found", ticket))
}

func (h *TicketHandler) GetAllTickets(c echo.Context) error {
	page, limit := pageLimit(c)
	userID := uintQuery(c, "user_id")
	status := c.QueryParam("status")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tickets, total, err := h.ticketService.GetAll(ctx, page, limit, userID, status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.SuccessWithMeta("Tickets found", tickets, paginationMeta(page, limit, total)))
}
