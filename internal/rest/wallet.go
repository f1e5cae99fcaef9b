package rest

import (
	"context"
	"net/http"
	"time"

	"learnDesk/business/wallet"
	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type WalletService interface {
	Adjust(ctx context.Context, input wallet.AdjustInput) (domain.Wallet, error)
	GetByUser(ctx context.Context, userID uint) (domain.Wallet, error)
}

type WalletHandler struct {
	walletService WalletService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewWalletHandler(walletService WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type WalletAdjustRequest struct {
	UserID      uint   `json:"user_id" validate:"required"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Type        string `json:"type" validate:"required,oneof=INCREMENT DECREMENT"`
	Description string `json:"description,omitempty"`
}

func (h *WalletHandler) AdjustWallet(c echo.Context) error {
	var req WalletAdjustRequest

	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	adjusted, err := h.walletService.Adjust(ctx, wallet.AdjustInput{
		UserID:      req.UserID,
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Wallet adjusted", adjusted))
}

// GetWallet returns the user's wallet with its full ledger.
func (h *WalletHandler) GetWallet(c echo.Context) error {
	userID, err := uintParam(c, "user_id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	w, err := h.walletService.GetByUser(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Wallet found", w))
}
