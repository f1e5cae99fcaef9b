package rest

import (
	"context"
	"net/http"
	"time"

	"learnDesk/business/coupon"
	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CouponService interface {
	Create(ctx context.Context, input coupon.CouponInput) (domain.Coupon, error)
	Update(ctx context.Context, id uint, input coupon.CouponInput) (domain.Coupon, error)
	GetByID(ctx context.Context, id uint) (domain.Coupon, error)
	GetAll(ctx context.Context, page, limit int) ([]domain.Coupon, int64, error)
	Delete(ctx context.Context, id uint) error
	Validate(ctx context.Context, code string, courseIDs []uint, at time.Time) (domain.Coupon, error)
}

type CouponHandler struct {
	couponService CouponService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewCouponHandler(couponService CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type CouponRequest struct {
	Code          string     `json:"code" validate:"required,min=3,max=64"`
	Type          string     `json:"type" validate:"required,oneof=FIXED PERCENT"`
	Amount        int64      `json:"amount" validate:"required,gt=0"`
	Limit         int        `json:"limit" validate:"gte=0"`
	ValidFrom     *time.Time `json:"valid_from,omitempty"`
	ValidTo       *time.Time `json:"valid_to,omitempty"`
	CourseInclude []uint     `json:"course_include,omitempty"`
	CourseExclude []uint     `json:"course_exclude,omitempty"`
}

type CouponCheckRequest struct {
	Code      string `json:"code" validate:"required"`
	CourseIDs []uint `json:"course_ids" validate:"required,min=1"`
}

func (r CouponRequest) toInput() coupon.CouponInput {
	return coupon.CouponInput{
		Code:          r.Code,
		Type:          r.Type,
		Amount:        r.Amount,
		Limit:         r.Limit,
		ValidFrom:     r.ValidFrom,
		ValidTo:       r.ValidTo,
		CourseInclude: r.CourseInclude,
		CourseExclude: r.CourseExclude,
	}
}

func (h *CouponHandler) CreateCoupon(c echo.Context) error {
	var req CouponRequest

	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.couponService.Create(ctx, req.toInput())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.Success("Coupon created", created))
}

func (h *CouponHandler) GetCouponByID(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.couponService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Coupon found", found))
}

func (h *CouponHandler) GetAllCoupons(c echo.Context) error {
	page, limit := pageLimit(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	coupons, total, err := h.couponService.GetAll(ctx, page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.SuccessWithMeta("Coupons found", coupons, paginationMeta(page, limit, total)))
}

func (h *CouponHandler) UpdateCoupon(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req CouponRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.couponService.Update(ctx, id, req.toInput())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Coupon updated", updated))
}

func (h *CouponHandler) DeleteCoupon(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.couponService.Delete(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Coupon deleted", nil))
}

// CheckCoupon validates a code against a set of courses and returns
// the computed discount without consuming a use.
func (h *CouponHandler) CheckCoupon(c echo.Context) error {
	var req CouponCheckRequest

	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.couponService.Validate(ctx, req.Code, req.CourseIDs, time.Now())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Coupon is valid", found))
}
