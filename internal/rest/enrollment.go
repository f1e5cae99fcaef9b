package rest

import (
	"context"
	"net/http"
	"time"

	"learnDesk/business/enrollment"
	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, input enrollment.EnrollInput) (domain.Payment, error)
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (domain.Enrollment, error)
	GetAll(ctx context.Context, page, limit int, userID, courseID uint) ([]domain.Enrollment, int64, error)
	GetPayment(ctx context.Context, id uint) (domain.Payment, error)
	GetAllPayments(ctx context.Context, page, limit int, userID uint) ([]domain.Payment, int64, error)
}

type EnrollmentHandler struct {
	enrollmentService EnrollmentService
	validator         *validator.Validate
	timeout           time.Duration
}

func NewEnrollmentHandler(enrollmentService EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
		validator:         validator.New(),
		timeout:           15 * time.Second,
	}
}

type CourseSelectionRequest struct {
	CourseID      uint  `json:"course_id" validate:"required"`
	Price         int64 `json:"price" validate:"gte=0"`
	OriginalPrice int64 `json:"original_price" validate:"gte=0"`
}

type EnrollRequest struct {
	UserID       uint                     `json:"user_id" validate:"required"`
	Courses      []CourseSelectionRequest `json:"courses" validate:"required,min=1,dive"`
	Total        int64                    `json:"total" validate:"gte=0"`
	DiscountCode string                   `json:"discount_code,omitempty"`
	Status       string                   `json:"status,omitempty" validate:"omitempty,oneof=PENDING COMPLETED FAILED"`
}

// Enroll creates the payment and all selected enrollments in one
// transaction; a duplicate course rejects the whole request.
func (h *EnrollmentHandler) Enroll(c echo.Context) error {
	var req EnrollRequest

	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	selections := make([]enrollment.CourseSelection, 0, len(req.Courses))
	for _, cs := range req.Courses {
		selections = append(selections, enrollment.CourseSelection{
			CourseID:      cs.CourseID,
			Price:         cs.Price,
			OriginalPrice: cs.OriginalPrice,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	payment, err := h.enrollmentService.Enroll(ctx, enrollment.EnrollInput{
		UserID:       req.UserID,
		Courses:      selections,
		Total:        req.Total,
		DiscountCode: req.DiscountCode,
		Status:       req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.Success("Enrollment created", payment))
}

func (h *EnrollmentHandler) GetEnrollmentByID(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	enr, err := h.enrollmentService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Enrollment found", enr))
}

func (h *EnrollmentHandler) GetAllEnrollments(c echo.Context) error {
	page, limit := pageLimit(c)
	userID := uintQuery(c, "user_id")
	courseID := uintQuery(c, "course_id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	enrollments, total, err := h.enrollmentService.GetAll(ctx, page, limit, userID, courseID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.SuccessWithMeta("Enrollments found", enrollments, paginationMeta(page, limit, total)))
}

func (h *EnrollmentHandler) DeleteEnrollment(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.enrollmentService.Delete(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Enrollment deleted", nil))
}

func (h *EnrollmentHandler) GetPaymentByID(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	payment, err := h.enrollmentService.GetPayment(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Success("Payment found", payment))
}

func (h *EnrollmentHandler) GetAllPayments(c echo.Context) error {
	page, limit := pageLimit(c)
	userID := uintQuery(c, "user_id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	payments, total, err := h.enrollmentService.GetAllPayments(ctx, page, limit, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.SuccessWithMeta("Payments found", payments, paginationMeta(page, limit, total)))
}
