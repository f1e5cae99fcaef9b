package enrollment

import (
	"context"
	"time"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/logger"
	"learnDesk/pkg/metrics"

	"github.com/google/uuid"
)

// EnrollmentRepository contract interface. WithinTx hands the callback
// a repository bound to one database transaction; returning an error
// rolls everything back.
type EnrollmentRepository interface {
	WithinTx(ctx context.Context, fn func(EnrollmentRepository) error) error
	FindByID(ctx context.Context, id uint) (domain.Enrollment, error)
	FindByUserAndCourses(ctx context.Context, userID uint, courseIDs []uint) ([]domain.Enrollment, error)
	FindAll(ctx context.Context, page, limit int, userID, courseID uint) ([]domain.Enrollment, int64, error)
	CreatePayment(ctx context.Context, payment *domain.Payment) error
	CreateEnrollment(ctx context.Context, enr *domain.Enrollment) error
	CreateClassRoom(ctx context.Context, room *domain.ClassRoom) error
	DeleteEnrollment(ctx context.Context, id uint) error
	CountByPayment(ctx context.Context, paymentID uint) (int64, error)
	DeletePayment(ctx context.Context, paymentID uint) error
	FindPaymentByID(ctx context.Context, id uint) (domain.Payment, error)
	FindAllPayments(ctx context.Context, page, limit int, userID uint) ([]domain.Payment, int64, error)
}

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// CouponValidator resolves a discount code for the given courses and
// consumes one use once the enrollment goes through.
type CouponValidator interface {
	Validate(ctx context.Context, code string, courseIDs []uint, at time.Time) (domain.Coupon, error)
	Redeem(ctx context.Context, id uint) error
}

type CourseSelection struct {
	CourseID      uint
	Price         int64
	OriginalPrice int64
}

type EnrollInput struct {
	UserID       uint
	Courses      []CourseSelection
	Total        int64
	DiscountCode string
	Status       string
}

type enrollmentService struct {
	enrollmentRepo EnrollmentRepository
	userRepo       UserRepository
	coupons        CouponValidator
	now            func() time.Time
}

func NewEnrollmentService(enrollmentRepo EnrollmentRepository, userRepo UserRepository, coupons CouponValidator) *enrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
		coupons:        coupons,
		now:            time.Now,
	}
}

// Enroll creates a payment plus one enrollment and classroom per
// selected course inside a single transaction. Any requested course
// the user already owns aborts the whole batch, so either everything
// commits or nothing does.
func (s *enrollmentService) Enroll(ctx context.Context, input EnrollInput) (domain.Payment, error) {
	if len(input.Courses) == 0 {
		return domain.Payment{}, apperr.Validation("at least one course is required")
	}

	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		logger.Error("User not found for enrollment", err)
		return domain.Payment{}, err
	}

	courseIDs := make([]uint, 0, len(input.Courses))
	var itemsTotal int64
	for _, c := range input.Courses {
		if c.Price < 0 || c.OriginalPrice < 0 {
			return domain.Payment{}, apperr.Validation("course price cannot be negative")
		}
		courseIDs = append(courseIDs, c.CourseID)
		itemsTotal += c.Price
	}

	var discountAmount int64
	var couponID uint
	if input.DiscountCode != "" {
		coupon, err := s.coupons.Validate(ctx, input.DiscountCode, courseIDs, s.now())
		if err != nil {
			return domain.Payment{}, err
		}
		discountAmount = coupon.Discount(itemsTotal)
		couponID = coupon.ID
	}

	status := input.Status
	if status == "" {
		status = domain.PaymentStatusCompleted
	}

	total := input.Total
	if total == 0 {
		total = itemsTotal - discountAmount
	}

	now := s.now()
	payment := domain.Payment{
		RefID:          uuid.NewString(),
		UserID:         user.ID,
		Total:          total,
		ItemsTotal:     itemsTotal,
		DiscountAmount: discountAmount,
		DiscountCode:   input.DiscountCode,
		Status:         status,
		Method:         domain.PaymentMethodAdmin,
	}
	if status == domain.PaymentStatusCompleted {
		payment.PaidAt = &now
	}

	err = s.enrollmentRepo.WithinTx(ctx, func(tx EnrollmentRepository) error {
		existing, err := tx.FindByUserAndCourses(ctx, user.ID, courseIDs)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return apperr.Newf(apperr.KindConflict, "user is already enrolled in %d of the selected courses", len(existing))
		}

		if err := tx.CreatePayment(ctx, &payment); err != nil {
			return err
		}

		for _, c := range input.Courses {
			enr := domain.Enrollment{
				UserID:        user.ID,
				CourseID:      c.CourseID,
				Price:         c.Price,
				OriginalPrice: c.OriginalPrice,
				Status:        domain.EnrollmentStatusPending,
				PaymentID:     &payment.ID,
				EnrolledAt:    now,
			}
			if err := tx.CreateEnrollment(ctx, &enr); err != nil {
				return err
			}

			room := domain.ClassRoom{EnrollmentID: enr.ID}
			if err := tx.CreateClassRoom(ctx, &room); err != nil {
				return err
			}

			payment.Enrollments = append(payment.Enrollments, enr)
		}

		// counted UPDATE rejects the code when the limit is exhausted,
		// failing the whole batch
		if couponID != 0 {
			return s.coupons.Redeem(ctx, couponID)
		}

		return nil
	})
	if err != nil {
		logger.Error("Enrollment transaction failed", err)
		return domain.Payment{}, err
	}

	metrics.EnrollmentsCreated.Add(float64(len(input.Courses)))
	return payment, nil
}

// Delete removes an enrollment and, when it was the last one under its
// payment, the payment as well. Both writes run in one transaction so
// a crash cannot strand an orphaned zero-enrollment payment.
func (s *enrollmentService) Delete(ctx context.Context, id uint) error {
	enr, err := s.enrollmentRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Enrollment not found for deletion", err)
		return err
	}

	return s.enrollmentRepo.WithinTx(ctx, func(tx EnrollmentRepository) error {
		if err := tx.DeleteEnrollment(ctx, enr.ID); err != nil {
			return err
		}

		if enr.PaymentID == nil {
			return nil
		}

		remaining, err := tx.CountByPayment(ctx, *enr.PaymentID)
		if err != nil {
			return err
		}

		if remaining == 0 {
			return tx.DeletePayment(ctx, *enr.PaymentID)
		}

		return nil
	})
}

func (s *enrollmentService) GetByID(ctx context.Context, id uint) (domain.Enrollment, error) {
	return s.enrollmentRepo.FindByID(ctx, id)
}

func (s *enrollmentService) GetAll(ctx context.Context, page, limit int, userID, courseID uint) ([]domain.Enrollment, int64, error) {
	return s.enrollmentRepo.FindAll(ctx, page, limit, userID, courseID)
}

func (s *enrollmentService) GetPayment(ctx context.Context, id uint) (domain.Payment, error) {
	return s.enrollmentRepo.FindPaymentByID(ctx, id)
}

func (s *enrollmentService) GetAllPayments(ctx context.Context, page, limit int, userID uint) ([]domain.Payment, int64, error) {
	return s.enrollmentRepo.FindAllPayments(ctx, page, limit, userID)
}
