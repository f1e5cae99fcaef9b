package postgres

import (
	"context"

	"learnDesk/business/enrollment"
	"learnDesk/domain"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{
		DB: db,
	}
}

// WithinTx runs fn against a repository bound to a database
// transaction. Any error returned by fn rolls the whole transaction
// back, which is what gives the enroll flow its all-or-nothing
// guarantee.
func (r *EnrollmentRepository) WithinTx(ctx context.Context, fn func(enrollment.EnrollmentRepository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&EnrollmentRepository{DB: tx})
	})
}

func (r *EnrollmentRepository) FindByID(ctx context.Context, id uint) (domain.Enrollment, error) {
	var enr domain.Enrollment

	err := r.DB.WithContext(ctx).First(&enr, id).Error
	if err != nil {
		return domain.Enrollment{}, translate(err, "enrollment not found", "")
	}

	return enr, nil
}

func (r *EnrollmentRepository) FindByUserAndCourses(ctx context.Context, userID uint, courseIDs []uint) ([]domain.Enrollment, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	var enrollments []domain.Enrollment
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND course_id IN ?", userID, courseIDs).
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}

	return enrollments, nil
}

func (r *EnrollmentRepository) FindAll(ctx context.Context, page, limit int, userID, courseID uint) ([]domain.Enrollment, int64, error) {
	var enrollments []domain.Enrollment
	var total int64

	query := r.DB.WithContext(ctx).Model(&domain.Enrollment{})
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(page, limit)).Order("id").Find(&enrollments).Error
	if err != nil {
		return nil, 0, err
	}

	return enrollments, total, nil
}

func (r *EnrollmentRepository) CreatePayment(ctx context.Context, payment *domain.Payment) error {
	err := r.DB.WithContext(ctx).Create(payment).Error
	return translate(err, "payment not found", "payment reference already exists")
}

func (r *EnrollmentRepository) CreateEnrollment(ctx context.Context, enr *domain.Enrollment) error {
	err := r.DB.WithContext(ctx).Create(enr).Error
	return translate(err, "enrollment not found", "user is already enrolled in this course")
}

func (r *EnrollmentRepository) CreateClassRoom(ctx context.Context, room *domain.ClassRoom) error {
	err := r.DB.WithContext(ctx).Create(room).Error
	return translate(err, "classroom not found", "classroom already exists for this enrollment")
}

func (r *EnrollmentRepository) DeleteEnrollment(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("enrollment_id = ?", id).Delete(&domain.ClassRoom{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.Enrollment{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "enrollment not found", "")
		}

		return nil
	})
}

func (r *EnrollmentRepository) CountByPayment(ctx context.Context, paymentID uint) (int64, error) {
	var count int64

	err := r.DB.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("payment_id = ?", paymentID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *EnrollmentRepository) DeletePayment(ctx context.Context, paymentID uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Payment{}, paymentID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "payment not found", "")
	}

	return nil
}

func (r *EnrollmentRepository) FindPaymentByID(ctx context.Context, id uint) (domain.Payment, error) {
	var payment domain.Payment

	err := r.DB.WithContext(ctx).Preload("Enrollments").First(&payment, id).Error
	if err != nil {
		return domain.Payment{}, translate(err, "payment not found", "")
	}

	return payment, nil
}

func (r *EnrollmentRepository) FindAllPayments(ctx context.Context, page, limit int, userID uint) ([]domain.Payment, int64, error) {
	var payments []domain.Payment
	var total int64

	query := r.DB.WithContext(ctx).Model(&domain.Payment{})
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(page, limit)).Order("id desc").Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}
