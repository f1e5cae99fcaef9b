package postgres

import (
	"context"

	"learnDesk/domain"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{
		DB: db,
	}
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) error {
	err := r.DB.WithContext(ctx).Create(course).Error
	return translate(err, "course not found", "course slug already exists")
}

func (r *CourseRepository) FindByID(ctx context.Context, id uint) (domain.Course, error) {
	var course domain.Course

	err := r.DB.WithContext(ctx).First(&course, id).Error
	if err != nil {
		return domain.Course{}, translate(err, "course not found", "")
	}

	return course, nil
}

// FindByIDs returns only the courses that exist among the given ids.
// Unknown ids are simply absent from the result.
func (r *CourseRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var courses []domain.Course
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *CourseRepository) FindAll(ctx context.Context, page, limit int, categoryID, tutorID uint) ([]domain.Course, int64, error) {
	var courses []domain.Course
	var total int64

	query := r.DB.WithContext(ctx).Model(&domain.Course{})
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if tutorID != 0 {
		query = query.Where("tutor_id = ?", tutorID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(page, limit)).Order("id").Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (r *CourseRepository) Update(ctx context.Context, course *domain.Course) error {
	result := r.DB.WithContext(ctx).Model(&domain.Course{}).
		Where("id = ?", course.ID).
		Select("title", "slug", "price", "original_price", "category_id", "tutor_id", "updated_at").
		Updates(course)
	if result.Error != nil {
		return translate(result.Error, "course not found", "course slug already exists")
	}

	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "course not found", "")
	}

	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Course{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "course not found", "")
	}

	return nil
}
