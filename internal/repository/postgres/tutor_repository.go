package postgres

import (
	"context"

	"learnDesk/domain"

	"gorm.io/gorm"
)

type TutorRepository struct {
	DB *gorm.DB
}

func NewTutorRepository(db *gorm.DB) *TutorRepository {
	return &TutorRepository{
		DB: db,
	}
}

func (r *TutorRepository) Create(ctx context.Context, tutor *domain.Tutor) error {
	err := r.DB.WithContext(ctx).Create(tutor).Error
	return translate(err, "tutor not found", "email or phone already registered")
}

func (r *TutorRepository) FindByID(ctx context.Context, id uint) (domain.Tutor, error) {
	var tutor domain.Tutor

	err := r.DB.WithContext(ctx).First(&tutor, id).Error
	if err != nil {
		return domain.Tutor{}, translate(err, "tutor not found", "")
	}

	return tutor, nil
}

func (r *TutorRepository) FindAll(ctx context.Context, page, limit int) ([]domain.Tutor, int64, error) {
	var tutors []domain.Tutor
	var total int64

	if err := r.DB.WithContext(ctx).Model(&domain.Tutor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.WithContext(ctx).
		Scopes(Paginate(page, limit)).
		Order("id").
		Find(&tutors).Error
	if err != nil {
		return nil, 0, err
	}

	return tutors, total, nil
}

func (r *TutorRepository) Update(ctx context.Context, tutor *domain.Tutor) error {
	result := r.DB.WithContext(ctx).Model(&domain.Tutor{}).
		Where("id = ?", tutor.ID).
		Select("full_name", "email", "phone", "profit", "updated_at").
		Updates(tutor)
	if result.Error != nil {
		return translate(result.Error, "tutor not found", "email or phone already registered")
	}

	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "tutor not found", "")
	}

	return nil
}
