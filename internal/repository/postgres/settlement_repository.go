package postgres

import (
	"context"
	"time"

	"learnDesk/domain"

	"gorm.io/gorm"
)

type SettlementRepository struct {
	DB *gorm.DB
}

func NewSettlementRepository(db *gorm.DB) *SettlementRepository {
	return &SettlementRepository{
		DB: db,
	}
}

// SumEnrollments aggregates sale totals across all enrollments of the
// tutor's courses inside [from, to].
func (r *SettlementRepository) SumEnrollments(ctx context.Context, tutorID uint, from, to time.Time) (int64, int, error) {
	var row struct {
		Total int64
		Count int64
	}

	err := r.DB.WithContext(ctx).Model(&domain.Enrollment{}).
		Select("COALESCE(SUM(enrollments.price), 0) AS total, COUNT(*) AS count").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.tutor_id = ?", tutorID).
		Where("enrollments.enrolled_at BETWEEN ? AND ?", from, to).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}

	return row.Total, int(row.Count), nil
}

func (r *SettlementRepository) Create(ctx context.Context, settlement *domain.Settlement) error {
	return r.DB.WithContext(ctx).Create(settlement).Error
}

func (r *SettlementRepository) FindByID(ctx context.Context, id uint) (domain.Settlement, error) {
	var settlement domain.Settlement

	err := r.DB.WithContext(ctx).Preload("Tutor").First(&settlement, id).Error
	if err != nil {
		return domain.Settlement{}, translate(err, "settlement not found", "")
	}

	return settlement, nil
}

func (r *SettlementRepository) FindAll(ctx context.Context, page, limit int, tutorID uint, status string) ([]domain.Settlement, int64, error) {
	var settlements []domain.Settlement
	var total int64

	query := r.DB.WithContext(ctx).Model(&domain.Settlement{})
	if tutorID != 0 {
		query = query.Where("tutor_id = ?", tutorID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(page, limit)).Order("id desc").Find(&settlements).Error
	if err != nil {
		return nil, 0, err
	}

	return settlements, total, nil
}

func (r *SettlementRepository) Update(ctx context.Context, settlement *domain.Settlement) error {
	result := r.DB.WithContext(ctx).Model(&domain.Settlement{}).
		Where("id = ?", settlement.ID).
		Select("status", "paid_at", "updated_at").
		Updates(settlement)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "settlement not found", "")
	}

	return nil
}
