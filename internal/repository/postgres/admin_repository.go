package postgres

import (
	"context"

	"learnDesk/domain"

	"gorm.io/gorm"
)

type AdminRepository struct {
	DB *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{
		DB: db,
	}
}

func (r *AdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	err := r.DB.WithContext(ctx).Create(admin).Error
	return translate(err, "admin not found", "email or phone already registered")
}

func (r *AdminRepository) FindByID(ctx context.Context, id uint) (domain.Admin, error) {
	var admin domain.Admin

	err := r.DB.WithContext(ctx).First(&admin, id).Error
	if err != nil {
		return domain.Admin{}, translate(err, "admin not found", "")
	}

	return admin, nil
}

// FindByIdentifier resolves a login identifier that may be either an
// email address or a phone number.
func (r *AdminRepository) FindByIdentifier(ctx context.Context, identifier string) (domain.Admin, error) {
	var admin domain.Admin

	err := r.DB.WithContext(ctx).
		Where("email = ? OR phone = ?", identifier, identifier).
		First(&admin).Error
	if err != nil {
		return domain.Admin{}, translate(err, "admin not found", "")
	}

	return admin, nil
}

func (r *AdminRepository) FindAll(ctx context.Context, page, limit int) ([]domain.Admin, int64, error) {
	var admins []domain.Admin
	var total int64

	if err := r.DB.WithContext(ctx).Model(&domain.Admin{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.WithContext(ctx).
		Scopes(Paginate(page, limit)).
		Order("id").
		Find(&admins).Error
	if err != nil {
		return nil, 0, err
	}

	return admins, total, nil
}

func (r *AdminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	result := r.DB.WithContext(ctx).Model(&domain.Admin{}).
		Where("id = ?", admin.ID).
		Select("full_name", "email", "phone", "password", "role", "is_active", "updated_at").
		Updates(admin)
	if result.Error != nil {
		return translate(result.Error, "admin not found", "email or phone already registered")
	}

	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "admin not found", "")
	}

	return nil
}

func (r *AdminRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Admin{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "admin not found", "")
	}

	return nil
}
