package postgres

import (
	"context"

	"learnDesk/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.DB.WithContext(ctx).Create(user).Error
	return translate(err, "user not found", "email, phone or national id already registered")
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return domain.User{}, translate(err, "user not found", "")
	}

	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context, page, limit int, search string) ([]domain.User, int64, error) {
	var users []domain.User
	var total int64

	query := r.DB.WithContext(ctx).Model(&domain.User{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ? OR phone LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(page, limit)).Order("id").Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	result := r.DB.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", user.ID).
		Select("full_name", "email", "phone", "national_id", "is_active", "updated_at").
		Updates(user)
	if result.Error != nil {
		return translate(result.Error, "user not found", "email, phone or national id already registered")
	}

	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "user not found", "")
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.User{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "user not found", "")
	}

	return nil
}
