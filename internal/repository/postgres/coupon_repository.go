package postgres

import (
	"context"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"

	"gorm.io/gorm"
)

type CouponRepository struct {
	DB *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{
		DB: db,
	}
}

// Create persists the coupon together with its course scoping sets.
// Code uniqueness is enforced by the database index; a duplicate comes
// back as a Conflict error.
func (r *CouponRepository) Create(ctx context.Context, coupon *domain.Coupon) error {
	err := r.DB.WithContext(ctx).Create(coupon).Error
	return translate(err, "coupon not found", "coupon code already exists")
}

func (r *CouponRepository) FindByID(ctx context.Context, id uint) (domain.Coupon, error) {
	var coupon domain.Coupon

	err := r.DB.WithContext(ctx).
		Preload("CourseInclude").
		Preload("CourseExclude").
		First(&coupon, id).Error
	if err != nil {
		return domain.Coupon{}, translate(err, "coupon not found", "")
	}

	return coupon, nil
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	var coupon domain.Coupon

	err := r.DB.WithContext(ctx).
		Preload("CourseInclude").
		Preload("CourseExclude").
		Where("code = ?", code).
		First(&coupon).Error
	if err != nil {
		return domain.Coupon{}, translate(err, "coupon not found", "")
	}

	return coupon, nil
}

func (r *CouponRepository) FindAll(ctx context.Context, page, limit int) ([]domain.Coupon, int64, error) {
	var coupons []domain.Coupon
	var total int64

	if err := r.DB.WithContext(ctx).Model(&domain.Coupon{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.WithContext(ctx).
		Scopes(Paginate(page, limit)).
		Order("id").
		Find(&coupons).Error
	if err != nil {
		return nil, 0, err
	}

	return coupons, total, nil
}

// Update writes the scalar fields and applies the association deltas
// computed by the service in a single transaction, so only changed
// course links are touched.
func (r *CouponRepository) Update(ctx context.Context, coupon *domain.Coupon, deltas domain.CouponScopeDeltas) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Coupon{}).
			Where("id = ?", coupon.ID).
			Select("code", "type", "amount", "usage_limit", "valid_from", "valid_to", "updated_at").
			Updates(coupon)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		assoc := tx.Model(coupon)
		if len(deltas.IncludeConnect) > 0 {
			if err := assoc.Association("CourseInclude").Append(courseRefs(deltas.IncludeConnect)...); err != nil {
				return err
			}
		}
		if len(deltas.IncludeDisconnect) > 0 {
			if err := assoc.Association("CourseInclude").Delete(courseRefs(deltas.IncludeDisconnect)...); err != nil {
				return err
			}
		}
		if len(deltas.ExcludeConnect) > 0 {
			if err := assoc.Association("CourseExclude").Append(courseRefs(deltas.ExcludeConnect)...); err != nil {
				return err
			}
		}
		if len(deltas.ExcludeDisconnect) > 0 {
			if err := assoc.Association("CourseExclude").Delete(courseRefs(deltas.ExcludeDisconnect)...); err != nil {
				return err
			}
		}

		return nil
	})

	return translate(err, "coupon not found", "coupon code already exists")
}

func (r *CouponRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Coupon{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "coupon not found", "")
	}

	return nil
}

// Redeem increments the used counter with the limit enforced in the
// statement itself, so two concurrent redemptions cannot both pass a
// stale application-side check.
func (r *CouponRepository) Redeem(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Model(&domain.Coupon{}).
		Where("id = ? AND (usage_limit = 0 OR used < usage_limit)", id).
		UpdateColumn("used", gorm.Expr("used + 1"))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return apperr.Conflict("coupon not found or usage limit reached")
	}

	return nil
}

func courseRefs(ids []uint) []interface{} {
	refs := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, &domain.Course{ID: id})
	}
	return refs
}
