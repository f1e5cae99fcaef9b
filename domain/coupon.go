package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	CouponTypeFixed   = "FIXED"
	CouponTypePercent = "PERCENT"
)

// Coupon is a discount code. Limit 0 means unlimited use. Include and
// exclude sets scope the coupon to (or away from) specific courses; an
// empty include set means every course is eligible.
type Coupon struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Code      string     `gorm:"column:code;uniqueIndex;not null" json:"code"`
	Type      string     `gorm:"column:type;not null" json:"type"`
	Amount    int64      `gorm:"column:amount;not null" json:"amount"`
	Limit     int        `gorm:"column:usage_limit;default:0" json:"limit"`
	Used      int        `gorm:"column:used;default:0" json:"used"`
	ValidFrom *time.Time `gorm:"column:valid_from" json:"valid_from,omitempty"`
	ValidTo   *time.Time `gorm:"column:valid_to" json:"valid_to,omitempty"`

	CourseInclude []Course `gorm:"many2many:coupon_course_includes" json:"course_include,omitempty"`
	CourseExclude []Course `gorm:"many2many:coupon_course_excludes" json:"course_exclude,omitempty"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// CouponScopeDeltas carries the association changes an update needs to
// apply: only course links that actually changed are written.
type CouponScopeDeltas struct {
	IncludeConnect    []uint
	IncludeDisconnect []uint
	ExcludeConnect    []uint
	ExcludeDisconnect []uint
}

// Discount returns the discount this coupon yields on the given total.
func (c Coupon) Discount(total int64) int64 {
	if c.Type == CouponTypePercent {
		return total * c.Amount / 100
	}
	if c.Amount > total {
		return total
	}
	return c.Amount
}
