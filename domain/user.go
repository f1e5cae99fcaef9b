package domain

import (
	"time"

	"gorm.io/gorm"
)

// User is a platform customer. Email, phone and national id are each
// unique across the whole user base; the database indexes are the
// source of truth, not an application-side pre-check.
type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	FullName   string `gorm:"column:full_name;not null" json:"full_name"`
	Email      string `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Phone      string `gorm:"column:phone;uniqueIndex;not null" json:"phone"`
	NationalID string `gorm:"column:national_id;uniqueIndex" json:"national_id"`
	IsActive   bool   `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
