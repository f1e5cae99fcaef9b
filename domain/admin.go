package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	AdminRoleSuper   = "SUPER"
	AdminRoleAdmin   = "ADMIN"
	AdminRoleSupport = "SUPPORT"
)

type Admin struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FullName  string `gorm:"column:full_name;not null" json:"full_name"`
	Email     string `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Phone     string `gorm:"column:phone;uniqueIndex;not null" json:"phone"`
	Password  string `gorm:"column:password;not null" json:"-"`
	Role      string `gorm:"column:role;default:ADMIN" json:"role"`
	IsActive  bool   `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Admin) TableName() string {
	return "admins"
}
