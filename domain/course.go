package domain

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"column:name;uniqueIndex;not null" json:"name"`
	Slug      string `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Category) TableName() string {
	return "categories"
}

// Tutor teaches courses and receives a share of their sales. Profit is
// the percentage of sales paid out; settlements snapshot it at creation.
type Tutor struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FullName  string `gorm:"column:full_name;not null" json:"full_name"`
	Email     string `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Phone     string `gorm:"column:phone;uniqueIndex;not null" json:"phone"`
	Profit    int    `gorm:"column:profit;default:0" json:"profit"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Tutor) TableName() string {
	return "tutors"
}

type Course struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	Title         string   `gorm:"column:title;not null" json:"title"`
	Slug          string   `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Price         int64    `gorm:"column:price;not null" json:"price"`
	OriginalPrice int64    `gorm:"column:original_price;not null" json:"original_price"`
	CategoryID    uint     `gorm:"column:category_id;index" json:"category_id"`
	Category      Category `gorm:"foreignKey:CategoryID" json:"-"`
	TutorID       uint     `gorm:"column:tutor_id;index" json:"tutor_id"`
	Tutor         Tutor    `gorm:"foreignKey:TutorID" json:"-"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}
