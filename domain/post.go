package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	PostStatusDraft     = "DRAFT"
	PostStatusPublished = "PUBLISHED"
)

type Post struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"column:title;not null" json:"title"`
	Slug      string `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Body      string `gorm:"column:body;type:text" json:"body"`
	Status    string `gorm:"column:status;default:DRAFT" json:"status"`
	AuthorID  uint   `gorm:"column:author_id;index" json:"author_id"`
	Author    Admin  `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}
