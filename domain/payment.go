package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"

	// PaymentMethodAdmin marks payments created through the back office
	// rather than the customer checkout.
	PaymentMethodAdmin = "ADMIN"
)

const (
	EnrollmentStatusPending    = "PENDING"
	EnrollmentStatusInProgress = "IN_PROGRESS"
	EnrollmentStatusCompleted  = "COMPLETED"
)

type Payment struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	RefID          string     `gorm:"column:ref_id;uniqueIndex;not null" json:"ref_id"`
	UserID         uint       `gorm:"column:user_id;index;not null" json:"user_id"`
	User           User       `gorm:"foreignKey:UserID" json:"-"`
	Total          int64      `gorm:"column:total;not null" json:"total"`
	ItemsTotal     int64      `gorm:"column:items_total;not null" json:"items_total"`
	DiscountAmount int64      `gorm:"column:discount_amount;default:0" json:"discount_amount"`
	DiscountCode   string     `gorm:"column:discount_code" json:"discount_code,omitempty"`
	Status         string     `gorm:"column:status;default:PENDING" json:"status"`
	Method         string     `gorm:"column:method;not null" json:"method"`
	PaidAt         *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`

	Enrollments []Enrollment `gorm:"foreignKey:PaymentID" json:"enrollments,omitempty"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}

type Enrollment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"column:user_id;index:idx_enrollments_user_course,unique;not null" json:"user_id"`
	User          User      `gorm:"foreignKey:UserID" json:"-"`
	CourseID      uint      `gorm:"column:course_id;index:idx_enrollments_user_course,unique;not null" json:"course_id"`
	Course        Course    `gorm:"foreignKey:CourseID" json:"-"`
	Price         int64     `gorm:"column:price;not null" json:"price"`
	OriginalPrice int64     `gorm:"column:original_price;not null" json:"original_price"`
	Status        string    `gorm:"column:status;default:PENDING" json:"status"`
	PaymentID     *uint     `gorm:"column:payment_id;index" json:"payment_id,omitempty"`
	EnrolledAt    time.Time `gorm:"column:enrolled_at;not null" json:"enrolled_at"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// ClassRoom is the user's access session into course content, created
// one-to-one with its enrollment.
type ClassRoom struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	EnrollmentID uint       `gorm:"column:enrollment_id;uniqueIndex;not null" json:"enrollment_id"`
	Enrollment   Enrollment `gorm:"foreignKey:EnrollmentID" json:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ClassRoom) TableName() string {
	return "class_rooms"
}
