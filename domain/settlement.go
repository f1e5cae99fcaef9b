package domain

import "time"

const (
	SettlementStatusPending = "PENDING"
	SettlementStatusPaid    = "PAID"
)

// Settlement is a tutor payout record over a date range. ProfitPercent
// is a snapshot of the tutor's rate at creation time; Amount is never
// recalculated afterwards.
type Settlement struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	TutorID          uint       `gorm:"column:tutor_id;index;not null" json:"tutor_id"`
	Tutor            Tutor      `gorm:"foreignKey:TutorID" json:"-"`
	TotalSell        int64      `gorm:"column:total_sell;not null" json:"total_sell"`
	TotalEnrollments int        `gorm:"column:total_enrollments;not null" json:"total_enrollments"`
	ProfitPercent    int        `gorm:"column:profit_percent;not null" json:"profit_percent"`
	Amount           int64      `gorm:"column:amount;not null" json:"amount"`
	Status           string     `gorm:"column:status;default:PENDING" json:"status"`
	PaidAt           *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`
	FromDate         time.Time  `gorm:"column:from_date;not null" json:"from_date"`
	ToDate           time.Time  `gorm:"column:to_date;not null" json:"to_date"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Settlement) TableName() string {
	return "settlements"
}
