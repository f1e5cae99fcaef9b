package domain

import "time"

const (
	TicketStatusOpen     = "OPEN"
	TicketStatusAnswered = "ANSWERED"
	TicketStatusClosed   = "CLOSED"
)

type Ticket struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"column:user_id;index;not null" json:"user_id"`
	User      User   `gorm:"foreignKey:UserID" json:"-"`
	Subject   string `gorm:"column:subject;not null" json:"subject"`
	Status    string `gorm:"column:status;default:OPEN" json:"status"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Messages []TicketMessage `gorm:"foreignKey:TicketID" json:"messages,omitempty"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// TicketMessage is one entry in a ticket's thread. AdminID is set when
// the message was written by back-office staff.
type TicketMessage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	TicketID  uint   `gorm:"column:ticket_id;index;not null" json:"ticket_id"`
	AdminID   *uint  `gorm:"column:admin_id" json:"admin_id,omitempty"`
	Body      string `gorm:"column:body;type:text;not null" json:"body"`
	CreatedAt time.Time
}

func (TicketMessage) TableName() string {
	return "ticket_messages"
}
