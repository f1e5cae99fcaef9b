package postgres

import (
	"context"

	"learnDesk/domain"

	"gorm.io/gorm"
)

type TicketRepository struct {
	DB *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		DB: db,
	}
}

// Create persists the ticket and its opening message together.
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket, message *domain.TicketMessage) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ticket).Error; err != nil {
			return err
		}

		message.TicketID = ticket.ID
		return tx.Create(message).Error
	})
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (domain.Ticket, error) {
	var ticket domain.Ticket

	err := r.DB.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("ticket_messages.id")
		}).
		First(&ticket, id).Error
	if err != nil {
		return domain.Ticket{}, translate(err, "ticket not found", "")
	}

	return ticket, nil
}

func (r *TicketRepository) FindAll(ctx context.Context, page, limit int, userID uint, status string) ([]domain.Ticket, int64, error) {
	var tickets []domain.Ticket
	var total int64

	query := r.DB.WithContext(ctx).Model(&domain.Ticket{})
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(page, limit)).Order("id desc").Find(&tickets).Error
	if err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

// AppendMessage adds a reply to the thread and moves the ticket into
// the given status in one transaction.
func (r *TicketRepository) AppendMessage(ctx context.Context, message *domain.TicketMessage, status string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}

		result := tx.Model(&domain.Ticket{}).
			Where("id = ?", message.TicketID).
			Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "ticket not found", "")
		}

		return nil
	})
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.DB.WithContext(ctx).Model(&domain.Ticket{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "ticket not found", "")
	}

	return nil
}
