package ticket

import (
	"context"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/logger"
)

// TicketRepository contract interface
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket, message *domain.TicketMessage) error
	FindByID(ctx context.Context, id uint) (domain.Ticket, error)
	FindAll(ctx context.Context, page, limit int, userID uint, status string) ([]domain.Ticket, int64, error)
	AppendMessage(ctx context.Context, message *domain.TicketMessage, status string) error
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type ticketService struct {
	ticketRepo TicketRepository
	userRepo   UserRepository
}

func NewTicketService(ticketRepo TicketRepository, userRepo UserRepository) *ticketService {
	return &ticketService{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
	}
}

// Open creates a ticket on behalf of a user with its first message.
func (s *ticketService) Open(ctx context.Context, userID uint, subject, body string) (domain.Ticket, error) {
	if subject == "" || body == "" {
		return domain.Ticket{}, apperr.Validation("ticket subject and body are required")
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		logger.Error("User not found for ticket", err)
		return domain.Ticket{}, err
	}

	ticket := domain.Ticket{
		UserID:  userID,
		Subject: subject,
		Status:  domain.TicketStatusOpen,
	}
	message := domain.TicketMessage{Body: body}

	if err := s.ticketRepo.Create(ctx, &ticket, &message); err != nil {
		logger.Error("Failed to create ticket", err)
		return domain.Ticket{}, err
	}

	ticket.Messages = []domain.TicketMessage{message}
	return ticket, nil
}

// Reply appends a staff answer to the thread and marks the ticket
// answered.
func (s *ticketService) Reply(ctx context.Context, ticketID, adminID uint, body string) (domain.Ticket, error) {
	if body == "" {
		return domain.Ticket{}, apperr.Validation("reply body is required")
	}

	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return domain.Ticket{}, err
	}

	if ticket.Status == domain.TicketStatusClosed {
		return domain.Ticket{}, apperr.Conflict("ticket is closed")
	}

	message := domain.TicketMessage{
		TicketID: ticketID,
		AdminID:  &adminID,
		Body:     body,
	}

	if err := s.ticketRepo.AppendMessage(ctx, &message, domain.TicketStatusAnswered); err != nil {
		logger.Error("Failed to append ticket reply", err)
		return domain.Ticket{}, err
	}

	return s.ticketRepo.FindByID(ctx, ticketID)
}

func (s *ticketService) Close(ctx context.Context, ticketID uint) error {
	if _, err := s.ticketRepo.FindByID(ctx, ticketID); err != nil {
		return err
	}

	return s.ticketRepo.UpdateStatus(ctx, ticketID, domain.TicketStatusClosed)
}

func (s *ticketService) GetByID(ctx context.Context, id uint) (domain.Ticket, error) {
	return s.ticketRepo.FindByID(ctx, id)
}

func (s *ticketService) GetAll(ctx context.Context, page, limit int, userID uint, status string) ([]domain.Ticket, int64, error) {
	return s.ticketRepo.FindAll(ctx, page, limit, userID, status)
}
