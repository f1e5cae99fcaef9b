package settlement

import (
	"context"
	"fmt"
	"time"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/logger"
	"learnDesk/pkg/metrics"
)

// SettlementRepository contract interface
type SettlementRepository interface {
	SumEnrollments(ctx context.Context, tutorID uint, from, to time.Time) (int64, int, error)
	Create(ctx context.Context, settlement *domain.Settlement) error
	FindByID(ctx context.Context, id uint) (domain.Settlement, error)
	FindAll(ctx context.Context, page, limit int, tutorID uint, status string) ([]domain.Settlement, int64, error)
	Update(ctx context.Context, settlement *domain.Settlement) error
}

// TutorRepository contract interface
type TutorRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Tutor, error)
}

// SMSRepository contract interface
type SMSRepository interface {
	SendSMS(toPhone, message string) error
}

type settlementService struct {
	settlementRepo SettlementRepository
	tutorRepo      TutorRepository
	smsRepo        SMSRepository
	now            func() time.Time
}

func NewSettlementService(settlementRepo SettlementRepository, tutorRepo TutorRepository, smsRepo SMSRepository) *settlementService {
	return &settlementService{
		settlementRepo: settlementRepo,
		tutorRepo:      tutorRepo,
		smsRepo:        smsRepo,
		now:            time.Now,
	}
}

// Create computes the tutor's payout over [from, to]: the sum of
// enrollment prices across the tutor's courses times the profit rate
// read at creation time. The rate is a snapshot; later profit changes
// never touch an existing settlement.
func (s *settlementService) Create(ctx context.Context, tutorID uint, from, to time.Time) (domain.Settlement, error) {
	if to.Before(from) {
		return domain.Settlement{}, apperr.Validation("settlement date range is inverted")
	}

	tutor, err := s.tutorRepo.FindByID(ctx, tutorID)
	if err != nil {
		logger.Error("Tutor not found for settlement", err)
		return domain.Settlement{}, err
	}

	totalSell, count, err := s.settlementRepo.SumEnrollments(ctx, tutorID, from, to)
	if err != nil {
		logger.Error("Failed to aggregate enrollments for settlement", err)
		return domain.Settlement{}, err
	}

	settlement := domain.Settlement{
		TutorID:          tutor.ID,
		TotalSell:        totalSell,
		TotalEnrollments: count,
		ProfitPercent:    tutor.Profit,
		Amount:           totalSell * int64(tutor.Profit) / 100,
		Status:           domain.SettlementStatusPending,
		FromDate:         from,
		ToDate:           to,
	}

	if err := s.settlementRepo.Create(ctx, &settlement); err != nil {
		logger.Error("Failed to create settlement", err)
		return domain.Settlement{}, err
	}

	return settlement, nil
}

// UpdateStatus moves a settlement between PENDING and PAID. Marking it
// paid stamps the payout time and notifies the tutor by SMS; the send
// is best effort and a failure only logs.
func (s *settlementService) UpdateStatus(ctx context.Context, id uint, status string) (domain.Settlement, error) {
	if status != domain.SettlementStatusPending && status != domain.SettlementStatusPaid {
		return domain.Settlement{}, apperr.Validation("settlement status must be PENDING or PAID")
	}

	settlement, err := s.settlementRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Settlement not found for update", err)
		return domain.Settlement{}, err
	}

	if settlement.Status == status {
		return settlement, nil
	}

	settlement.Status = status
	if status == domain.SettlementStatusPaid {
		now := s.now()
		settlement.PaidAt = &now
	} else {
		settlement.PaidAt = nil
	}

	if err := s.settlementRepo.Update(ctx, &settlement); err != nil {
		logger.Error("Failed to update settlement", err)
		return domain.Settlement{}, err
	}

	if status == domain.SettlementStatusPaid {
		metrics.SettlementsPaid.Inc()

		tutor, err := s.tutorRepo.FindByID(ctx, settlement.TutorID)
		if err == nil {
			msg := fmt.Sprintf("Your settlement of %d for %s to %s has been paid.",
				settlement.Amount,
				settlement.FromDate.Format("2006-01-02"),
				settlement.ToDate.Format("2006-01-02"),
			)
			if err := s.smsRepo.SendSMS(tutor.Phone, msg); err != nil {
				logger.Warn("Failed to send settlement SMS", err)
			}
		}
	}

	return settlement, nil
}

func (s *settlementService) GetByID(ctx context.Context, id uint) (domain.Settlement, error) {
	return s.settlementRepo.FindByID(ctx, id)
}

func (s *settlementService) GetAll(ctx context.Context, page, limit int, tutorID uint, status string) ([]domain.Settlement, int64, error) {
	return s.settlementRepo.FindAll(ctx, page, limit, tutorID, status)
}
