package wallet

import (
	"context"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/logger"
	"learnDesk/pkg/metrics"
)

// WalletRepository contract interface. WithinTx binds the callback to
// one database transaction.
type WalletRepository interface {
	WithinTx(ctx context.Context, fn func(WalletRepository) error) error
	FindByUser(ctx context.Context, userID uint) (domain.Wallet, error)
	Create(ctx context.Context, w *domain.Wallet) error
	ApplyDelta(ctx context.Context, walletID uint, delta int64, usedDelta int) error
	AppendTransaction(ctx context.Context, tx *domain.WalletTransaction) error
	FindWithTransactions(ctx context.Context, userID uint) (domain.Wallet, error)
}

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type AdjustInput struct {
	UserID      uint
	Amount      int64
	Type        string
	Description string
}

type walletService struct {
	walletRepo WalletRepository
	userRepo   UserRepository
}

func NewWalletService(walletRepo WalletRepository, userRepo UserRepository) *walletService {
	return &walletService{
		walletRepo: walletRepo,
		userRepo:   userRepo,
	}
}

// Adjust applies one ledger operation to the user's wallet, creating
// the wallet on first use. A first-ever operation always credits the
// wallet regardless of the requested type. Decrements may not drive
// the balance negative; the floor is enforced by the storage layer,
// not by a prior read.
func (s *walletService) Adjust(ctx context.Context, input AdjustInput) (domain.Wallet, error) {
	if input.Type != domain.WalletTxIncrement && input.Type != domain.WalletTxDecrement {
		return domain.Wallet{}, apperr.Validation("transaction type must be INCREMENT or DECREMENT")
	}

	if input.Amount <= 0 {
		return domain.Wallet{}, apperr.Validation("amount must be positive")
	}

	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		logger.Error("User not found for wallet adjustment", err)
		return domain.Wallet{}, err
	}

	var result domain.Wallet
	err := s.walletRepo.WithinTx(ctx, func(tx WalletRepository) error {
		w, err := tx.FindByUser(ctx, input.UserID)
		if err != nil {
			if !apperr.IsKind(err, apperr.KindNotFound) {
				return err
			}

			// first operation opens the wallet as a credit
			w = domain.Wallet{
				UserID:  input.UserID,
				Balance: input.Amount,
			}
			if err := tx.Create(ctx, &w); err != nil {
				return err
			}

			ledger := domain.WalletTransaction{
				WalletID:    w.ID,
				Amount:      input.Amount,
				Type:        domain.WalletTxIncrement,
				Description: input.Description,
			}
			if err := tx.AppendTransaction(ctx, &ledger); err != nil {
				return err
			}

			result = w
			return nil
		}

		delta := input.Amount
		usedDelta := 0
		if input.Type == domain.WalletTxDecrement {
			delta = -input.Amount
			usedDelta = 1
		}

		if err := tx.ApplyDelta(ctx, w.ID, delta, usedDelta); err != nil {
			return err
		}

		ledger := domain.WalletTransaction{
			WalletID:    w.ID,
			Amount:      input.Amount,
			Type:        input.Type,
			Description: input.Description,
		}
		if err := tx.AppendTransaction(ctx, &ledger); err != nil {
			return err
		}

		w.Balance += delta
		w.Used += usedDelta
		result = w
		return nil
	})
	if err != nil {
		logger.Error("Wallet adjustment failed", err)
		return domain.Wallet{}, err
	}

	metrics.WalletAdjustments.WithLabelValues(input.Type).Inc()
	return result, nil
}

func (s *walletService) GetByUser(ctx context.Context, userID uint) (domain.Wallet, error) {
	return s.walletRepo.FindWithTransactions(ctx, userID)
}
