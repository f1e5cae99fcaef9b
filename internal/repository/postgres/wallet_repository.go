package postgres

import (
	"context"

	"learnDesk/business/wallet"
	"learnDesk/domain"
	"learnDesk/pkg/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WalletRepository struct {
	DB *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{
		DB: db,
	}
}

func (r *WalletRepository) WithinTx(ctx context.Context, fn func(wallet.WalletRepository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&WalletRepository{DB: tx})
	})
}

// FindByUser locks the row when called inside a transaction so two
// concurrent adjustments serialize instead of both reading the same
// stale balance.
func (r *WalletRepository) FindByUser(ctx context.Context, userID uint) (domain.Wallet, error) {
	var w domain.Wallet

	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&w).Error
	if err != nil {
		return domain.Wallet{}, translate(err, "wallet not found", "")
	}

	return w, nil
}

func (r *WalletRepository) Create(ctx context.Context, w *domain.Wallet) error {
	err := r.DB.WithContext(ctx).Create(w).Error
	return translate(err, "wallet not found", "wallet already exists for this user")
}

// ApplyDelta adjusts the balance with the non-negative floor enforced
// in the statement itself. RowsAffected 0 means the guard rejected the
// decrement.
func (r *WalletRepository) ApplyDelta(ctx context.Context, walletID uint, delta int64, usedDelta int) error {
	result := r.DB.WithContext(ctx).Model(&domain.Wallet{}).
		Where("id = ? AND balance + ? >= 0", walletID, delta).
		UpdateColumns(map[string]interface{}{
			"used":    gorm.Expr("used + ?", usedDelta),
			"balance": gorm.Expr("balance + ?", delta),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return apperr.Conflict("insufficient wallet balance")
	}

	return nil
}

func (r *WalletRepository) AppendTransaction(ctx context.Context, tx *domain.WalletTransaction) error {
	return r.DB.WithContext(ctx).Create(tx).Error
}

func (r *WalletRepository) FindWithTransactions(ctx context.Context, userID uint) (domain.Wallet, error) {
	var w domain.Wallet

	err := r.DB.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("wallet_transactions.id desc")
		}).
		Where("user_id = ?", userID).
		First(&w).Error
	if err != nil {
		return domain.Wallet{}, translate(err, "wallet not found", "")
	}

	return w, nil
}
