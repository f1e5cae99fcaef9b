package domain

import "time"

const (
	WalletTxIncrement = "INCREMENT"
	WalletTxDecrement = "DECREMENT"
)

type Wallet struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	UserID    uint  `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	User      User  `gorm:"foreignKey:UserID" json:"-"`
	Balance   int64 `gorm:"column:balance;default:0" json:"balance"`
	Used      int   `gorm:"column:used;default:0" json:"used"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Transactions []WalletTransaction `gorm:"foreignKey:WalletID" json:"transactions,omitempty"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// WalletTransaction is one row of the append-only ledger.
type WalletTransaction struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	WalletID    uint   `gorm:"column:wallet_id;index;not null" json:"wallet_id"`
	Amount      int64  `gorm:"column:amount;not null" json:"amount"`
	Type        string `gorm:"column:type;not null" json:"type"`
	Description string `gorm:"column:description" json:"description"`
	CreatedAt   time.Time
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
