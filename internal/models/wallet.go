package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a user's virtual cash. One row per user, seeded with the
// configured opening balance at registration. The non-negative check is a
// second line of defense behind the in-transaction funds check.
type Wallet struct {
	ID        string          `gorm:"primaryKey;size:26" json:"id"`
	UserID    string          `gorm:"size:26;not null;uniqueIndex" json:"user_id"`
	Balance   decimal.Decimal `gorm:"type:decimal(14,2);not null;check:balance >= 0" json:"balance"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}
