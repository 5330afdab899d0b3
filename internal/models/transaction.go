package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeSide is the direction of an executed order.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

func (s TradeSide) String() string {
	return string(s)
}

// Transaction is the append-only audit record of one accepted trade.
// Rejected orders produce no record, and rows are never updated after
// insert. Price is the execution price per share; TotalFees keeps the fee
// total alongside for later reconciliation.
type Transaction struct {
	ID        string          `gorm:"primaryKey;type:varchar(26)" json:"id"`
	UserID    string          `gorm:"type:varchar(26);not null;index:idx_transactions_user_time" json:"user_id"`
	Symbol    string          `gorm:"type:varchar(20);not null;index" json:"symbol"`
	Side      TradeSide       `gorm:"type:varchar(4);not null" json:"side"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	TotalFees decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_fees"`
	Timestamp time.Time       `gorm:"not null;index:idx_transactions_user_time" json:"timestamp"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
