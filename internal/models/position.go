package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is one user's holding in one symbol. AverageCost is the
// quantity-weighted cost basis per share, excluding fees. Rows are never
// deleted: a fully sold position stays at quantity 0 with its average cost
// reset, so holdings queries filter on quantity > 0.
type Position struct {
	ID          string          `gorm:"primaryKey;type:varchar(26)" json:"id"`
	UserID      string          `gorm:"type:varchar(26);not null;uniqueIndex:idx_positions_user_symbol" json:"user_id"`
	Symbol      string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_positions_user_symbol" json:"symbol"`
	Quantity    int64           `gorm:"not null;default:0" json:"quantity"`
	AverageCost decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"average_cost"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Position) TableName() string {
	return "positions"
}
