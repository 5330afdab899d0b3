package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WatchlistItem is one symbol a user tracks, with optional alert levels.
type WatchlistItem struct {
	ID          string           `gorm:"primaryKey;type:varchar(26)" json:"id"`
	UserID      string           `gorm:"type:varchar(26);not null;uniqueIndex:idx_watchlist_user_symbol" json:"user_id"`
	Symbol      string           `gorm:"type:varchar(20);not null;uniqueIndex:idx_watchlist_user_symbol" json:"symbol"`
	TargetPrice *decimal.Decimal `gorm:"type:decimal(12,2)" json:"target_price,omitempty"`
	StopLoss    *decimal.Decimal `gorm:"type:decimal(12,2)" json:"stop_loss,omitempty"`
	AddedAt     time.Time        `gorm:"autoCreateTime" json:"added_at"`
}

func (WatchlistItem) TableName() string {
	return "watchlist_items"
}
