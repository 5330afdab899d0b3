package models

import (
	"time"

	"gorm.io/datatypes"
)

// Snapshot kinds stored in market_snapshots.
const (
	SnapshotKindLiveMarket    = "live_market"
	SnapshotKindMarketSummary = "market_summary"
)

// MarketSnapshot is the durable backup of the last good upstream payload,
// one row per kind. When the unofficial API is unreachable and the in-memory
// cache is cold, quotes are served from here marked stale.
type MarketSnapshot struct {
	ID         string         `gorm:"primaryKey;type:varchar(26)" json:"id"`
	Kind       string         `gorm:"type:varchar(30);not null;uniqueIndex" json:"kind"`
	Payload    datatypes.JSON `gorm:"type:json;not null" json:"payload"`
	CapturedAt time.Time      `gorm:"not null" json:"captured_at"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MarketSnapshot) TableName() string {
	return "market_snapshots"
}
