package models

import "time"

// Stock is a listed company, refreshed by the end-of-day sync.
type Stock struct {
	Symbol       string    `gorm:"primaryKey;type:varchar(20)" json:"symbol"`
	CompanyName  string    `gorm:"type:varchar(255);not null" json:"company_name"`
	Sector       string    `gorm:"type:varchar(100)" json:"sector"`
	ListedShares int64     `json:"listed_shares"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Stock) TableName() string {
	return "stocks"
}
