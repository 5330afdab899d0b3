package repo

import (
	"context"

	"github.com/OshimPathan/ShareSathi/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewWatchlistRepo(db *gorm.DB) *WatchlistRepo {
	return &WatchlistRepo{
		Repository: orz.NewRepository[models.WatchlistItem, string](db),
	}
}

type WatchlistRepo struct {
	orz.Repository[models.WatchlistItem, string]
}

// FindByUser returns the user's watchlist, most recently added first.
func (r WatchlistRepo) FindByUser(ctx context.Context, userID string) ([]models.WatchlistItem, error) {
	var items []models.WatchlistItem
	db := r.GetDB(ctx)
	err := db.Table(r.GetTableName()).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&items).Error
	return items, err
}

// FindByUserAndSymbol returns one watchlist entry.
func (r WatchlistRepo) FindByUserAndSymbol(ctx context.Context, userID, symbol string) (m models.WatchlistItem, err error) {
	db := r.GetDB(ctx)
	err = db.Table(r.GetTableName()).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		First(&m).Error
	return m, err
}

// DeleteByUserAndSymbol removes one watchlist entry and reports whether it
// existed.
func (r WatchlistRepo) DeleteByUserAndSymbol(ctx context.Context, userID, symbol string) (bool, error) {
	db := r.GetDB(ctx)
	result := db.Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&models.WatchlistItem{})
	return result.RowsAffected > 0, result.Error
}
