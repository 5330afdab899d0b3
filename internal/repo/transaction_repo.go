package repo

import (
	"context"

	"github.com/OshimPathan/ShareSathi/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewTransactionRepo(db *gorm.DB) *TransactionRepo {
	return &TransactionRepo{
		Repository: orz.NewRepository[models.Transaction, string](db),
	}
}

type TransactionRepo struct {
	orz.Repository[models.Transaction, string]
}

// FindRecentByUser returns the user's trade history, newest first.
func (r TransactionRepo) FindRecentByUser(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	db := r.GetDB(ctx)
	err := db.Table(r.GetTableName()).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

// CountByUser returns how many trades the user has executed.
func (r TransactionRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	db := r.GetDB(ctx)
	err := db.Table(r.GetTableName()).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
