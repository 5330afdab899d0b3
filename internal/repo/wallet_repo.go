package repo

import (
	"context"

	"github.com/OshimPathan/ShareSathi/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewWalletRepo(db *gorm.DB) *WalletRepo {
	return &WalletRepo{
		Repository: orz.NewRepository[models.Wallet, string](db),
	}
}

type WalletRepo struct {
	orz.Repository[models.Wallet, string]
}

// lockForUpdate adds a row-level exclusive lock to the query. sqlite has no
// FOR UPDATE syntax; its single-writer transactions give the same
// serialization, so the clause is skipped there.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// FindByUserID returns the user's wallet without locking.
func (r WalletRepo) FindByUserID(ctx context.Context, userID string) (m models.Wallet, err error) {
	db := r.GetDB(ctx)
	err = db.Table(r.GetTableName()).
		Where("user_id = ?", userID).
		First(&m).Error
	return m, err
}

// FindByUserIDForUpdate returns the user's wallet locked until the enclosing
// transaction commits or rolls back. Must be called inside a transaction.
func (r WalletRepo) FindByUserIDForUpdate(ctx context.Context, userID string) (m models.Wallet, err error) {
	db := lockForUpdate(r.GetDB(ctx))
	err = db.Table(r.GetTableName()).
		Where("user_id = ?", userID).
		First(&m).Error
	return m, err
}
