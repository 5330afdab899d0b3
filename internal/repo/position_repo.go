package repo

import (
	"context"

	"github.com/OshimPathan/ShareSathi/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewPositionRepo(db *gorm.DB) *PositionRepo {
	return &PositionRepo{
		Repository: orz.NewRepository[models.Position, string](db),
	}
}

type PositionRepo struct {
	orz.Repository[models.Position, string]
}

// FindByUserAndSymbol returns the user's position in a symbol, including
// zero-quantity rows.
func (r PositionRepo) FindByUserAndSymbol(ctx context.Context, userID, symbol string) (m models.Position, err error) {
	db := r.GetDB(ctx)
	err = db.Table(r.GetTableName()).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		First(&m).Error
	return m, err
}

// FindByUserAndSymbolForUpdate is FindByUserAndSymbol with an exclusive row
// lock held until the enclosing transaction ends.
func (r PositionRepo) FindByUserAndSymbolForUpdate(ctx context.Context, userID, symbol string) (m models.Position, err error) {
	db := lockForUpdate(r.GetDB(ctx))
	err = db.Table(r.GetTableName()).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		First(&m).Error
	return m, err
}

// FindHoldings returns the user's open positions, newest first.
func (r PositionRepo) FindHoldings(ctx context.Context, userID string) ([]models.Position, error) {
	var positions []models.Position
	db := r.GetDB(ctx)
	err := db.Table(r.GetTableName()).
		Where("user_id = ? AND quantity > 0", userID).
		Order("updated_at DESC").
		Find(&positions).Error
	return positions, err
}
