package repo

import (
	"context"

	"github.com/OshimPathan/ShareSathi/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewStockRepo(db *gorm.DB) *StockRepo {
	return &StockRepo{
		Repository: orz.NewRepository[models.Stock, string](db),
	}
}

type StockRepo struct {
	orz.Repository[models.Stock, string]
}

// Upsert inserts or refreshes a listed company by symbol.
func (r StockRepo) Upsert(ctx context.Context, stock *models.Stock) error {
	db := r.GetDB(ctx)
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"company_name", "sector", "listed_shares", "updated_at"}),
	}).Create(stock).Error
}

// FindAllSymbols returns every known symbol.
func (r StockRepo) FindAllSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	db := r.GetDB(ctx)
	err := db.Table(r.GetTableName()).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error
	return symbols, err
}
