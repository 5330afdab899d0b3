package repo

import (
	"context"

	"github.com/OshimPathan/ShareSathi/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewMarketSnapshotRepo(db *gorm.DB) *MarketSnapshotRepo {
	return &MarketSnapshotRepo{
		Repository: orz.NewRepository[models.MarketSnapshot, string](db),
	}
}

type MarketSnapshotRepo struct {
	orz.Repository[models.MarketSnapshot, string]
}

// Upsert replaces the stored backup for one snapshot kind.
func (r MarketSnapshotRepo) Upsert(ctx context.Context, snapshot *models.MarketSnapshot) error {
	db := r.GetDB(ctx)
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "captured_at", "updated_at"}),
	}).Create(snapshot).Error
}

// FindByKind returns the stored backup for one snapshot kind.
func (r MarketSnapshotRepo) FindByKind(ctx context.Context, kind string) (m models.MarketSnapshot, err error) {
	db := r.GetDB(ctx)
	err = db.Table(r.GetTableName()).
		Where("kind = ?", kind).
		First(&m).Error
	return m, err
}
