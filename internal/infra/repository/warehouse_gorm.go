package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// warehousesテーブルの行。
type WarehouseRecord struct {
	ID        string               `gorm:"primaryKey;type:varchar(64)"`
	Name      string               `gorm:"type:varchar(64);not null;uniqueIndex"`
	Width     float64              `gorm:"not null"`
	Height    float64              `gorm:"not null"`
	Length    float64              `gorm:"not null"`
	Lots      []WarehouseLotRecord `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time            `gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"not null;autoUpdateTime"`
}

func (WarehouseRecord) TableName() string {
	return "warehouses"
}

// warehouse_lotsテーブルの行。positionが入庫順を保存する。
type WarehouseLotRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	WarehouseID string    `gorm:"type:varchar(64);not null;index"`
	Position    int       `gorm:"not null"`
	ProductID   string    `gorm:"type:varchar(64);not null;index"`
	Width       float64   `gorm:"not null"`
	Height      float64   `gorm:"not null"`
	Length      float64   `gorm:"not null"`
	IsHazardous bool      `gorm:"not null"`
	Quantity    int       `gorm:"not null"`
	ImportedAt  time.Time `gorm:"not null"`
}

func (WarehouseLotRecord) TableName() string {
	return "warehouse_lots"
}

type WarehouseGormRepository struct {
	db *gorm.DB
}

// DI
func NewWarehouseGormRepository(db *gorm.DB) *WarehouseGormRepository {
	return &WarehouseGormRepository{db: db}
}

// Saveは倉庫の行をupsertして、ロット列を丸ごと入れ替える。
func (r *WarehouseGormRepository) Save(ctx context.Context, warehouse *model.Warehouse) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		size := warehouse.Size()
		record := WarehouseRecord{
			ID:     warehouse.ID(),
			Name:   warehouse.Name(),
			Width:  size.Width,
			Height: size.Height,
			Length: size.Length,
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Omit("Lots").Create(&record).Error
		if err != nil {
			return err
		}

		if err := tx.Where("warehouse_id = ?", warehouse.ID()).Delete(&WarehouseLotRecord{}).Error; err != nil {
			return err
		}

		inventory := warehouse.Inventory()
		if len(inventory) == 0 {
			return nil
		}

		lots := make([]WarehouseLotRecord, 0, len(inventory))
		for position, lot := range inventory {
			lots = append(lots, WarehouseLotRecord{
				WarehouseID: warehouse.ID(),
				Position:    position,
				ProductID:   lot.ProductID,
				Width:       lot.ProductSize.Width,
				Height:      lot.ProductSize.Height,
				Length:      lot.ProductSize.Length,
				IsHazardous: lot.ProductIsHazardous,
				Quantity:    lot.Quantity,
				ImportedAt:  lot.ImportedAt,
			})
		}
		return tx.Create(&lots).Error
	})
}

func (r *WarehouseGormRepository) FindByID(ctx context.Context, id string) (*model.Warehouse, error) {
	var record WarehouseRecord
	err := r.preloadLots(r.db.WithContext(ctx)).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toWarehouse(record)
}

func (r *WarehouseGormRepository) FindAll(ctx context.Context) ([]*model.Warehouse, error) {
	var records []WarehouseRecord
	err := r.preloadLots(r.db.WithContext(ctx)).
		Order("created_at asc").Order("id asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toWarehouses(records)
}

func (r *WarehouseGormRepository) FindAndCount(ctx context.Context, page, limit int) ([]*model.Warehouse, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&WarehouseRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var records []WarehouseRecord
	err := r.preloadLots(r.db.WithContext(ctx)).
		Order("created_at asc").Order("id asc").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	warehouses, err := toWarehouses(records)
	if err != nil {
		return nil, 0, err
	}
	return warehouses, total, nil
}

func (r *WarehouseGormRepository) FindByName(ctx context.Context, name string) (*model.Warehouse, error) {
	var record WarehouseRecord
	err := r.preloadLots(r.db.WithContext(ctx)).First(&record, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toWarehouse(record)
}

func (r *WarehouseGormRepository) FindAllByProductID(ctx context.Context, productID string) ([]*model.Warehouse, error) {
	// その商品のロットを持つ倉庫idを集めてから引き直す
	sub := r.db.WithContext(ctx).Model(&WarehouseLotRecord{}).
		Distinct("warehouse_id").
		Where("product_id = ?", productID)

	var records []WarehouseRecord
	err := r.preloadLots(r.db.WithContext(ctx)).
		Where("id IN (?)", sub).
		Order("created_at asc").Order("id asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toWarehouses(records)
}

func (r *WarehouseGormRepository) Delete(ctx context.Context, warehouse *model.Warehouse) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("warehouse_id = ?", warehouse.ID()).Delete(&WarehouseLotRecord{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&WarehouseRecord{}, "id = ?", warehouse.ID())
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *WarehouseGormRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&WarehouseLotRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&WarehouseRecord{}).Error
	})
}

// ロットは必ずposition順で読む（FIFOの同時刻タイブレークが入庫順のため）
func (r *WarehouseGormRepository) preloadLots(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Lots", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	})
}

func toWarehouse(record WarehouseRecord) (*model.Warehouse, error) {
	inventory := make([]model.StockLot, 0, len(record.Lots))
	for _, lot := range record.Lots {
		inventory = append(inventory, model.StockLot{
			ProductID: lot.ProductID,
			ProductSize: model.Size{
				Width:  lot.Width,
				Height: lot.Height,
				Length: lot.Length,
			},
			ProductIsHazardous: lot.IsHazardous,
			Quantity:           lot.Quantity,
			ImportedAt:         lot.ImportedAt,
		})
	}

	return model.NewWarehouse(model.NewWarehouseParams{
		ID:   record.ID,
		Name: record.Name,
		Size: model.Size{
			Width:  record.Width,
			Height: record.Height,
			Length: record.Length,
		},
		Inventory: inventory,
	})
}

func toWarehouses(records []WarehouseRecord) ([]*model.Warehouse, error) {
	warehouses := make([]*model.Warehouse, 0, len(records))
	for _, record := range records {
		warehouse, err := toWarehouse(record)
		if err != nil {
			return nil, err
		}
		warehouses = append(warehouses, warehouse)
	}
	return warehouses, nil
}
