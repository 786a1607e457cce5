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

// productsテーブルの行。ドメインのProductとは分けておく。
type ProductRecord struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)"`
	Name        string    `gorm:"type:varchar(64);not null;index"`
	Width       float64   `gorm:"not null"`
	Height      float64   `gorm:"not null"`
	Length      float64   `gorm:"not null"`
	IsHazardous bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime"`
}

func (ProductRecord) TableName() string {
	return "products"
}

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) Save(ctx context.Context, product *model.Product) error {
	record := toProductRecord(product)

	// idでupsert
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&record).Error
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var record ProductRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toProduct(record)
}

func (r *ProductGormRepository) FindAll(ctx context.Context) ([]*model.Product, error) {
	var records []ProductRecord
	if err := r.db.WithContext(ctx).Order("created_at asc").Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return toProducts(records)
}

func (r *ProductGormRepository) FindAndCount(ctx context.Context, page, limit int) ([]*model.Product, int64, error) {
	var total int64
	tx := r.db.WithContext(ctx).Model(&ProductRecord{})
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var records []ProductRecord
	err := tx.Order("created_at asc").Order("id asc").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	products, err := toProducts(records)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductGormRepository) FindByNameAndSize(ctx context.Context, name string, size model.Size) (*model.Product, error) {
	var record ProductRecord
	err := r.db.WithContext(ctx).
		Where("name = ? AND width = ? AND height = ? AND length = ?", name, size.Width, size.Height, size.Length).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toProduct(record)
}

func (r *ProductGormRepository) Delete(ctx context.Context, product *model.Product) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&ProductRecord{}, "id = ?", product.ID())
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ProductGormRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&ProductRecord{}).Error
}

func toProductRecord(product *model.Product) ProductRecord {
	size := product.Size()
	return ProductRecord{
		ID:          product.ID(),
		Name:        product.Name(),
		Width:       size.Width,
		Height:      size.Height,
		Length:      size.Length,
		IsHazardous: product.IsHazardous(),
	}
}

func toProduct(record ProductRecord) (*model.Product, error) {
	return model.NewProduct(model.NewProductParams{
		ID:   record.ID,
		Name: record.Name,
		Size: model.Size{
			Width:  record.Width,
			Height: record.Height,
			Length: record.Length,
		},
		IsHazardous: record.IsHazardous,
	})
}

func toProducts(records []ProductRecord) ([]*model.Product, error) {
	products := make([]*model.Product, 0, len(records))
	for _, record := range records {
		product, err := toProduct(record)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}
