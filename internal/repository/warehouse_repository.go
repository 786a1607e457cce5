package repository

import (
	"context"

	"app/internal/domain/model"
)

// 倉庫の永続化だけを約束。inventoryのロット列も丸ごと保存・復元する。
type WarehouseRepository interface {
	// idでupsert（ロット列も置き換える）
	Save(ctx context.Context, warehouse *model.Warehouse) error

	FindByID(ctx context.Context, id string) (*model.Warehouse, error)
	FindAll(ctx context.Context) ([]*model.Warehouse, error)
	FindAndCount(ctx context.Context, page, limit int) ([]*model.Warehouse, int64, error)

	// 倉庫名の一意制約チェック用
	FindByName(ctx context.Context, name string) (*model.Warehouse, error)

	// その商品のロットを持つ倉庫を全部返す（商品削除・変更のガードに使う）
	FindAllByProductID(ctx context.Context, productID string) ([]*model.Warehouse, error)

	Delete(ctx context.Context, warehouse *model.Warehouse) (bool, error)
	DeleteAll(ctx context.Context) error
}
