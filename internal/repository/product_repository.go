package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化だけを約束。
type ProductRepository interface {
	// idでupsert
	Save(ctx context.Context, product *model.Product) error

	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context) ([]*model.Product, error)

	// ページング付き一覧（items, total）
	FindAndCount(ctx context.Context, page, limit int) ([]*model.Product, int64, error)

	// 名前+寸法の一意制約チェック用
	FindByNameAndSize(ctx context.Context, name string, size model.Size) (*model.Product, error)

	// 削除できたらtrue
	Delete(ctx context.Context, product *model.Product) (bool, error)
	DeleteAll(ctx context.Context) error
}
