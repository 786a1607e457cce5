package usecase

import (
	"context"
	"time"

	"app/internal/domain/event"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) Save(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

func (m *ProductRepoMock) FindAll(ctx context.Context) ([]*model.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]*model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) FindAndCount(ctx context.Context, page, limit int) ([]*model.Product, int64, error) {
	args := m.Called(ctx, page, limit)
	products, _ := args.Get(0).([]*model.Product)
	return products, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByNameAndSize(ctx context.Context, name string, size model.Size) (*model.Product, error) {
	args := m.Called(ctx, name, size)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

func (m *ProductRepoMock) Delete(ctx context.Context, product *model.Product) (bool, error) {
	args := m.Called(ctx, product)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepoMock) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type WarehouseRepoMock struct{ mock.Mock }

func (m *WarehouseRepoMock) Save(ctx context.Context, warehouse *model.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *WarehouseRepoMock) FindByID(ctx context.Context, id string) (*model.Warehouse, error) {
	args := m.Called(ctx, id)
	warehouse, _ := args.Get(0).(*model.Warehouse)
	return warehouse, args.Error(1)
}

func (m *WarehouseRepoMock) FindAll(ctx context.Context) ([]*model.Warehouse, error) {
	args := m.Called(ctx)
	warehouses, _ := args.Get(0).([]*model.Warehouse)
	return warehouses, args.Error(1)
}

func (m *WarehouseRepoMock) FindAndCount(ctx context.Context, page, limit int) ([]*model.Warehouse, int64, error) {
	args := m.Called(ctx, page, limit)
	warehouses, _ := args.Get(0).([]*model.Warehouse)
	return warehouses, args.Get(1).(int64), args.Error(2)
}

func (m *WarehouseRepoMock) FindByName(ctx context.Context, name string) (*model.Warehouse, error) {
	args := m.Called(ctx, name)
	warehouse, _ := args.Get(0).(*model.Warehouse)
	return warehouse, args.Error(1)
}

func (m *WarehouseRepoMock) FindAllByProductID(ctx context.Context, productID string) ([]*model.Warehouse, error) {
	args := m.Called(ctx, productID)
	warehouses, _ := args.Get(0).([]*model.Warehouse)
	return warehouses, args.Error(1)
}

func (m *WarehouseRepoMock) Delete(ctx context.Context, warehouse *model.Warehouse) (bool, error) {
	args := m.Called(ctx, warehouse)
	return args.Bool(0), args.Error(1)
}

func (m *WarehouseRepoMock) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type AuditLogMock struct{ mock.Mock }

func (m *AuditLogMock) Append(ctx context.Context, e event.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *AuditLogMock) Search(ctx context.Context, params repo.AuditLogSearch) ([]event.Event, error) {
	args := m.Called(ctx, params)
	events, _ := args.Get(0).([]event.Event)
	return events, args.Error(1)
}

func (m *AuditLogMock) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// テスト用の固定時刻
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}
