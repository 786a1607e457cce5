package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/event"
	"app/internal/domain/model"
	repo "app/internal/repository"
)

type WarehouseUsecase struct {
	warehouseRepo repo.WarehouseRepository
	productRepo   repo.ProductRepository
	events        *event.Channel
	clock         Clock
	locks         *warehouseLocks
}

// DI
func NewWarehouseUsecase(
	warehouseRepo repo.WarehouseRepository,
	productRepo repo.ProductRepository,
	events *event.Channel,
	clock Clock,
) *WarehouseUsecase {
	return &WarehouseUsecase{
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		events:        events,
		clock:         clock,
		locks:         newWarehouseLocks(),
	}
}

// APIに返す倉庫の形（inventory込み）
type WarehouseDTO struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Size      model.Size       `json:"size"`
	Inventory []model.StockLot `json:"inventory"`
}

func toWarehouseDTO(warehouse *model.Warehouse) WarehouseDTO {
	return WarehouseDTO{
		ID:        warehouse.ID(),
		Name:      warehouse.Name(),
		Size:      warehouse.Size(),
		Inventory: warehouse.Inventory(),
	}
}

type CreateWarehouseInput struct {
	Name string
	Size model.Size
}

// 倉庫を作る。名前は一意。
func (u *WarehouseUsecase) CreateWarehouse(ctx context.Context, in CreateWarehouseInput) (string, error) {
	existing, err := u.warehouseRepo.FindByName(ctx, in.Name)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return "", toHTTPError(err)
	}
	if existing != nil {
		return "", uniqueConstraintError("name")
	}

	warehouse, err := model.NewWarehouse(model.NewWarehouseParams{
		Name: in.Name,
		Size: in.Size,
	})
	if err != nil {
		return "", toHTTPError(err)
	}

	if err := u.warehouseRepo.Save(ctx, warehouse); err != nil {
		return "", toHTTPError(err)
	}
	return warehouse.ID(), nil
}

func (u *WarehouseUsecase) DeleteWarehouse(ctx context.Context, id string) error {
	unlock := u.locks.lock(id)
	defer unlock()

	warehouse, err := u.warehouseRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return notFoundError("warehouse", id)
	}
	if err != nil {
		return toHTTPError(err)
	}

	if _, err := u.warehouseRepo.Delete(ctx, warehouse); err != nil {
		return toHTTPError(err)
	}
	return nil
}

type ListWarehousesInput struct {
	Page  int
	Limit int
}

type WarehouseListOutput struct {
	Items []WarehouseDTO `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func (u *WarehouseUsecase) ListWarehouses(ctx context.Context, in ListWarehousesInput) (WarehouseListOutput, error) {
	if in.Page < 1 {
		return WarehouseListOutput{}, NewHTTPError(http.StatusBadRequest, CodeTypeValidation, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return WarehouseListOutput{}, NewHTTPError(http.StatusBadRequest, CodeTypeValidation, "invalid limit")
	}

	warehouses, total, err := u.warehouseRepo.FindAndCount(ctx, in.Page, in.Limit)
	if err != nil {
		return WarehouseListOutput{}, toHTTPError(err)
	}

	items := make([]WarehouseDTO, 0, len(warehouses))
	for _, warehouse := range warehouses {
		items = append(items, toWarehouseDTO(warehouse))
	}

	return WarehouseListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *WarehouseUsecase) GetWarehouse(ctx context.Context, id string) (WarehouseDTO, error) {
	warehouse, err := u.warehouseRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return WarehouseDTO{}, notFoundError("warehouse", id)
	}
	if err != nil {
		return WarehouseDTO{}, toHTTPError(err)
	}
	return toWarehouseDTO(warehouse), nil
}

type ImportProductInput struct {
	WarehouseID string
	ProductID   string
	Quantity    int
	Date        time.Time
}

// 入庫。倉庫idで直列化してload→import→saveを行う。
func (u *WarehouseUsecase) ImportProduct(ctx context.Context, in ImportProductInput) error {
	unlock := u.locks.lock(in.WarehouseID)
	defer unlock()

	product, warehouse, err := u.loadProductAndWarehouse(ctx, in.ProductID, in.WarehouseID)
	if err != nil {
		return err
	}

	if err := warehouse.Import(u.events, product, in.Quantity, in.Date); err != nil {
		return toHTTPError(err)
	}

	if err := u.warehouseRepo.Save(ctx, warehouse); err != nil {
		return toHTTPError(err)
	}
	return nil
}

type ExportProductInput struct {
	WarehouseID string
	ProductID   string
	Quantity    int
}

// 出庫。入庫と同じく倉庫idで直列化。
func (u *WarehouseUsecase) ExportProduct(ctx context.Context, in ExportProductInput) error {
	unlock := u.locks.lock(in.WarehouseID)
	defer unlock()

	product, warehouse, err := u.loadProductAndWarehouse(ctx, in.ProductID, in.WarehouseID)
	if err != nil {
		return err
	}

	if err := warehouse.Export(u.events, product, in.Quantity, u.clock.Now()); err != nil {
		return toHTTPError(err)
	}

	if err := u.warehouseRepo.Save(ctx, warehouse); err != nil {
		return toHTTPError(err)
	}
	return nil
}

type WarehouseStatsDTO struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	TotalSpace          float64 `json:"total_space"`
	CurrentStockedSpace float64 `json:"current_stocked_space"`
	FutureStockedSpace  float64 `json:"future_stocked_space"`
	FreeSpace           float64 `json:"free_space"`
}

// 全倉庫の現時点の容量内訳。
func (u *WarehouseUsecase) GetWarehouseStats(ctx context.Context) ([]WarehouseStatsDTO, error) {
	warehouses, err := u.warehouseRepo.FindAll(ctx)
	if err != nil {
		return nil, toHTTPError(err)
	}

	now := u.clock.Now()
	stats := make([]WarehouseStatsDTO, 0, len(warehouses))
	for _, warehouse := range warehouses {
		s := warehouse.CalculateSpaceStats(now)
		stats = append(stats, WarehouseStatsDTO{
			ID:                  warehouse.ID(),
			Name:                warehouse.Name(),
			TotalSpace:          s.TotalSpace,
			CurrentStockedSpace: s.CurrentStockedSpace,
			FutureStockedSpace:  s.FutureStockedSpace,
			FreeSpace:           s.FreeSpace,
		})
	}
	return stats, nil
}

func (u *WarehouseUsecase) loadProductAndWarehouse(ctx context.Context, productID, warehouseID string) (*model.Product, *model.Warehouse, error) {
	product, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil, notFoundError("product", productID)
	}
	if err != nil {
		return nil, nil, toHTTPError(err)
	}

	warehouse, err := u.warehouseRepo.FindByID(ctx, warehouseID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil, notFoundError("warehouse", warehouseID)
	}
	if err != nil {
		return nil, nil, toHTTPError(err)
	}

	return product, warehouse, nil
}
