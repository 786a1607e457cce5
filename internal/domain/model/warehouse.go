package model

import (
	"fmt"
	"sort"
	"time"

	"app/internal/domain/event"
)

// StockLotは1回のimportで入庫したひとまとまりの在庫。
// 商品の寸法・危険物フラグは入庫時点のスナップショット（後から商品を
// 変更しても既存ロットには影響しない）。
type StockLot struct {
	ProductID          string    `json:"product_id"`
	ProductSize        Size      `json:"product_size"`
	ProductIsHazardous bool      `json:"product_is_hazardous"`
	Quantity           int       `json:"quantity"`
	ImportedAt         time.Time `json:"imported_at"`
}

// Warehouseは在庫台帳の本体。
// inventoryの変更はImport/Exportだけで、どちらも成功して全部反映するか、
// 失敗して何も変えないかの二択。
type Warehouse struct {
	id        string
	name      string
	size      Size
	inventory []StockLot
}

type NewWarehouseParams struct {
	ID        string // 空なら自動採番
	Name      string
	Size      Size
	Inventory []StockLot // 永続化からの復元用。新規作成ならnil
}

func NewWarehouse(params NewWarehouseParams) (*Warehouse, error) {
	if err := ValidateName(params.Name); err != nil {
		return nil, err
	}
	if err := ValidateSize(params.Size); err != nil {
		return nil, err
	}

	id := params.ID
	if id == "" {
		id = NewID()
	}

	return &Warehouse{
		id:        id,
		name:      params.Name,
		size:      params.Size,
		inventory: params.Inventory,
	}, nil
}

func (w *Warehouse) ID() string {
	return w.id
}

func (w *Warehouse) Name() string {
	return w.name
}

func (w *Warehouse) Size() Size {
	return w.size
}

// Inventoryはロット列のコピーを返す（外から直接書き換えさせない）。
func (w *Warehouse) Inventory() []StockLot {
	inventory := make([]StockLot, len(w.inventory))
	copy(inventory, w.inventory)
	return inventory
}

// Importは商品を入庫する。
// 容量チェック→混載チェック→ロット追加→product_importedをemit。
// 同じ商品・同じ日付でもロットはマージしない（FIFOの系譜を保つ）。
func (w *Warehouse) Import(events *event.Channel, product *Product, quantity int, date time.Time) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	if err := ValidateDate(date); err != nil {
		return err
	}

	if err := w.makeSureThereIsEnoughSpaceFor(product, quantity); err != nil {
		return err
	}
	if err := w.makeSureProductsAreNotMixed(product); err != nil {
		return err
	}

	w.inventory = append(w.inventory, StockLot{
		ProductID:          product.ID(),
		ProductSize:        product.Size(),
		ProductIsHazardous: product.IsHazardous(),
		Quantity:           quantity,
		ImportedAt:         date,
	})

	events.Emit(event.TypeProductImported, ProductImportedData{
		Product:    w.snapshotProduct(product),
		Warehouse:  WarehouseSnapshot{ID: w.id, Name: w.name},
		Quantity:   quantity,
		ImportedAt: date,
	})

	return nil
}

// Exportは商品を出庫する。nowの時点でimportedAt <= nowのロットだけが対象で、
// 古いロットから順に消費する（FIFO）。importedAtが同じロットは入庫順。
func (w *Warehouse) Export(events *event.Channel, product *Product, quantity int, now time.Time) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}

	available := w.countProductStock(product.ID(), now)
	if available == 0 {
		return &ProductNotStockedError{ProductID: product.ID()}
	}
	if available < quantity {
		return &NotEnoughQuantityError{
			ProductID:   product.ID(),
			WarehouseID: w.id,
			Requested:   quantity,
			Available:   available,
		}
	}

	w.decreaseInventory(product.ID(), quantity, now)

	events.Emit(event.TypeProductExported, ProductExportedData{
		Product:   w.snapshotProduct(product),
		Warehouse: WarehouseSnapshot{ID: w.id, Name: w.name},
		Quantity:  quantity,
	})

	return nil
}

// SpaceStatsはnow時点の容量の内訳を返す。読み取り専用。
type SpaceStats struct {
	TotalSpace          float64 `json:"total_space"`
	CurrentStockedSpace float64 `json:"current_stocked_space"`
	FutureStockedSpace  float64 `json:"future_stocked_space"`
	FreeSpace           float64 `json:"free_space"`
}

func (w *Warehouse) CalculateSpaceStats(now time.Time) SpaceStats {
	var current, future float64
	for _, lot := range w.inventory {
		space := float64(lot.Quantity) * lot.ProductSize.Volume()
		if lot.ImportedAt.After(now) {
			future += space
		} else {
			current += space
		}
	}

	total := w.size.Volume()
	return SpaceStats{
		TotalSpace:          total,
		CurrentStockedSpace: current,
		FutureStockedSpace:  future,
		FreeSpace:           total - current - future,
	}
}

func (w *Warehouse) snapshotProduct(product *Product) ProductSnapshot {
	return ProductSnapshot{
		ID:          product.ID(),
		Name:        product.Name(),
		Size:        product.Size(),
		IsHazardous: product.IsHazardous(),
	}
}

// 未来日付のロットもスペースは予約済みとして数える
func (w *Warehouse) makeSureThereIsEnoughSpaceFor(product *Product, quantity int) error {
	var usedUpSpace float64
	for _, lot := range w.inventory {
		usedUpSpace += float64(lot.Quantity) * lot.ProductSize.Volume()
	}

	incomingSpace := float64(quantity) * product.Size().Volume()
	if usedUpSpace+incomingSpace > w.size.Volume() {
		return &NotEnoughSpaceError{WarehouseID: w.id}
	}
	return nil
}

// 全ロットが同じ危険物フラグという不変条件があるので、先頭だけ見れば足りる
func (w *Warehouse) makeSureProductsAreNotMixed(product *Product) error {
	if len(w.inventory) == 0 {
		return nil
	}
	if w.inventory[0].ProductIsHazardous != product.IsHazardous() {
		return &CantMixProductsError{}
	}
	return nil
}

func (w *Warehouse) countProductStock(productID string, now time.Time) int {
	total := 0
	for _, lot := range w.inventory {
		if lot.ProductID == productID && !lot.ImportedAt.After(now) {
			total += lot.Quantity
		}
	}
	return total
}

func (w *Warehouse) decreaseInventory(productID string, quantity int, now time.Time) {
	// 出庫対象のロットをFIFO順（importedAt昇順、同時刻は入庫順）で並べる
	indexes := make([]int, 0, len(w.inventory))
	for i, lot := range w.inventory {
		if lot.ProductID == productID && !lot.ImportedAt.After(now) {
			indexes = append(indexes, i)
		}
	}
	sort.SliceStable(indexes, func(a, b int) bool {
		return w.inventory[indexes[a]].ImportedAt.Before(w.inventory[indexes[b]].ImportedAt)
	})

	remaining := quantity
	removed := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		lot := &w.inventory[i]
		if lot.Quantity > remaining {
			lot.Quantity -= remaining
			remaining = 0
			break
		}

		remaining -= lot.Quantity
		removed[i] = true
		if remaining == 0 {
			break
		}
	}

	// 事前にavailable >= quantityを確認済みなので、ここでゼロでなければ
	// 台帳のロジック自体が壊れている
	if remaining != 0 {
		panic(fmt.Sprintf("warehouse #%s inventory accounting is inconsistent: %d left to export", w.id, remaining))
	}

	if len(removed) == 0 {
		return
	}

	inventory := w.inventory[:0]
	for i, lot := range w.inventory {
		if !removed[i] {
			inventory = append(inventory, lot)
		}
	}
	w.inventory = inventory
}
