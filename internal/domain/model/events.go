package model

import "time"

// イベントに載せる商品スナップショット（importedの時点の値）
type ProductSnapshot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        Size   `json:"size"`
	IsHazardous bool   `json:"isHazardous"`
}

type WarehouseSnapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// product_importedのペイロード
type ProductImportedData struct {
	Product    ProductSnapshot   `json:"product"`
	Warehouse  WarehouseSnapshot `json:"warehouse"`
	Quantity   int               `json:"quantity"`
	ImportedAt time.Time         `json:"importedAt"`
}

// product_exportedのペイロード
type ProductExportedData struct {
	Product   ProductSnapshot   `json:"product"`
	Warehouse WarehouseSnapshot `json:"warehouse"`
	Quantity  int               `json:"quantity"`
}
