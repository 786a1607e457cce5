package model

import "fmt"

// 容量オーバー
type NotEnoughSpaceError struct {
	WarehouseID string
}

func (e *NotEnoughSpaceError) Error() string {
	return fmt.Sprintf("there is not enough space in warehouse #%s", e.WarehouseID)
}

// 危険物と通常品の混載は禁止
type CantMixProductsError struct{}

func (e *CantMixProductsError) Error() string {
	return "hazardous and non-hazardous products can not be mixed in one warehouse"
}

// 現時点で在庫ゼロの商品を出庫しようとした
type ProductNotStockedError struct {
	ProductID string
}

func (e *ProductNotStockedError) Error() string {
	return fmt.Sprintf("product #%s is not stocked", e.ProductID)
}

// 出庫数が現在の在庫数を超えている
type NotEnoughQuantityError struct {
	ProductID   string
	WarehouseID string
	Requested   int
	Available   int
}

func (e *NotEnoughQuantityError) Error() string {
	return fmt.Sprintf(
		"there is not enough quantity of product #%s in warehouse #%s: requested %d, while there are only %d",
		e.ProductID, e.WarehouseID, e.Requested, e.Available,
	)
}
