package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// クライアントが分岐に使う安定したエラーコード
const (
	CodeTypeValidation     = "TYPE_VALIDATION"
	CodeEntityNotFound     = "ENTITY_NOT_FOUND"
	CodeOperationForbidden = "OPERATION_FORBIDDEN"
	CodeUniqueConstraint   = "UNIQUE_CONSTRAINT"
	CodeCantMixProducts    = "CANT_MIX_PRODUCTS"
	CodeNotEnoughQuantity  = "NOT_ENOUGH_QUANTITY"
	CodeNotEnoughSpace     = "NOT_ENOUGH_SPACE_IN_WAREHOUSE"
	CodeProductNotStocked  = "PRODUCT_NOT_STOCKED"
	CodeGeneral            = "GENERAL"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details map[string]interface{}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

func NewHTTPError(status int, code string, message string) error {
	return &HTTPError{Status: status, Code: code, Message: message}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// ドメイン・リポジトリのエラーをHTTPErrorへ写す。
// 詳細（フィールドパス、要求数と在庫数など）はDetailsに残す。
func toHTTPError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}

	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return &HTTPError{
			Status:  http.StatusBadRequest,
			Code:    CodeTypeValidation,
			Message: validationErr.Error(),
			Details: map[string]interface{}{
				"path":     validationErr.Path,
				"value":    validationErr.Value,
				"expected": validationErr.Expected,
			},
		}
	}

	var spaceErr *model.NotEnoughSpaceError
	if errors.As(err, &spaceErr) {
		return &HTTPError{
			Status:  http.StatusConflict,
			Code:    CodeNotEnoughSpace,
			Message: spaceErr.Error(),
			Details: map[string]interface{}{
				"warehouse_id": spaceErr.WarehouseID,
			},
		}
	}

	var mixErr *model.CantMixProductsError
	if errors.As(err, &mixErr) {
		return &HTTPError{
			Status:  http.StatusConflict,
			Code:    CodeCantMixProducts,
			Message: mixErr.Error(),
		}
	}

	var notStockedErr *model.ProductNotStockedError
	if errors.As(err, &notStockedErr) {
		return &HTTPError{
			Status:  http.StatusConflict,
			Code:    CodeProductNotStocked,
			Message: notStockedErr.Error(),
			Details: map[string]interface{}{
				"product_id": notStockedErr.ProductID,
			},
		}
	}

	var quantityErr *model.NotEnoughQuantityError
	if errors.As(err, &quantityErr) {
		return &HTTPError{
			Status:  http.StatusConflict,
			Code:    CodeNotEnoughQuantity,
			Message: quantityErr.Error(),
			Details: map[string]interface{}{
				"product_id":   quantityErr.ProductID,
				"warehouse_id": quantityErr.WarehouseID,
				"requested":    quantityErr.Requested,
				"available":    quantityErr.Available,
			},
		}
	}

	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, CodeEntityNotFound, "not found")
	}

	//500
	return NewHTTPError(http.StatusInternalServerError, CodeGeneral, "internal error")
}

func notFoundError(entityType string, id string) error {
	return NewHTTPError(http.StatusNotFound, CodeEntityNotFound,
		fmt.Sprintf("failed to find entity %s #%s", entityType, id))
}

func uniqueConstraintError(path string) error {
	return NewHTTPError(http.StatusConflict, CodeUniqueConstraint,
		fmt.Sprintf("unique constraint for %s failed", path))
}

func operationForbiddenError(message string) error {
	return NewHTTPError(http.StatusConflict, CodeOperationForbidden,
		fmt.Sprintf("operation forbidden - %s", message))
}
