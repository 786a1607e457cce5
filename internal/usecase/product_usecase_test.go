package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductUsecase_CreateProduct_Success(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	uc := NewProductUsecase(pRepo, new(WarehouseRepoMock))

	size := model.Size{Width: 1, Height: 2, Length: 3}
	pRepo.On("FindByNameAndSize", mock.Anything, "barrel", size).Return(nil, repo.ErrNotFound)
	pRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	id, err := uc.CreateProduct(ctx, CreateProductInput{Name: "barrel", Size: size, IsHazardous: true})
	assert.NoError(t, err)
	assert.NotEmpty(t, id)
	pRepo.AssertCalled(t, "Save", mock.Anything, mock.Anything)
}

// name+sizeの組は一意
func TestProductUsecase_CreateProduct_DuplicateNameAndSize(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	uc := NewProductUsecase(pRepo, new(WarehouseRepoMock))

	size := model.Size{Width: 1, Height: 2, Length: 3}
	existing := testProduct(t, "p1", size)
	pRepo.On("FindByNameAndSize", mock.Anything, "barrel", size).Return(existing, nil)

	_, err := uc.CreateProduct(ctx, CreateProductInput{Name: "barrel", Size: size})

	he, ok := AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusConflict, he.Status)
		assert.Equal(t, CodeUniqueConstraint, he.Code)
	}
	pRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductUsecase_CreateProduct_InvalidSize(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	uc := NewProductUsecase(pRepo, new(WarehouseRepoMock))

	size := model.Size{Width: -1, Height: 2, Length: 3}
	pRepo.On("FindByNameAndSize", mock.Anything, "barrel", size).Return(nil, repo.ErrNotFound)

	_, err := uc.CreateProduct(ctx, CreateProductInput{Name: "barrel", Size: size})

	he, ok := AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusBadRequest, he.Status)
		assert.Equal(t, CodeTypeValidation, he.Code)
	}
}

func TestProductUsecase_UpdateProduct_RenameOnly(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	wRepo := new(WarehouseRepoMock)
	uc := NewProductUsecase(pRepo, wRepo)

	product := testProduct(t, "p1", model.Size{Width: 1, Height: 1, Length: 1})
	pRepo.On("FindByID", mock.Anything, "p1").Return(product, nil)
	pRepo.On("Save", mock.Anything, product).Return(nil)

	name := "crate"
	err := uc.UpdateProduct(ctx, UpdateProductInput{ID: "p1", Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, "crate", product.Name())

	// 名前だけの変更は在庫チェック不要
	wRepo.AssertNotCalled(t, "FindAllByProductID", mock.Anything, mock.Anything)
}

// 在庫が残っている間は寸法を変えられない
func TestProductUsecase_UpdateProduct_SizeChangeBlockedWhileStocked(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	wRepo := new(WarehouseRepoMock)
	uc := NewProductUsecase(pRepo, wRepo)

	product := testProduct(t, "p1", model.Size{Width: 1, Height: 1, Length: 1})
	stocked := testWarehouse(t, "w1", model.Size{Width: 10, Height: 10, Length: 10}, nil)

	pRepo.On("FindByID", mock.Anything, "p1").Return(product, nil)
	wRepo.On("FindAllByProductID", mock.Anything, "p1").Return([]*model.Warehouse{stocked}, nil)

	newSize := model.Size{Width: 5, Height: 5, Length: 5}
	err := uc.UpdateProduct(ctx, UpdateProductInput{ID: "p1", Size: &newSize})

	he, ok := AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusConflict, he.Status)
		assert.Equal(t, CodeOperationForbidden, he.Code)
	}
	assert.Equal(t, model.Size{Width: 1, Height: 1, Length: 1}, product.Size())
	pRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// 同じ値への「変更」は在庫があっても通る
func TestProductUsecase_UpdateProduct_SameSizeIsNotAChange(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	wRepo := new(WarehouseRepoMock)
	uc := NewProductUsecase(pRepo, wRepo)

	size := model.Size{Width: 1, Height: 1, Length: 1}
	product := testProduct(t, "p1", size)
	pRepo.On("FindByID", mock.Anything, "p1").Return(product, nil)
	pRepo.On("Save", mock.Anything, product).Return(nil)

	err := uc.UpdateProduct(ctx, UpdateProductInput{ID: "p1", Size: &size})
	assert.NoError(t, err)
	wRepo.AssertNotCalled(t, "FindAllByProductID", mock.Anything, mock.Anything)
}

func TestProductUsecase_UpdateProduct_HazardousChangeBlockedWhileStocked(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	wRepo := new(WarehouseRepoMock)
	uc := NewProductUsecase(pRepo, wRepo)

	product := testProduct(t, "p1", model.Size{Width: 1, Height: 1, Length: 1})
	stocked := testWarehouse(t, "w1", model.Size{Width: 10, Height: 10, Length: 10}, nil)

	pRepo.On("FindByID", mock.Anything, "p1").Return(product, nil)
	wRepo.On("FindAllByProductID", mock.Anything, "p1").Return([]*model.Warehouse{stocked}, nil)

	hazardous := true
	err := uc.UpdateProduct(ctx, UpdateProductInput{ID: "p1", IsHazardous: &hazardous})

	he, ok := AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, CodeOperationForbidden, he.Code)
	}
	assert.False(t, product.IsHazardous())
}

func TestProductUsecase_UpdateProduct_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := NewProductUsecase(pRepo, new(WarehouseRepoMock))

	pRepo.On("FindByID", mock.Anything, "missing").Return(nil, repo.ErrNotFound)

	name := "crate"
	err := uc.UpdateProduct(context.Background(), UpdateProductInput{ID: "missing", Name: &name})

	he, ok := AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusNotFound, he.Status)
		assert.Equal(t, CodeEntityNotFound, he.Code)
	}
}

func TestProductUsecase_DeleteProduct_Success(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	wRepo := new(WarehouseRepoMock)
	uc := NewProductUsecase(pRepo, wRepo)

	product := testProduct(t, "p1", model.Size{Width: 1, Height: 1, Length: 1})
	pRepo.On("FindByID", mock.Anything, "p1").Return(product, nil)
	wRepo.On("FindAllByProductID", mock.Anything, "p1").Return([]*model.Warehouse{}, nil)
	pRepo.On("Delete", mock.Anything, product).Return(true, nil)

	assert.NoError(t, uc.DeleteProduct(ctx, "p1"))
	pRepo.AssertCalled(t, "Delete", mock.Anything, product)
}

func TestProductUsecase_DeleteProduct_BlockedWhileStocked(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	wRepo := new(WarehouseRepoMock)
	uc := NewProductUsecase(pRepo, wRepo)

	product := testProduct(t, "p1", model.Size{Width: 1, Height: 1, Length: 1})
	stocked := testWarehouse(t, "w1", model.Size{Width: 10, Height: 10, Length: 10}, nil)

	pRepo.On("FindByID", mock.Anything, "p1").Return(product, nil)
	wRepo.On("FindAllByProductID", mock.Anything, "p1").Return([]*model.Warehouse{stocked}, nil)

	err := uc.DeleteProduct(ctx, "p1")

	he, ok := AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusConflict, he.Status)
		assert.Contains(t, he.Message, "w1")
	}
	pRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProductUsecase_ListProducts(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	uc := NewProductUsecase(pRepo, new(WarehouseRepoMock))

	product := testProduct(t, "p1", model.Size{Width: 1, Height: 1, Length: 1})
	pRepo.On("FindAndCount", mock.Anything, 2, 10).Return([]*model.Product{product}, int64(11), nil)

	out, err := uc.ListProducts(ctx, ListProductsInput{Page: 2, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(11), out.Total)
	assert.Equal(t, 2, out.Page)
	if assert.Len(t, out.Items, 1) {
		assert.Equal(t, "p1", out.Items[0].ID)
	}
}

func TestProductUsecase_ListProducts_InvalidPagination(t *testing.T) {
	uc := NewProductUsecase(new(ProductRepoMock), new(WarehouseRepoMock))

	_, err := uc.ListProducts(context.Background(), ListProductsInput{Page: 0, Limit: 20})
	he, ok := AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusBadRequest, he.Status)
	}

	_, err = uc.ListProducts(context.Background(), ListProductsInput{Page: 1, Limit: 0})
	assert.Error(t, err)
}

func TestProductUsecase_GetProduct_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := NewProductUsecase(pRepo, new(WarehouseRepoMock))

	pRepo.On("FindByID", mock.Anything, "missing").Return(nil, repo.ErrNotFound)

	_, err := uc.GetProduct(context.Background(), "missing")
	he, ok := AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusNotFound, he.Status)
	}
}
