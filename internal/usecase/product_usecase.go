package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	warehouseRepo repo.WarehouseRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	warehouseRepo repo.WarehouseRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// APIに返す商品の形
type ProductDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Size        model.Size `json:"size"`
	IsHazardous bool       `json:"is_hazardous"`
}

func toProductDTO(product *model.Product) ProductDTO {
	return ProductDTO{
		ID:          product.ID(),
		Name:        product.Name(),
		Size:        product.Size(),
		IsHazardous: product.IsHazardous(),
	}
}

type CreateProductInput struct {
	Name        string
	Size        model.Size
	IsHazardous bool
}

// 商品を作る。name+sizeの組は一意。
func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (string, error) {
	existing, err := u.productRepo.FindByNameAndSize(ctx, in.Name, in.Size)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return "", toHTTPError(err)
	}
	if existing != nil {
		return "", uniqueConstraintError("name+size")
	}

	product, err := model.NewProduct(model.NewProductParams{
		Name:        in.Name,
		Size:        in.Size,
		IsHazardous: in.IsHazardous,
	})
	if err != nil {
		return "", toHTTPError(err)
	}

	if err := u.productRepo.Save(ctx, product); err != nil {
		return "", toHTTPError(err)
	}
	return product.ID(), nil
}

type UpdateProductInput struct {
	ID          string
	Name        *string
	Size        *model.Size
	IsHazardous *bool
}

// 商品を更新する。寸法・危険物フラグの変更は、どこかの倉庫に
// 在庫がある間は禁止（既存ロットの容量・混載の前提が崩れるため）。
func (u *ProductUsecase) UpdateProduct(ctx context.Context, in UpdateProductInput) error {
	product, err := u.productRepo.FindByID(ctx, in.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return notFoundError("product", in.ID)
	}
	if err != nil {
		return toHTTPError(err)
	}

	if in.Size != nil {
		if *in.Size != product.Size() {
			if err := u.makeSureProductIsNotStockedAnywhere(ctx, in.ID); err != nil {
				return err
			}
		}
		if err := product.ChangeSize(*in.Size); err != nil {
			return toHTTPError(err)
		}
	}

	if in.IsHazardous != nil {
		if *in.IsHazardous != product.IsHazardous() {
			if err := u.makeSureProductIsNotStockedAnywhere(ctx, in.ID); err != nil {
				return err
			}
		}
		product.ChangeIsHazardous(*in.IsHazardous)
	}

	if in.Name != nil {
		if err := product.ChangeName(*in.Name); err != nil {
			return toHTTPError(err)
		}
	}

	if err := u.productRepo.Save(ctx, product); err != nil {
		return toHTTPError(err)
	}
	return nil
}

// 商品を削除する。在庫に載っている商品は消せない。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, id string) error {
	product, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return notFoundError("product", id)
	}
	if err != nil {
		return toHTTPError(err)
	}

	if err := u.makeSureProductIsNotStockedAnywhere(ctx, id); err != nil {
		return err
	}

	if _, err := u.productRepo.Delete(ctx, product); err != nil {
		return toHTTPError(err)
	}
	return nil
}

type ListProductsInput struct {
	Page  int
	Limit int
}

type ProductListOutput struct {
	Items []ProductDTO `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, CodeTypeValidation, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, CodeTypeValidation, "invalid limit")
	}

	products, total, err := u.productRepo.FindAndCount(ctx, in.Page, in.Limit)
	if err != nil {
		return ProductListOutput{}, toHTTPError(err)
	}

	items := make([]ProductDTO, 0, len(products))
	for _, product := range products {
		items = append(items, toProductDTO(product))
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, id string) (ProductDTO, error) {
	product, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductDTO{}, notFoundError("product", id)
	}
	if err != nil {
		return ProductDTO{}, toHTTPError(err)
	}
	return toProductDTO(product), nil
}

func (u *ProductUsecase) makeSureProductIsNotStockedAnywhere(ctx context.Context, id string) error {
	warehouses, err := u.warehouseRepo.FindAllByProductID(ctx, id)
	if err != nil {
		return toHTTPError(err)
	}
	if len(warehouses) > 0 {
		ids := make([]string, 0, len(warehouses))
		for _, warehouse := range warehouses {
			ids = append(ids, warehouse.ID())
		}
		return operationForbiddenError(
			fmt.Sprintf("product #%s is stocked in warehouses - %s", id, strings.Join(ids, ", ")))
	}
	return nil
}
