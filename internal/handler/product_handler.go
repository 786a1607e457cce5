package handler

import (
	"net/http"
	"strconv"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products のAPI
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 読み取りは公開、書き込みはauthの後ろ
func (h *ProductHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)

	e.POST("/products", h.create, auth)
	e.PATCH("/products/:id", h.update, auth)
	e.DELETE("/products/:id", h.delete, auth)
}

func (h *ProductHandler) list(c echo.Context) error {
	page, limit, err := pagination(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid pagination", Code: usecase.CodeTypeValidation})
	}

	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	out, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type createProductRequest struct {
	Name        string     `json:"name"`
	Size        model.Size `json:"size"`
	IsHazardous bool       `json:"is_hazardous"`
}

func (h *ProductHandler) create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Code: usecase.CodeTypeValidation})
	}

	id, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Name:        req.Name,
		Size:        req.Size,
		IsHazardous: req.IsHazardous,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, IDResponse{ID: id})
}

type updateProductRequest struct {
	Name        *string     `json:"name"`
	Size        *model.Size `json:"size"`
	IsHazardous *bool       `json:"is_hazardous"`
}

func (h *ProductHandler) update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Code: usecase.CodeTypeValidation})
	}

	err := h.uc.UpdateProduct(c.Request().Context(), usecase.UpdateProductInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		Size:        req.Size,
		IsHazardous: req.IsHazardous,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *ProductHandler) delete(c echo.Context) error {
	if err := h.uc.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func parsePositiveInt(v string) (int, error) {
	i, err := strconv.Atoi(v)
	if err != nil || i < 1 {
		return 0, echo.ErrBadRequest
	}
	return i, nil
}
