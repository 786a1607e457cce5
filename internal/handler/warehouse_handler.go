package handler

import (
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /warehouses のAPI
type WarehouseHandler struct {
	uc *usecase.WarehouseUsecase
}

// DI
func NewWarehouseHandler(uc *usecase.WarehouseUsecase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

func (h *WarehouseHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/warehouses", h.list)
	e.GET("/warehouses/stats", h.stats)
	e.GET("/warehouses/:id", h.detail)

	e.POST("/warehouses", h.create, auth)
	e.DELETE("/warehouses/:id", h.delete, auth)
	e.POST("/warehouses/:id/import", h.importProduct, auth)
	e.POST("/warehouses/:id/export", h.exportProduct, auth)
}

func (h *WarehouseHandler) list(c echo.Context) error {
	page, limit, err := pagination(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid pagination", Code: usecase.CodeTypeValidation})
	}

	out, err := h.uc.ListWarehouses(c.Request().Context(), usecase.ListWarehousesInput{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WarehouseHandler) stats(c echo.Context) error {
	out, err := h.uc.GetWarehouseStats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WarehouseHandler) detail(c echo.Context) error {
	out, err := h.uc.GetWarehouse(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type createWarehouseRequest struct {
	Name string     `json:"name"`
	Size model.Size `json:"size"`
}

func (h *WarehouseHandler) create(c echo.Context) error {
	var req createWarehouseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Code: usecase.CodeTypeValidation})
	}

	id, err := h.uc.CreateWarehouse(c.Request().Context(), usecase.CreateWarehouseInput{
		Name: req.Name,
		Size: req.Size,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, IDResponse{ID: id})
}

func (h *WarehouseHandler) delete(c echo.Context) error {
	if err := h.uc.DeleteWarehouse(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

type importProductRequest struct {
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"` // RFC3339。未来日付も可（予約入庫）
}

func (h *WarehouseHandler) importProduct(c echo.Context) error {
	var req importProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Code: usecase.CodeTypeValidation})
	}

	err := h.uc.ImportProduct(c.Request().Context(), usecase.ImportProductInput{
		WarehouseID: c.Param("id"),
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		Date:        req.Date,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "imported"})
}

type exportProductRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *WarehouseHandler) exportProduct(c echo.Context) error {
	var req exportProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Code: usecase.CodeTypeValidation})
	}

	err := h.uc.ExportProduct(c.Request().Context(), usecase.ExportProductInput{
		WarehouseID: c.Param("id"),
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "exported"})
}
