package handler

import (
	"net/http"
	"time"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /events のAPI（入出庫の履歴）
type EventHandler struct {
	uc *usecase.EventUsecase
}

// DI
func NewEventHandler(uc *usecase.EventUsecase) *EventHandler {
	return &EventHandler{uc: uc}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/events", h.history)
}

// ?warehouse_id=...&warehouse_id=...&date=2023-10-18
func (h *EventHandler) history(c echo.Context) error {
	in := usecase.HistoryInput{
		WarehouseIDs: c.QueryParams()["warehouse_id"],
	}

	if v := c.QueryParam("date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date", Code: usecase.CodeTypeValidation})
		}
		in.Date = &date
	}

	events, err := h.uc.GetHistoricImportsAndExports(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}
