package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type IDResponse struct {
	ID string `json:"id"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{
			Error:   he.Message,
			Code:    he.Code,
			Details: he.Details,
		})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "internal error",
		Code:  usecase.CodeGeneral,
	})
}

// page/limitのクエリパラメータ（default 1/20）
func pagination(c echo.Context) (int, int, error) {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := parsePositiveInt(v)
		if err != nil {
			return 0, 0, err
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := parsePositiveInt(v)
		if err != nil {
			return 0, 0, err
		}
		limit = l
	}

	return page, limit, nil
}
