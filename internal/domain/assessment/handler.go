package assessment

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diacare/diacare/internal/platform/schema"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:patientId/assessments", h.History)
	api.POST("/patients/:patientId/assessments", h.Record)
}

func (h *Handler) History(c echo.Context) error {
	items, err := h.svc.History(c.Request().Context(), c.Param("patientId"))
	if err != nil {
		if schema.IsValidation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "error fetching assessments")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Record(c echo.Context) error {
	var a Assessment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.svc.Record(c.Request().Context(), c.Param("patientId"), &a)
	if err != nil {
		if schema.IsValidation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "error saving assessment")
	}
	return c.JSON(http.StatusCreated, created)
}
