package vitals

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
	api.GET("/patients/:patientId/vitals", h.ByPatient)
	api.POST("/patients/:patientId/vitals", h.Add)
	api.DELETE("/patients/:patientId/vitals/:id", h.Delete)
}

func (h *Handler) ByPatient(c echo.Context) error {
	pv, err := h.svc.ByPatient(c.Request().Context(), c.Param("patientId"))
	if err != nil {
		if schema.IsValidation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "error fetching vitals")
	}
	return c.JSON(http.StatusOK, pv)
}

func (h *Handler) Add(c echo.Context) error {
	var r Reading
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.svc.Add(c.Request().Context(), c.Param("patientId"), &r)
	if err != nil {
		if schema.IsValidation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "error adding reading")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) Delete(c echo.Context) error {
	ok, err := h.svc.Delete(c.Request().Context(), c.Param("patientId"), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error deleting reading")
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "reading not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"id": c.Param("id"), "deleted": true})
}
