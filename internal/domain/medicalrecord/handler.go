package medicalrecord

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
	api.GET("/patients/:patientId/records", h.History)
	api.POST("/patients/:patientId/records", h.Create)
	api.GET("/records/:id", h.Get)
	api.DELETE("/records/:id", h.Delete)
}

func (h *Handler) History(c echo.Context) error {
	items, err := h.svc.History(c.Request().Context(), c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error fetching medical records")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c echo.Context) error {
	rec, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error fetching medical record")
	}
	if rec == nil {
		return echo.NewHTTPError(http.StatusNotFound, "medical record not found")
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) Create(c echo.Context) error {
	var rec Record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec.PatientID = schema.ID(c.Param("patientId"))
	created, err := h.svc.Create(c.Request().Context(), &rec)
	if err != nil {
		if schema.IsValidation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "error creating medical record")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) Delete(c echo.Context) error {
	ok, err := h.svc.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error deleting medical record")
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "medical record not found")
	}
	return c.NoContent(http.StatusNoContent)
}
