package notification

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/diacare/diacare/internal/platform/auth"
	"github.com/diacare/diacare/internal/platform/schema"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/notifications", h.List)
	api.GET("/notifications/unread-count", h.UnreadCount)
	api.PUT("/notifications/read-all", h.MarkAllRead)
	api.PUT("/notifications/:id/read", h.MarkRead)
	api.POST("/notifications/token", h.RegisterToken)
}

func (h *Handler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	items, err := h.svc.List(c.Request().Context(), auth.UserID(c), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error fetching notifications")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UnreadCount(c echo.Context) error {
	count, err := h.svc.UnreadCount(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error counting notifications")
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

func (h *Handler) MarkRead(c echo.Context) error {
	n, err := h.svc.MarkRead(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error updating notification")
	}
	if n == nil {
		return echo.NewHTTPError(http.StatusNotFound, "notification not found")
	}
	return c.JSON(http.StatusOK, n)
}

func (h *Handler) MarkAllRead(c echo.Context) error {
	result, err := h.svc.MarkAllRead(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error updating notifications")
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) RegisterToken(c echo.Context) error {
	var body struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RegisterToken(c.Request().Context(), body.Token, auth.UserID(c)); err != nil {
		if schema.IsValidation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "error registering token")
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
