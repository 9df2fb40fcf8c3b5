package message

import (
	"net/http"

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
	api.GET("/messages", h.List)
	api.GET("/messages/conversation/:contactId", h.Conversation)
	api.POST("/messages", h.Send)
}

func (h *Handler) List(c echo.Context) error {
	contactID := c.QueryParam("contactId")
	items, err := h.svc.ForContact(c.Request().Context(), contactID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error fetching messages")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Conversation(c echo.Context) error {
	items, err := h.svc.Conversation(c.Request().Context(), auth.UserID(c), c.Param("contactId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error fetching conversation")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Send(c echo.Context) error {
	var m Message
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if m.SenderID == "" {
		m.SenderID = schema.ID(auth.UserID(c))
	}
	sent, err := h.svc.Send(c.Request().Context(), &m)
	if err != nil {
		if schema.IsValidation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "error sending message")
	}
	return c.JSON(http.StatusCreated, sent)
}
