package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/srgjo27/gercamp/internal/core/services"
)

type TravelHandler struct {
	svc *services.TravelService
	log *zap.Logger
}

func NewTravelHandler(svc *services.TravelService, log *zap.Logger) *TravelHandler {
	return &TravelHandler{svc: svc, log: log}
}

func (h *TravelHandler) CreateTravelBooking(c *gin.Context) {
	var req services.CreateTravelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	booking, err := h.svc.CreateTravelBooking(c.Request.Context(), principal(c), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *TravelHandler) UpdateTravelBooking(c *gin.Context) {
	var req services.UpdateTravelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	req.ID = c.Param("id")

	booking, err := h.svc.UpdateTravelBooking(c.Request.Context(), principal(c), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *TravelHandler) CancelTravelBooking(c *gin.Context) {
	booking, err := h.svc.CancelTravelBooking(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *TravelHandler) DeleteTravelBooking(c *gin.Context) {
	if err := h.svc.DeleteTravelBooking(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TravelHandler) GetTravelBooking(c *gin.Context) {
	booking, err := h.svc.GetTravelBooking(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *TravelHandler) ListTravelBookings(c *gin.Context) {
	var req services.ListTravelBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badBody(c, err)
		return
	}

	page, err := h.svc.ListTravelBookings(c.Request.Context(), principal(c), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
