package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/srgjo27/gercamp/internal/core/services"
)

type BookingHandler struct {
	svc *services.BookingService
	log *zap.Logger
}

func NewBookingHandler(svc *services.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, log: log}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	booking, err := h.svc.CreateBooking(c.Request.Context(), principal(c), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var req services.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	req.ID = c.Param("id")

	booking, err := h.svc.UpdateBooking(c.Request.Context(), principal(c), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	booking, err := h.svc.CancelBooking(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	if err := h.svc.DeleteBooking(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.svc.GetBooking(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	var req services.ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badBody(c, err)
		return
	}

	page, err := h.svc.ListBookings(c.Request.Context(), principal(c), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *BookingHandler) AvailableYurts(c *gin.Context) {
	var req services.AvailableYurtsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badBody(c, err)
		return
	}

	yurts, err := h.svc.AvailableYurts(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": yurts})
}

func (h *BookingHandler) YurtSchedule(c *gin.Context) {
	entries, err := h.svc.YurtSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": entries})
}
