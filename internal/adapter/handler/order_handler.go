package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/srgjo27/gercamp/internal/core/services"
)

type OrderHandler struct {
	svc *services.OrderService
	log *zap.Logger
}

func NewOrderHandler(svc *services.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	order, err := h.svc.CreateOrder(c.Request.Context(), principal(c), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req services.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	req.ID = c.Param("id")

	order, err := h.svc.UpdateOrder(c.Request.Context(), principal(c), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	order, err := h.svc.CancelOrder(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.svc.DeleteOrder(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.svc.GetOrder(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	var req services.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badBody(c, err)
		return
	}

	page, err := h.svc.ListOrders(c.Request.Context(), principal(c), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
