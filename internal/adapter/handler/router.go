package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Bookings       *BookingHandler
	Orders         *OrderHandler
	Travels        *TravelHandler
	Verifier       TokenVerifier
	Logger         *zap.Logger
	MetricsEnabled bool
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(cfg.Logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api", Authenticate(cfg.Verifier, cfg.Logger))

	yurts := api.Group("/yurts")
	yurts.GET("/available", cfg.Bookings.AvailableYurts)
	yurts.GET("/:id/schedule", cfg.Bookings.YurtSchedule)

	bookings := api.Group("/bookings")
	bookings.GET("", cfg.Bookings.ListBookings)
	bookings.GET("/:id", cfg.Bookings.GetBooking)
	bookings.POST("", cfg.Bookings.CreateBooking)
	bookings.PATCH("/:id", cfg.Bookings.UpdateBooking)
	bookings.POST("/:id/cancel", cfg.Bookings.CancelBooking)
	bookings.DELETE("/:id", cfg.Bookings.DeleteBooking)

	travel := api.Group("/travel-bookings")
	travel.GET("", cfg.Travels.ListTravelBookings)
	travel.GET("/:id", cfg.Travels.GetTravelBooking)
	travel.POST("", cfg.Travels.CreateTravelBooking)
	travel.PATCH("/:id", cfg.Travels.UpdateTravelBooking)
	travel.POST("/:id/cancel", cfg.Travels.CancelTravelBooking)
	travel.DELETE("/:id", cfg.Travels.DeleteTravelBooking)

	orders := api.Group("/orders")
	orders.GET("", cfg.Orders.ListOrders)
	orders.GET("/:id", cfg.Orders.GetOrder)
	orders.POST("", cfg.Orders.CreateOrder)
	orders.PATCH("/:id", cfg.Orders.UpdateOrder)
	orders.POST("/:id/cancel", cfg.Orders.CancelOrder)
	orders.DELETE("/:id", cfg.Orders.DeleteOrder)

	return r
}
