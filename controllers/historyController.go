package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resto-pos/dtos"
	"resto-pos/services"
)

type OrderController struct {
	orders   services.OrderService
	checkout services.CheckoutService
}

func NewOrderController(orders services.OrderService, checkout services.CheckoutService) *OrderController {
	return &OrderController{orders: orders, checkout: checkout}
}

func (o *OrderController) GetOrders(c *gin.Context) {
	var filter dtos.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	orders, err := o.orders.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (o *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := o.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (o *OrderController) Reprint(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := o.checkout.Reprint(c.Request.Context(), id); err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			// the printer itself failed
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "receipt sent to printer"})
}
