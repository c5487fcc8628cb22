package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resto-pos/dtos"
	"resto-pos/services"
)

// CartController drives the per-user cart and its checkout.
type CartController struct {
	carts    *services.CartStore
	menu     services.MenuService
	checkout services.CheckoutService
}

func NewCartController(carts *services.CartStore, menu services.MenuService, checkout services.CheckoutService) *CartController {
	return &CartController{carts: carts, menu: menu, checkout: checkout}
}

func cartView(lines []services.CartLine) gin.H {
	var subtotal float64
	for _, l := range lines {
		subtotal += l.Price
	}
	return gin.H{"lines": lines, "subtotal": subtotal}
}

func (cc *CartController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartView(cc.carts.Lines(currentUser(c))))
}

func (cc *CartController) AddItem(c *gin.Context) {
	var input dtos.CartAddInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := cc.menu.Get(c.Request.Context(), input.MenuItemID)
	if err != nil {
		respondError(c, err)
		return
	}
	line, err := cc.carts.Add(currentUser(c), *item, input.Plate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	userID := currentUser(c)
	if err := cc.carts.Remove(userID, index); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(cc.carts.Lines(userID)))
}

func (cc *CartController) ClearCart(c *gin.Context) {
	cc.carts.Clear(currentUser(c))
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

func (cc *CartController) Preview(c *gin.Context) {
	var input dtos.PreviewInput
	if c.Request.ContentLength > 0 && !bindJSON(c, &input) {
		return
	}
	preview, err := cc.checkout.Preview(c.Request.Context(), cc.carts.Lines(currentUser(c)), input.Table)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// Checkout settles the cart. Downstream failures come back as warnings on a 201.
func (cc *CartController) Checkout(c *gin.Context) {
	var input dtos.CheckoutInput
	if !bindJSON(c, &input) {
		return
	}
	userID := currentUser(c)
	lines := cc.carts.Take(userID)
	result, err := cc.checkout.Checkout(c.Request.Context(), services.CheckoutRequest{
		Lines:       lines,
		Table:       input.Table,
		PaymentMode: input.PaymentMode,
	})
	if err != nil {
		cc.carts.Restore(userID, lines)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
