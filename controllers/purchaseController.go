package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resto-pos/dtos"
	"resto-pos/services"
	"resto-pos/utils"
)

type PurchaseController struct {
	purchases services.PurchaseService
}

func NewPurchaseController(purchases services.PurchaseService) *PurchaseController {
	return &PurchaseController{purchases: purchases}
}

func (p *PurchaseController) CreatePurchaseOrder(c *gin.Context) {
	var input dtos.PurchaseOrderInput
	if !bindJSON(c, &input) {
		return
	}
	po, err := p.purchases.Create(c.Request.Context(), input, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, po)
}

func (p *PurchaseController) GetPurchaseOrders(c *gin.Context) {
	pos, err := p.purchases.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pos)
}

func (p *PurchaseController) GetPurchaseOrderByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	po, err := p.purchases.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, po)
}

// ReceivePurchaseOrder books stock in. An empty body receives every open line in full.
func (p *PurchaseController) ReceivePurchaseOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dtos.ReceiveInput
	if c.Request.ContentLength > 0 && !bindJSON(c, &input) {
		return
	}
	po, err := p.purchases.Receive(c.Request.Context(), id, input, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, po)
}

func (p *PurchaseController) CancelPurchaseOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	po, err := p.purchases.Cancel(c.Request.Context(), id, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, po)
}

func (p *PurchaseController) GetPurchaseSummary(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	sum, err := p.purchases.Summary(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (p *PurchaseController) GetPayables(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Query("overdue") == "true" {
		overdue, err := p.purchases.Overdue(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, overdue)
		return
	}
	payables, err := p.purchases.Payables(ctx, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payables)
}

func (p *PurchaseController) GetPayablesSummary(c *gin.Context) {
	sum, err := p.purchases.PayablesSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (p *PurchaseController) RecordSupplierPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dtos.SupplierPaymentInput
	if !bindJSON(c, &input) {
		return
	}
	payment, err := p.purchases.RecordPayment(c.Request.Context(), id, input, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (p *PurchaseController) GetSupplierPayments(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	payments, err := p.purchases.SupplierPayments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (p *PurchaseController) GetSupplierBalance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	bal, err := p.purchases.SupplierBalance(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bal)
}
