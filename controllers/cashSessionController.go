package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resto-pos/dtos"
	"resto-pos/services"
	"resto-pos/utils"
)

// AccountingController covers the cash ledger, expenses and financial reports.
type AccountingController struct {
	ledger     services.LedgerService
	accounting services.AccountingService
}

func NewAccountingController(ledger services.LedgerService, accounting services.AccountingService) *AccountingController {
	return &AccountingController{ledger: ledger, accounting: accounting}
}

func (a *AccountingController) GetAccounts(c *gin.Context) {
	accounts, err := a.ledger.Accounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (a *AccountingController) GetAccountByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	acc, err := a.ledger.Account(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

func (a *AccountingController) GetLedger(c *gin.Context) {
	txs, err := a.ledger.RecentTransactions(c.Request.Context(), utils.QueryInt(c, "limit", 50, 500))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (a *AccountingController) CreateExpense(c *gin.Context) {
	var input dtos.ExpenseInput
	if !bindJSON(c, &input) {
		return
	}
	exp, err := a.accounting.AddExpense(c.Request.Context(), input, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exp)
}

func (a *AccountingController) GetExpenses(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	list, err := a.accounting.ListExpenses(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *AccountingController) GetExpenseSummary(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	sum, err := a.accounting.ExpenseSummary(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (a *AccountingController) GetDailySales(c *gin.Context) {
	var q struct {
		Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	day, err := a.accounting.DailySales(c.Request.Context(), q.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (a *AccountingController) GetSalesReport(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	rep, err := a.accounting.SalesReport(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (a *AccountingController) GetPaymentBreakdown(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	b, err := a.accounting.PaymentBreakdown(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (a *AccountingController) GetProfitLoss(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	pl, err := a.accounting.ProfitLoss(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pl)
}

func (a *AccountingController) GetInventoryValuation(c *gin.Context) {
	v, err := a.accounting.InventoryValuation(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (a *AccountingController) GetBalanceSheet(c *gin.Context) {
	bs, err := a.accounting.BalanceSheet(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bs)
}

func (a *AccountingController) GetTaxSummary(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	ts, err := a.accounting.TaxSummary(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ts)
}
