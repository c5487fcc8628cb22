package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resto-pos/services"
	"resto-pos/utils"
)

// AnalyticsController serves the dashboard widgets and the automation checks.
type AnalyticsController struct {
	analytics  services.AnalyticsService
	automation services.AutomationService
}

func NewAnalyticsController(analytics services.AnalyticsService, automation services.AutomationService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics, automation: automation}
}

func (a *AnalyticsController) GetDashboard(c *gin.Context) {
	d, err := a.analytics.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (a *AnalyticsController) GetToday(c *gin.Context) {
	t, err := a.analytics.TodaySummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (a *AnalyticsController) GetPopularItems(c *gin.Context) {
	period := c.DefaultQuery("period", services.PeriodToday)
	items, err := a.analytics.PopularItems(c.Request.Context(), period, utils.QueryInt(c, "limit", 10, 100))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (a *AnalyticsController) GetCategoryPerformance(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	cats, err := a.analytics.CategoryPerformance(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (a *AnalyticsController) GetHourlySales(c *gin.Context) {
	var q struct {
		Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hours, err := a.analytics.HourlySales(c.Request.Context(), q.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hours)
}

func (a *AnalyticsController) GetAlerts(c *gin.Context) {
	alerts, err := a.automation.Alerts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// CreateAutoPurchaseOrder drafts a reorder for one low-stock ingredient.
func (a *AnalyticsController) CreateAutoPurchaseOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input struct {
		Quantity float64 `json:"quantity" binding:"gte=0"`
	}
	if c.Request.ContentLength > 0 && !bindJSON(c, &input) {
		return
	}
	po, err := a.automation.AutoPurchaseOrder(c.Request.Context(), id, input.Quantity, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, po)
}

func (a *AnalyticsController) RunDaily(c *gin.Context) {
	report, err := a.automation.RunDaily(c.Request.Context(), c.Query("create_orders") == "true", utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
