package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resto-pos/dtos"
	"resto-pos/services"
	"resto-pos/utils"
)

// MenuController serves categories and menu items.
type MenuController struct {
	menu services.MenuService
}

func NewMenuController(menu services.MenuService) *MenuController {
	return &MenuController{menu: menu}
}

func (m *MenuController) GetCategories(c *gin.Context) {
	cats, err := m.menu.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (m *MenuController) CreateCategory(c *gin.Context) {
	var input dtos.CategoryInput
	if !bindJSON(c, &input) {
		return
	}
	cat, err := m.menu.CreateCategory(c.Request.Context(), input.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// GetItems lists the menu, one category of it, or a name search with ?q=.
func (m *MenuController) GetItems(c *gin.Context) {
	ctx := c.Request.Context()
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		items, err := m.menu.Search(ctx, q)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
		return
	}

	items, err := m.menu.ListByCategory(ctx, strings.TrimSpace(c.Query("category")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (m *MenuController) GetItemByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := m.menu.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (m *MenuController) CreateItem(c *gin.Context) {
	var input dtos.MenuItemInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := m.menu.Create(c.Request.Context(), input, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (m *MenuController) UpdateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dtos.MenuItemInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := m.menu.Update(c.Request.Context(), id, input, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (m *MenuController) SetAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dtos.AvailabilityInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := m.menu.SetAvailability(c.Request.Context(), id, *input.Available, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (m *MenuController) GetSummary(c *gin.Context) {
	counts, total, err := m.menu.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "categories": counts})
}
