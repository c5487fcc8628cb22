package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"resto-pos/dtos"
	"resto-pos/models"
	"resto-pos/services"
	"resto-pos/utils"
)

type InventoryController struct {
	inventory services.InventoryService
}

func NewInventoryController(inventory services.InventoryService) *InventoryController {
	return &InventoryController{inventory: inventory}
}

// GetIngredients lists every ingredient, or only those at or below minimum with ?low=true.
func (i *InventoryController) GetIngredients(c *gin.Context) {
	list := i.inventory.ListIngredients
	if c.Query("low") == "true" {
		list = i.inventory.LowStock
	}
	ingredients, err := list(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (i *InventoryController) GetIngredientByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ing, err := i.inventory.GetIngredient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (i *InventoryController) CreateIngredient(c *gin.Context) {
	var input dtos.IngredientInput
	if !bindJSON(c, &input) {
		return
	}
	ing, err := i.inventory.AddIngredient(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ing)
}

func (i *InventoryController) UpdateIngredient(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dtos.IngredientInput
	if !bindJSON(c, &input) {
		return
	}
	ing, err := i.inventory.UpdateIngredient(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (i *InventoryController) AddStock(c *gin.Context) {
	i.adjust(c, i.inventory.AddStock)
}

func (i *InventoryController) RemoveStock(c *gin.Context) {
	i.adjust(c, i.inventory.RemoveStock)
}

func (i *InventoryController) adjust(c *gin.Context, apply func(context.Context, uint, float64, string) (*models.Ingredient, error)) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dtos.StockAdjustInput
	if !bindJSON(c, &input) {
		return
	}
	ing, err := apply(c.Request.Context(), id, input.Quantity, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (i *InventoryController) GetHistory(c *gin.Context) {
	var ingredientID *uint
	if c.Query("ingredient_id") != "" {
		id, ok := utils.QueryUint(c, "ingredient_id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient_id"})
			return
		}
		ingredientID = &id
	}
	txs, err := i.inventory.History(c.Request.Context(), ingredientID, utils.QueryInt(c, "limit", 100, 1000))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (i *InventoryController) GetRecipe(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	recipe, err := i.inventory.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (i *InventoryController) SetRecipe(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input dtos.RecipeInput
	if !bindJSON(c, &input) {
		return
	}
	recipe, err := i.inventory.SetRecipe(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (i *InventoryController) GetSuppliers(c *gin.Context) {
	suppliers, err := i.inventory.ListSuppliers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (i *InventoryController) CreateSupplier(c *gin.Context) {
	var input dtos.SupplierInput
	if !bindJSON(c, &input) {
		return
	}
	s, err := i.inventory.AddSupplier(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}
