package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"resto-pos/dtos"
	"resto-pos/logger"
	"resto-pos/models"
)

type DeductionStatus string

const (
	DeductionDeducted     DeductionStatus = "deducted"
	DeductionInsufficient DeductionStatus = "insufficient"
	DeductionSkipped      DeductionStatus = "skipped"
)

type SoldItem struct {
	MenuItemID uint
	Quantity   int
}

type IngredientOutcome struct {
	MenuItemID     uint            `json:"menu_item_id"`
	IngredientID   uint            `json:"ingredient_id,omitempty"`
	IngredientName string          `json:"ingredient_name,omitempty"`
	Required       float64         `json:"required,omitempty"`
	Available      float64         `json:"available,omitempty"`
	Status         DeductionStatus `json:"status"`
}

// StockDeduction is the per-order result. OK is false only on a database error.
type StockDeduction struct {
	OK       bool                `json:"ok"`
	Reason   string              `json:"reason,omitempty"`
	Outcomes []IngredientOutcome `json:"outcomes"`
}

func (d StockDeduction) Count(status DeductionStatus) int {
	n := 0
	for _, o := range d.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

type InventoryService interface {
	DeductForOrder(ctx context.Context, orderID uint, items []SoldItem) StockDeduction

	AddIngredient(ctx context.Context, input dtos.IngredientInput) (*models.Ingredient, error)
	UpdateIngredient(ctx context.Context, id uint, input dtos.IngredientInput) (*models.Ingredient, error)
	GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error)
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	AddStock(ctx context.Context, id uint, qty float64, reason string) (*models.Ingredient, error)
	RemoveStock(ctx context.Context, id uint, qty float64, reason string) (*models.Ingredient, error)
	LowStock(ctx context.Context) ([]models.Ingredient, error)
	SetRecipe(ctx context.Context, menuItemID uint, input dtos.RecipeInput) ([]models.MenuIngredient, error)
	GetRecipe(ctx context.Context, menuItemID uint) ([]models.MenuIngredient, error)
	History(ctx context.Context, ingredientID *uint, limit int) ([]models.StockTransaction, error)

	AddSupplier(ctx context.Context, input dtos.SupplierInput) (*models.Supplier, error)
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
}

type inventoryService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInventoryService(db *gorm.DB, log *logger.Logger) InventoryService {
	return &inventoryService{db: db, log: log.WithComponent("inventory")}
}

// DeductForOrder walks each sold item's recipe. Every sufficient ingredient is
// decremented and logged on its own; nothing is undone if a later one fails.
func (s *inventoryService) DeductForOrder(ctx context.Context, orderID uint, items []SoldItem) StockDeduction {
	result := StockDeduction{OK: true}
	db := s.db.WithContext(ctx)

	for _, item := range items {
		units := item.Quantity
		if units <= 0 {
			units = 1
		}

		var recipe []models.MenuIngredient
		if err := db.Preload("Ingredient").Where("menu_item_id = ?", item.MenuItemID).Find(&recipe).Error; err != nil {
			return s.fail(result, orderID, err)
		}
		if len(recipe) == 0 {
			result.Outcomes = append(result.Outcomes, IngredientOutcome{MenuItemID: item.MenuItemID, Status: DeductionSkipped})
			continue
		}

		for _, line := range recipe {
			required := line.QuantityRequired * float64(units)
			outcome := IngredientOutcome{
				MenuItemID:   item.MenuItemID,
				IngredientID: line.IngredientID,
				Required:     required,
			}
			if line.Ingredient != nil {
				outcome.IngredientName = line.Ingredient.Name
			}

			reason := fmt.Sprintf("Order #%d: Menu Item #%d", orderID, item.MenuItemID)
			deducted, available, err := s.deduct(db, line.IngredientID, required, reason)
			if err != nil {
				return s.fail(result, orderID, err)
			}
			outcome.Available = available
			if deducted {
				outcome.Status = DeductionDeducted
			} else {
				outcome.Status = DeductionInsufficient
				s.log.Warn("insufficient stock", "order_id", orderID, "ingredient_id", line.IngredientID,
					"required", required, "available", available)
			}
			result.Outcomes = append(result.Outcomes, outcome)
		}
	}
	return result
}

func (s *inventoryService) fail(result StockDeduction, orderID uint, err error) StockDeduction {
	s.log.Error("stock deduction failed", "order_id", orderID, "error", err)
	result.OK = false
	result.Reason = err.Error()
	return result
}

// deduct decrements one ingredient when enough stock is on hand and logs an
// out transaction. It reports the stock available before the attempt.
func (s *inventoryService) deduct(db *gorm.DB, ingredientID uint, qty float64, reason string) (bool, float64, error) {
	var available float64
	deducted := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var ing models.Ingredient
		if err := tx.First(&ing, ingredientID).Error; err != nil {
			return notFound(err)
		}
		available = ing.CurrentStock
		res := tx.Model(&models.Ingredient{}).
			Where("id = ? AND current_stock >= ?", ingredientID, qty).
			Update("current_stock", gorm.Expr("current_stock - ?", qty))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deducted = true
		return tx.Create(&models.StockTransaction{
			IngredientID: ingredientID,
			Type:         models.StockOut,
			Quantity:     qty,
			Reason:       reason,
		}).Error
	})
	return deducted, available, err
}

func validateIngredient(input dtos.IngredientInput) error {
	valid := false
	for _, u := range models.IngredientUnits {
		if u == input.Unit {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("%w: unknown unit %q", ErrInvalidInput, input.Unit)
	}
	if input.CurrentStock < 0 || input.MinStock < 0 || input.CostPerUnit < 0 {
		return fmt.Errorf("%w: quantities must not be negative", ErrInvalidInput)
	}
	return nil
}

func (s *inventoryService) AddIngredient(ctx context.Context, input dtos.IngredientInput) (*models.Ingredient, error) {
	if err := validateIngredient(input); err != nil {
		return nil, err
	}
	ing := models.Ingredient{
		Name:         input.Name,
		Unit:         input.Unit,
		CurrentStock: input.CurrentStock,
		MinStock:     input.MinStock,
		CostPerUnit:  input.CostPerUnit,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Ingredient{}).Where("name = ?", input.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: ingredient %s exists", ErrConflict, input.Name)
		}
		if err := tx.Create(&ing).Error; err != nil {
			return err
		}
		if ing.CurrentStock > 0 {
			return tx.Create(&models.StockTransaction{
				IngredientID: ing.ID,
				Type:         models.StockIn,
				Quantity:     ing.CurrentStock,
				Reason:       "Initial stock",
			}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

// UpdateIngredient edits metadata only; stock moves go through AddStock and RemoveStock.
func (s *inventoryService) UpdateIngredient(ctx context.Context, id uint, input dtos.IngredientInput) (*models.Ingredient, error) {
	if err := validateIngredient(input); err != nil {
		return nil, err
	}
	var ing models.Ingredient
	if err := s.db.WithContext(ctx).First(&ing, id).Error; err != nil {
		return nil, notFound(err)
	}
	ing.Name = input.Name
	ing.Unit = input.Unit
	ing.MinStock = input.MinStock
	ing.CostPerUnit = input.CostPerUnit
	if err := s.db.WithContext(ctx).Save(&ing).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func (s *inventoryService) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := s.db.WithContext(ctx).First(&ing, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ing, nil
}

func (s *inventoryService) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var list []models.Ingredient
	err := s.db.WithContext(ctx).Order("name").Find(&list).Error
	return list, err
}

func (s *inventoryService) AddStock(ctx context.Context, id uint, qty float64, reason string) (*models.Ingredient, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	var ing models.Ingredient
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		ing, err = addStock(tx, id, qty, reason)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

// addStock runs inside the caller's transaction.
func addStock(tx *gorm.DB, id uint, qty float64, reason string) (models.Ingredient, error) {
	var ing models.Ingredient
	if err := tx.First(&ing, id).Error; err != nil {
		return ing, notFound(err)
	}
	if err := tx.Model(&ing).Update("current_stock", gorm.Expr("current_stock + ?", qty)).Error; err != nil {
		return ing, err
	}
	if err := tx.Create(&models.StockTransaction{IngredientID: id, Type: models.StockIn, Quantity: qty, Reason: reason}).Error; err != nil {
		return ing, err
	}
	err := tx.First(&ing, id).Error
	return ing, err
}

func (s *inventoryService) RemoveStock(ctx context.Context, id uint, qty float64, reason string) (*models.Ingredient, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	deducted, available, err := s.deduct(s.db.WithContext(ctx), id, qty, reason)
	if err != nil {
		return nil, err
	}
	if !deducted {
		return nil, fmt.Errorf("%w: %.2f available, %.2f requested", ErrInsufficientStock, available, qty)
	}
	return s.GetIngredient(ctx, id)
}

func (s *inventoryService) LowStock(ctx context.Context) ([]models.Ingredient, error) {
	var list []models.Ingredient
	err := s.db.WithContext(ctx).Where("current_stock <= min_stock").Order("name").Find(&list).Error
	return list, err
}

// SetRecipe replaces the whole recipe of a menu item.
func (s *inventoryService) SetRecipe(ctx context.Context, menuItemID uint, input dtos.RecipeInput) ([]models.MenuIngredient, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.First(&item, menuItemID).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("menu_item_id = ?", menuItemID).Delete(&models.MenuIngredient{}).Error; err != nil {
			return err
		}
		seen := map[uint]bool{}
		for _, l := range input.Lines {
			if l.QuantityRequired <= 0 {
				return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
			}
			if seen[l.IngredientID] {
				return fmt.Errorf("%w: ingredient %d listed twice", ErrInvalidInput, l.IngredientID)
			}
			seen[l.IngredientID] = true
			var ing models.Ingredient
			if err := tx.First(&ing, l.IngredientID).Error; err != nil {
				return fmt.Errorf("%w: unknown ingredient %d", ErrInvalidInput, l.IngredientID)
			}
			if err := tx.Create(&models.MenuIngredient{
				MenuItemID:       menuItemID,
				IngredientID:     l.IngredientID,
				QuantityRequired: l.QuantityRequired,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, menuItemID)
}

func (s *inventoryService) GetRecipe(ctx context.Context, menuItemID uint) ([]models.MenuIngredient, error) {
	var recipe []models.MenuIngredient
	err := s.db.WithContext(ctx).Preload("Ingredient").Where("menu_item_id = ?", menuItemID).Order("id").Find(&recipe).Error
	return recipe, err
}

func (s *inventoryService) History(ctx context.Context, ingredientID *uint, limit int) ([]models.StockTransaction, error) {
	if limit <= 0 {
		limit = 100
	}
	q := s.db.WithContext(ctx).Preload("Ingredient").Order("id DESC").Limit(limit)
	if ingredientID != nil {
		q = q.Where("ingredient_id = ?", *ingredientID)
	}
	var txs []models.StockTransaction
	err := q.Find(&txs).Error
	return txs, err
}

func (s *inventoryService) AddSupplier(ctx context.Context, input dtos.SupplierInput) (*models.Supplier, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Supplier{}).Where("name = ?", input.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: supplier %s exists", ErrConflict, input.Name)
	}
	sup := models.Supplier{
		Name:    input.Name,
		Contact: input.Contact,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
	}
	if err := s.db.WithContext(ctx).Create(&sup).Error; err != nil {
		return nil, err
	}
	return &sup, nil
}

func (s *inventoryService) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var list []models.Supplier
	err := s.db.WithContext(ctx).Order("name").Find(&list).Error
	return list, err
}
