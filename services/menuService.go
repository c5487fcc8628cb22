package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"resto-pos/dtos"
	"resto-pos/models"
)

type MenuService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	ListByCategory(ctx context.Context, category string) ([]models.MenuItem, error)
	Search(ctx context.Context, query string) ([]models.MenuItem, error)
	Get(ctx context.Context, id uint) (*models.MenuItem, error)
	Create(ctx context.Context, input dtos.MenuItemInput, userID *uint) (*models.MenuItem, error)
	Update(ctx context.Context, id uint, input dtos.MenuItemInput, userID *uint) (*models.MenuItem, error)
	SetAvailability(ctx context.Context, id uint, available bool, userID *uint) (*models.MenuItem, error)
	Summary(ctx context.Context) ([]dtos.CategoryCount, int, error)
}

type menuService struct {
	db *gorm.DB
}

func NewMenuService(db *gorm.DB) MenuService {
	return &menuService{db: db}
}

func (s *menuService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	err := s.db.WithContext(ctx).Order("id").Find(&cats).Error
	return cats, err
}

func (s *menuService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: category %s exists", ErrConflict, name)
	}
	cat := models.Category{Name: name}
	if err := s.db.WithContext(ctx).Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// ListByCategory returns every item when category is empty.
func (s *menuService) ListByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	q := s.db.WithContext(ctx).Order("name")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var items []models.MenuItem
	err := q.Find(&items).Error
	return items, err
}

// Search matches every whitespace-separated term against the name.
func (s *menuService) Search(ctx context.Context, query string) ([]models.MenuItem, error) {
	q := s.db.WithContext(ctx).Order("name")
	for _, term := range strings.Fields(strings.ToLower(query)) {
		q = q.Where("LOWER(name) LIKE ?", "%"+term+"%")
	}
	var items []models.MenuItem
	err := q.Find(&items).Error
	return items, err
}

func (s *menuService) Get(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func validateMenuInput(input dtos.MenuItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.FoodType != models.FoodTypeVeg && input.FoodType != models.FoodTypeNonVeg {
		return fmt.Errorf("%w: food type must be veg or non-veg", ErrInvalidInput)
	}
	if input.PriceSingle < 0 || (input.PriceFull != nil && *input.PriceFull < 0) {
		return fmt.Errorf("%w: prices must not be negative", ErrInvalidInput)
	}
	return nil
}

func (s *menuService) categoryExists(tx *gorm.DB, name string) error {
	var count int64
	if err := tx.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: unknown category %s", ErrInvalidInput, name)
	}
	return nil
}

func (s *menuService) Create(ctx context.Context, input dtos.MenuItemInput, userID *uint) (*models.MenuItem, error) {
	if err := validateMenuInput(input); err != nil {
		return nil, err
	}
	item := models.MenuItem{
		Name:        strings.TrimSpace(input.Name),
		Category:    input.Category,
		FoodType:    input.FoodType,
		PriceSingle: input.PriceSingle,
		PriceFull:   input.PriceFull,
		IsAvailable: input.PriceSingle > 0,
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.categoryExists(tx, item.Category); err != nil {
			return err
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return recordAudit(tx, userID, "menu.create", "menu_item", uintPtr(item.ID), input)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *menuService) Update(ctx context.Context, id uint, input dtos.MenuItemInput, userID *uint) (*models.MenuItem, error) {
	if err := validateMenuInput(input); err != nil {
		return nil, err
	}
	var item models.MenuItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return notFound(err)
		}
		if err := s.categoryExists(tx, input.Category); err != nil {
			return err
		}
		before := item
		item.Name = strings.TrimSpace(input.Name)
		item.Category = input.Category
		item.FoodType = input.FoodType
		item.PriceSingle = input.PriceSingle
		item.PriceFull = input.PriceFull
		if input.IsAvailable != nil {
			item.IsAvailable = *input.IsAvailable
		}
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		return recordAudit(tx, userID, "menu.update", "menu_item", uintPtr(item.ID),
			map[string]any{"before": before, "after": item})
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *menuService) SetAvailability(ctx context.Context, id uint, available bool, userID *uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Model(&item).Update("is_available", available).Error; err != nil {
			return err
		}
		item.IsAvailable = available
		return recordAudit(tx, userID, "menu.availability", "menu_item", uintPtr(item.ID), map[string]bool{"available": available})
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Summary counts items per category and in total.
func (s *menuService) Summary(ctx context.Context) ([]dtos.CategoryCount, int, error) {
	var rows []dtos.CategoryCount
	err := s.db.WithContext(ctx).Model(&models.MenuItem{}).
		Select("category, COUNT(*) AS count").
		Group("category").Order("category").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	total := 0
	for _, r := range rows {
		total += r.Count
	}
	return rows, total, nil
}
