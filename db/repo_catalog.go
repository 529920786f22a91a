package db

import (
	"context"

	"loandesk/models"
)

// Categories

func (r *Repo) CreateCategory(ctx context.Context, c *models.Category) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *Repo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cs []models.Category
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&cs).Error
	return cs, err
}

// Items

func (r *Repo) CreateItem(ctx context.Context, it *models.Item, categoryIDs []string) error {
	if len(categoryIDs) > 0 {
		var cats []models.Category
		if err := r.DB.WithContext(ctx).Find(&cats, "id IN ?", categoryIDs).Error; err != nil {
			return err
		}
		it.Categories = cats
	}
	return r.DB.WithContext(ctx).Create(it).Error
}

func (r *Repo) FindItemByID(ctx context.Context, id string) (*models.Item, error) {
	var it models.Item
	if err := r.DB.WithContext(ctx).
		Preload("Categories").
		Preload("Units").
		First(&it, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

// ListItems returns the catalog, optionally filtered to one category name.
func (r *Repo) ListItems(ctx context.Context, category string) ([]models.Item, error) {
	q := r.DB.WithContext(ctx).
		Preload("Categories").
		Preload("Units").
		Order("name ASC")
	if category != "" {
		q = q.
			Joins("JOIN "+models.ItemCategoryTable+" ic ON ic.item_id = "+models.ItemTable+".id").
			Joins("JOIN "+models.CategoryTable+" c ON c.id = ic.category_id").
			Where("c.name = ?", category)
	}
	var items []models.Item
	err := q.Find(&items).Error
	return items, err
}

// Units

func (r *Repo) CreateUnit(ctx context.Context, u *models.Unit) error {
	return r.DB.WithContext(ctx).Create(u).Error
}

func (r *Repo) ListUnits(ctx context.Context, itemID string) ([]models.Unit, error) {
	var units []models.Unit
	err := r.DB.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("serial_number ASC").
		Find(&units).Error
	return units, err
}

// SetUnitAvailable flips the manual enable/disable switch. Scheduling
// conflicts are a separate concern and never touch this flag.
func (r *Repo) SetUnitAvailable(ctx context.Context, unitID string, available bool) error {
	return r.DB.WithContext(ctx).
		Model(&models.Unit{}).
		Where("id = ?", unitID).
		Update("available", available).Error
}
