package repository

import (
	"github.com/karanxgill/AllHoursCafe/entity"
	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

func (r *MenuRepository) ListCategories() ([]entity.Category, error) {
	var rows []entity.Category
	err := r.DB.Where("is_active = ?", true).Order("name").Find(&rows).Error
	return rows, err
}

func (r *MenuRepository) ListItems(categoryID uint) ([]entity.MenuItem, error) {
	q := r.DB.Where("is_active = ?", true)
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	var rows []entity.MenuItem
	err := q.Order("name").Find(&rows).Error
	return rows, err
}

// GetByIDs fetches the items referenced by cart lines so prices and names can
// be re-snapshotted from the catalog instead of trusted from the client.
func (r *MenuRepository) GetByIDs(ids []uint) (map[uint]entity.MenuItem, error) {
	var rows []entity.MenuItem
	if err := r.DB.Where("id IN ? AND is_active = ?", ids, true).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]entity.MenuItem, len(rows))
	for _, m := range rows {
		out[m.ID] = m
	}
	return out, nil
}
