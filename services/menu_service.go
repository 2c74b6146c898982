package services

import (
	"github.com/karanxgill/AllHoursCafe/entity"
	"github.com/karanxgill/AllHoursCafe/repository"
)

// MenuService is thin; the catalog is read-only from the customer side.
type MenuService struct {
	repo *repository.MenuRepository
}

func NewMenuService(repo *repository.MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

func (s *MenuService) Categories() ([]entity.Category, error) { return s.repo.ListCategories() }

func (s *MenuService) Items(categoryID uint) ([]entity.MenuItem, error) {
	return s.repo.ListItems(categoryID)
}
