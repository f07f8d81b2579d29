package service

import (
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/repository"
)

// SavedItemService 稍后购买服务
type SavedItemService struct {
	repo     repository.SavedItemRepository
	products repository.ProductRepository
}

// NewSavedItemService 创建稍后购买服务
func NewSavedItemService(repo repository.SavedItemRepository, products repository.ProductRepository) *SavedItemService {
	return &SavedItemService{repo: repo, products: products}
}

// List 用户收藏列表，下架商品仍保留但不返回不可售规格
func (s *SavedItemService) List(userID uint) ([]models.SavedItem, error) {
	items, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Product != nil {
			items[i].Product.Variants = activeVariants(items[i].Product.Variants)
		}
	}
	return items, nil
}

// Save 收藏商品
func (s *SavedItemService) Save(userID, productID uint) (*models.SavedItem, error) {
	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	existing, err := s.repo.Get(userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, ErrSavedItemExists
	}
	item := &models.SavedItem{UserID: userID, ProductID: productID}
	if err := s.repo.Create(item); err != nil {
		return nil, err
	}
	item.Product = product
	return item, nil
}

// Remove 取消收藏
func (s *SavedItemService) Remove(userID, productID uint) error {
	found, err := s.repo.Delete(userID, productID)
	if err != nil {
		return err
	}
	if !found {
		return ErrSavedItemNotFound
	}
	return nil
}
