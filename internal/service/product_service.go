package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/wallmasters/storefront/internal/cache"
	"github.com/wallmasters/storefront/internal/logger"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/repository"

	"golang.org/x/sync/singleflight"
)

// ProductService 商品目录服务
type ProductService struct {
	repo     repository.ProductRepository
	cacheTTL time.Duration
	loads    singleflight.Group
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, cacheTTL time.Duration) *ProductService {
	return &ProductService{repo: repo, cacheTTL: cacheTTL}
}

// VariantInput 尺寸规格输入
type VariantInput struct {
	Size      string
	Price     models.Money
	IsActive  *bool
	SortOrder int
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	Slug        string
	Name        string
	Description string
	Category    string
	Images      []string
	IsActive    *bool
	SortOrder   int
	Variants    []VariantInput
}

// ListPublic 获取上架商品列表
func (s *ProductService) ListPublic(category, search string, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Category:   strings.TrimSpace(category),
		Search:     strings.TrimSpace(search),
		OnlyActive: true,
	})
}

// ListAdmin 后台商品列表（含下架）
func (s *ProductService) ListAdmin(search string, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{Page: page, PageSize: pageSize, Search: strings.TrimSpace(search)})
}

// GetPublic 获取上架商品详情；缓存未命中时同一商品的并发请求只查询一次数据库
func (s *ProductService) GetPublic(ctx context.Context, id uint) (*models.Product, error) {
	var cached models.Product
	if hit, err := cache.GetJSON(ctx, cache.ProductKey(id), &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil {
		logger.Warnw("product_cache_read_failed", "product_id", id, "error", err)
	}

	v, err, _ := s.loads.Do(strconv.FormatUint(uint64(id), 10), func() (interface{}, error) {
		product, err := s.repo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, ErrProductNotFound
		}
		product.Variants = activeVariants(product.Variants)
		if err := cache.SetJSON(ctx, cache.ProductKey(id), product, s.cacheTTL); err != nil {
			logger.Warnw("product_cache_write_failed", "product_id", id, "error", err)
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Product), nil
}

// FindVariant 查找商品指定尺寸的可售规格
func (s *ProductService) FindVariant(ctx context.Context, productID uint, size string) (*models.Product, *models.ProductVariant, error) {
	product, err := s.GetPublic(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	for i := range product.Variants {
		if product.Variants[i].Size == size {
			return product, &product.Variants[i], nil
		}
	}
	return product, nil, ErrVariantNotFound
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	product := &models.Product{}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	product.Variants = buildVariants(input.Variants)
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品并整体替换规格，同时失效详情缓存
func (s *ProductService) Update(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceVariants(product.ID, buildVariants(input.Variants)); err != nil {
		return nil, err
	}
	if err := cache.Del(ctx, cache.ProductKey(id)); err != nil {
		logger.Warnw("product_cache_invalidate_failed", "product_id", id, "error", err)
	}
	return s.repo.GetByID(id)
}

func applyProductInput(product *models.Product, input ProductInput) error {
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	name := strings.TrimSpace(input.Name)
	if slug == "" || name == "" || len(input.Variants) == 0 {
		return ErrProductInvalid
	}
	seen := make(map[string]struct{}, len(input.Variants))
	for _, v := range input.Variants {
		size := strings.TrimSpace(v.Size)
		if size == "" || v.Price.IsNegative() {
			return ErrProductInvalid
		}
		if _, dup := seen[size]; dup {
			return ErrProductInvalid
		}
		seen[size] = struct{}{}
	}
	product.Slug = slug
	product.Name = name
	product.Description = strings.TrimSpace(input.Description)
	product.Category = strings.ToLower(strings.TrimSpace(input.Category))
	product.Images = models.StringArray(input.Images)
	product.SortOrder = input.SortOrder
	product.IsActive = true
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	return nil
}

func buildVariants(inputs []VariantInput) []models.ProductVariant {
	variants := make([]models.ProductVariant, 0, len(inputs))
	for i, in := range inputs {
		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}
		sortOrder := in.SortOrder
		if sortOrder == 0 {
			sortOrder = i
		}
		variants = append(variants, models.ProductVariant{
			Size:      strings.TrimSpace(in.Size),
			Price:     in.Price,
			IsActive:  active,
			SortOrder: sortOrder,
		})
	}
	return variants
}

func activeVariants(all []models.ProductVariant) []models.ProductVariant {
	out := make([]models.ProductVariant, 0, len(all))
	for _, v := range all {
		if v.IsActive {
			out = append(out, v)
		}
	}
	return out
}
