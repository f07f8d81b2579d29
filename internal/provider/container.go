package provider

import (
	"time"

	"github.com/wallmasters/storefront/internal/authz"
	"github.com/wallmasters/storefront/internal/cache"
	"github.com/wallmasters/storefront/internal/config"
	"github.com/wallmasters/storefront/internal/logger"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/queue"
	"github.com/wallmasters/storefront/internal/repository"
	"github.com/wallmasters/storefront/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo     repository.AdminRepository
	UserRepo      repository.UserRepository
	AddressRepo   repository.AddressRepository
	ProductRepo   repository.ProductRepository
	OrderRepo     repository.OrderRepository
	SavedItemRepo repository.SavedItemRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	UserAuthService  *service.UserAuthService
	EmailService     *service.EmailService
	OrderNotifier    *service.OrderNotifier
	AddressService   *service.AddressService
	ProductService   *service.ProductService
	OrderService     *service.OrderService
	SavedItemService *service.SavedItemService
}

// NewContainer 使用全局数据库连接初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}
	c, err := NewContainerWithDB(cfg, models.DB)
	if err != nil {
		logger.Errorw("provider_init_failed", "error", err)
		panic(err)
	}
	return c
}

// NewContainerWithDB 基于指定数据库连接初始化容器（不触碰 Redis 全局状态）
func NewContainerWithDB(cfg *config.Config, db *gorm.DB) (*Container, error) {
	c := &Container{
		Config:      cfg,
		QueueClient: queue.NewClient(&cfg.Queue),
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	if err := c.initServices(db); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.SavedItemRepo = repository.NewSavedItemRepository(db)
}

func (c *Container) initServices(db *gorm.DB) error {
	authzService, err := authz.NewService(db)
	if err != nil {
		return err
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		return err
	}
	c.AuthzService = authzService

	cacheTTL := time.Duration(c.Config.Catalog.CacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.OrderNotifier = service.NewOrderNotifier(c.QueueClient, c.EmailService)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo, c.Config.Checkout.Country)
	c.ProductService = service.NewProductService(c.ProductRepo, cacheTTL)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductService, c.OrderNotifier, c.Config.Checkout)
	c.SavedItemService = service.NewSavedItemService(c.SavedItemRepo, c.ProductRepo)
	return nil
}

// Close 释放容器持有的外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
}
