package main

import (
	"github.com/wallmasters/storefront/internal/config"
	"github.com/wallmasters/storefront/internal/logger"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/repository"
	"github.com/wallmasters/storefront/internal/service"
)

type seedProduct struct {
	slug     string
	name     string
	category string
	image    string
	prices   map[string]string
}

// 尺寸顺序即前台展示顺序
var sizes = []string{"30x40", "50x70", "70x100"}

var catalog = []seedProduct{
	{"desert-dunes", "Desert Dunes", "nature", "/images/desert-dunes.jpg", map[string]string{"30x40": "350", "50x70": "650", "70x100": "1100"}},
	{"nile-at-dusk", "Nile at Dusk", "nature", "/images/nile-at-dusk.jpg", map[string]string{"30x40": "380", "50x70": "700", "70x100": "1200"}},
	{"cairo-skyline", "Cairo Skyline", "city", "/images/cairo-skyline.jpg", map[string]string{"30x40": "400", "50x70": "750", "70x100": "1250"}},
	{"alexandria-blue", "Alexandria Blue", "city", "/images/alexandria-blue.jpg", map[string]string{"50x70": "720", "70x100": "1180"}},
	{"arabesque-gold", "Arabesque Gold", "abstract", "/images/arabesque-gold.jpg", map[string]string{"30x40": "420", "50x70": "800"}},
	{"line-study-no-3", "Line Study No. 3", "abstract", "/images/line-study-3.jpg", map[string]string{"30x40": "300", "50x70": "560", "70x100": "950"}},
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, false, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	repo := repository.NewProductRepository(models.DB)
	products := service.NewProductService(repo, 0)

	created, skipped := 0, 0
	for i, item := range catalog {
		existing, err := repo.GetBySlug(item.slug)
		if err != nil {
			stdLog.Fatalf("Failed to look up product %s: %v", item.slug, err)
		}
		if existing != nil {
			logger.Infow("seed_product_exists", "slug", item.slug)
			skipped++
			continue
		}

		variants := make([]service.VariantInput, 0, len(item.prices))
		for order, size := range sizes {
			raw, ok := item.prices[size]
			if !ok {
				continue
			}
			variants = append(variants, service.VariantInput{
				Size:      size,
				Price:     models.MustMoney(raw),
				SortOrder: order + 1,
			})
		}
		if _, err := products.Create(service.ProductInput{
			Slug:      item.slug,
			Name:      item.name,
			Category:  item.category,
			Images:    []string{item.image},
			SortOrder: len(catalog) - i,
			Variants:  variants,
		}); err != nil {
			stdLog.Fatalf("Failed to create product %s: %v", item.slug, err)
		}
		logger.Infow("seed_product_created", "slug", item.slug, "variants", len(variants))
		created++
	}

	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}
	logger.Infow("seed_done", "created", created, "skipped", skipped)
}
