package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wallmasters/storefront/internal/cache"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func boolPtr(v bool) *bool { return &v }

func sampleProductInput() ProductInput {
	return ProductInput{
		Slug:     "Cairo-Nights",
		Name:     "Cairo Nights",
		Category: "Canvas",
		Images:   []string{"https://cdn.example.com/cairo.jpg"},
		Variants: []VariantInput{
			{Size: "50x70", Price: models.MustMoney("650")},
			{Size: "70x100", Price: models.MustMoney("950")},
			{Size: "100x140", Price: models.MustMoney("1500"), IsActive: boolPtr(false)},
		},
	}
}

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.UseClient(client, "svc")
	t.Cleanup(func() {
		_ = client.Close()
		cache.UseClient(nil, "")
	})
	return mr
}

func TestProductServiceCreateValidation(t *testing.T) {
	svc := NewProductService(repository.NewProductRepository(openServiceTestDB(t)), time.Minute)
	input := sampleProductInput()
	input.Variants = append(input.Variants, VariantInput{Size: "50x70", Price: models.MustMoney("1")})
	if _, err := svc.Create(input); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("duplicate size should be rejected, got %v", err)
	}
	input = sampleProductInput()
	input.Variants = nil
	if _, err := svc.Create(input); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("product without variants should be rejected, got %v", err)
	}
}

func TestProductServiceGetPublicFiltersVariants(t *testing.T) {
	svc := NewProductService(repository.NewProductRepository(openServiceTestDB(t)), time.Minute)
	product, err := svc.Create(sampleProductInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Slug != "cairo-nights" || product.Category != "canvas" {
		t.Fatalf("slug/category should be normalized: %+v", product)
	}

	got, err := svc.GetPublic(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Variants) != 2 {
		t.Fatalf("inactive variant should be hidden, got %d", len(got.Variants))
	}
	if _, _, err := svc.FindVariant(context.Background(), product.ID, "100x140"); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("inactive size should not be found, got %v", err)
	}
	if _, err := svc.GetPublic(context.Background(), 4242); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductServiceCachesAndInvalidates(t *testing.T) {
	mr := useMiniredis(t)
	svc := NewProductService(repository.NewProductRepository(openServiceTestDB(t)), time.Minute)
	ctx := context.Background()

	product, err := svc.Create(sampleProductInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.GetPublic(ctx, product.ID); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	key := cache.Key(cache.ProductKey(product.ID))
	if !mr.Exists(key) {
		t.Fatalf("product should be cached under %s", key)
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected ttl: %v", ttl)
	}

	input := sampleProductInput()
	input.Name = "Cairo Nights II"
	if _, err := svc.Update(ctx, product.ID, input); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if mr.Exists(key) {
		t.Fatalf("update should invalidate cache")
	}
	got, err := svc.GetPublic(ctx, product.ID)
	if err != nil {
		t.Fatalf("get after update failed: %v", err)
	}
	if got.Name != "Cairo Nights II" {
		t.Fatalf("stale product returned: %s", got.Name)
	}
}

func TestSavedItemService(t *testing.T) {
	db := openServiceTestDB(t)
	products := NewProductService(repository.NewProductRepository(db), time.Minute)
	product, err := products.Create(sampleProductInput())
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	svc := NewSavedItemService(repository.NewSavedItemRepository(db), repository.NewProductRepository(db))

	if _, err := svc.Save(1, product.ID); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := svc.Save(1, product.ID); !errors.Is(err, ErrSavedItemExists) {
		t.Fatalf("expected ErrSavedItemExists, got %v", err)
	}
	if _, err := svc.Save(1, 999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	items, err := svc.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].Product == nil || len(items[0].Product.Variants) != 2 {
		t.Fatalf("unexpected saved items: %+v", items)
	}
	if err := svc.Remove(1, product.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.Remove(1, product.ID); !errors.Is(err, ErrSavedItemNotFound) {
		t.Fatalf("expected ErrSavedItemNotFound, got %v", err)
	}
}
