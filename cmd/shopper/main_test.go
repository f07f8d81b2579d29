package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wallmasters/storefront/internal/checkout"
	"github.com/wallmasters/storefront/internal/config"
	"github.com/wallmasters/storefront/internal/logger"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/provider"
	"github.com/wallmasters/storefront/internal/router"
	"github.com/wallmasters/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func startServer(t *testing.T) (string, uint) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.L = logger.New("release", logger.Options{Writer: &bytes.Buffer{}})

	db, err := gorm.Open(sqlite.Open("file:shopper_e2e?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: "release"},
		JWT:      config.JWTConfig{SecretKey: "admin-shopper-secret", ExpireHours: 1},
		UserJWT:  config.JWTConfig{SecretKey: "user-shopper-secret", ExpireHours: 1, RememberMeExpireHours: 2},
		Security: config.SecurityConfig{PasswordPolicy: config.PasswordPolicyConfig{MinLength: 6}},
		Checkout: config.CheckoutConfig{
			FreeShippingThreshold: 2000,
			FlatShippingFee:       70,
			Currency:              "EGP",
			Country:               "Egypt",
			OrderNoPrefix:         "WM",
		},
		Catalog: config.CatalogConfig{CacheTTLSeconds: 60},
	}
	c, err := provider.NewContainerWithDB(cfg, db)
	require.NoError(t, err)
	product, err := c.ProductService.Create(service.ProductInput{
		Slug:     "desert-dunes",
		Name:     "Desert Dunes",
		Category: "nature",
		Images:   []string{"/images/desert-dunes.jpg"},
		Variants: []service.VariantInput{
			{Size: "50x70", Price: models.MustMoney("650")},
			{Size: "70x100", Price: models.MustMoney("1100")},
		},
	})
	require.NoError(t, err)

	srv := httptest.NewServer(router.SetupRouter(cfg, c))
	t.Cleanup(srv.Close)
	return srv.URL + "/api/v1", product.ID
}

// invoke 模拟一次命令行调用：打开存储、执行命令、落盘并关闭
func invoke(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	s, err := open(context.Background(), cfg, &out, "en-US")
	require.NoError(t, err)
	runErr := s.run(context.Background(), args[0], args[1:])
	require.NoError(t, s.close())
	return out.String(), runErr
}

func TestShopperEndToEnd(t *testing.T) {
	apiURL, productID := startServer(t)
	pid := fmt.Sprint(productID)
	cfg := &config.Config{
		Cart:    config.CartConfig{Store: "bolt", MigrationStrategy: "merge"},
		Shopper: config.ShopperConfig{APIBaseURL: apiURL, DataFile: filepath.Join(t.TempDir(), "shopper.db"), TimeoutSeconds: 5},
		Checkout: config.CheckoutConfig{
			FreeShippingThreshold: 2000,
			FlatShippingFee:       70,
			Currency:              "EGP",
			Country:               "Egypt",
		},
	}

	out, err := invoke(t, cfg, "products")
	require.NoError(t, err)
	assert.Contains(t, out, "Desert Dunes")
	assert.Contains(t, out, "50x70=650.00")

	_, err = invoke(t, cfg, "add", pid, "50x70")
	require.NoError(t, err)
	out, err = invoke(t, cfg, "add", pid, "50x70")
	require.NoError(t, err)
	assert.Contains(t, out, "cart (guest), 2 item(s)")

	_, err = invoke(t, cfg, "add", pid, "90x120")
	assert.Error(t, err)

	_, err = invoke(t, cfg, "checkout", "-name", "Mona")
	assert.ErrorIs(t, err, checkout.ErrSignInRequired)

	out, err = invoke(t, cfg, "register", "Mona", "mona@example.com", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "signed in as mona@example.com")
	assert.Contains(t, out, "2 item(s)", "guest cart migrates on registration")

	_, err = invoke(t, cfg, "checkout", "-name", "Mona", "-email", "mona@example")
	assert.Error(t, err)
	out, err = invoke(t, cfg, "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "1370.00 EGP", "failed checkout keeps the cart")

	out, err = invoke(t, cfg, "checkout",
		"-name", "Mona", "-email", "mona@example.com", "-mobile", "01000000000",
		"-house", "12", "-street", "Tahrir St", "-city", "Cairo", "-save")
	require.NoError(t, err)
	assert.Contains(t, out, "1370.00 EGP, cash on delivery to Tahrir St, Cairo")

	out, err = invoke(t, cfg, "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "is empty")

	out, err = invoke(t, cfg, "addresses")
	require.NoError(t, err)
	assert.Contains(t, out, "Tahrir St")

	out, err = invoke(t, cfg, "orders")
	require.NoError(t, err)
	assert.Contains(t, out, "WM-")
	assert.Contains(t, out, "pending")

	_, err = invoke(t, cfg, "logout")
	require.NoError(t, err)
	out, err = invoke(t, cfg, "cart")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "cart (guest) is empty"))
}

func TestUnknownCommandIsUsageError(t *testing.T) {
	cfg := &config.Config{
		Cart:    config.CartConfig{Store: "memory"},
		Shopper: config.ShopperConfig{APIBaseURL: "http://127.0.0.1:1/api/v1"},
	}
	_, err := invoke(t, cfg, "fly")
	assert.ErrorIs(t, err, errUsage)
	_, err = invoke(t, cfg, "inc", "1")
	assert.ErrorIs(t, err, errUsage)
}
