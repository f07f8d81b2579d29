package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/wallmasters/storefront/internal/config"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/queue"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWT:     config.JWTConfig{SecretKey: "admin-test-secret", ExpireHours: 1},
		UserJWT: config.JWTConfig{SecretKey: "user-test-secret", ExpireHours: 1, RememberMeExpireHours: 48},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 6},
		},
		Checkout: config.CheckoutConfig{
			FreeShippingThreshold: 2000,
			FlatShippingFee:       70,
			Currency:              "EGP",
			Country:               "Egypt",
			OrderNoPrefix:         "WM",
		},
	}
}

// disabledNotifier 队列与邮件均未启用，通知只会被跳过
func disabledNotifier() *OrderNotifier {
	return NewOrderNotifier(queue.NewClient(nil), NewEmailService(&config.EmailConfig{}))
}
