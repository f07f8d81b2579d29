package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wallmasters/storefront/internal/config"
	"github.com/wallmasters/storefront/internal/logger"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/provider"
	"github.com/wallmasters/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type routerFixture struct {
	t         *testing.T
	engine    *gin.Engine
	container *provider.Container
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.L = logger.New("release", logger.Options{Writer: &bytes.Buffer{}})

	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "release"},
		JWT:     config.JWTConfig{SecretKey: "admin-router-secret", ExpireHours: 1},
		UserJWT: config.JWTConfig{SecretKey: "user-router-secret", ExpireHours: 1},
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
		Catalog: config.CatalogConfig{CacheTTLSeconds: 60},
	}
	c, err := provider.NewContainerWithDB(cfg, db)
	if err != nil {
		t.Fatalf("init container failed: %v", err)
	}
	return &routerFixture{t: t, engine: SetupRouter(cfg, c), container: c}
}

func (f *routerFixture) do(method, path, token string, body interface{}) (int, envelope) {
	f.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			f.t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		f.t.Fatalf("%s %s: decode envelope failed: %v body=%s", method, path, err, w.Body.String())
	}
	if env.StatusCode != w.Code {
		f.t.Fatalf("%s %s: status_code %d differs from http status %d", method, path, env.StatusCode, w.Code)
	}
	return w.Code, env
}

func (f *routerFixture) register(name, email string) (uint, string) {
	f.t.Helper()
	code, env := f.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	if code != http.StatusCreated {
		f.t.Fatalf("register want 201 got %d msg=%s", code, env.Msg)
	}
	var data struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		f.t.Fatalf("decode register data failed: %v", err)
	}
	return data.User.ID, data.Token
}

func (f *routerFixture) seedProduct() *models.Product {
	f.t.Helper()
	product, err := f.container.ProductService.Create(service.ProductInput{
		Slug: "desert-dunes",
		Name: "Desert Dunes",
		Variants: []service.VariantInput{
			{Size: "50x70", Price: models.MustMoney("650")},
			{Size: "70x100", Price: models.MustMoney("1100")},
		},
	})
	if err != nil {
		f.t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func shippingPayload() map[string]string {
	return map[string]string{
		"name":      "Mona",
		"email":     "mona@example.com",
		"mobile_no": "01000000000",
		"house_no":  "12",
		"street":    "Tahrir St",
		"city":      "Cairo",
	}
}

func TestAddressRoutesEnforceOwnerAndDuplicates(t *testing.T) {
	f := newRouterFixture(t)
	userID, token := f.register("Mona", "mona@example.com")
	otherID, _ := f.register("Omar", "omar@example.com")

	path := fmt.Sprintf("/api/v1/addresses/%d", userID)
	if code, env := f.do(http.MethodPost, path, token, shippingPayload()); code != http.StatusCreated {
		t.Fatalf("create address want 201 got %d msg=%s", code, env.Msg)
	}
	if code, _ := f.do(http.MethodPost, path, token, shippingPayload()); code != http.StatusConflict {
		t.Fatalf("duplicate address want 409 got %d", code)
	}
	if code, _ := f.do(http.MethodGet, fmt.Sprintf("/api/v1/addresses/%d", otherID), token, nil); code != http.StatusForbidden {
		t.Fatalf("foreign address list want 403 got %d", code)
	}
	if code, _ := f.do(http.MethodGet, path, "", nil); code != http.StatusUnauthorized {
		t.Fatalf("anonymous address list want 401 got %d", code)
	}

	code, env := f.do(http.MethodGet, path, token, nil)
	if code != http.StatusOK {
		t.Fatalf("list addresses want 200 got %d", code)
	}
	var data struct {
		Addresses []models.Address `json:"addresses"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode addresses failed: %v", err)
	}
	if len(data.Addresses) != 1 || data.Addresses[0].Country != "Egypt" {
		t.Fatalf("unexpected addresses: %+v", data.Addresses)
	}
}

func TestCreateOrderRecomputesTotals(t *testing.T) {
	f := newRouterFixture(t)
	userID, token := f.register("Mona", "mona@example.com")
	product := f.seedProduct()

	body := map[string]interface{}{
		"user_id": userID,
		"products": []map[string]interface{}{
			{"product_id": product.ID, "name": "Desert Dunes", "size": "50x70", "quantity": 2, "price": 650, "image": "a.jpg"},
		},
		"total_price":      "1370.00",
		"shipping_address": shippingPayload(),
	}
	code, env := f.do(http.MethodPost, "/api/v1/orders", token, body)
	if code != http.StatusCreated {
		t.Fatalf("create order want 201 got %d msg=%s", code, env.Msg)
	}
	var data struct {
		Order struct {
			OrderID       string `json:"order_id"`
			TotalPrice    string `json:"total_price"`
			ShippingFee   string `json:"shipping_fee"`
			PaymentMethod string `json:"payment_method"`
			OrderStatus   string `json:"order_status"`
		} `json:"order"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode order failed: %v", err)
	}
	if !strings.HasPrefix(data.Order.OrderID, "WM-") {
		t.Fatalf("unexpected order id %q", data.Order.OrderID)
	}
	if data.Order.TotalPrice != "1370.00" || data.Order.ShippingFee != "70.00" {
		t.Fatalf("unexpected totals: %+v", data.Order)
	}
	if data.Order.PaymentMethod != "cash_on_delivery" || data.Order.OrderStatus != "pending" {
		t.Fatalf("unexpected order state: %+v", data.Order)
	}

	code, env = f.do(http.MethodGet, "/api/v1/orders", token, nil)
	if code != http.StatusOK {
		t.Fatalf("list orders want 200 got %d", code)
	}
	var listed []map[string]interface{}
	if err := json.Unmarshal(env.Data, &listed); err != nil {
		t.Fatalf("decode orders failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("want 1 order got %d", len(listed))
	}
}

func TestCreateOrderRejectsForeignUserAndEmptyCart(t *testing.T) {
	f := newRouterFixture(t)
	_, token := f.register("Mona", "mona@example.com")
	otherID, _ := f.register("Omar", "omar@example.com")

	body := map[string]interface{}{
		"user_id":          otherID,
		"products":         []map[string]interface{}{{"product_id": "1", "name": "x", "size": "50x70", "quantity": 1, "price": "10"}},
		"shipping_address": shippingPayload(),
	}
	if code, _ := f.do(http.MethodPost, "/api/v1/orders", token, body); code != http.StatusForbidden {
		t.Fatalf("foreign user order want 403 got %d", code)
	}

	body = map[string]interface{}{
		"products":         []map[string]interface{}{},
		"shipping_address": shippingPayload(),
	}
	if code, _ := f.do(http.MethodPost, "/api/v1/orders", token, body); code != http.StatusBadRequest {
		t.Fatalf("empty order want 400 got %d", code)
	}
}

func TestAdminRoutesRequireRole(t *testing.T) {
	f := newRouterFixture(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	staff := &models.Admin{Username: "staff", PasswordHash: string(hash)}
	if err := f.container.AdminRepo.Create(staff); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	code, env := f.do(http.MethodPost, "/api/v1/admin/login", "", map[string]string{"username": "staff", "password": "admin-pass"})
	if code != http.StatusOK {
		t.Fatalf("admin login want 200 got %d msg=%s", code, env.Msg)
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &login); err != nil {
		t.Fatalf("decode login failed: %v", err)
	}

	if code, _ := f.do(http.MethodGet, "/api/v1/admin/orders", login.Token, nil); code != http.StatusForbidden {
		t.Fatalf("admin without role want 403 got %d", code)
	}
	if err := f.container.AuthzService.SetAdminRoles(staff.ID, []string{"support"}); err != nil {
		t.Fatalf("grant role failed: %v", err)
	}
	if code, env := f.do(http.MethodGet, "/api/v1/admin/orders", login.Token, nil); code != http.StatusOK {
		t.Fatalf("support admin want 200 got %d msg=%s", code, env.Msg)
	}
	if code, _ := f.do(http.MethodPost, "/api/v1/admin/products", login.Token, map[string]string{"name": "x"}); code != http.StatusForbidden {
		t.Fatalf("support admin creating product want 403 got %d", code)
	}

	if code, _ := f.do(http.MethodPost, "/api/v1/admin/login", "", map[string]string{"username": "staff", "password": "nope"}); code != http.StatusUnauthorized {
		t.Fatalf("bad admin password want 401 got %d", code)
	}
}

func TestPublicCatalogRoutes(t *testing.T) {
	f := newRouterFixture(t)
	product := f.seedProduct()

	code, env := f.do(http.MethodGet, "/api/v1/products", "", nil)
	if code != http.StatusOK {
		t.Fatalf("list products want 200 got %d", code)
	}
	var products []models.Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		t.Fatalf("decode products failed: %v", err)
	}
	if len(products) != 1 || products[0].ID != product.ID {
		t.Fatalf("unexpected products: %+v", products)
	}

	if code, _ := f.do(http.MethodGet, "/api/v1/products/999", "", nil); code != http.StatusNotFound {
		t.Fatalf("missing product want 404 got %d", code)
	}
	if code, _ := f.do(http.MethodGet, fmt.Sprintf("/api/v1/products/%d?size=90x120", product.ID), "", nil); code != http.StatusNotFound {
		t.Fatalf("missing size want 404 got %d", code)
	}
}
