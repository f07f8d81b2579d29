package router

import (
	"net/http"
	"strings"

	"github.com/wallmasters/storefront/internal/cache"
	"github.com/wallmasters/storefront/internal/config"
	"github.com/wallmasters/storefront/internal/constants"
	adminhandlers "github.com/wallmasters/storefront/internal/http/handlers/admin"
	publichandlers "github.com/wallmasters/storefront/internal/http/handlers/public"
	"github.com/wallmasters/storefront/internal/http/response"
	"github.com/wallmasters/storefront/internal/logger"
	"github.com/wallmasters/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := loginRateRule(cfg.Security.LoginRateLimit, redisPrefix, "login")
	adminLoginRule := loginRateRule(cfg.Security.LoginRateLimit, redisPrefix, "admin_login")

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 商品目录（公开）
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)

		// 顾客认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, loginRule, KeyByIP), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 顾客接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserAuthService.ResolveAuthState))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/password", publicHandler.ChangeUserPassword)
			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListMyOrders)
			user.GET("/orders/:order_no", publicHandler.GetMyOrder)

			// 路径中的 user_id 必须与登录身份一致
			owned := user.Group("", PathUserGuard("user_id"))
			{
				owned.GET("/addresses/:user_id", publicHandler.ListAddresses)
				owned.POST("/addresses/:user_id", publicHandler.CreateAddress)
				owned.DELETE("/addresses/:user_id/:address_id", publicHandler.DeleteAddress)
				owned.PUT("/addresses/:user_id/:address_id/default", publicHandler.SetDefaultAddress)
				owned.GET("/saved-items/:user_id", publicHandler.ListSavedItems)
				owned.POST("/save-for-later/:user_id", publicHandler.SaveForLater)
				owned.DELETE("/saved-items/:user_id/:product_id", publicHandler.RemoveSavedItem)
			}
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService.ResolveAuthState), AdminRBACMiddleware(c.AuthzService))
			{
				// 订单管理
				authorized.GET("/orders", adminHandler.GetAdminOrders)
				authorized.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)

				// 权限管理
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAdminRoles)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, permissionCatalog(r.Routes()))
				})
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// loginRateRule 登录类接口共用限流参数，scope 区分顾客与后台
func loginRateRule(cfg config.LoginRateLimitConfig, redisPrefix, scope string) RateLimitRule {
	return RateLimitRule{
		Prefix:        redisPrefix + ":rate:" + scope,
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxAttempts,
		BlockSeconds:  cfg.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
}
