package router

import (
	"sort"
	"strings"

	"github.com/wallmasters/storefront/internal/authz"

	"github.com/gin-gonic/gin"
)

const adminRoutePrefix = "/api/v1/admin/"

// PermissionEntry 后台可授权的一条接口，Permission 形如 "PUT:/admin/orders/:id/status"
type PermissionEntry struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// 登录接口不经过 RBAC，不出现在目录中
var catalogExcluded = map[string]bool{
	adminRoutePrefix + "login": true,
}

// permissionCatalog 从已注册路由生成后台权限目录，按模块、路径、方法排序
func permissionCatalog(routes gin.RoutesInfo) []PermissionEntry {
	entries := make([]PermissionEntry, 0, len(routes))
	seen := make(map[string]bool, len(routes))
	for _, route := range routes {
		method := strings.ToUpper(route.Method)
		if method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(route.Path, adminRoutePrefix) || catalogExcluded[route.Path] {
			continue
		}
		object := authz.NormalizeObject(route.Path)
		permission := method + ":" + object
		if seen[permission] {
			continue
		}
		seen[permission] = true
		entries = append(entries, PermissionEntry{
			Module:     catalogModule(route.Path),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return a.Method < b.Method
	})
	return entries
}

// catalogModule 取 /api/v1/admin/ 之后的第一段：orders / products / authz
func catalogModule(path string) string {
	rest := strings.TrimPrefix(path, adminRoutePrefix)
	if head, _, found := strings.Cut(rest, "/"); found {
		return head
	}
	return rest
}
