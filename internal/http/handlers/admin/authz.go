package admin

import (
	"github.com/wallmasters/storefront/internal/authz"
	"github.com/wallmasters/storefront/internal/http/handlers/shared"
	"github.com/wallmasters/storefront/internal/http/response"
	"github.com/wallmasters/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

type authzSetAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

type authzRoleView struct {
	Role     string         `json:"role"`
	Policies []authz.Policy `json:"policies"`
}

// ListAuthzRoles 获取角色及其策略
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondWithMappedError(c, err, authzErrorRules)
		return
	}
	views := make([]authzRoleView, 0, len(roles))
	for _, role := range roles {
		policies, err := h.AuthzService.RolePolicies(role)
		if err != nil {
			respondWithMappedError(c, err, authzErrorRules)
			return
		}
		views = append(views, authzRoleView{Role: role, Policies: policies})
	}
	response.Success(c, views)
}

// SetAdminRoles 覆盖管理员角色
func (h *Handler) SetAdminRoles(c *gin.Context) {
	adminID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req authzSetAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	target, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if target == nil {
		respondWithMappedError(c, service.ErrNotFound, authzErrorRules)
		return
	}
	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		respondWithMappedError(c, err, authzErrorRules)
		return
	}
	roles, err := h.AuthzService.AdminRoles(adminID)
	if err != nil {
		respondWithMappedError(c, err, authzErrorRules)
		return
	}
	shared.RequestLog(c).Infow("admin_roles_updated",
		"operator_id", c.GetUint(shared.AdminIDKey),
		"admin_id", adminID,
		"roles", roles,
	)
	response.Success(c, gin.H{"admin_id": adminID, "roles": roles})
}
