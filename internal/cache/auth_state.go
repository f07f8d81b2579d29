package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/wallmasters/storefront/internal/models"
)

const authStateTTL = 10 * time.Minute

// AuthState 鉴权快照，用于减少每个请求的账号查询
type AuthState struct {
	SubjectID    uint   `json:"subject_id"`
	Status       string `json:"status,omitempty"`
	TokenVersion uint64 `json:"token_version"`
	IsSuper      bool   `json:"is_super,omitempty"`
}

// UserAuthState 从用户模型构建鉴权快照
func UserAuthState(user *models.User) *AuthState {
	if user == nil {
		return nil
	}
	return &AuthState{SubjectID: user.ID, Status: user.Status, TokenVersion: user.TokenVersion}
}

// AdminAuthState 从管理员模型构建鉴权快照
func AdminAuthState(admin *models.Admin) *AuthState {
	if admin == nil {
		return nil
	}
	return &AuthState{SubjectID: admin.ID, TokenVersion: admin.TokenVersion, IsSuper: admin.IsSuper}
}

func authStateKey(kind string, id uint) string {
	return fmt.Sprintf("auth:%s:%d", kind, id)
}

// GetAuthState 获取鉴权快照，kind 为 user 或 admin
func GetAuthState(ctx context.Context, kind string, id uint) (*AuthState, bool, error) {
	if id == 0 {
		return nil, false, nil
	}
	var state AuthState
	hit, err := GetJSON(ctx, authStateKey(kind, id), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAuthState 写入鉴权快照
func SetAuthState(ctx context.Context, kind string, state *AuthState) error {
	if state == nil || state.SubjectID == 0 {
		return nil
	}
	return SetJSON(ctx, authStateKey(kind, state.SubjectID), state, authStateTTL)
}

// DelAuthState 删除鉴权快照（改密、禁用后调用）
func DelAuthState(ctx context.Context, kind string, id uint) error {
	if id == 0 {
		return nil
	}
	return Del(ctx, authStateKey(kind, id))
}
