package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/wallmasters/storefront/internal/identity"
	"github.com/wallmasters/storefront/internal/logger"
)

const switchTimeout = 5 * time.Second

// Bind 按当前身份冷启动加载购物车，并在身份变化时自动迁移或重新加载。
// 切换失败的错误返回给身份来源，由它回滚并告知调用方。
func (m *Manager) Bind(ctx context.Context, provider identity.Provider) error {
	current, _ := provider.Current()
	if err := m.coldStart(ctx, current); err != nil {
		return err
	}
	provider.OnChange(func(change identity.Change) error {
		switchCtx, cancel := context.WithTimeout(context.Background(), switchTimeout)
		defer cancel()
		if err := m.SwitchIdentity(switchCtx, change.Current); err != nil {
			logger.Warnw("cart_identity_switch_failed",
				"from", change.Previous,
				"to", change.Current,
				"error", err,
			)
			return fmt.Errorf("switch cart to %q: %w", change.Current, err)
		}
		return nil
	})
	return nil
}

// coldStart 已登录时游客槽位仍有商品，说明上次迁移没有完成（进程中断或存储失败），此时补做迁移
func (m *Manager) coldStart(ctx context.Context, current string) error {
	if err := m.Load(ctx, ""); err != nil {
		return err
	}
	if current == "" {
		return nil
	}
	if len(m.Items()) == 0 {
		return m.Load(ctx, current)
	}
	logger.Infow("cart_resume_guest_migration", "identity", current)
	return m.SwitchIdentity(ctx, current)
}
