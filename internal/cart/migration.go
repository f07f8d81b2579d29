package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wallmasters/storefront/internal/constants"
	"github.com/wallmasters/storefront/internal/logger"
)

// SwitchIdentity 响应身份变化：
//   - 游客登录：游客购物车迁移到 cart_<id> 并清空游客槽位
//   - 退出登录：从游客槽位重新加载，用户槽位保持不变
//   - 用户之间切换：直接加载新用户的购物车
func (m *Manager) SwitchIdentity(ctx context.Context, identityKey string) error {
	m.switchMu.Lock()
	defer m.switchMu.Unlock()

	identityKey = strings.TrimSpace(identityKey)
	previous := m.Identity()
	// identity 只在持有 switchMu 时改变，previous 在本次切换内有效
	switch {
	case identityKey == previous:
		return nil
	case identityKey == "":
		return m.load(ctx, "")
	case previous == "":
		return m.migrateGuest(ctx, identityKey)
	default:
		return m.load(ctx, identityKey)
	}
}

// migrateGuest 全程持有 mu：迁移期间的加购要么排在迁移之前（计入游客商品），
// 要么排在之后（写入用户槽位），不会丢失。任一步失败时两个槽位保持迁移前的内容。
func (m *Manager) migrateGuest(ctx context.Context, userKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	guestKey := StorageKey("")
	userSlot := StorageKey(userKey)
	guest := append([]LineItem{}, m.items...)

	existing, err := m.read(ctx, userSlot)
	if err != nil {
		return err
	}
	migrated := mergeItems(existing, guest)
	if m.strategy == constants.CartMigrationOverwrite {
		migrated = guest
	}

	payload, err := json.Marshal(migrated)
	if err != nil {
		return fmt.Errorf("encode migrated cart: %w", err)
	}
	if err := m.store.Set(ctx, userSlot, payload); err != nil {
		return fmt.Errorf("write %s: %w", userSlot, err)
	}
	if err := m.store.Remove(ctx, guestKey); err != nil {
		// 游客槽位没清掉，用户槽位恢复原样，避免下次重试时重复累加
		m.restoreSlot(ctx, userSlot, existing)
		return fmt.Errorf("clear guest cart: %w", err)
	}

	m.identity = userKey
	m.items = migrated

	logger.Infow("cart_migrated",
		"identity", userKey,
		"strategy", m.strategy,
		"guest_items", len(guest),
		"items", len(migrated),
	)
	return nil
}

func (m *Manager) restoreSlot(ctx context.Context, key string, items []LineItem) {
	var err error
	if len(items) == 0 {
		err = m.store.Remove(ctx, key)
	} else {
		var payload []byte
		if payload, err = json.Marshal(items); err == nil {
			err = m.store.Set(ctx, key, payload)
		}
	}
	if err != nil {
		logger.Errorw("cart_migration_restore_failed", "key", key, "error", err)
	}
}

// mergeItems 以 (商品, 尺寸) 为键合并：已有行保持位置与展示字段并累加数量，新行追加在后
func mergeItems(existing, incoming []LineItem) []LineItem {
	out := append([]LineItem{}, existing...)
	for _, it := range incoming {
		if idx := indexOf(out, it.ProductID, it.VariantKey); idx >= 0 {
			out[idx].Quantity += it.Quantity
			continue
		}
		out = append(out, it)
	}
	return out
}
