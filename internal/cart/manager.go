package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/wallmasters/storefront/internal/constants"
	"github.com/wallmasters/storefront/internal/logger"
)

// Manager 当前身份的购物车状态。
// 变更在内存中同步完成，持久化通过 WriteQueue 异步进行；所有方法并发安全，
// 身份切换期间的变更排在切换之前或之后，不会丢失。
type Manager struct {
	// switchMu 串行化身份切换，mu 保护 identity 与 items
	switchMu sync.Mutex
	mu       sync.Mutex
	identity string
	items    []LineItem

	store    Store
	queue    *WriteQueue
	strategy string
}

// Option 购物车选项
type Option func(*Manager)

// WithMigrationStrategy 设置登录迁移策略（merge / overwrite）
func WithMigrationStrategy(strategy string) Option {
	return func(m *Manager) {
		m.strategy = normalizeStrategy(strategy)
	}
}

// NewManager 创建购物车；初始为空的游客购物车，调用 Load 恢复持久化数据
func NewManager(store Store, queue *WriteQueue, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		queue:    queue,
		strategy: constants.CartMigrationMerge,
		items:    []LineItem{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func normalizeStrategy(strategy string) string {
	if strings.EqualFold(strings.TrimSpace(strategy), constants.CartMigrationOverwrite) {
		return constants.CartMigrationOverwrite
	}
	return constants.CartMigrationMerge
}

// Load 切换到指定身份并从存储恢复其购物车（冷启动使用）
func (m *Manager) Load(ctx context.Context, identityKey string) error {
	m.switchMu.Lock()
	defer m.switchMu.Unlock()
	return m.load(ctx, identityKey)
}

func (m *Manager) load(ctx context.Context, identityKey string) error {
	identityKey = strings.TrimSpace(identityKey)
	items, err := m.read(ctx, StorageKey(identityKey))
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.identity = identityKey
	m.items = items
	m.mu.Unlock()
	return nil
}

// read 先等待排队中的写入，再读取指定键
func (m *Manager) read(ctx context.Context, key string) ([]LineItem, error) {
	if err := m.queue.Flush(ctx); err != nil {
		return nil, err
	}
	raw, ok, err := m.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return []LineItem{}, nil
	}
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// 损坏的数据按空购物车处理，下一次变更会覆盖
		logger.Warnw("cart_decode_failed", "key", key, "error", err)
		return []LineItem{}, nil
	}
	return sanitize(items), nil
}

// AddItem 加购：已有同商品同尺寸则数量 +1，否则追加一行并快照价格。
// 商品缺少 ID 或名称时返回 ErrInvalidProduct，购物车不变。
func (m *Manager) AddItem(product Product, variant Variant) error {
	product, variant, err := product.normalize(variant)
	if err != nil {
		return err
	}
	m.mutate(func(items []LineItem) []LineItem {
		if idx := indexOf(items, product.ID, variant.Key); idx >= 0 {
			items[idx].Quantity++
			return items
		}
		return append(items, LineItem{
			ProductID:   product.ID,
			VariantKey:  variant.Key,
			UnitPrice:   variant.Price,
			Quantity:    1,
			ImageRef:    product.Image,
			DisplayName: product.Name,
		})
	})
	return nil
}

// IncrementQuantity 数量 +1，不存在时不做任何事
func (m *Manager) IncrementQuantity(productID, variantKey string) {
	m.mutate(func(items []LineItem) []LineItem {
		if idx := indexOf(items, productID, variantKey); idx >= 0 {
			items[idx].Quantity++
		}
		return items
	})
}

// DecrementQuantity 数量 -1，减到 0 时移除该行
func (m *Manager) DecrementQuantity(productID, variantKey string) {
	m.mutate(func(items []LineItem) []LineItem {
		idx := indexOf(items, productID, variantKey)
		if idx < 0 {
			return items
		}
		if items[idx].Quantity > 1 {
			items[idx].Quantity--
			return items
		}
		return append(items[:idx], items[idx+1:]...)
	})
}

// RemoveItem 移除一行
func (m *Manager) RemoveItem(productID, variantKey string) {
	m.mutate(func(items []LineItem) []LineItem {
		if idx := indexOf(items, productID, variantKey); idx >= 0 {
			return append(items[:idx], items[idx+1:]...)
		}
		return items
	})
}

// ClearCart 清空购物车并持久化空列表，仅在下单成功后调用
func (m *Manager) ClearCart() {
	m.mutate(func([]LineItem) []LineItem {
		return []LineItem{}
	})
}

func (m *Manager) mutate(fn func([]LineItem) []LineItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = fn(m.items)
	m.persistLocked()
}

// persistLocked 在持锁状态下入队，保证同一键的写入顺序与变更顺序一致
func (m *Manager) persistLocked() {
	key := StorageKey(m.identity)
	payload, err := json.Marshal(m.items)
	if err != nil {
		logger.Warnw("cart_encode_failed", "key", key, "error", err)
		return
	}
	if err := m.queue.Set(key, payload); err != nil {
		logger.Warnw("cart_persist_failed", "key", key, "error", err)
	}
}

// Items 当前购物车行的副本，顺序即展示顺序
func (m *Manager) Items() []LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LineItem(nil), m.items...)
}

// Count 商品总件数
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, it := range m.items {
		total += it.Quantity
	}
	return total
}

// Identity 当前身份，空字符串表示游客
func (m *Manager) Identity() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}
