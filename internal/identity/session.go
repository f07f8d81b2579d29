// Package identity 维护设备端登录态：保存令牌、解析用户、通知身份变化。
package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wallmasters/storefront/internal/logger"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKey 令牌在设备存储中的键
const TokenKey = "authToken"

var (
	// ErrInvalidToken 令牌无法解析或缺少用户标识
	ErrInvalidToken = errors.New("invalid identity token")
	// ErrChangeAborted 订阅者未能跟随身份变化，会话已回滚
	ErrChangeAborted = errors.New("identity change aborted")
)

// Store 令牌存储，与购物车共用同一设备存储
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Change 身份变化，空字符串表示游客
type Change struct {
	Previous string
	Current  string
}

// Listener 身份变化回调；返回错误表示该订阅者未能完成切换，
// 且自身状态保持在变化之前
type Listener func(Change) error

// Provider 身份来源
type Provider interface {
	Current() (string, bool)
	OnChange(Listener)
}

// claims 服务端签发的顾客令牌载荷；客户端不持有密钥，只读取不校验签名
type claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Session 当前设备的登录会话
type Session struct {
	mu        sync.RWMutex
	store     Store
	token     string
	userID    string
	email     string
	expiresAt time.Time
	now       func() time.Time
	listeners []Listener
}

// NewSession 创建会话并从存储恢复令牌；过期或无法解析的令牌会被丢弃
func NewSession(ctx context.Context, store Store) (*Session, error) {
	s := &Session{store: store, now: time.Now}
	raw, ok, err := store.Get(ctx, TokenKey)
	if err != nil {
		return nil, fmt.Errorf("restore token: %w", err)
	}
	if !ok {
		return s, nil
	}
	st, err := s.parse(strings.TrimSpace(string(raw)))
	if err != nil {
		logger.Infow("identity_stored_token_dropped", "error", err)
		if err := store.Remove(ctx, TokenKey); err != nil {
			return nil, fmt.Errorf("drop stale token: %w", err)
		}
		return s, nil
	}
	s.commit(st)
	return s, nil
}

// state 一次登录态快照，零值即游客
type state struct {
	token     string
	userID    string
	email     string
	expiresAt time.Time
}

func (s *Session) parse(token string) (state, error) {
	parsed := &claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, parsed); err != nil {
		return state{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if parsed.UserID == 0 {
		return state{}, ErrInvalidToken
	}
	var expiresAt time.Time
	if parsed.ExpiresAt != nil {
		expiresAt = parsed.ExpiresAt.Time
		if !expiresAt.After(s.now()) {
			return state{}, fmt.Errorf("%w: expired", ErrInvalidToken)
		}
	}
	return state{
		token:     token,
		userID:    strconv.FormatUint(uint64(parsed.UserID), 10),
		email:     parsed.Email,
		expiresAt: expiresAt,
	}, nil
}

// commit 替换内存状态，返回替换前的快照
func (s *Session) commit(next state) state {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := state{token: s.token, userID: s.userID, email: s.email, expiresAt: s.expiresAt}
	s.token, s.userID, s.email, s.expiresAt = next.token, next.userID, next.email, next.expiresAt
	return prev
}

// persist 把快照写入设备存储，游客对应删除令牌
func (s *Session) persist(ctx context.Context, st state) error {
	if st.token == "" {
		if err := s.store.Remove(ctx, TokenKey); err != nil {
			return fmt.Errorf("remove token: %w", err)
		}
		return nil
	}
	if err := s.store.Set(ctx, TokenKey, []byte(st.token)); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// SignIn 保存登录令牌并通知订阅者（登录与注册都走这里）。
// 先落盘再切换内存状态；任一订阅者切换失败时整体回滚到登录前并返回错误。
func (s *Session) SignIn(ctx context.Context, token string) error {
	next, err := s.parse(strings.TrimSpace(token))
	if err != nil {
		return err
	}
	return s.transition(ctx, next)
}

// SignOut 清除令牌，身份回到游客
func (s *Session) SignOut(ctx context.Context) error {
	return s.transition(ctx, state{})
}

func (s *Session) transition(ctx context.Context, next state) error {
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	prev := s.commit(next)
	change := Change{Previous: prev.userID, Current: next.userID}
	err := s.notify(change)
	if err == nil {
		return nil
	}

	// 回滚：恢复令牌与内存状态，并让已切换的订阅者切回去
	logger.Warnw("identity_change_rolled_back",
		"from", change.Previous,
		"to", change.Current,
		"error", err,
	)
	if rbErr := s.persist(ctx, prev); rbErr != nil {
		logger.Errorw("identity_rollback_persist_failed", "error", rbErr)
	}
	s.commit(prev)
	if rbErr := s.notify(Change{Previous: change.Current, Current: change.Previous}); rbErr != nil {
		logger.Errorw("identity_rollback_notify_failed", "error", rbErr)
	}
	return fmt.Errorf("%w: %v", ErrChangeAborted, err)
}

// Current 当前用户 ID；游客返回 false
func (s *Session) Current() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.userID != ""
}

// Token 当前令牌，游客为空
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Email 令牌中的邮箱
func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

// ExpiresAt 令牌过期时间，零值表示未登录或令牌不带过期时间
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// OnChange 订阅身份变化，回调在触发变化的协程中同步执行
func (s *Session) OnChange(fn Listener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Session) notify(change Change) error {
	if change.Previous == change.Current {
		return nil
	}
	s.mu.RLock()
	listeners := append([]Listener{}, s.listeners...)
	s.mu.RUnlock()
	var errs []error
	for _, fn := range listeners {
		if err := fn(change); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
