package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/wallmasters/storefront/internal/constants"
	"github.com/wallmasters/storefront/internal/identity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	mu       sync.Mutex
	current  string
	handlers []identity.Listener
}

func (p *stubProvider) Current() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.current != ""
}

func (p *stubProvider) OnChange(fn identity.Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers = append(p.handlers, fn)
}

func (p *stubProvider) set(next string) error {
	p.mu.Lock()
	change := identity.Change{Previous: p.current, Current: next}
	p.current = next
	handlers := append([]identity.Listener{}, p.handlers...)
	p.mu.Unlock()
	var errs []error
	for _, fn := range handlers {
		errs = append(errs, fn(change))
	}
	return errors.Join(errs...)
}

func TestBindFollowsIdentityChanges(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t)
	provider := &stubProvider{}
	require.NoError(t, m.Bind(ctx, provider))

	require.NoError(t, m.AddItem(dunes, small))
	require.NoError(t, provider.set("11"))
	assert.Equal(t, "11", m.Identity())
	assert.Len(t, m.Items(), 1)

	require.NoError(t, provider.set(""))
	assert.Equal(t, "", m.Identity())
	assert.Empty(t, m.Items())
}

func TestBindLoadsCurrentIdentityOnColdStart(t *testing.T) {
	ctx := context.Background()
	m, _, queue := newTestManager(t)
	require.NoError(t, m.Load(ctx, "3"))
	m.AddItem(skyline, large)
	require.NoError(t, queue.Flush(ctx))

	restarted := NewManager(m.store, queue)
	require.NoError(t, restarted.Bind(ctx, &stubProvider{current: "3"}))
	assert.Equal(t, "3", restarted.Identity())
	assert.Len(t, restarted.Items(), 1)
}

func userToken(t *testing.T, userID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("server-side-secret"))
	require.NoError(t, err)
	return signed
}

func TestSignInFailsAndStaysGuestWhenUserSlotRejectsWrite(t *testing.T) {
	ctx := context.Background()
	store := newFaultStore()
	store.failSet["cart_7"] = errors.New("disk full")
	queue := NewWriteQueue(store)
	t.Cleanup(func() { _ = queue.Close(context.Background()) })
	m := NewManager(store, queue)

	session, err := identity.NewSession(ctx, store)
	require.NoError(t, err)
	require.NoError(t, m.Bind(ctx, session))
	require.NoError(t, m.AddItem(dunes, small))

	err = session.SignIn(ctx, userToken(t, 7))

	require.ErrorIs(t, err, identity.ErrChangeAborted)
	assert.ErrorContains(t, err, "disk full")
	_, signedIn := session.Current()
	assert.False(t, signedIn, "session rolls back to guest")
	assert.Equal(t, "", m.Identity())
	assert.Len(t, m.Items(), 1, "guest items stay in the cart")
	require.NoError(t, queue.Flush(ctx))
	guest, ok := storedItems(t, store.MemoryStore, constants.GuestCartKey)
	require.True(t, ok)
	assert.Len(t, guest, 1)
	_, tokenKept, _ := store.Get(ctx, identity.TokenKey)
	assert.False(t, tokenKept)
}

func TestBindResumesInterruptedMigrationOnColdStart(t *testing.T) {
	ctx := context.Background()
	m, store, queue := newTestManager(t)
	require.NoError(t, m.AddItem(dunes, small))
	require.NoError(t, m.Load(ctx, "7"))
	require.NoError(t, m.AddItem(skyline, large))
	require.NoError(t, queue.Flush(ctx))

	// 令牌已保存但迁移没跑完：两个槽位都有商品
	restarted := NewManager(store, queue)
	require.NoError(t, restarted.Bind(ctx, &stubProvider{current: "7"}))

	assert.Equal(t, "7", restarted.Identity())
	assert.Equal(t, []string{"2/70x100 x1 @1100.00", "1/50x70 x1 @650.00"}, lineKeys(restarted.Items()))
	_, guestLeft := storedItems(t, store, constants.GuestCartKey)
	assert.False(t, guestLeft)
}
