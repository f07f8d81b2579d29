package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/wallmasters/storefront/internal/cart"
	"github.com/wallmasters/storefront/internal/identity"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/pricing"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userToken(t *testing.T, userID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   "mona@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func TestGuestCartSurvivesSignInAndClearsAfterOrder(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := cart.NewRedisStore(client, "wm", 0)
	queue := cart.NewWriteQueue(store)
	t.Cleanup(func() { _ = queue.Close(ctx) })
	session, err := identity.NewSession(ctx, store)
	require.NoError(t, err)
	m := cart.NewManager(store, queue)
	require.NoError(t, m.Bind(ctx, session))

	m.AddItem(cart.Product{ID: "2", Name: "Cairo Skyline"}, cart.Variant{Key: "70x100", Price: models.MustMoney("1100")})
	m.AddItem(cart.Product{ID: "2", Name: "Cairo Skyline"}, cart.Variant{Key: "70x100", Price: models.MustMoney("1100")})

	api := &fakeAPI{}
	flow := NewFlow(m, api, session, pricing.DefaultRule(), "Egypt")
	_, err = flow.SubmitOrder(ctx, validForm)
	assert.ErrorIs(t, err, ErrSignInRequired)
	assert.Equal(t, 2, m.Count())

	require.NoError(t, session.SignIn(ctx, userToken(t, 7)))
	assert.Equal(t, "7", m.Identity())
	assert.False(t, mr.Exists("wm:guestCart"))
	assert.True(t, mr.Exists("wm:cart_7"))
	assert.True(t, mr.Exists("wm:"+identity.TokenKey))

	assert.True(t, flow.Totals().FreeShipping())
	result, err := flow.SubmitOrder(ctx, validForm)
	require.NoError(t, err)
	assert.Equal(t, "2200.00", result.Snapshot.Totals.Total.String())
	assert.Equal(t, "7", api.submitted[0].UserID)
	assert.Zero(t, m.Count())

	require.NoError(t, queue.Flush(ctx))
	stored, err := mr.Get("wm:cart_7")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", stored)
}
