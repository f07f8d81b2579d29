package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wallmasters/storefront/internal/pricing"
	"github.com/wallmasters/storefront/internal/storefront"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickPrefillPrefersDefault(t *testing.T) {
	now := time.Now()
	addr, ok := PickPrefill([]storefront.Address{
		{ID: "1", CreatedAt: now.Add(-2 * time.Hour), IsDefault: true},
		{ID: "2", CreatedAt: now},
	})
	require.True(t, ok)
	assert.Equal(t, storefront.ID("1"), addr.ID)
}

func TestPickPrefillFallsBackToMostRecent(t *testing.T) {
	now := time.Now()
	addr, ok := PickPrefill([]storefront.Address{
		{ID: "1", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "2", CreatedAt: now},
		{ID: "3", CreatedAt: now.Add(-time.Hour)},
	})
	require.True(t, ok)
	assert.Equal(t, storefront.ID("2"), addr.ID)

	_, ok = PickPrefill(nil)
	assert.False(t, ok)
}

func TestPrefillAddress(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newCart(t)

	guest := NewFlow(m, &fakeAPI{}, fixedIdentity(""), pricing.DefaultRule(), "Egypt")
	form, err := guest.PrefillAddress(ctx)
	require.NoError(t, err)
	assert.Equal(t, AddressForm{Country: "Egypt"}, form)

	api := &fakeAPI{addresses: []storefront.Address{{ID: "4", Name: "Mona", City: "Giza", IsDefault: true}}}
	flow := NewFlow(m, api, fixedIdentity("7"), pricing.DefaultRule(), "")
	form, err = flow.PrefillAddress(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mona", form.Name)
	assert.Equal(t, "Giza", form.City)
	assert.Equal(t, "Egypt", form.Country)

	failing := NewFlow(m, &fakeAPI{listErr: storefront.ErrTransientNetwork}, fixedIdentity("7"), pricing.DefaultRule(), "Egypt")
	form, err = failing.PrefillAddress(ctx)
	assert.True(t, errors.Is(err, storefront.ErrTransientNetwork))
	assert.Equal(t, AddressForm{Country: "Egypt"}, form)
}

func TestSaveAddressReturnsCreated(t *testing.T) {
	m, _, _ := newCart(t)
	flow := NewFlow(m, &fakeAPI{}, fixedIdentity("7"), pricing.DefaultRule(), "Egypt")

	addr, err := flow.SaveAddress(context.Background(), validForm)
	require.NoError(t, err)
	require.NotNil(t, addr)
	assert.Equal(t, "Mona Adel", addr.Name)
}
