package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wallmasters/storefront/internal/cart"
	"github.com/wallmasters/storefront/internal/identity"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/pricing"
	"github.com/wallmasters/storefront/internal/storefront"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu        sync.Mutex
	addresses []storefront.Address
	listErr   error
	createErr error
	created   []storefront.AddressInput

	submitCalls atomic.Int32
	submitted   []storefront.OrderRequest
	submitErr   error
	// gate 非空时 SubmitOrder 阻塞直到关闭
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeAPI) ListAddresses(ctx context.Context, userID string) ([]storefront.Address, error) {
	return f.addresses, f.listErr
}

func (f *fakeAPI) CreateAddress(ctx context.Context, userID string, input storefront.AddressInput) (*storefront.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, input)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &storefront.Address{ID: "1", Name: input.Name}, nil
}

func (f *fakeAPI) SubmitOrder(ctx context.Context, req storefront.OrderRequest) (string, error) {
	f.submitCalls.Add(1)
	if f.entered != nil {
		close(f.entered)
	}
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	f.submitted = append(f.submitted, req)
	f.mu.Unlock()
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return "WM-ABCD1234", nil
}

type fixedIdentity string

func (i fixedIdentity) Current() (string, bool) { return string(i), i != "" }
func (fixedIdentity) OnChange(identity.Listener)  {}

var validForm = AddressForm{
	Name:     "Mona Adel",
	Email:    "mona@example.com",
	MobileNo: "01000000000",
	HouseNo:  "12",
	Street:   "Tahrir St",
	City:     "Cairo",
}

func newCart(t *testing.T) (*cart.Manager, *cart.MemoryStore, *cart.WriteQueue) {
	t.Helper()
	store := cart.NewMemoryStore()
	queue := cart.NewWriteQueue(store)
	t.Cleanup(func() { _ = queue.Close(context.Background()) })
	m := cart.NewManager(store, queue)
	require.NoError(t, m.Load(context.Background(), "7"))
	return m, store, queue
}

func addPrints(m *cart.Manager) {
	dunes := cart.Product{ID: "1", Name: "Desert Dunes", Image: "dunes.jpg"}
	m.AddItem(dunes, cart.Variant{Key: "50x70", Price: models.MustMoney("650")})
	m.AddItem(dunes, cart.Variant{Key: "50x70", Price: models.MustMoney("650")})
}

func TestSubmitOrderClearsCartOnSuccess(t *testing.T) {
	ctx := context.Background()
	m, store, queue := newCart(t)
	addPrints(m)
	api := &fakeAPI{}
	flow := NewFlow(m, api, fixedIdentity("7"), pricing.DefaultRule(), "Egypt")

	result, err := flow.SubmitOrder(ctx, validForm)
	require.NoError(t, err)
	assert.Equal(t, "WM-ABCD1234", result.OrderID)
	assert.Equal(t, "1370.00", result.Snapshot.Totals.Total.String())
	assert.Len(t, result.Snapshot.Items, 1)

	require.Len(t, api.submitted, 1)
	req := api.submitted[0]
	assert.Equal(t, "7", req.UserID)
	assert.Equal(t, "1370.00", req.TotalPrice.String())
	assert.Equal(t, "Egypt", req.ShippingAddress.Country)
	require.Len(t, req.Products, 1)
	assert.Equal(t, storefront.OrderItem{
		ProductID: "1", Name: "Desert Dunes", Size: "50x70", Quantity: 2,
		Price: req.Products[0].Price, Image: "dunes.jpg",
	}, req.Products[0])

	assert.Empty(t, m.Items())
	require.NoError(t, queue.Flush(ctx))
	raw, ok, err := store.Get(ctx, "cart_7")
	require.NoError(t, err)
	require.True(t, ok)
	var persisted []cart.LineItem
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Empty(t, persisted)
}

func TestFailedSubmissionPreservesCart(t *testing.T) {
	m, _, _ := newCart(t)
	addPrints(m)
	before := m.Items()
	api := &fakeAPI{submitErr: &storefront.APIError{HTTPStatus: 500, Message: "db down"}}
	flow := NewFlow(m, api, fixedIdentity("7"), pricing.DefaultRule(), "Egypt")

	_, err := flow.SubmitOrder(context.Background(), validForm)
	require.Error(t, err)
	assert.ErrorIs(t, err, storefront.ErrTransientNetwork)
	assert.Equal(t, int32(1), api.submitCalls.Load(), "no retry")
	assert.Equal(t, len(before), len(m.Items()))
	assert.Equal(t, 2, m.Count())
	assert.False(t, flow.Submitting(), "latch is released on failure")
}

func TestDoubleSubmitMakesOneNetworkCall(t *testing.T) {
	m, _, _ := newCart(t)
	addPrints(m)
	api := &fakeAPI{gate: make(chan struct{}), entered: make(chan struct{})}
	flow := NewFlow(m, api, fixedIdentity("7"), pricing.DefaultRule(), "Egypt")

	done := make(chan error, 1)
	go func() {
		_, err := flow.SubmitOrder(context.Background(), validForm)
		done <- err
	}()
	<-api.entered
	assert.True(t, flow.Submitting())

	_, err := flow.SubmitOrder(context.Background(), validForm)
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(api.gate)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("first submission did not finish")
	}
	assert.Equal(t, int32(1), api.submitCalls.Load())
	assert.False(t, flow.Submitting())
}

func TestSubmitOrderLocalChecks(t *testing.T) {
	cases := []struct {
		name     string
		identity fixedIdentity
		fill     bool
		form     AddressForm
		want     error
	}{
		{name: "guest", identity: "", fill: true, form: validForm, want: ErrSignInRequired},
		{name: "empty cart", identity: "7", fill: false, form: validForm, want: ErrEmptyCart},
		{name: "missing city", identity: "7", fill: true, form: func() AddressForm { f := validForm; f.City = " "; return f }(), want: storefront.ErrValidation},
		{name: "bad email", identity: "7", fill: true, form: func() AddressForm { f := validForm; f.Email = "mona@"; return f }(), want: storefront.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, _, _ := newCart(t)
			if tc.fill {
				addPrints(m)
			}
			api := &fakeAPI{}
			flow := NewFlow(m, api, tc.identity, pricing.DefaultRule(), "Egypt")

			_, err := flow.SubmitOrder(context.Background(), tc.form)
			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, api.submitCalls.Load())
		})
	}
}

func TestValidationErrorDetails(t *testing.T) {
	form := validForm
	form.Name = ""
	form.Street = ""
	form.Email = "not-an-email"
	form.PostalCode = ""

	var vErr *ValidationError
	require.True(t, errors.As(form.Validate(), &vErr))
	assert.Equal(t, []string{"name", "street"}, vErr.Missing)
	assert.True(t, vErr.InvalidEmail)
}

func TestSaveToBookTreatsDuplicateAsSuccess(t *testing.T) {
	m, _, _ := newCart(t)
	addPrints(m)
	api := &fakeAPI{createErr: &storefront.APIError{HTTPStatus: 409, Message: "exists"}}
	flow := NewFlow(m, api, fixedIdentity("7"), pricing.DefaultRule(), "Egypt")

	form := validForm
	form.SaveToBook = true
	result, err := flow.SubmitOrder(context.Background(), form)
	require.NoError(t, err)
	assert.NotEmpty(t, result.OrderID)
	require.Len(t, api.created, 1)
	assert.Equal(t, "Tahrir St", api.created[0].Street)
}

func TestSaveToBookFailureStopsSubmission(t *testing.T) {
	m, _, _ := newCart(t)
	addPrints(m)
	api := &fakeAPI{createErr: &storefront.APIError{HTTPStatus: 401, Message: "expired"}}
	flow := NewFlow(m, api, fixedIdentity("7"), pricing.DefaultRule(), "Egypt")

	form := validForm
	form.SaveToBook = true
	_, err := flow.SubmitOrder(context.Background(), form)
	assert.ErrorIs(t, err, storefront.ErrUnauthorized)
	assert.Zero(t, api.submitCalls.Load())
	assert.Equal(t, 2, m.Count())
}
