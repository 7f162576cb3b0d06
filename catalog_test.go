package aurum

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumkit/aurum/tokenstore"
)

func TestGoldPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/resource/goldPrice", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "the price board is public")
		_, _ = w.Write([]byte(`{"data":[{"goldType":"24K","price":85.2},{"goldType":"18K","price":63.9}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, tokenstore.NewMemoryStore())

	prices, err := c.GoldPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, "24K", prices[0].GoldType)
	assert.InDelta(t, 85.2, prices[0].Price, 1e-9)
}

func TestItemsListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/resource/items", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":7,"itemType":"24K","price":85.2,"quantity":2.5}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, tokenstore.NewMemoryStore())

	items, err := c.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 7, items[0].ID)
	assert.InDelta(t, 2.5, items[0].Quantity, 1e-9)
}

func TestItemDetailRequiresAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/resource/items/7", r.URL.Path)
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":{"id":7,"itemType":"24K","price":85.2,"quantity":2.5}}`))
	}))
	defer srv.Close()

	store := tokenstore.NewMemoryStore()
	seedSession(t, store, "abc", "xyz")
	c := newTestClient(t, srv.URL, store)

	item, err := c.Item(context.Background(), 7)
	require.NoError(t, err)
	assert.EqualValues(t, 7, item.ID)
	assert.Equal(t, "24K", item.ItemType)
}

func TestSellerItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/resource/items/seller", r.URL.Path)
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	store := tokenstore.NewMemoryStore()
	seedSession(t, store, "abc", "xyz")
	c := newTestClient(t, srv.URL, store)

	items, err := c.SellerItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateItemRejectsOffStepQuantityLocally(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	store := tokenstore.NewMemoryStore()
	seedSession(t, store, "abc", "xyz")
	c := newTestClient(t, srv.URL, store)
	ctx := context.Background()

	for _, q := range []float64{0, 0.3, 0.75, -1} {
		err := c.CreateItem(ctx, CreateItemInput{ItemType: "24K", Quantity: q, Price: 85})
		require.ErrorIs(t, err, ErrInvalidQuantity, "quantity %v", q)
	}
	assert.Zero(t, hits, "invalid quantities are rejected before any request")

	for _, q := range []float64{0.5, 1, 2.5, 10} {
		require.NoError(t, c.CreateItem(ctx, CreateItemInput{ItemType: "24K", Quantity: q, Price: 85}))
	}
	assert.Equal(t, 4, hits)
}

func TestValidQuantity(t *testing.T) {
	valid := []float64{0.5, 1.0, 1.5, 100, 2.5}
	for _, q := range valid {
		assert.True(t, validQuantity(q), "%v", q)
	}
	invalid := []float64{0, 0.25, 0.4999, 1.7, -0.5}
	for _, q := range invalid {
		assert.False(t, validQuantity(q), "%v", q)
	}
}
