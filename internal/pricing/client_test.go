package pricing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartpantry/internal/config"
	"smartpantry/internal/pricing"
)

func TestStoreClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "amul milk", r.URL.Query().Get("q"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[
			{"name":"Amul Taaza Milk 500ml","discounted_price":33,"mrp":35,"quantity":"500 ml","delivery_time":"10 mins"}
		]}`))
	}))
	defer server.Close()

	client := pricing.NewStoreClient("quickmart", server.URL, config.PricingConfig{})
	products, err := client.Search(context.Background(), "amul milk")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "quickmart", products[0].Store)
	assert.Equal(t, "Amul Taaza Milk 500ml", products[0].Name)
	assert.Equal(t, 33.0, products[0].Price)
	assert.Equal(t, 35.0, products[0].ListPrice)
	assert.Equal(t, "10 mins", products[0].DeliveryTime)
}

func TestStoreClient_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := pricing.NewStoreClient("quickmart", server.URL, config.PricingConfig{})
	_, err := client.Search(context.Background(), "milk")

	assert.ErrorContains(t, err, "unexpected status 503")
}

func TestStoreClient_EmptyCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[]}`))
	}))
	defer server.Close()

	client := pricing.NewStoreClient("quickmart", server.URL, config.PricingConfig{})
	products, err := client.Search(context.Background(), "saffron")

	require.NoError(t, err)
	assert.Empty(t, products)
}
