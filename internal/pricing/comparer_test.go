package pricing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smartpantry/internal/port"
	"smartpantry/internal/pricing"
	"smartpantry/mocks"
)

func storeClient(name string, products []port.StoreProduct, err error) *mocks.MockStoreClient {
	client := new(mocks.MockStoreClient)
	client.On("Name").Return(name).Maybe()
	client.On("Search", mock.Anything, mock.AnythingOfType("string")).Return(products, err)
	return client
}

func TestCompare_FindsCheapestAcrossStores(t *testing.T) {
	quickmart := storeClient("quickmart", []port.StoreProduct{
		{Store: "quickmart", Name: "Amul Taaza Milk 500ml", Price: 33},
		{Store: "quickmart", Name: "Amul Gold Milk 500ml", Price: 35},
	}, nil)
	dailybasket := storeClient("dailybasket", []port.StoreProduct{
		{Store: "dailybasket", Name: "Amul Taaza Milk 500ml", Price: 30},
	}, nil)

	comparer := pricing.NewComparer([]port.StoreClient{quickmart, dailybasket})
	comparison, err := comparer.Compare(context.Background(), "milk")

	require.NoError(t, err)
	require.Len(t, comparison.Matches, 2)
	assert.Equal(t, "dailybasket", comparison.CheapestStore)
	assert.Equal(t, 30.0, comparison.Matches[0].Price)
	assert.Equal(t, 33.0, comparison.Matches[1].Price)
	assert.Equal(t, 3.0, comparison.Savings)
	assert.InDelta(t, 9.09, comparison.SavingsPercent, 0.01)
	assert.Equal(t, 100, comparison.Matches[0].Relevance)
}

func TestCompare_FailedStoreIsSkipped(t *testing.T) {
	healthy := storeClient("quickmart", []port.StoreProduct{
		{Store: "quickmart", Name: "Tata Salt 1kg", Price: 28},
	}, nil)
	broken := storeClient("dailybasket", nil, errors.New("upstream 503"))

	comparer := pricing.NewComparer([]port.StoreClient{healthy, broken})
	comparison, err := comparer.Compare(context.Background(), "salt")

	require.NoError(t, err)
	require.Len(t, comparison.Matches, 1)
	assert.Equal(t, "quickmart", comparison.CheapestStore)
	assert.Equal(t, 0.0, comparison.Savings)
}

func TestCompare_NoResultsAnywhere(t *testing.T) {
	empty := storeClient("quickmart", []port.StoreProduct{}, nil)
	broken := storeClient("dailybasket", nil, errors.New("upstream 503"))

	comparer := pricing.NewComparer([]port.StoreClient{empty, broken})
	comparison, err := comparer.Compare(context.Background(), "saffron")

	require.NoError(t, err)
	assert.Empty(t, comparison.Matches)
	assert.Empty(t, comparison.CheapestStore)
}
