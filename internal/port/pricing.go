package port

import "context"

// StoreProduct is one product offer returned by a store price client.
type StoreProduct struct {
	Store        string  `json:"store"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ListPrice    float64 `json:"list_price,omitempty"`
	Quantity     string  `json:"quantity,omitempty"`
	DeliveryTime string  `json:"delivery_time,omitempty"`
}

// StoreClient searches one grocery platform for product offers.
type StoreClient interface {
	Name() string
	Search(ctx context.Context, query string) ([]StoreProduct, error)
}
