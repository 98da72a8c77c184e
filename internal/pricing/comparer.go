package pricing

import (
	"context"
	"log"
	"sort"

	"smartpantry/internal/port"
)

// Match is one store's best offer for a compared product, with its
// relevance to the original query.
type Match struct {
	port.StoreProduct
	Relevance int `json:"relevance"`
}

// Comparison is the cross-store result for one product query.
type Comparison struct {
	Query          string  `json:"query"`
	Matches        []Match `json:"matches"`
	CheapestStore  string  `json:"cheapest_store,omitempty"`
	Savings        float64 `json:"savings"`
	SavingsPercent float64 `json:"savings_percent"`
}

// Comparer fans a product query out to every configured store client and
// assembles a price comparison.
type Comparer struct {
	clients []port.StoreClient
}

// NewComparer creates a Comparer over the given store clients.
func NewComparer(clients []port.StoreClient) *Comparer {
	return &Comparer{clients: clients}
}

// Compare queries every store for the product. A store that errors is
// skipped; the comparison is built from whoever answered.
func (c *Comparer) Compare(ctx context.Context, query string) (*Comparison, error) {
	type result struct {
		store    string
		products []port.StoreProduct
		err      error
	}

	results := make(chan result, len(c.clients))
	for _, client := range c.clients {
		go func(cl port.StoreClient) {
			products, err := cl.Search(ctx, query)
			results <- result{store: cl.Name(), products: products, err: err}
		}(client)
	}

	var matches []Match
	for range c.clients {
		r := <-results
		if r.err != nil {
			log.Printf("pricing.Comparer: %s search failed: %v", r.store, r.err)
			continue
		}
		if len(r.products) == 0 {
			continue
		}
		// The first product is the store's most relevant hit.
		top := r.products[0]
		matches = append(matches, Match{
			StoreProduct: top,
			Relevance:    Relevance(top.Name, query),
		})
	}

	comparison := &Comparison{Query: query, Matches: matches}
	if len(matches) == 0 {
		return comparison, nil
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Price < matches[j].Price })
	comparison.Matches = matches
	comparison.CheapestStore = matches[0].Store

	if len(matches) > 1 {
		cheapest := matches[0].Price
		dearest := matches[len(matches)-1].Price
		comparison.Savings = dearest - cheapest
		if dearest > 0 {
			comparison.SavingsPercent = comparison.Savings / dearest * 100
		}
	}
	return comparison, nil
}
