package engine

import "github.com/efreitasn/callauction/internal/domain"

// Quote walks a ranked book until the cumulative quantity reaches desired.
// It returns the limit price of the last order touched and whether the
// book holds enough quantity. Orders past the marginal one are never read.
// An empty book quotes (0, false).
func Quote(ranked []domain.Order, desired domain.Quantity) (domain.Price, bool) {
	var last domain.Price
	remaining := desired
	for _, o := range ranked {
		last = o.Price
		remaining -= o.Quantity
		if remaining <= 0 {
			break
		}
	}
	return last, len(ranked) > 0 && remaining <= 0
}
