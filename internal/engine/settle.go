package engine

import "github.com/efreitasn/callauction/internal/domain"

// Fill records how much of one order traded in an auction.
type Fill struct {
	Side      domain.Side
	OrderID   uint64
	Limit     domain.Price
	Quantity  domain.Quantity
	Remaining domain.Quantity // 0 when the order left the book
}

// Settle applies a feasible equilibrium to both ranked books. Each side is
// walked in priority order until eq.Quantity is exhausted: orders that fit
// are removed, the marginal order may be reduced. The market is only
// modified once both walks succeed.
func Settle(m *domain.Market, eq Equilibrium) ([]Fill, error) {
	if !eq.Found {
		return nil, nil
	}

	buys, buyFills, err := settleBook(m.Buys, eq.Price, eq.Quantity)
	if err != nil {
		return nil, err
	}
	sells, sellFills, err := settleBook(m.Sells, eq.Price, eq.Quantity)
	if err != nil {
		return nil, err
	}

	m.Buys = buys
	m.Sells = sells
	return append(buyFills, sellFills...), nil
}

func settleBook(book []domain.Order, price domain.Price, q domain.Quantity) ([]domain.Order, []Fill, error) {
	need := q
	var fills []Fill

	for i, o := range book {
		if !o.Crosses(price) {
			return nil, nil, domain.Invariantf(domain.InvariantRationality,
				"%s order %d with limit %d cannot trade at %d", o.Side, o.ID, o.Price, price)
		}

		if o.Quantity <= need {
			fills = appendFill(fills, o, o.Quantity, 0)
			need -= o.Quantity
			if need <= 0 {
				return residual(nil, book[i+1:]), fills, nil
			}
			continue
		}

		// Partial fill of the marginal order.
		fills = appendFill(fills, o, need, o.Quantity-need)
		o.Quantity -= need
		return residual([]domain.Order{o}, book[i+1:]), fills, nil
	}

	if need > 0 {
		return nil, nil, domain.Invariantf(domain.InvariantConservation,
			"book exhausted with %d of %d units unfilled", need, q)
	}
	return residual(nil, nil), fills, nil
}

func appendFill(fills []Fill, o domain.Order, filled, remaining domain.Quantity) []Fill {
	if filled <= 0 {
		return fills
	}
	return append(fills, Fill{
		Side:      o.Side,
		OrderID:   o.ID,
		Limit:     o.Price,
		Quantity:  filled,
		Remaining: remaining,
	})
}

func residual(head, tail []domain.Order) []domain.Order {
	out := make([]domain.Order, 0, len(head)+len(tail))
	out = append(out, head...)
	return append(out, tail...)
}
