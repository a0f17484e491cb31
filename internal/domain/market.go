package domain

import (
	"fmt"
	"math"
)

// Market holds the buy book and the sell book of one auction. It is owned
// exclusively by the computation clearing it.
type Market struct {
	Buys  []Order
	Sells []Order
}

// Add appends the order to the book matching its side.
func (m *Market) Add(o Order) error {
	switch o.Side {
	case SideBuy:
		m.Buys = append(m.Buys, o)
	case SideSell:
		m.Sells = append(m.Sells, o)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSide, o.Side.String())
	}
	return nil
}

// Len returns the total number of resting orders.
func (m *Market) Len() int {
	return len(m.Buys) + len(m.Sells)
}

// Clone returns a deep copy of the market.
func (m *Market) Clone() *Market {
	return &Market{
		Buys:  append([]Order(nil), m.Buys...),
		Sells: append([]Order(nil), m.Sells...),
	}
}

// TotalQuantity sums the remaining quantity of every order in the book.
func TotalQuantity(book []Order) Quantity {
	var total Quantity
	for _, o := range book {
		total += o.Quantity
	}
	return total
}

// AddQuantity returns a+b, or false if the sum of two non-negative
// quantities would overflow.
func AddQuantity(a, b Quantity) (Quantity, bool) {
	if b > math.MaxInt64-a {
		return 0, false
	}
	return a + b, true
}
