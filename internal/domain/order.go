package domain

import "fmt"

// Price is a limit or clearing price in the venue's smallest currency unit.
type Price uint64

// Quantity is an order size. It is signed so that settlement arithmetic can
// go transiently negative before being clamped.
type Quantity int64

// Side indicates whether an order buys or sells.
type Side byte

const (
	SideBuy  Side = 'B'
	SideSell Side = 'S'
)

// ParseSide converts a one-character side tag into a Side. Any tag other
// than "B" or "S" is rejected with ErrInvalidSide.
func ParseSide(tag string) (Side, error) {
	switch tag {
	case "B":
		return SideBuy, nil
	case "S":
		return SideSell, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSide, tag)
}

func (s Side) String() string {
	return string(rune(s))
}

// Order is a single resting order taking part in one auction run. Only
// Quantity changes after ingestion, and only during settlement.
type Order struct {
	Side        Side
	ID          uint64
	SubmittedAt uint64 // nanoseconds since epoch, tie-break key only
	Price       Price
	Quantity    Quantity // remaining unfilled quantity
}

// Crosses reports whether the order accepts a trade at the given price:
// a buy at or below its limit, a sell at or above it.
func (o Order) Crosses(p Price) bool {
	if o.Side == SideBuy {
		return o.Price >= p
	}
	return o.Price <= p
}
