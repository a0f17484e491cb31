package engine

import (
	"github.com/google/btree"

	"github.com/efreitasn/callauction/internal/domain"
)

// rankEntry is an order plus its position in the unranked book. The
// position only separates orders of equal priority so duplicates survive
// the tree; it never overrides price or time.
type rankEntry struct {
	order domain.Order
	seq   int
}

// Better reports whether a has strictly higher priority than b. Both orders
// must be on the same side.
func Better(a, b domain.Order) bool {
	return better(a.Side, a, b)
}

// better is price-time priority for one side: buys by price descending,
// sells by price ascending, then earlier submission first.
func better(side domain.Side, a, b domain.Order) bool {
	if a.Price != b.Price {
		if side == domain.SideBuy {
			return a.Price > b.Price
		}
		return a.Price < b.Price
	}
	return a.SubmittedAt < b.SubmittedAt
}

// rankLess orders tree entries for one side. Ascend yields the best order
// first; entries of equal priority keep input order.
func rankLess(side domain.Side) btree.LessFunc[rankEntry] {
	return func(a, b rankEntry) bool {
		if better(side, a.order, b.order) {
			return true
		}
		if better(side, b.order, a.order) {
			return false
		}
		return a.seq < b.seq
	}
}

// RankBook sorts a single-side book into priority order. The returned slice
// shares storage with book.
func RankBook(book []domain.Order, side domain.Side) []domain.Order {
	const degree = 32

	tree := btree.NewG[rankEntry](degree, rankLess(side))
	for i, o := range book {
		tree.ReplaceOrInsert(rankEntry{order: o, seq: i})
	}

	ranked := book[:0]
	tree.Ascend(func(e rankEntry) bool {
		ranked = append(ranked, e.order)
		return true
	})
	return ranked
}

// RankMarket ranks both books of the market in place.
func RankMarket(m *domain.Market) {
	m.Buys = RankBook(m.Buys, domain.SideBuy)
	m.Sells = RankBook(m.Sells, domain.SideSell)
}
