package engine

import (
	"testing"

	"github.com/efreitasn/callauction/internal/domain"
)

// helpers to build orders with only the fields ranking and clearing read.
func buy(id uint64, price domain.Price, qty domain.Quantity, at uint64) domain.Order {
	return domain.Order{Side: domain.SideBuy, ID: id, Price: price, Quantity: qty, SubmittedAt: at}
}

func sell(id uint64, price domain.Price, qty domain.Quantity, at uint64) domain.Order {
	return domain.Order{Side: domain.SideSell, ID: id, Price: price, Quantity: qty, SubmittedAt: at}
}

func ids(book []domain.Order) []uint64 {
	out := make([]uint64, len(book))
	for i, o := range book {
		out[i] = o.ID
	}
	return out
}

func equalIDs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBetter_BuyPriceDescending(t *testing.T) {
	a := buy(1, 200, 1, 5)
	b := buy(2, 100, 1, 1)
	if !Better(a, b) {
		t.Error("expected higher price to rank first on buy side")
	}
	if Better(b, a) {
		t.Error("expected lower price to not rank first on buy side")
	}
}

func TestBetter_BuyTimeAscending(t *testing.T) {
	a := buy(1, 100, 1, 1)
	b := buy(2, 100, 1, 2)
	if !Better(a, b) {
		t.Error("expected earlier time to rank first at same buy price")
	}
	if Better(b, a) {
		t.Error("expected later time to not rank first at same buy price")
	}
}

func TestBetter_SellPriceAscending(t *testing.T) {
	a := sell(1, 100, 1, 5)
	b := sell(2, 200, 1, 1)
	if !Better(a, b) {
		t.Error("expected lower price to rank first on sell side")
	}
	if Better(b, a) {
		t.Error("expected higher price to not rank first on sell side")
	}
}

func TestBetter_SellTimeAscending(t *testing.T) {
	a := sell(1, 100, 1, 1)
	b := sell(2, 100, 1, 2)
	if !Better(a, b) {
		t.Error("expected earlier time to rank first at same sell price")
	}
}

func TestBetter_IsStrict(t *testing.T) {
	a := buy(1, 100, 1, 1)
	b := buy(2, 100, 1, 1)
	if Better(a, b) || Better(b, a) {
		t.Error("orders with equal price and time should not outrank each other")
	}
}

func TestRankBook_Buys(t *testing.T) {
	book := []domain.Order{
		buy(1, 490, 10, 3),
		buy(2, 500, 5, 9),
		buy(3, 490, 1, 1),
		buy(4, 510, 2, 7),
	}
	got := ids(RankBook(book, domain.SideBuy))
	want := []uint64{4, 2, 3, 1}
	if !equalIDs(got, want) {
		t.Errorf("ranked buy ids = %v, want %v", got, want)
	}
}

func TestRankBook_Sells(t *testing.T) {
	book := []domain.Order{
		sell(1, 495, 7, 2),
		sell(2, 480, 8, 4),
		sell(3, 495, 1, 1),
	}
	got := ids(RankBook(book, domain.SideSell))
	want := []uint64{2, 3, 1}
	if !equalIDs(got, want) {
		t.Errorf("ranked sell ids = %v, want %v", got, want)
	}
}

func TestRankBook_KeepsDuplicates(t *testing.T) {
	book := []domain.Order{
		sell(7, 100, 1, 1),
		sell(7, 100, 2, 1),
		sell(7, 100, 3, 1),
	}
	ranked := RankBook(book, domain.SideSell)
	if len(ranked) != 3 {
		t.Fatalf("len(ranked) = %d, want 3", len(ranked))
	}
	if got := domain.TotalQuantity(ranked); got != 6 {
		t.Errorf("TotalQuantity(ranked) = %d, want 6", got)
	}
}

func TestRankBook_Empty(t *testing.T) {
	if got := RankBook(nil, domain.SideBuy); len(got) != 0 {
		t.Errorf("RankBook(nil) = %v, want empty", got)
	}
}

func TestRankMarket(t *testing.T) {
	m := &domain.Market{
		Buys:  []domain.Order{buy(1, 10, 1, 0), buy(2, 20, 1, 0)},
		Sells: []domain.Order{sell(3, 30, 1, 0), sell(4, 15, 1, 0)},
	}
	RankMarket(m)
	if !equalIDs(ids(m.Buys), []uint64{2, 1}) {
		t.Errorf("buy ids = %v, want [2 1]", ids(m.Buys))
	}
	if !equalIDs(ids(m.Sells), []uint64{4, 3}) {
		t.Errorf("sell ids = %v, want [4 3]", ids(m.Sells))
	}
}

func TestRankBook_EqualPriorityKeepsInputOrder(t *testing.T) {
	book := []domain.Order{
		buy(9, 100, 1, 5),
		buy(3, 100, 1, 5),
		buy(7, 100, 1, 5),
		buy(1, 200, 1, 9),
	}
	got := ids(RankBook(book, domain.SideBuy))
	want := []uint64{1, 9, 3, 7}
	if !equalIDs(got, want) {
		t.Errorf("ranked buy ids = %v, want %v", got, want)
	}
}

func TestRankLess_AgreesWithBetter(t *testing.T) {
	orders := []domain.Order{
		sell(1, 100, 1, 2),
		sell(2, 100, 1, 1),
		sell(3, 90, 1, 3),
		sell(4, 100, 1, 2),
	}
	less := rankLess(domain.SideSell)
	for i, a := range orders {
		for j, b := range orders {
			ea, eb := rankEntry{order: a, seq: i}, rankEntry{order: b, seq: j}
			if Better(a, b) && !less(ea, eb) {
				t.Errorf("order %d outranks order %d but does not sort first", a.ID, b.ID)
			}
			if Better(b, a) && less(ea, eb) {
				t.Errorf("order %d sorts before better order %d", a.ID, b.ID)
			}
		}
	}
}
