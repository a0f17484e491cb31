package engine

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/efreitasn/callauction/internal/domain"
)

// Candidates returns every cumulative quantity at which an order boundary
// falls on either ranked book, sorted descending. Feasibility is constant
// between consecutive boundaries, so no other quantity needs testing.
//
// A book whose total does not fit in a Quantity yields ErrQuantityOverflow.
func Candidates(m *domain.Market) ([]domain.Quantity, error) {
	qs := make([]domain.Quantity, 0, m.Len())
	for _, book := range [][]domain.Order{m.Buys, m.Sells} {
		var cum domain.Quantity
		for _, o := range book {
			next, ok := domain.AddQuantity(cum, o.Quantity)
			if !ok {
				return nil, fmt.Errorf("%w: %s book total exceeds %d at order %d",
					domain.ErrQuantityOverflow, o.Side, domain.Quantity(math.MaxInt64), o.ID)
			}
			cum = next
			qs = append(qs, cum)
		}
	}
	slices.SortFunc(qs, func(a, b domain.Quantity) int { return cmp.Compare(b, a) })
	return qs, nil
}

// Search finds the largest feasible candidate quantity of a ranked market.
// Feasibility never increases with quantity, so the descending candidate
// list splits into an infeasible head and a feasible tail; Search bisects
// for the split and scans the last few candidates linearly.
//
// A bracket bound that bisection proved infeasible turning out feasible, or
// a feasible successor of the result, is reported as an InvariantError. A
// market too large to total is refused with ErrQuantityOverflow.
func Search(m *domain.Market, rule PricingRule) (Equilibrium, error) {
	if len(m.Buys) == 0 || len(m.Sells) == 0 {
		return Equilibrium{}, nil
	}
	qs, err := Candidates(m)
	if err != nil {
		return Equilibrium{}, err
	}
	return bisect(qs, func(q domain.Quantity) Equilibrium {
		return Feasible(m, q, rule)
	})
}

// bisect runs the search over descending candidates qs with an arbitrary
// feasibility predicate.
func bisect(qs []domain.Quantity, feasible func(domain.Quantity) Equilibrium) (Equilibrium, error) {
	if len(qs) == 0 {
		return Equilibrium{}, nil
	}

	low, high := 0, len(qs)-1
	lowTested := false

	for high-low > 3 {
		mid := (low + high) / 2
		if feasible(qs[mid]).Found {
			high = mid
		} else {
			low = mid
			lowTested = true
		}
	}

	var eq Equilibrium
	for j := low; j <= high; j++ {
		eq = feasible(qs[j])
		if !eq.Found {
			continue
		}
		if j == low && lowTested && high != low {
			return Equilibrium{}, domain.Invariantf(domain.InvariantBracket,
				"candidate %d at lower bound %d was infeasible during bisection", qs[j], j)
		}
		break
	}
	if !eq.Found {
		return Equilibrium{}, nil
	}

	// Nothing can exceed the largest representable quantity.
	if eq.Quantity == math.MaxInt64 {
		return eq, nil
	}
	if next := feasible(eq.Quantity + 1); next.Found {
		return Equilibrium{}, domain.Invariantf(domain.InvariantOptimality,
			"quantity %d clears but so does %d", eq.Quantity, next.Quantity)
	}
	return eq, nil
}
