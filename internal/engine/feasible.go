package engine

import "github.com/efreitasn/callauction/internal/domain"

// Equilibrium is the outcome of testing, or searching for, a clearing
// quantity. The zero value means no trade.
type Equilibrium struct {
	Found     bool
	Price     domain.Price
	Quantity  domain.Quantity
	SellQuote domain.Price // marginal sell price at Quantity
	BuyQuote  domain.Price // marginal buy price at Quantity
}

// Feasible reports whether q units can change hands in the ranked market:
// both books must hold at least q and the marginal buy price must not be
// below the marginal sell price. On success the clearing price comes from
// rule.
func Feasible(m *domain.Market, q domain.Quantity, rule PricingRule) Equilibrium {
	buy, buyOK := Quote(m.Buys, q)
	sell, sellOK := Quote(m.Sells, q)
	if !buyOK || !sellOK || buy < sell {
		return Equilibrium{}
	}
	return Equilibrium{
		Found:     true,
		Price:     rule.Price(sell, buy),
		Quantity:  q,
		SellQuote: sell,
		BuyQuote:  buy,
	}
}
