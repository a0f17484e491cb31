package engine

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/callauction/internal/domain"
)

// PricingRule turns the marginal sell and buy quotes of a feasible quantity
// into the clearing price. Rules that return a price outside [sell, buy]
// break individual rationality and make settlement fail.
type PricingRule interface {
	Price(sell, buy domain.Price) domain.Price
}

// PricingFunc adapts an ordinary function to PricingRule.
type PricingFunc func(sell, buy domain.Price) domain.Price

func (f PricingFunc) Price(sell, buy domain.Price) domain.Price {
	return f(sell, buy)
}

// Midpoint splits the difference with floor division, so odd sums truncate
// toward the sell quote. This is the default rule.
type Midpoint struct{}

func (Midpoint) Price(sell, buy domain.Price) domain.Price {
	if buy >= sell {
		return sell + (buy-sell)/2
	}
	return buy + (sell-buy)/2
}

// HalfUpMidpoint computes the exact midpoint and rounds halves up, toward
// the buy quote.
type HalfUpMidpoint struct{}

func (HalfUpMidpoint) Price(sell, buy domain.Price) domain.Price {
	mid := priceDecimal(sell).Add(priceDecimal(buy)).Div(decimal.NewFromInt(2))
	return domain.Price(mid.Round(0).BigInt().Uint64())
}

// SellerPrice settles at the marginal sell quote.
type SellerPrice struct{}

func (SellerPrice) Price(sell, _ domain.Price) domain.Price { return sell }

// BuyerPrice settles at the marginal buy quote.
type BuyerPrice struct{}

func (BuyerPrice) Price(_, buy domain.Price) domain.Price { return buy }

// PricingRuleByName resolves a configured rule name.
func PricingRuleByName(name string) (PricingRule, error) {
	switch name {
	case "midpoint", "":
		return Midpoint{}, nil
	case "midpoint-half-up":
		return HalfUpMidpoint{}, nil
	case "seller":
		return SellerPrice{}, nil
	case "buyer":
		return BuyerPrice{}, nil
	}
	return nil, fmt.Errorf("unknown pricing rule %q", name)
}

func priceDecimal(p domain.Price) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(p)), 0)
}
