package engine

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/efreitasn/callauction/internal/domain"
)

// Clock supplies wall-clock time. Tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Result describes one auction run.
type Result struct {
	RunID       uuid.UUID
	Equilibrium Equilibrium
	Fills       []Fill
	Elapsed     time.Duration
}

// Auctioneer clears call auctions with a fixed pricing rule.
type Auctioneer struct {
	rule   PricingRule
	logger *zap.Logger
	clock  Clock
}

// NewAuctioneer creates an Auctioneer. A nil rule selects Midpoint and a nil
// logger discards output.
func NewAuctioneer(rule PricingRule, logger *zap.Logger) *Auctioneer {
	if rule == nil {
		rule = Midpoint{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auctioneer{
		rule:   rule,
		logger: logger,
		clock:  RealClock{},
	}
}

// WithClock replaces the clock used to time runs.
func (a *Auctioneer) WithClock(c Clock) *Auctioneer {
	a.clock = c
	return a
}

// Run clears the market in place: both books are ranked, the largest
// feasible quantity is searched for and, if one exists, settled. On return
// m holds the residual books.
//
// On error the market is left ranked but unsettled. An *domain.InvariantError
// means the run must be treated as aborted; domain.ErrQuantityOverflow means
// the market was refused without being searched.
func (a *Auctioneer) Run(m *domain.Market) (Result, error) {
	res := Result{RunID: uuid.New()}
	log := a.logger.With(zap.String("run_id", res.RunID.String()))
	start := a.clock.Now()

	log.Debug("auction started",
		zap.Int("buy_orders", len(m.Buys)),
		zap.Int("sell_orders", len(m.Sells)),
	)

	RankMarket(m)

	eq, err := Search(m, a.rule)
	if err != nil {
		log.Error("equilibrium search failed", zap.Error(err))
		return res, err
	}

	fills, err := Settle(m, eq)
	if err != nil {
		log.Error("settlement failed", zap.Error(err))
		return res, err
	}

	res.Equilibrium = eq
	res.Fills = fills
	res.Elapsed = a.clock.Now().Sub(start)

	if eq.Found {
		log.Debug("auction settled",
			zap.Uint64("price", uint64(eq.Price)),
			zap.Int64("quantity", int64(eq.Quantity)),
			zap.Int("fills", len(fills)),
			zap.Int("residual_orders", m.Len()),
		)
	} else {
		log.Debug("auction closed without trade")
	}
	return res, nil
}
