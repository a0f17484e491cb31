package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/efreitasn/callauction/internal/config"
	"github.com/efreitasn/callauction/internal/domain"
	"github.com/efreitasn/callauction/internal/engine"
	"github.com/efreitasn/callauction/internal/logging"
	"github.com/efreitasn/callauction/internal/orderio"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run clears one auction. Orders come from the file named in args, or from
// stdin; the residual book goes to stdout and diagnostics to stderr.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("callauction", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "USAGE:")
		fmt.Fprintln(stderr, "callauction [file]")
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 1
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, zapcore.AddSync(stderr))
	if err != nil {
		fmt.Fprintf(stderr, "failed to build logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	rule, err := engine.PricingRuleByName(cfg.PricingRule)
	if err != nil {
		logger.Error("invalid pricing rule", zap.Error(err))
		return 1
	}

	in := stdin
	if fs.NArg() == 1 {
		path := fs.Arg(0)
		f, err := os.Open(path)
		if err != nil {
			logger.Error("cannot open order file", zap.String("path", path), zap.Error(err))
			fs.Usage()
			return 1
		}
		defer f.Close()
		in = f
	}

	market, err := orderio.ReadMarket(in, engine.RealClock{}, func(line int, err error) {
		logger.Warn("skipping record", zap.Int("line", line), zap.Error(err))
	})
	if err != nil {
		logger.Error("failed to read orders", zap.Error(err))
		return 1
	}

	res, err := engine.NewAuctioneer(rule, logger).Run(market)
	if errors.Is(err, domain.ErrInvariantViolated) {
		// A broken clearing invariant is a defect; no output is trustworthy.
		logger.Fatal("clearing aborted", zap.Error(err))
	}
	if err != nil {
		logger.Error("market cannot be cleared", zap.Error(err))
		return 1
	}

	if err := orderio.WriteMarket(stdout, market); err != nil {
		logger.Error("failed to write residual book", zap.Error(err))
		return 1
	}

	if res.Equilibrium.Found {
		logger.Info("equilibrium found",
			zap.Uint64("price", uint64(res.Equilibrium.Price)),
			zap.Int64("quantity", int64(res.Equilibrium.Quantity)),
		)
	} else {
		logger.Info("no equilibrium found")
	}
	logger.Info("elapsed", zap.Duration("elapsed", res.Elapsed))

	return 0
}
