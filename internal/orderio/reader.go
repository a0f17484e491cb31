// Package orderio reads and writes order books in the line format used on
// the command line: "side price quantity id timestamp", whitespace
// separated, one order per line.
package orderio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/efreitasn/callauction/internal/domain"
)

// Clock supplies the time used for orders submitted with timestamp 0.
type Clock interface {
	Now() time.Time
}

// SkipFunc is called for every record that fails validation. line is
// 1-based.
type SkipFunc func(line int, err error)

// ParseOrder parses one record. A timestamp of 0 is returned as-is;
// defaulting is the reader's job.
func ParseOrder(record string) (domain.Order, error) {
	fields := strings.Fields(record)
	if len(fields) != 5 {
		return domain.Order{}, fmt.Errorf("%w: want 5 fields, got %d", domain.ErrInvalidRecord, len(fields))
	}

	side, err := domain.ParseSide(fields[0])
	if err != nil {
		return domain.Order{}, err
	}
	price, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: price %q", domain.ErrInvalidRecord, fields[1])
	}
	qty, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: quantity %q", domain.ErrInvalidRecord, fields[2])
	}
	if qty <= 0 {
		return domain.Order{}, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidRecord, qty)
	}
	id, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: id %q", domain.ErrInvalidRecord, fields[3])
	}
	ts, err := strconv.ParseUint(fields[4], 10, 64)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: timestamp %q", domain.ErrInvalidRecord, fields[4])
	}

	return domain.Order{
		Side:        side,
		ID:          id,
		SubmittedAt: ts,
		Price:       domain.Price(price),
		Quantity:    domain.Quantity(qty),
	}, nil
}

// MaxRecordLen bounds a single input line. Longer lines are skipped as
// invalid records without affecting the rest of the input.
const MaxRecordLen = 4096

// ReadMarket reads every record from r into a new Market, in input order.
// Invalid records, oversized lines and orders that would push their book's
// total quantity past the largest Quantity are passed to onSkip (which may
// be nil) and dropped; only a read failure of r itself is returned as an
// error.
func ReadMarket(r io.Reader, clock Clock, onSkip SkipFunc) (*domain.Market, error) {
	m := &domain.Market{}
	br := bufio.NewReader(r)
	totals := map[domain.Side]domain.Quantity{}
	line := 0

	skip := func(err error) {
		if onSkip != nil {
			onSkip(line, err)
		}
	}

	for {
		raw, tooLong, err := readRecord(br, MaxRecordLen)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading orders: %w", err)
		}
		line++

		if tooLong {
			skip(fmt.Errorf("%w: line longer than %d bytes", domain.ErrInvalidRecord, MaxRecordLen))
			continue
		}
		text := strings.TrimSpace(string(raw))
		if text == "" {
			continue
		}

		o, err := ParseOrder(text)
		if err != nil {
			skip(err)
			continue
		}
		total, ok := domain.AddQuantity(totals[o.Side], o.Quantity)
		if !ok {
			skip(fmt.Errorf("%w: quantity %d overflows the %s book total", domain.ErrInvalidRecord, o.Quantity, o.Side))
			continue
		}
		totals[o.Side] = total

		if o.SubmittedAt == 0 {
			o.SubmittedAt = uint64(clock.Now().UnixNano())
		}
		// ParseOrder only yields valid sides.
		_ = m.Add(o)
	}
	return m, nil
}

// readRecord reads one line without its terminator. A line longer than
// limit is consumed entirely and reported as tooLong. io.EOF is returned
// only when no further line exists.
func readRecord(br *bufio.Reader, limit int) (raw []byte, tooLong bool, err error) {
	started := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if err == io.EOF && started {
				return raw, tooLong, nil
			}
			return nil, false, err
		}
		started = true
		if !tooLong {
			if len(raw)+len(chunk) > limit {
				tooLong = true
				raw = nil
			} else {
				raw = append(raw, chunk...)
			}
		}
		if !isPrefix {
			return raw, tooLong, nil
		}
	}
}
