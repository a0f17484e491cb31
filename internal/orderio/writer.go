package orderio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/efreitasn/callauction/internal/domain"
)

// FormatOrder renders an order in the input record format.
func FormatOrder(o domain.Order) string {
	return fmt.Sprintf("%s %d %d %d %d", o.Side, o.Price, o.Quantity, o.ID, o.SubmittedAt)
}

// WriteMarket writes the buy book and then the sell book, one order per
// line, preserving the order within each book.
func WriteMarket(w io.Writer, m *domain.Market) error {
	bw := bufio.NewWriter(w)
	for _, book := range [][]domain.Order{m.Buys, m.Sells} {
		for _, o := range book {
			if _, err := fmt.Fprintln(bw, FormatOrder(o)); err != nil {
				return fmt.Errorf("writing order %d: %w", o.ID, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing orders: %w", err)
	}
	return nil
}
