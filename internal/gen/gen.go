package gen

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"ordgen/internal/model"
	"ordgen/internal/sink"
)

const (
	// Amount bounds in whole currency units.
	minAmount = 10
	maxAmount = 500

	// MaxDaysAgo bounds how far in the past an order date may fall.
	MaxDaysAgo = 90
)

// Generator synthesizes order records. The random source and clock are
// injected so tests can pin both.
type Generator struct {
	rng       *rand.Rand
	now       func() time.Time
	customers []string
	statuses  []string
}

// New creates a Generator with an explicit random source and clock.
func New(rng *rand.Rand, now func() time.Time) *Generator {
	return &Generator{
		rng:       rng,
		now:       now,
		customers: model.Customers(),
		statuses:  model.Statuses(),
	}
}

// NewSeeded creates a Generator seeded from the given value, or from the
// wall clock when seed is zero.
func NewSeeded(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return New(rand.New(rand.NewSource(seed)), time.Now)
}

// RandomDate returns a YYYY-MM-DD date between maxDaysAgo days ago and today,
// uniformly distributed over whole days.
func (g *Generator) RandomDate(maxDaysAgo int) string {
	daysAgo := g.rng.Intn(maxDaysAgo + 1)
	return g.now().AddDate(0, 0, -daysAgo).Format("2006-01-02")
}

// Order synthesizes the record for the given 1-based sequence number.
func (g *Generator) Order(seq int) model.Order {
	amount := minAmount + g.rng.Float64()*(maxAmount-minAmount)
	return model.Order{
		OrderID:     fmt.Sprintf("O%04d", seq),
		Customer:    g.customers[g.rng.Intn(len(g.customers))],
		AmountCents: int64(math.Round(amount * 100)),
		Status:      g.statuses[g.rng.Intn(len(g.statuses))],
		OrderDate:   g.RandomDate(MaxDaysAgo),
	}
}

// Generate appends n orders to the sink with sequence numbers 1..n.
// It stops at the first sink error and returns the number of orders
// appended before the failure.
func (g *Generator) Generate(n int, s sink.Sink) (int, error) {
	for i := 1; i <= n; i++ {
		if err := s.Append(g.Order(i)); err != nil {
			return i - 1, fmt.Errorf("append order %d: %w", i, err)
		}
	}
	return n, nil
}

// WriteCSVFile generates n orders and writes them, with a header row, as a
// CSV dataset at path, truncating any existing file. The file is flushed and
// closed on all paths; on error the output is indeterminate.
func (g *Generator) WriteCSVFile(path string, n int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	c := sink.NewCSV(f)
	if err := c.WriteHeader(); err != nil {
		return err
	}
	if _, err := g.Generate(n, c); err != nil {
		return err
	}
	if err := c.Flush(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}
