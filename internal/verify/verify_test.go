package verify

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ordgen/internal/gen"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func TestFile_GeneratedDatasetPasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	g := gen.New(rand.New(rand.NewSource(9)), fixedNow)
	const n = 100
	if err := g.WriteCSVFile(path, n); err != nil {
		t.Fatalf("WriteCSVFile: %v", err)
	}

	res := File(path, fixedNow())
	if res.Error != nil {
		t.Fatalf("verify error: %v", res.Error)
	}
	if res.Rows != n || res.Bad != 0 {
		t.Fatalf("rows=%d bad=%d", res.Rows, res.Bad)
	}
	total := 0
	for _, c := range res.ByStatus {
		total += c
	}
	if total != n {
		t.Fatalf("status tally %d != %d", total, n)
	}
}

func writeCSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	var data []byte
	for _, l := range lines {
		data = append(data, l...)
		data = append(data, '\n')
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestFile_BadRowsCounted(t *testing.T) {
	path := writeCSV(t,
		"OrderID,Customer,Amount,Status,OrderDate",
		"O0001,Alice,19.99,shipped,2026-03-01",
		"O0002,Mallory,19.99,shipped,2026-03-01", // unknown customer
		"O0003,Alice,9.99,shipped,2026-03-01",    // below minimum amount
		"O0005,Alice,19.99,shipped,2026-03-01",   // gap in sequence
	)
	res := File(path, fixedNow())
	if res.Error != nil {
		t.Fatalf("verify error: %v", res.Error)
	}
	if res.Rows != 4 || res.Bad != 3 {
		t.Fatalf("rows=%d bad=%d", res.Rows, res.Bad)
	}
}

func TestFile_BadHeader(t *testing.T) {
	path := writeCSV(t, "Id,Name,Total,State,Date", "O0001,Alice,19.99,shipped,2026-03-01")
	if res := File(path, fixedNow()); res.Error == nil {
		t.Fatalf("expected header error")
	}
}

func TestFile_Missing(t *testing.T) {
	if res := File(filepath.Join(t.TempDir(), "absent.csv"), fixedNow()); res.Error == nil {
		t.Fatalf("expected error")
	}
}

func TestCheckRecord(t *testing.T) {
	today := fixedNow()
	good := []string{"O0001", "Alice", "19.99", "shipped", "2026-03-01"}
	if err := CheckRecord(good, today); err != nil {
		t.Fatalf("good record rejected: %v", err)
	}

	cases := []struct {
		name string
		rec  []string
	}{
		{"short row", []string{"O0001", "Alice", "19.99", "shipped"}},
		{"bad id", []string{"X0001", "Alice", "19.99", "shipped", "2026-03-01"}},
		{"unknown customer", []string{"O0001", "Mallory", "19.99", "shipped", "2026-03-01"}},
		{"unknown status", []string{"O0001", "Alice", "19.99", "lost", "2026-03-01"}},
		{"one decimal", []string{"O0001", "Alice", "19.9", "shipped", "2026-03-01"}},
		{"below min", []string{"O0001", "Alice", "9.99", "shipped", "2026-03-01"}},
		{"above max", []string{"O0001", "Alice", "500.01", "shipped", "2026-03-01"}},
		{"bad date", []string{"O0001", "Alice", "19.99", "shipped", "2026-13-01"}},
		{"future date", []string{"O0001", "Alice", "19.99", "shipped", "2026-03-16"}},
		{"too old", []string{"O0001", "Alice", "19.99", "shipped", "2025-12-14"}},
	}
	for _, c := range cases {
		if err := CheckRecord(c.rec, today); err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
	}
}

func TestCheckRecord_Boundaries(t *testing.T) {
	today := fixedNow()
	edges := [][]string{
		{"O0001", "Eve", "10.00", "pending", "2026-03-15"},      // today, min amount
		{"O0002", "Diana", "500.00", "cancelled", "2025-12-15"}, // 90 days ago, max amount
	}
	for _, rec := range edges {
		if err := CheckRecord(rec, today); err != nil {
			t.Fatalf("boundary record rejected %v: %v", rec, err)
		}
	}
}
