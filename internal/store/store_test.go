package store

import (
	"testing"

	"ordgen/internal/model"
)

func order(id string, cents int64) model.Order {
	return model.Order{
		OrderID:     id,
		Customer:    "Bob",
		AmountCents: cents,
		Status:      "pending",
		OrderDate:   "2026-02-20",
	}
}

func TestMemoryStore_PutGetCount(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Put(order("O0001", 1500)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Append(order("O0002", 700)); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, ok := s.Get("O0001")
	if !ok || got.AmountCents != 1500 {
		t.Fatalf("bad O0001: %+v ok=%v", got, ok)
	}
	if _, ok := s.Get("O9999"); ok {
		t.Fatalf("missing key should not be found")
	}
	n, err := s.Count()
	if err != nil || n != 2 {
		t.Fatalf("count=%d err=%v", n, err)
	}
}

func TestMemoryStore_RangeOrdered(t *testing.T) {
	s := NewMemoryStore()
	for _, id := range []string{"O0003", "O0001", "O0002"} {
		if err := s.Put(order(id, 1000)); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	var ids []string
	if err := s.Range(func(o model.Order) error {
		ids = append(ids, o.OrderID)
		return nil
	}); err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(ids) != 3 || ids[0] != "O0001" || ids[1] != "O0002" || ids[2] != "O0003" {
		t.Fatalf("range not in id order: %v", ids)
	}
}
