package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"

	"ordgen/internal/model"
)

// PebbleStore archives orders in a local PebbleDB directory. Keys are
// OrderIDs, so pebble's sorted iteration yields generation order.
type PebbleStore struct {
	db *pebble.DB
}

func NewPebbleStore(dir string) (*PebbleStore, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleStore{db: d}, nil
}

func (p *PebbleStore) Close() error { return p.db.Close() }

func encodeOrder(o model.Order) ([]byte, error) { return json.Marshal(&o) }
func decodeOrder(val []byte) (model.Order, error) {
	var o model.Order
	if err := json.Unmarshal(val, &o); err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (p *PebbleStore) Put(o model.Order) error {
	b, err := encodeOrder(o)
	if err != nil {
		return fmt.Errorf("encode %s: %w", o.OrderID, err)
	}
	// NoSync: a lost archive entry only means rerunning the generator.
	if err := p.db.Set([]byte(o.OrderID), b, pebble.NoSync); err != nil {
		return fmt.Errorf("set %s: %w", o.OrderID, err)
	}
	return nil
}

// Append satisfies the sink interface so the archive can be wired as an
// output alongside file and Kafka sinks.
func (p *PebbleStore) Append(o model.Order) error { return p.Put(o) }

func (p *PebbleStore) Get(orderID string) (model.Order, bool) {
	v, closer, err := p.db.Get([]byte(orderID))
	if err != nil {
		return model.Order{}, false
	}
	defer closer.Close()
	o, err := decodeOrder(v)
	if err != nil {
		return model.Order{}, false
	}
	return o, true
}

func (p *PebbleStore) Range(fn func(o model.Order) error) error {
	it, err := p.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("iter: %w", err)
	}
	defer it.Close()
	for it.First(); it.Valid(); it.Next() {
		v := append([]byte(nil), it.Value()...)
		o, err := decodeOrder(v)
		if err != nil {
			return err
		}
		if err := fn(o); err != nil {
			return err
		}
	}
	return nil
}

func (p *PebbleStore) Count() (int, error) {
	it, err := p.db.NewIter(nil)
	if err != nil {
		return 0, fmt.Errorf("iter: %w", err)
	}
	defer it.Close()
	n := 0
	for it.First(); it.Valid(); it.Next() {
		n++
	}
	return n, nil
}
