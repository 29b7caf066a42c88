package sink

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/segmentio/kafka-go"

	"ordgen/internal/model"
)

// Sink receives generated orders one at a time.
type Sink interface {
	Append(o model.Order) error
}

// MultiSink fans out appends to multiple underlying sinks.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(ss ...Sink) *MultiSink {
	return &MultiSink{sinks: ss}
}

func (m *MultiSink) Append(o model.Order) error {
	for _, s := range m.sinks {
		if err := s.Append(o); err != nil {
			return err
		}
	}
	return nil
}

// CSV writes orders as delimited rows with a header line.
type CSV struct {
	w *csv.Writer
}

func NewCSV(w io.Writer) *CSV {
	return &CSV{w: csv.NewWriter(w)}
}

// WriteHeader emits the column-name row. Call once before the first Append.
func (c *CSV) WriteHeader() error {
	if err := c.w.Write(model.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

func (c *CSV) Append(o model.Order) error {
	if err := c.w.Write(o.Record()); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

// Flush drains buffered rows and surfaces any deferred write error.
func (c *CSV) Flush() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// JSONL writes orders as one JSON object per line.
type JSONL struct {
	enc *json.Encoder
}

func NewJSONL(w io.Writer) *JSONL {
	return &JSONL{enc: json.NewEncoder(w)}
}

func (j *JSONL) Append(o model.Order) error {
	if err := j.enc.Encode(&o); err != nil {
		return fmt.Errorf("encode order %s: %w", o.OrderID, err)
	}
	return nil
}

// Kafka publishes orders to a Kafka topic keyed by OrderID.
// Pure-Go client (segmentio/kafka-go).
type Kafka struct {
	writer kafkaMessageWriter
}

// kafkaMessageWriter abstracts kafka.Writer for testability.
type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewKafka creates a Kafka sink.
// bootstrap can be a comma-separated list of host:port.
func NewKafka(bootstrap string, topic string) *Kafka {
	addrs := strings.Split(bootstrap, ",")
	var brokers []string
	for _, a := range addrs {
		a = strings.TrimSpace(a)
		if a != "" {
			brokers = append(brokers, a)
		}
	}
	return &Kafka{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}}
}

func (k *Kafka) Append(o model.Order) error {
	b, err := json.Marshal(&o)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return k.writer.WriteMessages(
		context.Background(),
		kafka.Message{Key: []byte(o.OrderID), Value: b},
	)
}

// NewKafkaWith is only for tests to inject a fake writer.
func NewKafkaWith(w kafkaMessageWriter) *Kafka {
	return &Kafka{writer: w}
}
