package verify

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	ck "github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"ordgen/internal/model"
)

// Result summarizes one verification pass.
type Result struct {
	Rows     int
	Bad      int
	ByStatus map[string]int
	Error    error
}

var (
	orderIDRe = regexp.MustCompile(`^O\d{4,}$`)
	amountRe  = regexp.MustCompile(`^\d+\.\d{2}$`)
)

// CheckRecord validates one data row against the dataset contract: ID format,
// vocabulary membership, amount bounds and precision, and a valid order date
// no older than the generation horizon relative to today.
func CheckRecord(rec []string, today time.Time) error {
	if len(rec) != len(model.Header) {
		return fmt.Errorf("want %d fields, got %d", len(model.Header), len(rec))
	}
	id, customer, amount, status, date := rec[0], rec[1], rec[2], rec[3], rec[4]

	if !orderIDRe.MatchString(id) {
		return fmt.Errorf("bad order id %q", id)
	}
	if !model.ValidCustomer(customer) {
		return fmt.Errorf("unknown customer %q", customer)
	}
	if !model.ValidStatus(status) {
		return fmt.Errorf("unknown status %q", status)
	}

	if !amountRe.MatchString(amount) {
		return fmt.Errorf("bad amount format %q", amount)
	}
	parts := strings.SplitN(amount, ".", 2)
	whole, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad amount %q: %w", amount, err)
	}
	frac, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return fmt.Errorf("bad amount %q: %w", amount, err)
	}
	cents := whole*100 + frac
	if cents < 1000 || cents > 50000 {
		return fmt.Errorf("amount %s out of range [10.00, 500.00]", amount)
	}

	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("bad date %q: %w", date, err)
	}
	if d.Format("2006-01-02") != date {
		return fmt.Errorf("non-canonical date %q", date)
	}
	day := DateOnly(today)
	if d.After(day) {
		return fmt.Errorf("date %s in the future", date)
	}
	if d.Before(day.AddDate(0, 0, -90)) {
		return fmt.Errorf("date %s older than 90 days", date)
	}
	return nil
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// File verifies a CSV dataset: exact header, gap-free sequential OrderIDs,
// and a valid record per data row. Rows counts data rows read; Bad counts
// rows failing any check.
func File(path string, today time.Time) Result {
	f, err := os.Open(path)
	if err != nil {
		return Result{Error: fmt.Errorf("open dataset: %w", err)}
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return Result{Error: fmt.Errorf("read header: %w", err)}
	}
	if strings.Join(header, ",") != strings.Join(model.Header, ",") {
		return Result{Error: fmt.Errorf("bad header %q", strings.Join(header, ","))}
	}

	res := Result{ByStatus: make(map[string]int)}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Error = fmt.Errorf("read row %d: %w", res.Rows+1, err)
			return res
		}
		res.Rows++
		if err := CheckRecord(rec, today); err != nil {
			res.Bad++
			continue
		}
		if rec[0] != fmt.Sprintf("O%04d", res.Rows) {
			// IDs must be gap-free and in generation order.
			res.Bad++
			continue
		}
		res.ByStatus[rec[3]]++
	}
	return res
}

// Kafka verifies orders published to a topic, consuming with read_committed
// until no message arrives within timeout. Ordering across partitions is not
// assumed, so only per-record checks run.
func Kafka(bootstrap string, topic string, groupID string, timeout time.Duration, today time.Time) Result {
	c, err := ck.NewConsumer(&ck.ConfigMap{
		"bootstrap.servers":  bootstrap,
		"group.id":           groupID,
		"enable.auto.commit": false,
		"isolation.level":    "read_committed",
		"auto.offset.reset":  "earliest",
	})
	if err != nil {
		return Result{Error: fmt.Errorf("consumer: %w", err)}
	}
	defer c.Close()

	if err := c.SubscribeTopics([]string{topic}, nil); err != nil {
		return Result{Error: fmt.Errorf("subscribe: %w", err)}
	}

	res := Result{ByStatus: make(map[string]int)}
	for {
		msg, err := c.ReadMessage(timeout)
		if err != nil {
			// Timeout ends the pass; anything else is a transport failure.
			var kerr ck.Error
			if errors.As(err, &kerr) && kerr.Code() == ck.ErrTimedOut {
				break
			}
			res.Error = fmt.Errorf("read: %w", err)
			return res
		}
		res.Rows++
		var o model.Order
		if err := json.Unmarshal(msg.Value, &o); err != nil {
			res.Bad++
			continue
		}
		if err := CheckRecord(o.Record(), today); err != nil {
			res.Bad++
			continue
		}
		res.ByStatus[o.Status]++
	}
	return res
}
