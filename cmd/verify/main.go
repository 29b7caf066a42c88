package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"sort"
	"time"

	"ordgen/internal/metrics"
	"ordgen/internal/verify"
)

func main() {
	var (
		source    string
		input     string
		bootstrap string
		topic     string
		groupID   string
		timeout   int
		httpAddr  string
	)
	flag.StringVar(&source, "source", "file", "dataset source: file|kafka")
	flag.StringVar(&input, "input", "orders.csv", "csv dataset path for file mode")
	flag.StringVar(&bootstrap, "kafka-bootstrap", "localhost:9092", "kafka bootstrap servers")
	flag.StringVar(&topic, "topic", "orders.synthetic", "kafka topic for kafka mode")
	flag.StringVar(&groupID, "group-id", "ordgen-verify", "consumer group id")
	flag.IntVar(&timeout, "timeout", 10, "kafka read timeout seconds")
	flag.StringVar(&httpAddr, "http", "", "http listen for /metrics (empty = disabled)")
	flag.Parse()

	mreg := metrics.NewRegistry()
	if httpAddr != "" {
		go func() {
			http.Handle("/metrics", mreg.Handler())
			_ = http.ListenAndServe(httpAddr, nil)
		}()
	}

	today := time.Now()
	var res verify.Result
	if source == "kafka" {
		res = verify.Kafka(bootstrap, topic, groupID, time.Duration(timeout)*time.Second, today)
	} else {
		res = verify.File(input, today)
	}
	mreg.Checked.Add(float64(res.Rows))
	mreg.Bad.Add(float64(res.Bad))

	if res.Error != nil {
		log.Fatalf("verify failed: %v", res.Error)
	}
	statuses := make([]string, 0, len(res.ByStatus))
	for s := range res.ByStatus {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		log.Printf("status %s: %d", s, res.ByStatus[s])
	}
	log.Printf("verified %d rows, %d bad", res.Rows, res.Bad)
	if res.Bad > 0 {
		os.Exit(1)
	}
}
