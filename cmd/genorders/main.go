package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ordgen/internal/gen"
	"ordgen/internal/manifest"
	"ordgen/internal/metrics"
	"ordgen/internal/model"
	"ordgen/internal/sink"
	"ordgen/internal/store"
)

// Config holds CLI flags for the generator.
type Config struct {
	Count  int
	Output string
	Format string // csv|jsonl
	Seed   int64
	// Optional Kafka sink
	KafkaBootstrap string
	Topic          string
	// Optional local archive
	ArchiveDir string
	// Manifest publishing
	ManifestSink   string // none|file|kafka|both
	ManifestDir    string
	TopicManifests string
	// Pacing and observability
	Rate     int
	HTTPAddr string
}

func main() {
	cfg := readFlags()
	if err := run(cfg); err != nil {
		log.Fatalf("generation failed: %v", err)
	}
}

func readFlags() Config {
	var cfg Config
	flag.IntVar(&cfg.Count, "count", 200, "number of orders to generate")
	flag.StringVar(&cfg.Output, "output", "orders.csv", "output file")
	flag.StringVar(&cfg.Format, "format", "csv", "output format: csv|jsonl")
	flag.Int64Var(&cfg.Seed, "seed", 0, "random seed (0 = time-based)")
	flag.StringVar(&cfg.KafkaBootstrap, "kafka-bootstrap", "", "kafka bootstrap servers, e.g. localhost:9092")
	flag.StringVar(&cfg.Topic, "topic", "orders.synthetic", "kafka topic for generated orders")
	flag.StringVar(&cfg.ArchiveDir, "archive-dir", "", "pebble archive directory (empty = no archive)")
	flag.StringVar(&cfg.ManifestSink, "manifest-sink", "none", "manifest sink: none|file|kafka|both")
	flag.StringVar(&cfg.ManifestDir, "manifest-dir", ".", "directory for manifest.latest.json")
	flag.StringVar(&cfg.TopicManifests, "topic-manifests", "orders.manifests", "kafka topic for manifests (compacted)")
	flag.IntVar(&cfg.Rate, "rate", 0, "orders per second (0 = unpaced)")
	flag.StringVar(&cfg.HTTPAddr, "http", "", "http listen for /metrics (empty = disabled)")
	flag.Parse()
	return cfg
}

// instrumentedSink paces appends and records per-order metrics.
type instrumentedSink struct {
	inner sink.Sink
	reg   *metrics.Registry
	tick  <-chan time.Time
}

func (s *instrumentedSink) Append(o model.Order) error {
	if s.tick != nil {
		<-s.tick
	}
	t0 := time.Now()
	if err := s.inner.Append(o); err != nil {
		return err
	}
	s.reg.Generated.Inc()
	s.reg.AppendLatencySec.Observe(time.Since(t0).Seconds())
	return nil
}

// countedSink bumps a counter after each successful append.
type countedSink struct {
	inner sink.Sink
	c     prometheus.Counter
}

func (s countedSink) Append(o model.Order) error {
	if err := s.inner.Append(o); err != nil {
		return err
	}
	s.c.Inc()
	return nil
}

func run(cfg Config) error {
	g := gen.NewSeeded(cfg.Seed)
	mreg := metrics.NewRegistry()
	if cfg.HTTPAddr != "" {
		go func() {
			http.Handle("/metrics", mreg.Handler())
			http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
			})
			_ = http.ListenAndServe(cfg.HTTPAddr, nil)
		}()
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	var sinks []sink.Sink
	var csvSink *sink.CSV
	switch cfg.Format {
	case "jsonl":
		sinks = append(sinks, sink.NewJSONL(f))
	case "csv":
		csvSink = sink.NewCSV(f)
		if err := csvSink.WriteHeader(); err != nil {
			return err
		}
		sinks = append(sinks, csvSink)
	default:
		return fmt.Errorf("unknown format %q", cfg.Format)
	}

	if cfg.KafkaBootstrap != "" {
		ks := sink.NewKafka(cfg.KafkaBootstrap, cfg.Topic)
		sinks = append(sinks, countedSink{inner: ks, c: mreg.Published})
	}
	if cfg.ArchiveDir != "" {
		arch, err := store.NewPebbleStore(cfg.ArchiveDir)
		if err != nil {
			return fmt.Errorf("init archive: %w", err)
		}
		defer arch.Close()
		sinks = append(sinks, countedSink{inner: arch, c: mreg.Archived})
	}

	out := &instrumentedSink{inner: sink.NewMultiSink(sinks...), reg: mreg}
	if cfg.Rate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(cfg.Rate))
		defer ticker.Stop()
		out.tick = ticker.C
	}

	start := time.Now()
	if _, err := g.Generate(cfg.Count, out); err != nil {
		return err
	}
	if csvSink != nil {
		if err := csvSink.Flush(); err != nil {
			return err
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	mreg.DatasetRows.Set(float64(cfg.Count))
	mreg.BuildSeconds.Set(time.Since(start).Seconds())

	if cfg.ManifestSink != "none" && cfg.ManifestSink != "" {
		m, err := manifest.New(cfg.Output, cfg.Count)
		if err != nil {
			return fmt.Errorf("build manifest: %w", err)
		}
		var pubs []manifest.Publisher
		if cfg.ManifestSink == "file" || cfg.ManifestSink == "both" {
			pubs = append(pubs, manifest.NewFilesystemManifest(cfg.ManifestDir))
		}
		if (cfg.ManifestSink == "kafka" || cfg.ManifestSink == "both") && cfg.KafkaBootstrap != "" {
			pubs = append(pubs, manifest.NewKafkaManifest(cfg.KafkaBootstrap, cfg.TopicManifests, "ordgen-manifest-latest"))
		}
		if err := manifest.MultiPublisher(pubs...).PublishLatest(m); err != nil {
			return fmt.Errorf("publish manifest: %w", err)
		}
		log.Printf("manifest published: dataset=%s sha256=%s", m.DatasetID, m.SHA256)
	}

	log.Printf("generated %d orders to %s", cfg.Count, cfg.Output)
	return nil
}
