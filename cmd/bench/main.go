// Command bench runs a synthetic zipf workload against a sharded cache and
// exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/slabcache/metrics/prom"
	"github.com/IvanBrykalov/slabcache/policy"
	"github.com/IvanBrykalov/slabcache/policy/fifo"
	"github.com/IvanBrykalov/slabcache/sharded"
)

func main() {
	app := &cli.App{
		Name:  "bench",
		Usage: "synthetic read/write workload against a sharded slab cache",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "cap", Value: 100_000, Usage: "total cache capacity (entries)"},
			&cli.IntFlag{Name: "shards", Value: 0, Usage: "number of shards (0 = auto)"},
			&cli.StringFlag{Name: "policy", Value: "lru", Usage: "eviction policy: lru | fifo"},
			&cli.IntFlag{Name: "workers", Value: 2 * runtime.GOMAXPROCS(0), Usage: "worker goroutines"},
			&cli.DurationFlag{Name: "duration", Value: 10 * time.Second, Usage: "benchmark duration"},
			&cli.IntFlag{Name: "reads", Value: 80, Usage: "read percentage [0..100]"},
			&cli.IntFlag{Name: "keys", Value: 1_000_000, Usage: "keyspace size"},
			&cli.Float64Flag{Name: "zipf-s", Value: 1.1, Usage: "Zipf s > 1 (skew)"},
			&cli.Float64Flag{Name: "zipf-v", Value: 1.0, Usage: "Zipf v"},
			&cli.Int64Flag{Name: "seed", Value: time.Now().UnixNano(), Usage: "random seed"},
			&cli.IntFlag{Name: "preload", Value: 0, Usage: "preload entries (0 = cap/2)"},
			&cli.StringFlag{Name: "pprof", Value: "", Usage: "serve pprof at addr (e.g. :6060); empty = disabled"},
			&cli.StringFlag{Name: "http", Value: ":8080", Usage: "serve Prometheus metrics at addr"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if addr := c.String("pprof"); addr != "" {
		go func() {
			log.Info("serving pprof", zap.String("addr", addr))
			log.Error("pprof server exited", zap.Error(http.ListenAndServe(addr, nil)))
		}()
	}

	metrics := prom.New(nil, "slabcache", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	if addr := c.String("http"); addr != "" {
		go func() {
			log.Info("serving metrics", zap.String("addr", addr))
			log.Error("metrics server exited", zap.Error(http.ListenAndServe(addr, nil)))
		}()
	}

	var pol policy.Policy // nil => LRU
	switch c.String("policy") {
	case "lru":
	case "fifo":
		pol = fifo.New()
	default:
		return fmt.Errorf("unknown policy %q (use lru or fifo)", c.String("policy"))
	}

	cch, err := sharded.New[string, string](sharded.Options[string, string]{
		Capacity: c.Int("cap"),
		Shards:   c.Int("shards"),
		Policy:   pol,
		Metrics:  metrics,
	})
	if err != nil {
		return err
	}

	// Preload half the capacity for a realistic hit-rate.
	preload := c.Int("preload")
	if preload == 0 {
		preload = c.Int("cap") / 2
	}
	for i := 0; i < preload; i++ {
		cch.Put("k:"+strconv.Itoa(i), "v"+strconv.Itoa(i))
	}

	workers := c.Int("workers")
	if workers <= 0 {
		workers = 1
	}
	readPct := c.Int("reads")
	keysMax := uint64(c.Int("keys") - 1)
	seed := c.Int64("seed")
	zipfS, zipfV := c.Float64("zipf-s"), c.Float64("zipf-v")

	log.Info("starting workload",
		zap.Int("capacity", c.Int("cap")),
		zap.Int("workers", workers),
		zap.Int("reads_pct", readPct),
		zap.Duration("duration", c.Duration("duration")),
		zap.Int64("seed", seed),
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.Duration("duration"))
	defer cancel()

	start := time.Now()
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		id := w
		g.Go(func() error {
			// Each worker gets its own RNG + Zipf (rand.Rand is not goroutine-safe).
			r := rand.New(rand.NewSource(seed + int64(id)*9973))
			zipf := rand.NewZipf(r, zipfS, zipfV, keysMax)
			for ctx.Err() == nil {
				k := "k:" + strconv.FormatUint(zipf.Uint64(), 10)
				if int(r.Int31n(100)) < readPct {
					cch.Get(k)
				} else {
					cch.Put(k, "v"+strconv.Itoa(r.Int()))
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	elapsed := time.Since(start)

	st := cch.Stats()
	ops := st.Hits + st.Misses // reads; writes are total puts
	hitRate := 0.0
	if ops > 0 {
		hitRate = float64(st.Hits) / float64(ops) * 100
	}
	log.Info("workload finished",
		zap.Duration("elapsed", elapsed),
		zap.Int64("hits", st.Hits),
		zap.Int64("misses", st.Misses),
		zap.Uint64("evictions", st.Evictions),
		zap.Float64("hit_rate_pct", hitRate),
		zap.Int("len", cch.Len()),
		zap.Int("capacity", cch.Capacity()),
	)
	return nil
}
