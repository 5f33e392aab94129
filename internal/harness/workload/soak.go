package workload

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/nullmap-go/internal/telemetry/logger"
	"github.com/yndnr/nullmap-go/pkg/nullmap"
)

// Payload is the value type written by Soak. A nil *Payload is a valid
// map value.
type Payload struct {
	Worker int
	Seq    uint64
}

// SoakConfig configures Soak.
type SoakConfig struct {
	Workers int
	// Rate limits operations per second across all workers; 0 is unlimited.
	Rate float64
	// Duration bounds the run; 0 runs until ctx is done.
	Duration time.Duration
	// Keys is the number of distinct keys.
	Keys int
	// NullRatio is the share of writes that store nil.
	NullRatio float64
	// Seed makes the operation mix reproducible. 0 picks a random seed.
	Seed uint64
}

// soakOps is the operation mix, one entry per unit of weight.
var soakOps = []string{
	nullmap.OpGet, nullmap.OpGet, nullmap.OpGet,
	nullmap.OpContainsKey,
	nullmap.OpPut, nullmap.OpPut,
	nullmap.OpPutIfAbsent,
	nullmap.OpReplace,
	nullmap.OpCompareAndReplace,
	nullmap.OpRemove,
	nullmap.OpRemoveIf,
}

// SoakReport summarizes a Soak run.
type SoakReport struct {
	Operations uint64            `json:"operations" yaml:"operations"`
	ByOp       map[string]uint64 `json:"by_op" yaml:"by_op"`
	NullWrites uint64            `json:"null_writes" yaml:"null_writes"`
	Entries    int               `json:"entries" yaml:"entries"`
	NullValues int               `json:"null_values" yaml:"null_values"`
	Duration   time.Duration     `json:"duration" yaml:"duration"`
}

type soakCounters struct {
	byOp       map[string]*atomic.Uint64
	nullWrites atomic.Uint64
}

// Soak issues a random mix of operations on m from cfg.Workers goroutines
// until cfg.Duration elapses or ctx is done. Reaching the end of the run
// is not an error; a map error stops the run and is returned.
func Soak(ctx context.Context, cfg SoakConfig, m *nullmap.Map[string, *Payload]) (SoakReport, error) {
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	limit := rate.Inf
	burst := 1
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
		burst = max(1, int(cfg.Rate/10))
	}
	limiter := rate.NewLimiter(limit, burst)

	counters := soakCounters{byOp: make(map[string]*atomic.Uint64, len(soakOps))}
	for _, op := range soakOps {
		counters.byOp[op] = new(atomic.Uint64)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	log := logger.L(ctx)
	log.Info("soak started", "workers", cfg.Workers, "rate", cfg.Rate,
		"keys", cfg.Keys, "null_ratio", cfg.NullRatio, "duration", cfg.Duration)

	start := time.Now()
	errCh := make(chan error, cfg.Workers)
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, uint64(w)))
			if err := soakWorker(runCtx, w, rng, limiter, cfg, m, &counters); err != nil {
				errCh <- err
				stop()
			}
		}()
	}
	wg.Wait()
	close(errCh)

	report := SoakReport{
		ByOp:     make(map[string]uint64, len(counters.byOp)),
		Duration: time.Since(start),
	}
	for op, c := range counters.byOp {
		n := c.Load()
		report.ByOp[op] = n
		report.Operations += n
	}
	report.NullWrites = counters.nullWrites.Load()
	report.Entries, report.NullValues = Occupancy(m)

	if err := <-errCh; err != nil {
		return report, err
	}
	log.Info("soak finished", "operations", report.Operations, "entries", report.Entries)
	return report, nil
}

func soakWorker(ctx context.Context, worker int, rng *rand.Rand, limiter *rate.Limiter,
	cfg SoakConfig, m *nullmap.Map[string, *Payload], counters *soakCounters) error {
	var seq uint64
	for {
		// Wait fails only once ctx is done or its deadline is too close
		// for another token.
		if err := limiter.Wait(ctx); err != nil {
			return nil
		}

		key := "k" + strconv.Itoa(rng.IntN(max(cfg.Keys, 1)))
		op := soakOps[rng.IntN(len(soakOps))]

		seq++
		value := &Payload{Worker: worker, Seq: seq}
		if rng.Float64() < cfg.NullRatio {
			value = nil
		}

		err := applyOp(m, op, key, value)
		if err != nil {
			return fmt.Errorf("soak %s %q: %w", op, key, err)
		}
		counters.byOp[op].Add(1)
		if value == nil && isWrite(op) {
			counters.nullWrites.Add(1)
		}
	}
}

func isWrite(op string) bool {
	switch op {
	case nullmap.OpPut, nullmap.OpPutIfAbsent, nullmap.OpReplace, nullmap.OpCompareAndReplace:
		return true
	}
	return false
}

var errUnknownOp = errors.New("unknown operation")

func applyOp(m *nullmap.Map[string, *Payload], op, key string, value *Payload) error {
	var err error
	switch op {
	case nullmap.OpGet:
		_, _, err = m.Get(key)
	case nullmap.OpContainsKey:
		_, err = m.ContainsKey(key)
	case nullmap.OpPut:
		_, _, err = m.Put(key, value)
	case nullmap.OpPutIfAbsent:
		_, _, err = m.PutIfAbsent(key, value)
	case nullmap.OpReplace:
		_, _, err = m.Replace(key, value)
	case nullmap.OpCompareAndReplace:
		var current *Payload
		var ok bool
		current, ok, err = m.Get(key)
		if err == nil && ok {
			_, err = m.CompareAndReplace(key, current, value)
		}
	case nullmap.OpRemove:
		_, _, err = m.Remove(key)
	case nullmap.OpRemoveIf:
		var current *Payload
		var ok bool
		current, ok, err = m.Get(key)
		if err == nil && ok {
			_, err = m.RemoveIf(key, current)
		}
	default:
		err = errUnknownOp
	}
	return err
}

// Occupancy returns the number of entries in m and how many of them hold
// nil. The count is weakly consistent under concurrent writes.
func Occupancy[K comparable, T any](m *nullmap.Map[K, *T]) (entries, nulls int) {
	for _, v := range m.All() {
		entries++
		if v == nil {
			nulls++
		}
	}
	return entries, nulls
}
