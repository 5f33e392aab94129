package workload

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/nullmap-go/internal/core/domain"
	"github.com/yndnr/nullmap-go/internal/telemetry/logger"
	"github.com/yndnr/nullmap-go/pkg/nullmap"
)

// StressConfig configures Stress.
type StressConfig struct {
	Goroutines int
	Rounds     int
	// OnRound, if set, is called after each completed round.
	OnRound func(done int)
}

// Report summarizes a Stress run.
type Report struct {
	Rounds       int           `json:"rounds" yaml:"rounds"`
	Goroutines   int           `json:"goroutines" yaml:"goroutines"`
	Operations   int           `json:"operations" yaml:"operations"`
	Violations   int           `json:"violations" yaml:"violations"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
	OpsPerSecond float64       `json:"ops_per_second" yaml:"ops_per_second"`
}

// attempt is the outcome of one PutIfAbsent.
type attempt struct {
	id       string
	existing string
	loaded   bool
	err      error
}

// Stress runs cfg.Rounds rounds on m. Each round picks a fresh key and
// releases cfg.Goroutines goroutines at once, each calling
// PutIfAbsent(key, id) with its own id. Exactly one goroutine must win,
// the stored value must be the winner's id and every loser must report
// that id as the existing value.
//
// Stress stops early when ctx is done and returns the partial report with
// ctx.Err().
func Stress(ctx context.Context, cfg StressConfig, m *nullmap.Map[string, string]) (Report, error) {
	report := Report{Goroutines: cfg.Goroutines}
	start := time.Now()
	defer func() {
		report.Duration = time.Since(start)
		if secs := report.Duration.Seconds(); secs > 0 {
			report.OpsPerSecond = float64(report.Operations) / secs
		}
	}()

	log := logger.L(ctx)
	for round := 0; round < cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		key := ulid.Make().String()
		attempts, err := race(m, key, cfg.Goroutines)
		report.Rounds++
		report.Operations += len(attempts)
		if err != nil {
			return report, err
		}

		if problem := verifyRound(m, key, attempts); problem != "" {
			report.Violations++
			log.Error("stress round violated map invariant",
				"round", round, "key", key, "problem", problem)
		}
		if cfg.OnRound != nil {
			cfg.OnRound(report.Rounds)
		}
	}

	if report.Violations > 0 {
		return report, domain.ErrInvariantViolated.WithDetails(
			fmt.Sprintf("%d of %d stress rounds failed", report.Violations, report.Rounds))
	}
	log.Debug("stress completed", "rounds", report.Rounds, "operations", report.Operations)
	return report, nil
}

func race(m *nullmap.Map[string, string], key string, goroutines int) ([]attempt, error) {
	attempts := make([]attempt, goroutines)
	gate := make(chan struct{})

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := strconv.Itoa(i)
			<-gate
			existing, loaded, err := m.PutIfAbsent(key, id)
			attempts[i] = attempt{id: id, existing: existing, loaded: loaded, err: err}
		}()
	}
	close(gate)
	wg.Wait()

	for _, a := range attempts {
		if a.err != nil {
			return attempts, fmt.Errorf("put if absent %q: %w", key, a.err)
		}
	}
	return attempts, nil
}

// verifyRound returns a description of the first violation, or "".
func verifyRound(m *nullmap.Map[string, string], key string, attempts []attempt) string {
	written := make(map[string]bool, len(attempts))
	winner := ""
	winners := 0
	for _, a := range attempts {
		written[a.id] = true
		if !a.loaded {
			winners++
			winner = a.id
		}
	}
	if winners != 1 {
		return fmt.Sprintf("%d goroutines won, want 1", winners)
	}

	for _, a := range attempts {
		if !a.loaded {
			continue
		}
		if !written[a.existing] {
			return fmt.Sprintf("goroutine %s saw unwritten value %q", a.id, a.existing)
		}
		if a.existing != winner {
			return fmt.Sprintf("goroutine %s saw %q, winner was %q", a.id, a.existing, winner)
		}
	}

	final, ok, err := m.Get(key)
	switch {
	case err != nil:
		return "get: " + err.Error()
	case !ok:
		return "key missing after round"
	case final != winner:
		return fmt.Sprintf("stored %q, winner was %q", final, winner)
	}
	return ""
}
