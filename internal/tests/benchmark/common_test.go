package benchmark

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/nullmap-go/pkg/cmap"
	"github.com/yndnr/nullmap-go/pkg/nullmap"
)

// EntryCounts defines the map sizes for benchmarking.
var EntryCounts = []int{5000, 10000, 50000, 100000, 500000}

// SmallEntryCounts for quick benchmarks.
var SmallEntryCounts = []int{1000, 10000, 100000}

// nullEvery stores nil for every nth key during prefill.
const nullEvery = 5

// newKey generates a new key.
func newKey() string {
	return "k-" + strings.ToLower(ulid.Make().String())
}

// newKeys generates count keys.
func newKeys(count int) []string {
	keys := make([]string, count)
	for i := range keys {
		keys[i] = newKey()
	}
	return keys
}

func valueFor(i int) *string {
	if i%nullEvery == 0 {
		return nil
	}
	v := fmt.Sprintf("value-%d", i)
	return &v
}

// prefillMap prefills a map with keys, storing nil for every nullEvery-th key.
func prefillMap(b *testing.B, m *nullmap.Map[string, *string], keys []string) {
	b.Helper()
	for i, k := range keys {
		if _, _, err := m.Put(k, valueFor(i)); err != nil {
			b.Fatalf("Put failed: %v", err)
		}
	}
}

// prefillBackend prefills a raw sharded map with the same layout as prefillMap.
func prefillBackend(b *testing.B, m *cmap.Map[string, *string], keys []string) {
	b.Helper()
	for i, k := range keys {
		if err := m.Set(k, valueFor(i)); err != nil {
			b.Fatalf("Set failed: %v", err)
		}
	}
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithEntryCounts runs a benchmark function with various entry counts.
func runWithEntryCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("entries_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
