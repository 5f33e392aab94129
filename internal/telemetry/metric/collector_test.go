package metric

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Collect(t *testing.T) {
	c := NewCollector(func() (int, int) { return 5, 2 }, nil)

	expected := `
# HELP nullmap_entries Current number of map entries.
# TYPE nullmap_entries gauge
nullmap_entries 5
# HELP nullmap_null_entries Current number of map entries holding a nil value.
# TYPE nullmap_null_entries gauge
nullmap_null_entries 2
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Errorf("CollectAndCompare() error = %v", err)
	}
}

func TestCollector_Labels(t *testing.T) {
	c := NewCollector(func() (int, int) { return 1, 0 }, prometheus.Labels{"map": "soak"})

	if got := testutil.CollectAndCount(c); got != 2 {
		t.Errorf("CollectAndCount() = %d, want 2", got)
	}
}

func TestCollector_ScrapeTime(t *testing.T) {
	calls := 0
	c := NewCollector(func() (int, int) {
		calls++
		return calls, 0
	}, nil)

	r := NewRegistry()
	if err := r.Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	scrape(t, r.Handler())
	body := scrape(t, r.Handler())

	if !strings.Contains(body, "nullmap_entries 2") {
		t.Errorf("expected nullmap_entries 2 after second scrape")
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	size := func() (int, int) { return 0, 0 }

	if err := r.Register(NewCollector(size, nil)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(NewCollector(size, nil)); err == nil {
		t.Error("Register() of duplicate collector error = nil, want error")
	}
}
