package workload

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yndnr/nullmap-go/internal/core/domain"
	"github.com/yndnr/nullmap-go/internal/telemetry/logger"
	"github.com/yndnr/nullmap-go/pkg/nullmap"
)

// Step is one operation of a walkthrough with its observed result.
type Step struct {
	Op     string `json:"op" yaml:"op"`
	Key    string `json:"key" yaml:"key"`
	Args   string `json:"args" yaml:"args"`
	Result string `json:"result" yaml:"result"`
	Want   string `json:"want" yaml:"want"`
	Passed bool   `json:"passed" yaml:"passed"`
}

// Walkthrough runs a fixed scenario storing nil and non-nil values in m,
// which must be empty. It returns every step, and ErrInvariantViolated if
// any result differs from the expected one.
func Walkthrough(ctx context.Context, m *nullmap.Map[string, *string]) ([]Step, error) {
	w := &walk{m: m}
	x, y := ptr("x"), ptr("y")

	w.put("a", nil, "<none>")
	w.get("a", "nil")
	w.containsKey("a", "true")
	w.putIfAbsent("a", x, "nil (kept)")
	w.remove("a", "nil")
	w.containsKey("a", "false")
	w.get("a", "<none>")

	w.putIfAbsent("b", x, "<none>")
	w.compareAndReplace("b", x, nil, "true")
	w.get("b", "nil")
	w.compareAndReplace("b", y, x, "false")
	w.replace("b", y, `nil (replaced)`)
	w.removeIf("b", x, "false")
	w.removeIf("b", y, "true")
	w.replace("c", y, "<none>")
	w.containsKey("c", "false")

	w.put("d", nil, "<none>")
	w.put("e", y, "<none>")
	w.size("2")
	w.clear()
	w.size("0")

	failed := 0
	for _, s := range w.steps {
		if !s.Passed {
			failed++
			logger.L(ctx).Warn("walkthrough step failed",
				"op", s.Op, "key", s.Key, "result", s.Result, "want", s.Want)
		}
	}
	if w.err != nil {
		return w.steps, w.err
	}
	if failed > 0 {
		return w.steps, domain.ErrInvariantViolated.WithDetails(
			fmt.Sprintf("%d of %d walkthrough steps failed", failed, len(w.steps)))
	}
	return w.steps, nil
}

type walk struct {
	m     *nullmap.Map[string, *string]
	steps []Step
	err   error
}

func (w *walk) record(op, key, args, result, want string, err error) {
	if err != nil {
		if w.err == nil {
			w.err = fmt.Errorf("%s %q: %w", op, key, err)
		}
		result = "error: " + err.Error()
	}
	w.steps = append(w.steps, Step{
		Op:     op,
		Key:    key,
		Args:   args,
		Result: result,
		Want:   want,
		Passed: err == nil && result == want,
	})
}

func (w *walk) put(key string, v *string, want string) {
	prev, loaded, err := w.m.Put(key, v)
	w.record(nullmap.OpPut, key, show(v), lookup(prev, loaded), want, err)
}

func (w *walk) get(key, want string) {
	v, ok, err := w.m.Get(key)
	w.record(nullmap.OpGet, key, "", lookup(v, ok), want, err)
}

func (w *walk) containsKey(key, want string) {
	ok, err := w.m.ContainsKey(key)
	w.record(nullmap.OpContainsKey, key, "", strconv.FormatBool(ok), want, err)
}

func (w *walk) putIfAbsent(key string, v *string, want string) {
	existing, loaded, err := w.m.PutIfAbsent(key, v)
	result := lookup(existing, loaded)
	if loaded {
		result += " (kept)"
	}
	w.record(nullmap.OpPutIfAbsent, key, show(v), result, want, err)
}

func (w *walk) remove(key, want string) {
	prev, loaded, err := w.m.Remove(key)
	w.record(nullmap.OpRemove, key, "", lookup(prev, loaded), want, err)
}

func (w *walk) removeIf(key string, v *string, want string) {
	ok, err := w.m.RemoveIf(key, v)
	w.record(nullmap.OpRemoveIf, key, show(v), strconv.FormatBool(ok), want, err)
}

func (w *walk) replace(key string, v *string, want string) {
	prev, replaced, err := w.m.Replace(key, v)
	result := lookup(prev, replaced)
	if replaced {
		result += " (replaced)"
	}
	w.record(nullmap.OpReplace, key, show(v), result, want, err)
}

func (w *walk) compareAndReplace(key string, old, v *string, want string) {
	ok, err := w.m.CompareAndReplace(key, old, v)
	w.record(nullmap.OpCompareAndReplace, key, show(old)+" -> "+show(v), strconv.FormatBool(ok), want, err)
}

func (w *walk) size(want string) {
	w.record("size", "", "", strconv.Itoa(w.m.Size()), want, nil)
}

func (w *walk) clear() {
	w.m.Clear()
	w.record(nullmap.OpClear, "", "", "ok", "ok", nil)
}

func ptr(s string) *string { return &s }

func show(v *string) string {
	if v == nil {
		return "nil"
	}
	return strconv.Quote(*v)
}

func lookup(v *string, ok bool) string {
	if !ok {
		return "<none>"
	}
	return show(v)
}
