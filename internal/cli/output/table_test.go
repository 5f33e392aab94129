package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"
)

type stepRow struct {
	Op     string `json:"op"`
	Key    string `json:"key"`
	Result string `json:"result"`
	Want   string `json:"want" table:"wide"`
	Passed bool   `json:"passed"`
}

type reportRow struct {
	Rounds   int               `json:"rounds"`
	Duration time.Duration     `json:"duration"`
	ByOp     map[string]uint64 `json:"by_op"`
	hidden   string            //nolint:unused
}

func render(t *testing.T, f *TableFormatter, data any) string {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	return buf.String()
}

func TestTableFormatter_Format_Table(t *testing.T) {
	table := &Table{
		Headers: []string{"OP", "RESULT"},
		Rows: [][]string{
			{"get", "nil"},
			{"put", "<none>"},
		},
	}

	output := render(t, &TableFormatter{}, table)
	if !strings.Contains(output, "OP") {
		t.Error("Format() missing header OP")
	}
	if !strings.Contains(output, "<none>") {
		t.Error("Format() missing row data")
	}

	output = render(t, &TableFormatter{}, *table)
	if !strings.Contains(output, "get") {
		t.Error("Format() missing data from Table value")
	}
}

func TestTableFormatter_Format_TableNoHeaders(t *testing.T) {
	table := &Table{
		Headers: []string{"OP", "RESULT"},
		Rows:    [][]string{{"get", "nil"}},
	}

	output := render(t, &TableFormatter{NoHeaders: true}, table)
	if strings.Contains(output, "OP") {
		t.Error("Format() should not contain headers when NoHeaders=true")
	}
	if !strings.Contains(output, "get") {
		t.Error("Format() missing row data")
	}
}

func TestTableFormatter_Format_Nil(t *testing.T) {
	if output := render(t, &TableFormatter{}, nil); output != "" {
		t.Errorf("Format(nil) = %q, want empty output", output)
	}
}

func TestTableFormatter_Format_Slice(t *testing.T) {
	data := []stepRow{
		{Op: "put", Key: "a", Result: "<none>", Want: "<none>", Passed: true},
		{Op: "get", Key: "a", Result: "nil", Want: "nil", Passed: true},
	}

	output := render(t, &TableFormatter{}, data)
	if !strings.Contains(output, "OP") || !strings.Contains(output, "PASSED") {
		t.Errorf("Format() missing headers, got:\n%s", output)
	}
	if !strings.Contains(output, "<none>") {
		t.Error("Format() missing row data")
	}
	if strings.Contains(output, "WANT") {
		t.Error("Format() should not include wide-only field when Wide=false")
	}

	output = render(t, &TableFormatter{Wide: true}, data)
	if !strings.Contains(output, "WANT") {
		t.Error("Format() should include wide-only field when Wide=true")
	}
}

func TestTableFormatter_Format_EmptySlice(t *testing.T) {
	var data []stepRow
	if output := render(t, &TableFormatter{}, data); strings.Contains(output, "OP") {
		t.Error("Format() should not have headers for empty slice")
	}
}

func TestTableFormatter_Format_MapSorted(t *testing.T) {
	data := map[string]uint64{"remove": 3, "get": 10, "put": 7}

	output := render(t, &TableFormatter{}, data)
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 4 {
		t.Fatalf("Format() lines = %d, want 4", len(lines))
	}
	for i, want := range []string{"get", "put", "remove"} {
		if !strings.HasPrefix(lines[i+1], want) {
			t.Errorf("line %d = %q, want prefix %q", i+1, lines[i+1], want)
		}
	}
}

func TestTableFormatter_Format_SingleStruct(t *testing.T) {
	data := reportRow{
		Rounds:   5,
		Duration: 1500 * time.Millisecond,
		ByOp:     map[string]uint64{"put": 2, "get": 1},
	}

	output := render(t, &TableFormatter{}, &data)
	if !strings.Contains(output, "FIELD") || !strings.Contains(output, "VALUE") {
		t.Error("Format() missing struct headers")
	}
	if !strings.Contains(output, "1.5s") {
		t.Errorf("Format() missing duration, got:\n%s", output)
	}
	if !strings.Contains(output, "get=1 put=2") {
		t.Errorf("Format() missing inline map, got:\n%s", output)
	}
	if strings.Contains(output, "hidden") {
		t.Error("Format() should not include unexported fields")
	}
}

func TestTableFormatter_Format_FallbackToJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}

	// Unsupported kinds fall back to JSON, which rejects channels.
	if err := f.Format(&buf, make(chan int)); err == nil {
		t.Error("Format(chan) error = nil, want JSON encoding error")
	}
}

func TestTable_Render(t *testing.T) {
	table := &Table{}
	table.SetHeaders("COL1", "COL2")
	table.AddRow("a", "b")
	table.AddRow("c", "d")

	var buf bytes.Buffer
	if err := table.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Errorf("Render() lines = %d, want 3", len(lines))
	}
}

func TestFormatValue(t *testing.T) {
	var nilPtr *string
	var nilIface any
	s := "x"

	testCases := []struct {
		name     string
		input    reflect.Value
		expected string
	}{
		{"string", reflect.ValueOf("hello"), "hello"},
		{"empty string", reflect.ValueOf(""), "-"},
		{"int", reflect.ValueOf(42), "42"},
		{"uint64", reflect.ValueOf(uint64(99)), "99"},
		{"float64", reflect.ValueOf(3.14159), "3.14"},
		{"bool", reflect.ValueOf(true), "true"},
		{"empty slice", reflect.ValueOf([]int{}), "-"},
		{"slice", reflect.ValueOf([]int{1, 2, 3}), "[3 items]"},
		{"empty map", reflect.ValueOf(map[string]int{}), "-"},
		{"map", reflect.ValueOf(map[string]int{"b": 2, "a": 1}), "a=1 b=2"},
		{"duration", reflect.ValueOf(2 * time.Second), "2s"},
		{"pointer", reflect.ValueOf(&s), "x"},
		{"nil pointer", reflect.ValueOf(nilPtr), "nil"},
		{"nil interface", reflect.ValueOf(&nilIface).Elem(), "nil"},
		{"invalid", reflect.Value{}, ""},
		{"zero time", reflect.ValueOf(time.Time{}), "-"},
		{"time", reflect.ValueOf(time.Date(2026, 6, 15, 14, 30, 5, 0, time.UTC)), "2026-06-15 14:30:05"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatValue(tc.input); got != tc.expected {
				t.Errorf("formatValue() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Name", "Name"},
		{"NullValues", "Null_Values"},
		{"already_snake", "already_snake"},
	}

	for _, tc := range testCases {
		if got := toSnakeCase(tc.input); got != tc.expected {
			t.Errorf("toSnakeCase(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

type sectionRow struct {
	Shards int `json:"shards"`
}

type nestedRow struct {
	sectionRow
	Map   sectionRow `json:"map"`
	RunID string     `json:"run_id"`
}

func TestTableFormatter_Format_NestedStruct(t *testing.T) {
	data := nestedRow{
		sectionRow: sectionRow{Shards: 4},
		Map:        sectionRow{Shards: 16},
		RunID:      "01J9",
	}

	output := render(t, &TableFormatter{}, data)
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 4 {
		t.Fatalf("Format() lines = %d, want 4, got:\n%s", len(lines), output)
	}
	if !strings.HasPrefix(lines[1], "shards") || !strings.HasSuffix(lines[1], "4") {
		t.Errorf("embedded row = %q, want shards 4", lines[1])
	}
	if !strings.HasPrefix(lines[2], "map.shards") || !strings.HasSuffix(lines[2], "16") {
		t.Errorf("nested row = %q, want map.shards 16", lines[2])
	}
}
