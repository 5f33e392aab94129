package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		wide   bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatTable, false},
		{FormatTable, true},
		{"unknown", false}, // default to table
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f := NewFormatter(tt.format, tt.wide)
			if f == nil {
				t.Fatal("NewFormatter returned nil")
			}

			switch tt.format {
			case FormatJSON:
				if _, ok := f.(*JSONFormatter); !ok {
					t.Error("expected JSONFormatter")
				}
			case FormatYAML:
				if _, ok := f.(*YAMLFormatter); !ok {
					t.Error("expected YAMLFormatter")
				}
			default:
				tf, ok := f.(*TableFormatter)
				if !ok {
					t.Fatal("expected TableFormatter")
				}
				if tf.Wide != tt.wide {
					t.Errorf("Wide = %v, want %v", tf.Wide, tt.wide)
				}
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"", FormatTable, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

type sample struct {
	Key   string  `json:"key" yaml:"key"`
	Value *string `json:"value" yaml:"value"`
	Found bool    `json:"found" yaml:"found"`
}

func TestJSONFormatter_Format(t *testing.T) {
	f := &JSONFormatter{}

	t.Run("nil value", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Format(&buf, sample{Key: "a", Found: true}); err != nil {
			t.Fatalf("Format() error = %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, `"key": "a"`) {
			t.Errorf("Format() missing key field, got %s", output)
		}
		if !strings.Contains(output, `"value": null`) {
			t.Errorf("Format() missing null value, got %s", output)
		}
	})

	t.Run("nil", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Format(&buf, nil); err != nil {
			t.Fatalf("Format(nil) error = %v", err)
		}
		if got := strings.TrimSpace(buf.String()); got != "null" {
			t.Errorf("Format(nil) = %q, want %q", got, "null")
		}
	})
}

func TestYAMLFormatter_Format(t *testing.T) {
	f := &YAMLFormatter{}

	t.Run("struct", func(t *testing.T) {
		v := "x"
		var buf bytes.Buffer
		if err := f.Format(&buf, sample{Key: "a", Value: &v, Found: true}); err != nil {
			t.Fatalf("Format() error = %v", err)
		}

		want := "key: a\nvalue: x\nfound: true\n"
		if got := buf.String(); got != want {
			t.Errorf("Format() = %q, want %q", got, want)
		}
	})

	t.Run("nil value", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Format(&buf, sample{Key: "a"}); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if !strings.Contains(buf.String(), "value: null") {
			t.Errorf("Format() = %q, want value: null", buf.String())
		}
	})

	t.Run("nested map indentation", func(t *testing.T) {
		var buf bytes.Buffer
		data := map[string]any{"by_op": map[string]int{"get": 1}}
		if err := f.Format(&buf, data); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if got := buf.String(); got != "by_op:\n  get: 1\n" {
			t.Errorf("Format() = %q, want %q", got, "by_op:\n  get: 1\n")
		}
	})
}
