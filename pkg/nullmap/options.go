package nullmap

import (
	"log/slog"
	"time"

	"github.com/yndnr/nullmap-go/pkg/cmap"
)

// Operation names reported to an Observer.
const (
	OpGet               = "get"
	OpPut               = "put"
	OpPutIfAbsent       = "put_if_absent"
	OpRemove            = "remove"
	OpRemoveIf          = "remove_if"
	OpReplace           = "replace"
	OpCompareAndReplace = "compare_and_replace"
	OpCompute           = "compute"
	OpContainsKey       = "contains_key"
	OpPutAll            = "put_all"
	OpClear             = "clear"
)

// Observer receives one call per completed single-key operation and per
// PutAll/Clear. hit reports whether the operation found (or, for the
// conditional operations, acted on) an existing entry.
type Observer interface {
	ObserveOp(op string, hit bool, err error, elapsed time.Duration)
}

type options struct {
	observer    Observer
	logger      *slog.Logger
	backendOpts []cmap.Option
}

// Option configures a Map.
type Option func(*options)

// WithObserver reports every operation to o.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// WithLogger sets the logger used for debug output on rejected operations.
func WithLogger(l *slog.Logger) Option {
	return func(opts *options) {
		if l != nil {
			opts.logger = l
		}
	}
}

// WithBackendOptions passes options to the cmap.Map built by NewSharded
// and NewShardedFunc. New ignores them.
func WithBackendOptions(backendOpts ...cmap.Option) Option {
	return func(opts *options) {
		opts.backendOpts = append(opts.backendOpts, backendOpts...)
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
