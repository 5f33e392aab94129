package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yndnr/nullmap-go/internal/core/domain"
	"github.com/yndnr/nullmap-go/internal/telemetry/logger"
)

// Verify validates the configuration. All problems are reported, each as
// an ErrInvalidConfig with details naming the offending key.
func Verify(cfg *Config) error {
	var errs []error
	errs = append(errs, verifyMap(&cfg.Map)...)
	errs = append(errs, verifyWorkload(&cfg.Workload)...)
	errs = append(errs, verifyMetrics(&cfg.Metrics)...)
	errs = append(errs, verifyLog(&cfg.Log)...)
	return errors.Join(errs...)
}

func invalid(format string, args ...any) error {
	return domain.ErrInvalidConfig.WithDetails(fmt.Sprintf(format, args...))
}

func verifyMap(cfg *MapSection) []error {
	var errs []error
	if cfg.Shards < 1 {
		errs = append(errs, invalid("map.shards must be at least 1, got %d", cfg.Shards))
	}
	return errs
}

func verifyWorkload(cfg *WorkloadSection) []error {
	var errs []error
	if cfg.Goroutines < 2 {
		errs = append(errs, invalid("workload.goroutines must be at least 2, got %d", cfg.Goroutines))
	}
	if cfg.Rounds < 1 {
		errs = append(errs, invalid("workload.rounds must be at least 1, got %d", cfg.Rounds))
	}
	if cfg.Workers < 1 {
		errs = append(errs, invalid("workload.workers must be at least 1, got %d", cfg.Workers))
	}
	if cfg.Rate < 0 {
		errs = append(errs, invalid("workload.rate must not be negative, got %v", cfg.Rate))
	}
	if cfg.Duration < 0 {
		errs = append(errs, invalid("workload.duration must not be negative, got %v", cfg.Duration))
	}
	if cfg.Keys < 1 {
		errs = append(errs, invalid("workload.keys must be at least 1, got %d", cfg.Keys))
	}
	if cfg.NullRatio < 0 || cfg.NullRatio > 1 {
		errs = append(errs, invalid("workload.null_ratio must be within [0, 1], got %v", cfg.NullRatio))
	}
	return errs
}

func verifyMetrics(cfg *MetricsSection) []error {
	var errs []error
	if cfg.Addr != "" && !strings.HasPrefix(cfg.Path, "/") {
		errs = append(errs, invalid("metrics.path must start with /, got %q", cfg.Path))
	}
	if cfg.RateLimit < 0 {
		errs = append(errs, invalid("metrics.rate_limit must not be negative, got %d", cfg.RateLimit))
	}
	return errs
}

func verifyLog(cfg *LogSection) []error {
	var errs []error
	if !logger.ValidLevel(cfg.Level) {
		errs = append(errs, invalid("log.level must be one of debug, info, warn, error, got %q", cfg.Level))
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		errs = append(errs, invalid("log.format must be json or text, got %q", cfg.Format))
	}
	return errs
}
