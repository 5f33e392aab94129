package config

import "time"

// Config is the root configuration for nullmap-cli.
type Config struct {
	Map      MapSection      `koanf:"map" json:"map" yaml:"map"`
	Workload WorkloadSection `koanf:"workload" json:"workload" yaml:"workload"`
	Metrics  MetricsSection  `koanf:"metrics" json:"metrics" yaml:"metrics"`
	Log      LogSection      `koanf:"log" json:"log" yaml:"log"`
}

// MapSection configures the concurrent map under test.
type MapSection struct {
	// Shards is the shard count; rounded up to a power of two.
	Shards int `koanf:"shards" json:"shards" yaml:"shards"`
	// ForbidZeroKeys makes the map reject the empty string key.
	ForbidZeroKeys bool `koanf:"forbid_zero_keys" json:"forbid_zero_keys" yaml:"forbid_zero_keys"`
}

// WorkloadSection configures the stress and soak workloads.
type WorkloadSection struct {
	// Goroutines racing on one key per stress round.
	Goroutines int `koanf:"goroutines" json:"goroutines" yaml:"goroutines"`
	// Rounds is the number of stress rounds.
	Rounds int `koanf:"rounds" json:"rounds" yaml:"rounds"`
	// Workers issuing soak operations.
	Workers int `koanf:"workers" json:"workers" yaml:"workers"`
	// Rate limits soak operations per second across all workers; 0 is unlimited.
	Rate float64 `koanf:"rate" json:"rate" yaml:"rate"`
	// Duration of a soak run; 0 runs until interrupted.
	Duration time.Duration `koanf:"duration" json:"duration" yaml:"duration"`
	// Keys is the size of the soak key space.
	Keys int `koanf:"keys" json:"keys" yaml:"keys"`
	// NullRatio is the share of soak writes that store a nil value.
	NullRatio float64 `koanf:"null_ratio" json:"null_ratio" yaml:"null_ratio"`
}

// MetricsSection configures the Prometheus endpoint served during soak.
type MetricsSection struct {
	// Addr is the listen address; empty disables the endpoint.
	Addr string `koanf:"addr" json:"addr" yaml:"addr"`
	Path string `koanf:"path" json:"path" yaml:"path"`
	// RateLimit caps requests per second per client; 0 disables the limit.
	RateLimit int `koanf:"rate_limit" json:"rate_limit" yaml:"rate_limit"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Format string `koanf:"format" json:"format" yaml:"format"`
}
