package config

// Default configuration values.
const (
	DefaultShards = 16

	DefaultGoroutines = 8
	DefaultRounds     = 1000
	DefaultWorkers    = 4
	DefaultRate       = 0
	DefaultKeys       = 1024
	DefaultNullRatio  = 0.2

	DefaultMetricsPath = "/metrics"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Map: MapSection{
			Shards: DefaultShards,
		},
		Workload: WorkloadSection{
			Goroutines: DefaultGoroutines,
			Rounds:     DefaultRounds,
			Workers:    DefaultWorkers,
			Rate:       DefaultRate,
			Keys:       DefaultKeys,
			NullRatio:  DefaultNullRatio,
		},
		Metrics: MetricsSection{
			Path: DefaultMetricsPath,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
