package redis

import "time"

// Config holds connection and pool settings.
type Config struct {
	// redis:// or rediss:// URL. Empty disables Redis in the example app.
	URL string `koanf:"url"`
	// Prefix for keys written by stores built on this client.
	KeyPrefix string `koanf:"key_prefix"`

	PoolSize     int           `koanf:"pool_size"`
	MinIdleConns int           `koanf:"min_idle_conns"`
	MaxIdleTime  time.Duration `koanf:"max_idle_time"`
	MaxLifetime  time.Duration `koanf:"max_lifetime"`
	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// Startup retries with linear backoff: attempt i waits i*RetryInterval.
	RetryAttempts int           `koanf:"retry_attempts"`
	RetryInterval time.Duration `koanf:"retry_interval"`
}

// DefaultConfig returns pool defaults without a URL.
func DefaultConfig() Config {
	return Config{
		KeyPrefix:     "refresh:",
		PoolSize:      10,
		MinIdleConns:  2,
		MaxIdleTime:   10 * time.Minute,
		MaxLifetime:   30 * time.Minute,
		DialTimeout:   5 * time.Second,
		ReadTimeout:   3 * time.Second,
		WriteTimeout:  3 * time.Second,
		RetryAttempts: 3,
		RetryInterval: 2 * time.Second,
	}
}
