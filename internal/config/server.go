package config

import "time"

type HTTP struct {
	ListenAddress       string        `env:"HTTP_LISTEN_ADDRESS" envDefault:":8080"`
	ProbeListenAddress  string        `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
	MetricListenAddress string        `env:"METRIC_LISTEN_ADDRESS" envDefault:":8082"`
	ShutdownTimeout     time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Watcher управляет частотой сканирования сделок, ожидающих оплату.
type Watcher struct {
	ScanInterval time.Duration `env:"WATCHER_SCAN_INTERVAL" envDefault:"5m"`
	RemindEvery  time.Duration `env:"WATCHER_REMIND_EVERY" envDefault:"12h"`
}

type Session struct {
	IdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`
}
