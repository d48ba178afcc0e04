package main

import "time"

type Config struct {
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
	BufferSize        int           `env:"BUFFER_SIZE,default=64"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL,default=5s"`
}
