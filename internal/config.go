package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
)

type Config struct {
	BrokerURL       string        `env:"BROKER_URL,default=ws://localhost:8080/ws/websocket"`
	BrokerHost      string        `env:"BROKER_HOST,default=localhost"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT,default=10s"`
	HeartBeat       time.Duration `env:"HEARTBEAT,default=0s"`
	InboxBufferSize int           `env:"INBOX_BUFFER_SIZE,default=64"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	Username        string        `env:"CHAT_USERNAME"`
	Colours         bool          `env:"COLOURS,default=true"`
	DebugPort       int           `env:"DEBUG_PORT,default=0"`
	MetricInterval  time.Duration `env:"METRIC_INTERVAL,default=0s"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if config.InboxBufferSize < 0 {
		return Config{}, fmt.Errorf("INBOX_BUFFER_SIZE must not be negative, got %d", config.InboxBufferSize)
	}
	return config, nil
}
