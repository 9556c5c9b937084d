package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_BROKER_URL points at a running STOMP-over-WebSocket broker; the suite is skipped when empty
	BrokerURL  string `envconfig:"E2E_BROKER_URL"`
	BrokerHost string `envconfig:"E2E_BROKER_HOST" default:"localhost"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
