package e2e

import (
	"chatroom/infrastructure/broker"
	"chatroom/services"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

type BaseBrokerSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration and skips without a broker.
func (s *BaseBrokerSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.BrokerURL == "" {
		s.T().Skip("E2E_BROKER_URL is not set")
	}
}

// WithSession runs fn against a live session controller, stopped when fn returns.
func (s *BaseBrokerSuite) WithSession(name string, fn func(ctx context.Context, controller *services.SessionController)) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	stompBroker := broker.NewStompBroker(log, s.Config.BrokerURL, s.Config.BrokerHost, 0)
	controller := services.NewSessionController(log, stompBroker, 64, 200*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	loopDone := make(chan error, 1)
	go func() {
		loopDone <- controller.Run(ctx)
	}()
	defer func() {
		cancel()
		<-loopDone
	}()

	fn(ctx, controller)
}
