package runtime

import (
	"chatroom/contract"
	"chatroom/domain"
	"chatroom/errors"
	"chatroom/runtime/workers"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ConnectionManager owns the broker connection: one dial, two subscriptions
// (public and the caller's private destination) and the pumps draining them.
// It never interprets payloads, it only tags them with their channel.
type ConnectionManager struct {
	log             *slog.Logger
	broker          contract.Broker
	sink            contract.PayloadSink
	restartInterval time.Duration

	mu            sync.Mutex
	state         domain.ConnectionState
	conn          contract.BrokerConn
	subscriptions []contract.Subscription
	cancel        context.CancelFunc
	done          chan struct{}
}

func NewConnectionManager(log *slog.Logger, broker contract.Broker,
	sink contract.PayloadSink, restartInterval time.Duration) *ConnectionManager {
	return &ConnectionManager{
		log:             log,
		broker:          broker,
		sink:            sink,
		restartInterval: restartInterval,
		state:           domain.Disconnected,
	}
}

func (m *ConnectionManager) State() domain.ConnectionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Connect dials the broker and subscribes the public and private destinations of self.
// The state becomes Connected only once both subscriptions exist. Any failure is
// returned wrapped in ErrConnectionFailure and leaves the manager Disconnected.
// There is no retry. ctx bounds the handshake only, the pumps outlive it.
func (m *ConnectionManager) Connect(ctx context.Context, self domain.Identity) error {
	m.mu.Lock()
	switch m.state {
	case domain.Connected:
		m.mu.Unlock()
		return errors.ErrAlreadyConnected
	case domain.Connecting:
		m.mu.Unlock()
		return errors.ErrConnectInProgress
	case domain.Closed:
		m.mu.Unlock()
		return errors.ErrConnectionClosed
	}
	m.state = domain.Connecting
	m.mu.Unlock()

	conn, subscriptions, err := m.handshake(ctx, self)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		if m.state == domain.Connecting {
			m.state = domain.Disconnected
		}
		m.log.Error("Connection failed", "self", self, "error", err)
		return err
	}
	if m.state == domain.Closed {
		_ = m.teardown(conn, subscriptions)
		return errors.ErrConnectionClosed
	}

	pumpCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	supervisor := workers.NewSupervisor(m.log, m.restartInterval)
	supervisor.Add(
		workers.NewSubscriptionPump(m.log, domain.ChannelPublic, subscriptions[0], m.sink),
		workers.NewSubscriptionPump(m.log, domain.ChannelPrivate, subscriptions[1], m.sink),
	)
	go func() {
		defer close(done)
		supervisor.Run(pumpCtx)
	}()

	m.state = domain.Connected
	m.conn = conn
	m.subscriptions = subscriptions
	m.cancel = cancel
	m.done = done
	m.log.Info("Connected to broker", "self", self)
	return nil
}

func (m *ConnectionManager) handshake(ctx context.Context, self domain.Identity) (contract.BrokerConn, []contract.Subscription, error) {
	conn, err := m.broker.Dial(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: dial: %w", errors.ErrConnectionFailure, err)
	}

	destinations := []string{domain.PublicDestination, domain.PrivateDestination(self)}
	subscriptions := make([]contract.Subscription, 0, len(destinations))
	for _, destination := range destinations {
		subscription, err := conn.Subscribe(destination)
		if err != nil {
			_ = m.teardown(conn, subscriptions)
			return nil, nil, fmt.Errorf("%w: subscribe %s: %w", errors.ErrConnectionFailure, destination, err)
		}
		m.log.Debug("Subscribed", "destination", destination)
		subscriptions = append(subscriptions, subscription)
	}
	return conn, subscriptions, nil
}

// teardown unsubscribes then closes the connection. Only the close error is returned.
func (m *ConnectionManager) teardown(conn contract.BrokerConn, subscriptions []contract.Subscription) error {
	for _, subscription := range subscriptions {
		if err := subscription.Unsubscribe(); err != nil {
			m.log.Warn("Unsubscribe failed", "error", err)
		}
	}
	return conn.Close()
}

// Close stops the pumps and releases the broker connection. It is terminal and idempotent.
func (m *ConnectionManager) Close() error {
	m.mu.Lock()
	previous := m.state
	conn, subscriptions, cancel, done := m.conn, m.subscriptions, m.cancel, m.done
	m.state = domain.Closed
	m.conn, m.subscriptions, m.cancel, m.done = nil, nil, nil, nil
	m.mu.Unlock()

	if previous != domain.Connected {
		return nil
	}
	cancel()
	err := m.teardown(conn, subscriptions)
	<-done
	m.log.Info("Connection closed")
	return err
}
