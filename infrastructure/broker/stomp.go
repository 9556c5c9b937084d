// Package broker connects the chat client to a STOMP broker reached over WebSocket.
package broker

import (
	"chatroom/contract"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-stomp/stomp/v3"
	"github.com/gorilla/websocket"
)

var (
	_ contract.Broker       = (*StompBroker)(nil)
	_ contract.BrokerConn   = (*stompConn)(nil)
	_ contract.Subscription = (*stompSubscription)(nil)
)

var stompSubprotocols = []string{"v12.stomp", "v11.stomp", "v10.stomp"}

// StompBroker dials a websocket endpoint and negotiates a STOMP session on it.
type StompBroker struct {
	log       *slog.Logger
	url       string
	host      string
	heartBeat time.Duration
	dialer    *websocket.Dialer
}

func NewStompBroker(log *slog.Logger, url, host string, heartBeat time.Duration) *StompBroker {
	return &StompBroker{
		log:       log,
		url:       url,
		host:      host,
		heartBeat: heartBeat,
		dialer: &websocket.Dialer{
			Proxy:        websocket.DefaultDialer.Proxy,
			Subprotocols: stompSubprotocols,
		},
	}
}

// Dial opens the websocket and runs the STOMP CONNECT handshake.
// The ctx deadline, if any, bounds the whole handshake.
func (b *StompBroker) Dial(ctx context.Context) (contract.BrokerConn, error) {
	ws, _, err := b.dialer.DialContext(ctx, b.url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial %s: %w", b.url, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = ws.SetReadDeadline(deadline)
		_ = ws.SetWriteDeadline(deadline)
	}
	conn, err := stomp.Connect(newWebsocketConn(ws),
		stomp.ConnOpt.Host(b.host),
		stomp.ConnOpt.HeartBeat(b.heartBeat, b.heartBeat),
	)
	if err != nil {
		_ = ws.Close()
		return nil, fmt.Errorf("stomp handshake: %w", err)
	}
	_ = ws.SetReadDeadline(time.Time{})
	_ = ws.SetWriteDeadline(time.Time{})

	b.log.Debug("STOMP session established", "url", b.url, "version", conn.Version())
	return &stompConn{log: b.log, conn: conn}, nil
}

type stompConn struct {
	log  *slog.Logger
	conn *stomp.Conn
}

func (c *stompConn) Subscribe(destination string) (contract.Subscription, error) {
	sub, err := c.conn.Subscribe(destination, stomp.AckAuto)
	if err != nil {
		return nil, err
	}
	return newStompSubscription(c.log, destination, sub), nil
}

func (c *stompConn) Close() error {
	return c.conn.Disconnect()
}

type stompSubscription struct {
	destination string
	sub         *stomp.Subscription
	payloads    chan []byte
	done        chan struct{}
	once        sync.Once
}

func newStompSubscription(log *slog.Logger, destination string, sub *stomp.Subscription) *stompSubscription {
	s := &stompSubscription{
		destination: destination,
		sub:         sub,
		payloads:    make(chan []byte),
		done:        make(chan struct{}),
	}
	go s.forward(log)
	return s
}

// forward keeps draining the STOMP channel until it is closed, even after
// Unsubscribe, so the STOMP reader is never blocked on this subscription.
func (s *stompSubscription) forward(log *slog.Logger) {
	defer close(s.payloads)
	for msg := range s.sub.C {
		if msg.Err != nil {
			log.Warn("Subscription error", "destination", s.destination, "error", msg.Err)
			continue
		}
		select {
		case s.payloads <- msg.Body:
		case <-s.done:
		}
	}
}

func (s *stompSubscription) Payloads() <-chan []byte {
	return s.payloads
}

func (s *stompSubscription) Unsubscribe() error {
	s.once.Do(func() { close(s.done) })
	return s.sub.Unsubscribe()
}
