package services

import (
	"chatroom/contract"
	"chatroom/domain"
	"chatroom/errors"
	"chatroom/projection"
	"chatroom/runtime"
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type ISessionController interface {
	Register(ctx context.Context, username string) error
	SelectTab(ctx context.Context, tab domain.Tab) error
	CurrentView() domain.View
	Close() error
}

var (
	_ ISessionController   = (*SessionController)(nil)
	_ contract.PayloadSink = (*SessionController)(nil)
)

// SessionController owns the session and the conversations.
// Every mutation, from the user or from the broker, runs on the Run goroutine
// in arrival order. Each applied mutation publishes a new view version.
type SessionController struct {
	log           *slog.Logger
	connection    *runtime.ConnectionManager
	router        *runtime.Router
	conversations *projection.Conversations
	observers     []contract.ViewObserver

	inbox       chan func()
	done        chan struct{}
	registering atomic.Bool
	view        atomic.Pointer[domain.View]

	// Only touched by the Run goroutine.
	session domain.Session
	version uint64
}

func NewSessionController(log *slog.Logger, broker contract.Broker, inboxSize int,
	restartInterval time.Duration, observers ...contract.ViewObserver) *SessionController {
	conversations := projection.NewConversations()
	c := &SessionController{
		log:           log,
		router:        runtime.NewRouter(log, conversations),
		conversations: conversations,
		observers:     observers,
		inbox:         make(chan func(), inboxSize),
		done:          make(chan struct{}),
		session:       domain.Session{State: domain.Disconnected, ActiveTab: domain.PublicTab()},
	}
	c.connection = runtime.NewConnectionManager(log, broker, c, restartInterval)
	c.view.Store(&domain.View{})
	return c
}

// Run applies queued mutations until ctx is done, then closes the connection.
// It must be called exactly once. Observers are notified from this goroutine
// and must not call back into the controller synchronously.
func (c *SessionController) Run(ctx context.Context) error {
	defer func() {
		close(c.done)
		if err := c.connection.Close(); err != nil {
			c.log.Warn("Closing connection failed", "error", err)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			c.log.Debug("Stopping session loop")
			return ctx.Err()
		case apply := <-c.inbox:
			apply()
		}
	}
}

// Register opens a session for username and connects it. Until the broker accepted
// both subscriptions the view stays unauthenticated. A failed attempt leaves the
// session disconnected and may be repeated; a concurrent attempt is rejected.
func (c *SessionController) Register(ctx context.Context, username string) error {
	self := domain.Identity(username)
	if err := domain.ValidateIdentity(self); err != nil {
		return err
	}
	if !c.registering.CompareAndSwap(false, true) {
		return errors.ErrRegistrationPending
	}
	defer c.registering.Store(false)
	if c.connection.State() == domain.Connected {
		return errors.ErrAlreadyConnected
	}

	session := domain.Session{
		ID:        uuid.New(),
		Self:      self,
		State:     domain.Connecting,
		ActiveTab: domain.PublicTab(),
	}
	log := c.log.With("session_id", session.ID, "self", self)
	if err := c.do(ctx, func() {
		c.session = session
		c.publish()
	}); err != nil {
		return err
	}

	log.Info("Registering")
	if err := c.connection.Connect(ctx, self); err != nil {
		_ = c.do(context.WithoutCancel(ctx), func() { c.setState(domain.Disconnected) })
		return err
	}
	if err := c.do(context.WithoutCancel(ctx), func() { c.setState(domain.Connected) }); err != nil {
		return err
	}
	log.Info("Registered")
	return nil
}

// SelectTab switches the displayed log. It has no network effect and never touches a log.
func (c *SessionController) SelectTab(ctx context.Context, tab domain.Tab) error {
	return c.do(ctx, func() {
		c.session.ActiveTab = tab
		c.publish()
	})
}

// CurrentView returns a copy of the latest published view.
func (c *SessionController) CurrentView() domain.View {
	return c.view.Load().Clone()
}

// InboxUsage reports how many mutations are queued and the inbox capacity.
func (c *SessionController) InboxUsage() (length, capacity int) {
	return len(c.inbox), cap(c.inbox)
}

// Consume queues an inbound payload for routing. Pumps block here, which keeps
// per-subscription order.
func (c *SessionController) Consume(ctx context.Context, payload domain.Payload) error {
	if c.stopped() {
		return errors.ErrSessionClosed
	}
	select {
	case c.inbox <- func() { c.route(payload) }:
		return nil
	case <-c.done:
		return errors.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *SessionController) Close() error {
	return c.connection.Close()
}

func (c *SessionController) route(payload domain.Payload) {
	if err := c.router.Handle(payload); err != nil {
		return
	}
	c.publish()
}

func (c *SessionController) setState(state domain.ConnectionState) {
	c.session.State = state
	c.publish()
}

// publish builds a fresh view. Nothing but the version is visible before the session is connected.
func (c *SessionController) publish() {
	c.version++
	view := domain.View{Version: c.version}
	if c.session.State == domain.Connected {
		view.Connected = true
		view.Self = c.session.Self
		view.ActiveTab = c.session.ActiveTab
		view.Participants = c.conversations.Participants()
		view.ActiveMessages = c.conversations.Log(c.session.ActiveTab)
	}
	c.view.Store(&view)
	for _, observer := range c.observers {
		observer.Observe(view.Clone())
	}
}

// do runs fn on the Run goroutine and waits for it to be applied.
func (c *SessionController) do(ctx context.Context, fn func()) error {
	if c.stopped() {
		return errors.ErrSessionClosed
	}
	applied := make(chan struct{})
	select {
	case c.inbox <- func() { fn(); close(applied) }:
	case <-c.done:
		return errors.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	// The loop may stop with fn still queued.
	select {
	case <-applied:
		return nil
	case <-c.done:
		select {
		case <-applied:
			return nil
		default:
			return errors.ErrSessionClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stopped reports whether Run returned. A closed done and a free inbox slot are
// both ready in a select, so done is checked first.
func (c *SessionController) stopped() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}
