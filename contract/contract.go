//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chatroom/domain"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Broker opens transport-level sessions with the message broker.
type Broker interface {
	Dial(ctx context.Context) (BrokerConn, error)
}

// BrokerConn is one negotiated broker session.
type BrokerConn interface {
	Subscribe(destination string) (Subscription, error)
	Close() error
}

// Subscription streams raw bodies delivered to one destination.
// The channel is closed when the subscription or the connection ends.
type Subscription interface {
	Payloads() <-chan []byte
	Unsubscribe() error
}

// PayloadSink receives every inbound payload, tagged with its channel.
type PayloadSink interface {
	Consume(ctx context.Context, payload domain.Payload) error
}

// ViewObserver is notified with each new view version.
type ViewObserver interface {
	Observe(view domain.View)
}
