package workers

import (
	"chatroom/contract"
	"chatroom/domain"
	"context"
	"log/slog"
)

// Ensure *SubscriptionPump implements the contract.Worker interface at compile time.
var _ contract.Worker = (*SubscriptionPump)(nil)

// SubscriptionPump drains one broker subscription into a sink.
// It tags each body with its channel and never looks inside it.
type SubscriptionPump struct {
	log          *slog.Logger
	channel      domain.Channel
	subscription contract.Subscription
	sink         contract.PayloadSink
}

func NewSubscriptionPump(
	log *slog.Logger,
	channel domain.Channel,
	subscription contract.Subscription,
	sink contract.PayloadSink) *SubscriptionPump {
	return &SubscriptionPump{
		log:          log,
		channel:      channel,
		subscription: subscription,
		sink:         sink,
	}
}

// Run returns nil once the subscription stream is closed, so the supervisor does not restart it.
func (w *SubscriptionPump) Run(ctx context.Context) error {
	payloads := w.subscription.Payloads()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping pump", "channel", w.channel)
			return ctx.Err()
		case body, ok := <-payloads:
			if !ok {
				w.log.Debug("Subscription is closed", "channel", w.channel)
				return nil
			}
			if err := w.sink.Consume(ctx, domain.Payload{Channel: w.channel, Body: body}); err != nil {
				return err
			}
		}
	}
}
