package workers

import (
	"chatroom/domain"
	"chatroom/mocks"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSubscriptionPump_ForwardsInOrderAndStopsOnClose(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	subscription := mocks.NewMockSubscription(ctrl)
	sink := mocks.NewMockPayloadSink(ctrl)

	payloads := make(chan []byte, 3)
	payloads <- []byte("first")
	payloads <- []byte("second")
	payloads <- []byte("third")
	close(payloads)
	subscription.EXPECT().Payloads().Return((<-chan []byte)(payloads)).Times(1)

	// Given the sink records every payload
	var received []domain.Payload
	sink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload domain.Payload) error {
			received = append(received, payload)
			return nil
		}).
		Times(3)

	pump := NewSubscriptionPump(log, domain.ChannelPrivate, subscription, sink)

	// When the subscription is drained
	err := pump.Run(context.Background())

	// Then the pump finished cleanly and forwarded everything tagged as private
	req.NoError(err)
	req.Equal([]domain.Payload{
		{Channel: domain.ChannelPrivate, Body: []byte("first")},
		{Channel: domain.ChannelPrivate, Body: []byte("second")},
		{Channel: domain.ChannelPrivate, Body: []byte("third")},
	}, received)
}

func TestSubscriptionPump_StopsOnCancel(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	subscription := mocks.NewMockSubscription(ctrl)
	sink := mocks.NewMockPayloadSink(ctrl)

	// Given a subscription that never delivers
	subscription.EXPECT().Payloads().Return(make(<-chan []byte)).Times(1)

	pump := NewSubscriptionPump(log, domain.ChannelPublic, subscription, sink)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := pump.Run(ctx)

	req.ErrorIs(err, context.DeadlineExceeded)
}

func TestSubscriptionPump_SinkErrorIsReturned(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	subscription := mocks.NewMockSubscription(ctrl)
	sink := mocks.NewMockPayloadSink(ctrl)

	payloads := make(chan []byte, 1)
	payloads <- []byte("body")
	subscription.EXPECT().Payloads().Return((<-chan []byte)(payloads)).Times(1)
	sink.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(fmt.Errorf("inbox gone")).Times(1)

	err := NewSubscriptionPump(log, domain.ChannelPublic, subscription, sink).Run(context.Background())

	req.EqualError(err, "inbox gone")
}
