package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-portal/internal/events"
)

// ChangePublisher sends a change notification payload on a pub/sub channel.
type ChangePublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// ChangeNotifier relays staff lifecycle events to a pub/sub channel so that
// open dashboards can refresh their list. The signal is advisory cache
// invalidation only: ListStaff stays correct with no subscriber attached.
type ChangeNotifier struct {
	dispatcher events.Dispatcher
	publisher  ChangePublisher
	channel    string
	logger     *zap.Logger
}

// NewChangeNotifier creates the notifier.
func NewChangeNotifier(dispatcher events.Dispatcher, publisher ChangePublisher, channel string, logger *zap.Logger) *ChangeNotifier {
	return &ChangeNotifier{
		dispatcher: dispatcher,
		publisher:  publisher,
		channel:    channel,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to staff events.
func (n *ChangeNotifier) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventStaffCreated, n.relay)
	n.dispatcher.Subscribe(events.EventStaffUpdated, n.relay)
	n.dispatcher.Subscribe(events.EventStaffExited, n.relay)
	n.dispatcher.Subscribe(events.EventStaffDeleted, n.relay)
}

func (n *ChangeNotifier) relay(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("marshal change event", zap.Error(err))
		return err
	}
	if err := n.publisher.Publish(ctx, n.channel, payload); err != nil {
		// notification loss is acceptable; the list endpoint stays the
		// source of truth
		n.logger.Warn("publish change notification",
			zap.String("channel", n.channel),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return err
	}
	return nil
}
