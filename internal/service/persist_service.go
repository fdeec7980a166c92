package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"notepocket/internal/persistence"
	"notepocket/internal/pkg/logger"
)

// StateMarshaler is any hydrated store that can serialize its current
// state for write-through.
type StateMarshaler interface {
	MarshalState() ([]byte, error)
}

type IPersistService interface {
	Consume(ctx context.Context) error
}

// persistService drains store change triggers and writes the latest
// snapshot of the named store through to durable storage. Failures are
// logged and the message acked anyway: the in-memory store stays
// authoritative and the next mutation re-triggers the write.
type persistService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	stateStore persistence.StateStore
	sources    map[string]StateMarshaler
	log        logger.ILogger
}

func NewPersistService(
	pubSub *gochannel.GoChannel,
	topicName string,
	stateStore persistence.StateStore,
	sources map[string]StateMarshaler,
	log logger.ILogger,
) IPersistService {
	return &persistService{
		pubSub:     pubSub,
		topicName:  topicName,
		stateStore: stateStore,
		sources:    sources,
		log:        log,
	}
}

func (s *persistService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *persistService) processMessage(ctx context.Context, msg *message.Message) {
	// Every path acks: a failed write is retried by the next change
	// trigger, not by redelivery.
	defer msg.Ack()

	var payload StoreChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Error("persist", "Failed to unmarshal store change trigger", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	source, ok := s.sources[payload.Store]
	if !ok {
		s.log.Warn("persist", "Change trigger for unknown store", map[string]interface{}{
			"store": payload.Store,
		})
		return
	}

	blob, err := source.MarshalState()
	if err != nil {
		s.log.Error("persist", "Failed to serialize store state", map[string]interface{}{
			"store": payload.Store,
			"error": err.Error(),
		})
		return
	}

	if err := s.stateStore.Save(ctx, payload.Store, blob); err != nil {
		s.log.Error("persist", "Failed to write store state", map[string]interface{}{
			"store": payload.Store,
			"error": err.Error(),
		})
		return
	}

	s.log.Debug("persist", "Store state written through", map[string]interface{}{
		"store": payload.Store,
		"bytes": len(blob),
	})
}
