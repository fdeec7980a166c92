package service

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"notepocket/internal/pkg/logger"
)

// StoreChangedMessage is the payload published after every store
// mutation. It names the store only; the consumer reads the store's
// current state, so bursts coalesce into last-write-wins.
type StoreChangedMessage struct {
	Store string `json:"store"`
}

type IPublisherService interface {
	StoreChanged(name string)
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
	log       logger.ILogger
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
		log:       log,
	}
}

// StoreChanged is fire-and-forget: mutation callers never wait on
// persistence and never see its failures.
func (s *publisherService) StoreChanged(name string) {
	payload, err := json.Marshal(StoreChangedMessage{Store: name})
	if err != nil {
		s.log.Error("persist", "Failed to marshal store change trigger", map[string]interface{}{
			"store": name,
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		s.log.Error("persist", "Failed to publish store change trigger", map[string]interface{}{
			"store": name,
			"error": err.Error(),
		})
	}
}
