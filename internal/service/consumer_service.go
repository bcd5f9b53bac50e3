package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/suklaray/hrms-sub002/internal/dto"
	"github.com/suklaray/hrms-sub002/internal/pkg/logger"
	"github.com/suklaray/hrms-sub002/pkg/assistant/learning"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains interaction events into the learning cache. Keeping
// the recording off the request path makes cache persistence invisible to
// chat latency.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	cache     *learning.Cache
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	cache *learning.Cache,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		cache:     cache,
		logger:    logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.RecordInteractionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal interaction message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads are never retriable
		return
	}

	cs.cache.Record(
		payload.Question,
		payload.Response,
		payload.UserId,
		payload.Intent,
		payload.SubIntent,
		payload.Confidence,
		payload.Entities,
	)
	msg.Ack()
}
