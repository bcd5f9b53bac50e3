package service

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"github.com/suklaray/hrms-sub002/internal/dto"
)

type IPublisherService interface {
	PublishInteraction(msg *dto.RecordInteractionMessage) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

// PublishInteraction hands the interaction to the in-process bus. The chat
// path treats this as fire-and-forget; a failed publish only costs a
// learning record.
func (ps *publisherService) PublishInteraction(msg *dto.RecordInteractionMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return ps.pubSub.Publish(ps.topicName, message.NewMessage(uuid.NewString(), payload))
}
