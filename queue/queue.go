// Package queue provides the typed job queue the service publishes
// background work to, built on watermill.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"filesmanager-backend/models"
)

// Topics carrying job payloads. Consumers live in the worker package.
const (
	TopicThumbnails = "files.thumbnails"
	TopicWelcome    = "users.welcome"
)

// NewGoChannel creates the in-process pub/sub both the publisher and the
// worker router attach to.
func NewGoChannel(logger watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 64,
		},
		logger,
	)
}

// Publisher enqueues background jobs. Publishing is fire-and-forget from the
// producer's perspective: it returns once the message is accepted by the
// queue, not when the job completes.
type Publisher struct {
	pub message.Publisher
}

// NewPublisher creates a job publisher on the given watermill publisher.
func NewPublisher(pub message.Publisher) *Publisher {
	return &Publisher{pub: pub}
}

// PublishThumbnail enqueues a thumbnail generation job.
func (p *Publisher) PublishThumbnail(ctx context.Context, job models.ThumbnailJob) error {
	return p.publish(ctx, TopicThumbnails, job)
}

// PublishWelcome enqueues a user welcome job.
func (p *Publisher) PublishWelcome(ctx context.Context, job models.WelcomeJob) error {
	return p.publish(ctx, TopicWelcome, job)
}

func (p *Publisher) publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling job payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)

	if err := p.pub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}
	return nil
}
