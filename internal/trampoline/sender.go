/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package trampoline

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/chainguard-dev/background-events/pkg/legacyevents"
	cgpubsub "github.com/chainguard-dev/background-events/pkg/pubsub"
)

// Sender delivers a translated event to its destination.
type Sender interface {
	Send(ctx context.Context, event legacyevents.CloudEvent) error
}

const (
	retryDelay = 10 * time.Millisecond
	maxRetry   = 3
)

type ceSender struct {
	client cloudevents.Client
}

// NewCloudEventsSender delivers events over CloudEvents HTTP, retrying
// transient delivery failures.
func NewCloudEventsSender(client cloudevents.Client) Sender {
	return &ceSender{client: client}
}

func (s *ceSender) Send(ctx context.Context, event legacyevents.CloudEvent) error {
	out, err := event.AsEvent()
	if err != nil {
		return fmt.Errorf("encoding event %q: %w", event.ID, err)
	}
	rctx := cloudevents.ContextWithRetriesExponentialBackoff(context.WithoutCancel(ctx), retryDelay, maxRetry)
	if result := s.client.Send(rctx, out); cloudevents.IsUndelivered(result) || cloudevents.IsNACK(result) {
		return result
	}
	return nil
}

type pubsubSender struct {
	topic *pubsub.Publisher
}

// NewPubSubSender publishes events directly to a Pub/Sub topic.
func NewPubSubSender(topic *pubsub.Publisher) Sender {
	return &pubsubSender{topic: topic}
}

func (s *pubsubSender) Send(ctx context.Context, event legacyevents.CloudEvent) error {
	msg, err := cgpubsub.FromCloudEvent(ctx, event)
	if err != nil {
		return fmt.Errorf("encoding event %q: %w", event.ID, err)
	}
	res := s.topic.Publish(ctx, msg)
	_, err = res.Get(ctx)
	return err
}
