/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package legacyevents

import (
	"context"
	"encoding/json"
	"regexp"

	"github.com/chainguard-dev/clog"
)

const (
	pubsubPublishType = "google.pubsub.topic.publish"
	pubsubMessageType = "type.googleapis.com/google.pubsub.v1.PubsubMessage"

	// unknownTopic stands in for the topic name when it cannot be
	// recovered from the request path.
	unknownTopic = "UNKNOWN_PUBSUB_TOPIC"

	// RFC3339 with microsecond precision, matching publishTime as
	// Pub/Sub itself renders it.
	publishTimeLayout = "2006-01-02T15:04:05.000000Z"
)

var topicPattern = regexp.MustCompile(`projects/[^/?]+/topics/[^/?]+`)

// pushMessage is the message half of a raw Pub/Sub push delivery.
type pushMessage struct {
	Data        json.RawMessage   `json:"data"`
	MessageID   string            `json:"messageId"`
	PublishTime string            `json:"publishTime"`
	Attributes  map[string]string `json:"attributes"`
}

// isRawPubSubPush reports whether the payload is a Pub/Sub push that
// bypassed the usual background-event wrapping: no context key, but a
// subscription and a message carrying data and a message ID.
func (e *envelope) isRawPubSubPush() bool {
	return len(e.Context) == 0 &&
		e.Subscription != "" &&
		e.Message != nil &&
		len(e.Message.Data) > 0 &&
		e.Message.MessageID != ""
}

// normalizeRawPubSub synthesizes the standard legacy envelope for a raw
// Pub/Sub push. The topic is recovered from the request path; when that
// fails the event still converts, with a sentinel topic and a pair of
// warnings on the diagnostic stream.
func (c *Converter) normalizeRawPubSub(ctx context.Context, msg *pushMessage, requestPath string) (Context, any) {
	topic := topicPattern.FindString(requestPath)
	if topic == "" {
		topic = unknownTopic
		log := clog.FromContext(ctx)
		log.Warnf("Failed to extract the topic name from the URL path %q", requestPath)
		log.Warnf("Falling back to a topic name of %q, which may not match your subscription", unknownTopic)
	}

	timestamp := msg.PublishTime
	if timestamp == "" {
		timestamp = c.clock.Now().UTC().Format(publishTimeLayout)
	}

	lc := Context{
		EventID:   msg.MessageID,
		Timestamp: timestamp,
		EventType: pubsubPublishType,
		Resource: Resource{
			Service: pubsubService,
			Type:    pubsubMessageType,
			Name:    topic,
		},
	}
	data := map[string]any{
		"@type":      pubsubMessageType,
		"data":       msg.Data,
		"attributes": msg.Attributes,
	}
	return lc, data
}
