/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub/v2"

	"github.com/chainguard-dev/background-events/pkg/legacyevents"
)

// FromCloudEvent renders a translated legacy event as a Pub/Sub message
// whose attributes mirror the CloudEvents attributes, so subscriptions
// behind the broker can filter without decoding the payload. Subject
// and time attributes are set only when the translation produced them.
func FromCloudEvent(_ context.Context, event legacyevents.CloudEvent) (*pubsub.Message, error) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return nil, fmt.Errorf("encoding event data: %w", err)
	}

	attributes := map[string]string{
		"ce-id":          event.ID,
		"ce-specversion": event.SpecVersion,
		"ce-type":        event.Type,
		"ce-source":      event.Source,
		"content-type":   event.DataContentType,
	}
	if event.Subject != "" {
		attributes["ce-subject"] = event.Subject
	}
	if event.Time != "" {
		attributes["ce-time"] = event.Time
	}

	return &pubsub.Message{
		Attributes: attributes,
		Data:       data,
	}, nil
}
