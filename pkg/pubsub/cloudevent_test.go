/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pubsub

import (
	"context"
	"testing"

	"cloud.google.com/go/pubsub/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/chainguard-dev/background-events/pkg/legacyevents"
)

func TestFromCloudEvent(t *testing.T) {
	tests := []struct {
		name string
		in   legacyevents.CloudEvent
		out  *pubsub.Message
	}{{
		name: "full envelope",
		in: legacyevents.CloudEvent{
			ID:              "1147091835525187",
			Source:          "//storage.googleapis.com/projects/_/buckets/b1",
			SpecVersion:     "1.0",
			Type:            "google.cloud.storage.object.v1.finalized",
			DataContentType: "application/json",
			Subject:         "objects/o1",
			Time:            "2020-04-23T07:38:57.772Z",
			Data:            map[string]any{"bucket": "b1"},
		},
		out: &pubsub.Message{
			Attributes: map[string]string{
				"ce-id":          "1147091835525187",
				"ce-source":      "//storage.googleapis.com/projects/_/buckets/b1",
				"ce-specversion": "1.0",
				"ce-type":        "google.cloud.storage.object.v1.finalized",
				"ce-subject":     "objects/o1",
				"ce-time":        "2020-04-23T07:38:57.772Z",
				"content-type":   "application/json",
			},
			Data: []byte(`{"bucket":"b1"}`),
		},
	}, {
		name: "subject and time omitted when absent",
		in: legacyevents.CloudEvent{
			ID:              "ccc",
			Source:          "//com.example.custom/r1",
			SpecVersion:     "1.0",
			Type:            "com.example.custom",
			DataContentType: "application/json",
		},
		out: &pubsub.Message{
			Attributes: map[string]string{
				"ce-id":          "ccc",
				"ce-source":      "//com.example.custom/r1",
				"ce-specversion": "1.0",
				"ce-type":        "com.example.custom",
				"content-type":   "application/json",
			},
			Data: []byte(`null`),
		},
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := FromCloudEvent(context.Background(), test.in)
			if err != nil {
				t.Fatalf("FromCloudEvent() = %v", err)
			}
			if diff := cmp.Diff(out, test.out, cmpopts.IgnoreUnexported(pubsub.Message{})); diff != "" {
				t.Errorf("(-got, +want): %s", diff)
			}
		})
	}
}
