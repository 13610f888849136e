/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package legacyevents

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRewritePubSub(t *testing.T) {
	lc := Context{EventID: "123", Timestamp: "2020-05-18T12:13:19Z"}

	tests := []struct {
		name string
		data any
		want map[string]any
	}{{
		name: "keyed map gains message metadata",
		data: map[string]any{"data": "eHl6", "attributes": map[string]string{"a": "b"}},
		want: map[string]any{
			"message": map[string]any{
				"data":        "eHl6",
				"attributes":  map[string]string{"a": "b"},
				"messageId":   "123",
				"publishTime": "2020-05-18T12:13:19Z",
			},
		},
	}, {
		name: "raw JSON object decodes before wrapping",
		data: json.RawMessage(`{"data":"eHl6"}`),
		want: map[string]any{
			"message": map[string]any{
				"data":        "eHl6",
				"messageId":   "123",
				"publishTime": "2020-05-18T12:13:19Z",
			},
		},
	}, {
		name: "scalar data is wrapped first",
		data: json.RawMessage(`"eHl6"`),
		want: map[string]any{
			"message": map[string]any{
				"data":        json.RawMessage(`"eHl6"`),
				"messageId":   "123",
				"publishTime": "2020-05-18T12:13:19Z",
			},
		},
	}, {
		name: "absent data is wrapped too",
		data: nil,
		want: map[string]any{
			"message": map[string]any{
				"data":        nil,
				"messageId":   "123",
				"publishTime": "2020-05-18T12:13:19Z",
			},
		},
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := rewritePubSub(lc, test.data)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("rewritePubSub() (-want, +got): %s", diff)
			}
		})
	}
}

func TestRewritePubSubDoesNotMutateInput(t *testing.T) {
	in := map[string]any{"data": "eHl6"}
	rewritePubSub(Context{EventID: "1", Timestamp: "t"}, in)
	if diff := cmp.Diff(map[string]any{"data": "eHl6"}, in); diff != "" {
		t.Errorf("input mutated (-want, +got): %s", diff)
	}
}

func TestRewriteFirebaseAuth(t *testing.T) {
	tests := []struct {
		name    string
		data    any
		subject string

		want        any
		wantSubject string
	}{{
		name: "metadata fields renamed and uid claims the subject",
		data: json.RawMessage(`{"metadata":{"createdAt":"t1","lastSignedInAt":"t2","extra":"kept"},"uid":"u1"}`),
		want: map[string]any{
			"metadata": map[string]any{
				"createTime":     "t1",
				"lastSignInTime": "t2",
				"extra":          "kept",
			},
			"uid": "u1",
		},
		subject:     "from-resource-split",
		wantSubject: "users/u1",
	}, {
		name: "renames are per-field conditional",
		data: json.RawMessage(`{"metadata":{"createdAt":"t1"}}`),
		want: map[string]any{
			"metadata": map[string]any{"createTime": "t1"},
		},
		subject:     "kept",
		wantSubject: "kept",
	}, {
		name:        "no metadata and no uid leaves everything alone",
		data:        json.RawMessage(`{"email":"user@example.com"}`),
		want:        map[string]any{"email": "user@example.com"},
		subject:     "kept",
		wantSubject: "kept",
	}, {
		name:        "non-object data passes through",
		data:        json.RawMessage(`"scalar"`),
		want:        json.RawMessage(`"scalar"`),
		subject:     "kept",
		wantSubject: "kept",
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, subject := rewriteFirebaseAuth(test.data, test.subject)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("data (-want, +got): %s", diff)
			}
			if subject != test.wantSubject {
				t.Errorf("subject = %q, want %q", subject, test.wantSubject)
			}
		})
	}
}

func TestRewriteOtherServicesPassThrough(t *testing.T) {
	data := json.RawMessage(`{"bucket":"b1"}`)
	got, subject := rewrite("storage.googleapis.com", Context{}, data, "objects/o1")
	if diff := cmp.Diff(data, got.(json.RawMessage)); diff != "" {
		t.Errorf("data (-want, +got): %s", diff)
	}
	if subject != "objects/o1" {
		t.Errorf("subject = %q, want %q", subject, "objects/o1")
	}
}
