/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package legacyevents

import (
	"strings"
	"testing"
)

func TestResolveType(t *testing.T) {
	// Every table entry resolves to exactly its mapped value.
	for legacy, want := range eventTypeMap {
		if got := ResolveType(legacy); got != want {
			t.Errorf("ResolveType(%q) = %q, want %q", legacy, got, want)
		}
	}

	// Everything else is identity.
	for _, eventType := range []string{
		"",
		"google.storage.object.finalize.v2",
		"com.example.custom",
		"providers/unknown/eventTypes/thing.happen",
	} {
		if got := ResolveType(eventType); got != eventType {
			t.Errorf("ResolveType(%q) = %q, want it unchanged", eventType, got)
		}
	}
}

func TestResolveService(t *testing.T) {
	tests := []struct {
		eventType string
		want      string
	}{
		{"providers/cloud.firestore/eventTypes/document.write", "firestore.googleapis.com"},
		{"providers/google.firebase.analytics/eventTypes/event.log", "firebase.googleapis.com"},
		{"providers/firebase.auth/eventTypes/user.create", "firebaseauth.googleapis.com"},
		{"providers/google.firebase.database/eventTypes/ref.write", "firebasedatabase.googleapis.com"},
		{"providers/cloud.pubsub/eventTypes/topic.publish", "pubsub.googleapis.com"},
		{"providers/cloud.storage/eventTypes/object.change", "storage.googleapis.com"},
		// No matching prefix: the event type passes through verbatim.
		{"google.pubsub.topic.publish", "google.pubsub.topic.publish"},
		{"com.example.custom", "com.example.custom"},
		{"", ""},
	}
	for _, test := range tests {
		if got := ResolveService(test.eventType); got != test.want {
			t.Errorf("ResolveService(%q) = %q, want %q", test.eventType, got, test.want)
		}
	}
}

func TestResolveServiceFirstMatchWins(t *testing.T) {
	// The prefix table is ordered; any event type matching an entry must
	// resolve to that entry's service even if a later prefix would also
	// match. The current prefixes don't overlap, so verify order is
	// respected by checking each prefix resolves to its own service.
	for i, e := range serviceMap {
		got := ResolveService(e.prefix + "eventTypes/x")
		if got != e.service {
			t.Errorf("serviceMap[%d] (%q): got %q, want %q", i, e.prefix, got, e.service)
		}
		for _, other := range serviceMap[i+1:] {
			if strings.HasPrefix(e.prefix, other.prefix) {
				t.Errorf("prefix %q is shadowed by later prefix %q", other.prefix, e.prefix)
			}
		}
	}
}

func TestResourceRegexMapShape(t *testing.T) {
	for service, re := range resourceRegexMap {
		if re.NumSubexp() != 2 {
			t.Errorf("pattern for %q has %d capture groups, want 2", service, re.NumSubexp())
		}
	}
}
