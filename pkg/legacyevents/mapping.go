/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package legacyevents

import (
	"regexp"
	"strings"
)

// CloudEvents service hostnames for the event providers the legacy
// background-event format knew about.
const (
	firebaseService         = "firebase.googleapis.com"
	firebaseAuthService     = "firebaseauth.googleapis.com"
	firebaseDatabaseService = "firebasedatabase.googleapis.com"
	firestoreService        = "firestore.googleapis.com"
	pubsubService           = "pubsub.googleapis.com"
	storageService          = "storage.googleapis.com"
)

// eventTypeMap maps legacy event type identifiers to their CloudEvents
// equivalents. Anything not listed here passes through verbatim.
var eventTypeMap = map[string]string{
	"google.pubsub.topic.publish":                              "google.cloud.pubsub.topic.v1.messagePublished",
	"providers/cloud.pubsub/eventTypes/topic.publish":          "google.cloud.pubsub.topic.v1.messagePublished",
	"google.storage.object.finalize":                           "google.cloud.storage.object.v1.finalized",
	"google.storage.object.delete":                             "google.cloud.storage.object.v1.deleted",
	"google.storage.object.archive":                            "google.cloud.storage.object.v1.archived",
	"google.storage.object.metadataUpdate":                     "google.cloud.storage.object.v1.metadataUpdated",
	"providers/cloud.firestore/eventTypes/document.write":      "google.cloud.firestore.document.v1.written",
	"providers/cloud.firestore/eventTypes/document.create":     "google.cloud.firestore.document.v1.created",
	"providers/cloud.firestore/eventTypes/document.update":     "google.cloud.firestore.document.v1.updated",
	"providers/cloud.firestore/eventTypes/document.delete":     "google.cloud.firestore.document.v1.deleted",
	"providers/firebase.auth/eventTypes/user.create":           "google.firebase.auth.user.v1.created",
	"providers/firebase.auth/eventTypes/user.delete":           "google.firebase.auth.user.v1.deleted",
	"providers/google.firebase.analytics/eventTypes/event.log": "google.firebase.analytics.log.v1.written",
	"providers/google.firebase.database/eventTypes/ref.create": "google.firebase.database.ref.v1.created",
	"providers/google.firebase.database/eventTypes/ref.write":  "google.firebase.database.ref.v1.written",
	"providers/google.firebase.database/eventTypes/ref.update": "google.firebase.database.ref.v1.updated",
	"providers/google.firebase.database/eventTypes/ref.delete": "google.firebase.database.ref.v1.deleted",
	"providers/cloud.storage/eventTypes/object.change":         "google.cloud.storage.object.v1.finalized",
}

// serviceMap associates legacy event type prefixes with service
// hostnames. Order matters: the first matching prefix wins.
var serviceMap = []struct {
	prefix  string
	service string
}{
	{"providers/cloud.firestore/", firestoreService},
	{"providers/google.firebase.analytics/", firebaseService},
	{"providers/firebase.auth/", firebaseAuthService},
	{"providers/google.firebase.database/", firebaseDatabaseService},
	{"providers/cloud.pubsub/", pubsubService},
	{"providers/cloud.storage/", storageService},
}

// resourceRegexMap splits a legacy resource string into the CloudEvents
// resource (capture 1) and subject (capture 2) for each service with a
// known decomposition. Services without an entry (notably Pub/Sub) keep
// the resource string whole.
var resourceRegexMap = map[string]*regexp.Regexp{
	firebaseService:         regexp.MustCompile(`^(projects/[^/]+)/(events/[^/]+)$`),
	firebaseDatabaseService: regexp.MustCompile(`^projects/_/(instances/[^/]+)/(refs/.+)$`),
	firestoreService:        regexp.MustCompile(`^(projects/[^/]+/databases/\(default\))/(documents/.+)$`),
	storageService:          regexp.MustCompile(`^(projects/[^/]+/buckets/[^/]+)/(objects/.+)$`),
}

// firebaseAuthFieldMap renames legacy Firebase Auth metadata fields to
// their CloudEvents names.
var firebaseAuthFieldMap = map[string]string{
	"createdAt":      "createTime",
	"lastSignedInAt": "lastSignInTime",
}

// ResolveType maps a legacy event type to its CloudEvents type.
// Unknown event types pass through unchanged.
func ResolveType(eventType string) string {
	if t, ok := eventTypeMap[eventType]; ok {
		return t
	}
	return eventType
}

// ResolveService derives the CloudEvents service hostname from a legacy
// event type, for events whose resource does not name a service. Unknown
// event types pass through unchanged; callers must not assume the result
// is a valid hostname.
func ResolveService(eventType string) string {
	for _, e := range serviceMap {
		if strings.HasPrefix(eventType, e.prefix) {
			return e.service
		}
	}
	return eventType
}
