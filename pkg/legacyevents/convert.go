/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package legacyevents translates legacy "background event" payloads
// (Pub/Sub push, Cloud Storage, Firestore, Firebase Auth, Database, and
// Analytics) into CloudEvents v1.0 envelopes.
//
// The translation is a pure function of the payload, the request path,
// and a set of static mapping tables: detect the payload shape, extract
// the legacy context and data, map the event type and service, split the
// resource string into resource and subject, apply the service-specific
// data rewrites, and assemble the envelope. Unrecognized event types are
// passed through verbatim rather than rejected.
package legacyevents

import (
	"context"
	"encoding/json"

	"github.com/jonboulle/clockwork"
)

// Converter turns legacy background-event payloads into CloudEvents.
// It is stateless aside from a clock, so a single Converter is safe for
// unbounded concurrent use.
type Converter struct {
	clock clockwork.Clock
}

// New returns a Converter using the real clock.
func New() *Converter {
	return &Converter{clock: clockwork.NewRealClock()}
}

// Convert translates one legacy payload into a CloudEvent. The request
// path is consulted only to recover the topic of a raw Pub/Sub push.
//
// Payloads missing the mandatory context fields fail with
// *MalformedContextError; resource strings that do not match their
// service's expected shape fail with *ResourcePatternMismatchError or
// *ResourcePatternExecutionError. Unknown event types and services are
// not errors: they pass through as-is.
func (c *Converter) Convert(ctx context.Context, payload []byte, requestPath string) (CloudEvent, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return CloudEvent{}, &MalformedContextError{Err: err}
	}

	var (
		lc   Context
		data any
		err  error
	)
	if env.isRawPubSubPush() {
		lc, data = c.normalizeRawPubSub(ctx, env.Message, requestPath)
	} else {
		lc, data, err = env.contextAndData()
		if err != nil {
			return CloudEvent{}, err
		}
	}

	ceType := ResolveType(lc.EventType)
	service := lc.Resource.Service
	if service == "" {
		service = ResolveService(lc.EventType)
	}

	resource, subject, err := splitResourceSubject(service, lc.Resource.Name, lc.Domain)
	if err != nil {
		return CloudEvent{}, err
	}

	data, subject = rewrite(service, lc, data, subject)

	return assemble(lc.EventID, service, resource, ceType, subject, lc.Timestamp, data), nil
}
