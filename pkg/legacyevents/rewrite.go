/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package legacyevents

import (
	"encoding/json"
	"maps"
)

// rewrite applies the service-specific data and subject adjustments
// that run after the generic resource/subject split. Every branch is a
// pure transformation: input maps are cloned, never mutated, so a
// payload shared across invocations is never aliased.
func rewrite(service string, lc Context, data any, subject string) (any, string) {
	switch service {
	case pubsubService:
		return rewritePubSub(lc, data), subject
	case firebaseAuthService:
		return rewriteFirebaseAuth(data, subject)
	default:
		return data, subject
	}
}

// rewritePubSub reshapes the data into the CloudEvents Pub/Sub message
// envelope: a keyed message map carrying the event's ID and timestamp
// as messageId and publishTime, nested under a message key.
func rewritePubSub(lc Context, data any) map[string]any {
	msg := asMap(data)
	if msg == nil {
		msg = map[string]any{"data": data}
	} else {
		msg = maps.Clone(msg)
	}
	msg["messageId"] = lc.EventID
	msg["publishTime"] = lc.Timestamp
	return map[string]any{"message": msg}
}

// rewriteFirebaseAuth renames legacy metadata timestamp fields to their
// CloudEvents names and, when the payload names a uid, points the
// subject at that user regardless of what the resource split produced.
func rewriteFirebaseAuth(data any, subject string) (any, string) {
	m := asMap(data)
	if m == nil {
		return data, subject
	}
	out := maps.Clone(m)

	if md, ok := out["metadata"].(map[string]any); ok {
		md = maps.Clone(md)
		for old, renamed := range firebaseAuthFieldMap {
			if v, present := md[old]; present {
				md[renamed] = v
				delete(md, old)
			}
		}
		out["metadata"] = md
	}

	if uid, ok := out["uid"].(string); ok {
		subject = "users/" + uid
	}
	return out, subject
}

// asMap views the data value as a keyed map if it is one, decoding
// raw JSON as needed. Scalars, arrays, and undecodable values yield nil.
func asMap(data any) map[string]any {
	switch d := data.(type) {
	case map[string]any:
		return d
	case json.RawMessage:
		var m map[string]any
		if err := json.Unmarshal(d, &m); err == nil {
			return m
		}
	}
	return nil
}
