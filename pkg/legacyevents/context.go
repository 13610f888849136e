/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package legacyevents

import "encoding/json"

// Resource identifies what a legacy background event fired against.
type Resource struct {
	Service string `json:"service,omitempty"`
	Type    string `json:"type,omitempty"`
	Name    string `json:"name"`
}

// UnmarshalJSON accepts both the structured resource object and the
// oldest legacy shape, where the resource is a bare string naming it.
func (r *Resource) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		*r = Resource{Name: name}
		return nil
	}
	type resource Resource
	var rr resource
	if err := json.Unmarshal(b, &rr); err != nil {
		return err
	}
	*r = Resource(rr)
	return nil
}

// Context is the parsed envelope of a legacy background event. It is
// never mutated after extraction; everything derived from it (the
// CloudEvents type, service, and resource/subject split) is computed
// from it and the static tables.
type Context struct {
	EventID   string   `json:"eventId"`
	Timestamp string   `json:"timestamp,omitempty"`
	EventType string   `json:"eventType"`
	Resource  Resource `json:"resource"`
	// Domain is the legacy region hint carried only by Firebase
	// Database events.
	Domain string `json:"domain,omitempty"`
}

// envelope is the superset of payload shapes the translator accepts: a
// {context, data} pair, the oldest form with context fields at the top
// level, or a raw Pub/Sub push with {subscription, message}.
type envelope struct {
	Context json.RawMessage `json:"context"`
	Data    json.RawMessage `json:"data"`

	Subscription string       `json:"subscription"`
	Message      *pushMessage `json:"message"`

	EventID   string   `json:"eventId"`
	Timestamp string   `json:"timestamp"`
	EventType string   `json:"eventType"`
	Resource  Resource `json:"resource"`
	Domain    string   `json:"domain"`
}

// contextAndData extracts the legacy Context and the raw data value. If
// the payload carries no context key, the payload itself is read as the
// context, which is how the oldest events were laid out.
func (e *envelope) contextAndData() (Context, any, error) {
	var lc Context
	if len(e.Context) > 0 {
		if err := json.Unmarshal(e.Context, &lc); err != nil {
			return Context{}, nil, &MalformedContextError{Err: err}
		}
	} else {
		lc = Context{
			EventID:   e.EventID,
			Timestamp: e.Timestamp,
			EventType: e.EventType,
			Resource:  e.Resource,
			Domain:    e.Domain,
		}
	}

	switch {
	case lc.EventID == "":
		return Context{}, nil, &MalformedContextError{Missing: "eventId"}
	case lc.EventType == "":
		return Context{}, nil, &MalformedContextError{Missing: "eventType"}
	case lc.Resource.Name == "":
		return Context{}, nil, &MalformedContextError{Missing: "resource name"}
	}

	var data any
	if len(e.Data) > 0 {
		data = e.Data
	}
	return lc, data, nil
}
