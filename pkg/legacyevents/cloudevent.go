/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package legacyevents

import (
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/cloudevents/sdk-go/v2/types"
)

const (
	specVersion     = "1.0"
	jsonContentType = "application/json"
)

// CloudEvent is the canonical CloudEvents v1.0 envelope the translator
// produces. Timestamps stay as the strings the legacy event carried;
// nothing here validates them.
type CloudEvent struct {
	ID              string `json:"id"`
	Source          string `json:"source"`
	SpecVersion     string `json:"specversion"`
	Type            string `json:"type"`
	DataContentType string `json:"datacontenttype"`
	DataSchema      string `json:"dataschema,omitempty"`
	Subject         string `json:"subject,omitempty"`
	Time            string `json:"time,omitempty"`
	Data            any    `json:"data"`
}

// assemble builds the output envelope. The source is always the
// two-slash service/resource form; callers guarantee the resource is
// populated for services expected to produce valid sources.
func assemble(id, service, resource, ceType, subject, timestamp string, data any) CloudEvent {
	return CloudEvent{
		ID:              id,
		Source:          "//" + service + "/" + resource,
		SpecVersion:     specVersion,
		Type:            ceType,
		DataContentType: jsonContentType,
		Subject:         subject,
		Time:            timestamp,
		Data:            data,
	}
}

// AsEvent renders the envelope as an SDK event for delivery. The time
// attribute is set only when the legacy timestamp parses; an envelope
// with an unparseable timestamp still ships, without one.
func (ce CloudEvent) AsEvent() (cloudevents.Event, error) {
	event := cloudevents.NewEvent()
	event.SetID(ce.ID)
	event.SetSource(ce.Source)
	event.SetType(ce.Type)
	if ce.Subject != "" {
		event.SetSubject(ce.Subject)
	}
	if ce.Time != "" {
		if t, err := types.ParseTime(ce.Time); err == nil {
			event.SetTime(t)
		}
	}
	if err := event.SetData(cloudevents.ApplicationJSON, ce.Data); err != nil {
		return event, err
	}
	return event, nil
}
