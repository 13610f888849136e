/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package legacyevents

import "fmt"

// MalformedContextError reports a payload whose mandatory context fields
// (eventId, eventType, resource name) could not be found. It is a
// request-level failure: the payload cannot be translated.
type MalformedContextError struct {
	// Missing names the mandatory field that could not be found.
	Missing string
	// Err holds the underlying decode error, if decoding is what failed.
	Err error
}

func (e *MalformedContextError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed legacy event payload: %v", e.Err)
	}
	return fmt.Sprintf("malformed legacy event context: missing %s", e.Missing)
}

func (e *MalformedContextError) Unwrap() error { return e.Err }

// ResourcePatternMismatchError reports a resource string that does not
// match the decomposition pattern registered for its service.
type ResourcePatternMismatchError struct {
	Service  string
	Resource string
}

func (e *ResourcePatternMismatchError) Error() string {
	return fmt.Sprintf("resource %q does not match the pattern for service %q", e.Resource, e.Service)
}

// ResourcePatternExecutionError reports a decomposition pattern that
// cannot be applied at all, as opposed to one that simply did not match.
type ResourcePatternExecutionError struct {
	Service string
	Pattern string
}

func (e *ResourcePatternExecutionError) Error() string {
	return fmt.Sprintf("cannot apply resource pattern %q for service %q", e.Pattern, e.Service)
}
