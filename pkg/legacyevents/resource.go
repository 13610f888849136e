/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package legacyevents

import "regexp"

var domainLocationPattern = regexp.MustCompile(`^([\w-]+)\.`)

// splitResourceSubject decomposes a legacy resource string into the
// CloudEvents resource and subject. Services with no registered pattern
// keep the whole string as the resource and yield no subject.
func splitResourceSubject(service, resourceName, domain string) (resource, subject string, err error) {
	re, ok := resourceRegexMap[service]
	if !ok {
		return resourceName, "", nil
	}

	// Firebase Database resources need a location, inferred from the
	// legacy domain hint. Without one there is no valid resource to
	// build; that is a degradation, not a failure.
	var location string
	if service == firebaseDatabaseService {
		location, ok = databaseLocation(domain)
		if !ok {
			return "", "", nil
		}
	}

	if re.NumSubexp() != 2 {
		return "", "", &ResourcePatternExecutionError{Service: service, Pattern: re.String()}
	}
	m := re.FindStringSubmatch(resourceName)
	if m == nil {
		return "", "", &ResourcePatternMismatchError{Service: service, Resource: resourceName}
	}

	if service == firebaseDatabaseService {
		return "projects/_/locations/" + location + "/" + m[1], m[2], nil
	}
	return m[1], m[2], nil
}

// databaseLocation resolves a Firebase Database region from the legacy
// domain. The default firebaseio.com domain implies the default region.
func databaseLocation(domain string) (string, bool) {
	if domain == "" {
		return "", false
	}
	if domain == "firebaseio.com" {
		return "us-central1", true
	}
	m := domainLocationPattern.FindStringSubmatch(domain)
	if m == nil {
		return "", false
	}
	return m[1], true
}
