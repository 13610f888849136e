/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package cloudevents

import (
	"net/http"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"

	metrics "github.com/chainguard-dev/background-events/pkg/httpmetrics"
)

// NewClientHTTP builds a CloudEvents HTTP client whose handler side is
// wrapped in the standard metrics handlers under the given name.
func NewClientHTTP(name string, opts ...cehttp.Option) (cloudevents.Client, error) {
	copt := append([]cehttp.Option{
		cloudevents.WithMiddleware(func(next http.Handler) http.Handler {
			return metrics.Handler(name, next)
		})}, opts...)
	return cloudevents.NewClientHTTP(copt...)
}
