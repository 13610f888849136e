/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package cloudevents

import (
	"context"
	"log"
	"strings"

	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"
	"google.golang.org/api/idtoken"
)

// WithTarget wraps cloudevents.WithTarget to authenticate requests with
// an identity token when the target is an HTTPS URL, which Cloud Run
// ingresses require.
func WithTarget(ctx context.Context, url string) []cehttp.Option {
	opts := make([]cehttp.Option, 0, 2)

	if strings.HasPrefix(url, "https://") {
		idc, err := idtoken.NewClient(ctx, url)
		if err != nil {
			log.Panicf("failed to create idtoken client: %v", err)
		}
		opts = append(opts, cehttp.WithClient(*idc))
	}

	opts = append(opts, cehttp.WithTarget(url))
	return opts
}
