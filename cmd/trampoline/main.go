/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/compute/metadata"
	"cloud.google.com/go/pubsub/v2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"chainguard.dev/go-grpc-kit/pkg/options"
	"github.com/chainguard-dev/clog"
	_ "github.com/chainguard-dev/clog/gcp/init"
	"github.com/sethvargo/go-envconfig"

	"github.com/chainguard-dev/background-events/internal/trampoline"
	"github.com/chainguard-dev/background-events/pkg/httpmetrics"
	mce "github.com/chainguard-dev/background-events/pkg/httpmetrics/cloudevents"
	"github.com/chainguard-dev/background-events/pkg/profiler"
)

var env = envconfig.MustProcess(context.Background(), &struct {
	Port int `env:"PORT, default=8080"`
	// Exactly one of the two delivery modes must be configured: a topic
	// to publish translated events to directly, or a CloudEvents
	// ingress to send them to.
	Topic      string `env:"PUBSUB_TOPIC"`
	IngressURI string `env:"EVENT_INGRESS_URI"`
}{})

func main() {
	profiler.SetupProfiler()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go httpmetrics.ServeMetrics()
	defer httpmetrics.SetupTracer(ctx)()

	var sender trampoline.Sender
	switch {
	case env.Topic != "":
		projectID, err := metadata.ProjectIDWithContext(ctx)
		if err != nil {
			clog.FatalContextf(ctx, "failed to get project ID, %v", err)
		}
		psc, err := pubsub.NewClientWithConfig(ctx, projectID,
			&pubsub.ClientConfig{
				EnableOpenTelemetryTracing: true,
			},
			append(options.ClientOptions(), option.WithTokenSource(google.ComputeTokenSource("")))...)
		if err != nil {
			clog.FatalContextf(ctx, "failed to create pubsub client, %v", err)
		}
		topic := psc.Publisher(env.Topic)
		defer topic.Stop()
		sender = trampoline.NewPubSubSender(topic)

	case env.IngressURI != "":
		client, err := mce.NewClientHTTP("trampoline", mce.WithTarget(ctx, env.IngressURI)...)
		if err != nil {
			clog.FatalContextf(ctx, "failed to create cloudevents client: %v", err)
		}
		sender = trampoline.NewCloudEventsSender(client)

	default:
		clog.FatalContextf(ctx, "one of PUBSUB_TOPIC or EVENT_INGRESS_URI must be set")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", env.Port),
		ReadHeaderTimeout: 10 * time.Second,
		Handler:           httpmetrics.Handler("trampoline", trampoline.NewServer(sender)),
	}
	clog.FatalContextf(ctx, "ListenAndServe: %v", srv.ListenAndServe())
}
