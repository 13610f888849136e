/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/chainguard-dev/clog"
)

const pollTimeout = 10 * time.Second

// Pulls translated events from a pull subscription and replays them to
// a topic. This is how dead-lettered events land back on the broker
// topic after a downstream outage; the trampoline itself never retries
// past delivery.
//
// Usage:
//
//	replayer --source=dead-letter-pull-sub --dest=broker-topic --projectID=project-id [--ce-type=...]
func main() {
	var srcSub, dstTop, prjID, ceType string
	flag.StringVar(&srcSub, "source", "", "source subscription")
	flag.StringVar(&dstTop, "dest", "", "destination topic")
	flag.StringVar(&prjID, "projectID", "", "project id")
	flag.StringVar(&ceType, "ce-type", "", "replay only events with this ce-type attribute")

	flag.Parse()
	if srcSub == "" {
		clog.Fatalf("--source is required")
	}
	if dstTop == "" {
		clog.Fatalf("--dest is required")
	}
	if prjID == "" {
		clog.Fatalf("--projectID is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client, err := pubsub.NewClient(ctx, prjID)
	if err != nil {
		clog.Fatalf("pubsub.NewClient: %v", err)
	}
	defer client.Close()

	sub := client.Subscriber(srcSub)
	top := client.Publisher(dstTop)

	clog.InfoContext(ctx, "listening for messages")

	lastReceived := time.Now()
	go exitOnIdling(&lastReceived)

	// Receive blocks until the context is cancelled or an error occurs.
	_ = sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		lastReceived = time.Now()
		log := clog.FromContext(ctx).With("ce-id", msg.Attributes["ce-id"], "ce-type", msg.Attributes["ce-type"])

		if ceType != "" && msg.Attributes["ce-type"] != ceType {
			log.Debug("skipping event")
			msg.Nack()
			return
		}

		result := top.Publish(ctx, msg)
		if _, err := result.Get(ctx); err != nil {
			log.Errorf("failed to replay event: %v", err)
			msg.Nack()
			return
		}
		log.Info("replayed event")
		msg.Ack()
	})
}

// exitOnIdling exits the program if no messages arrive for pollTimeout.
func exitOnIdling(lastReceived *time.Time) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for range ticker.C {
		if time.Since(*lastReceived) > pollTimeout {
			clog.Infof("no messages received in the last %v, exiting", pollTimeout)
			os.Exit(0)
		}
	}
}
