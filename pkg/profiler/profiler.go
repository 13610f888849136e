/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package profiler

import (
	"context"

	"cloud.google.com/go/profiler"
	"github.com/sethvargo/go-envconfig"

	"github.com/chainguard-dev/clog"
)

var env = envconfig.MustProcess(context.Background(), &struct {
	EnableProfiler bool   `env:"ENABLE_PROFILER, default=false"`
	Service        string `env:"K_SERVICE, default=background-events"`
}{})

// SetupProfiler starts Cloud Profiler for the running service when
// ENABLE_PROFILER is set.
func SetupProfiler() {
	if !env.EnableProfiler {
		return
	}
	if err := profiler.Start(profiler.Config{Service: env.Service}); err != nil {
		clog.Fatalf("failed to start profiler: %v", err)
	}
}
