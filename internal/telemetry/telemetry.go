// Package telemetry reports anonymous usage of the provider and the CLI to
// Amplitude. It is off unless a key is set at build time:
//
//	-ldflags "-X terraform-provider-pve/internal/telemetry.ApiKey=<key>"
package telemetry

import (
	"context"
	"sync"
)

var (
	ApiKey  = ""
	Version = ""

	mu      sync.Mutex
	current *Service
)

// Default returns the process wide service, created on first use.
func Default(ctx context.Context) *Service {
	mu.Lock()
	defer mu.Unlock()

	if current == nil {
		current = NewService(ctx, ApiKey)
	}
	return current
}

func Track(ctx context.Context, event Event) {
	Default(ctx).Send(event)
}

// Shutdown flushes and drops the process wide service.
func Shutdown() {
	mu.Lock()
	defer mu.Unlock()

	current.Close()
	current = nil
}
