// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"cmp"
	"context"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	hooksMu       sync.Mutex
	shutdownHooks = make([]ShutdownHook, 0)
)

type ShutdownHook struct {
	Name     string
	Priority int
	Func     ShutdownFunc
}

type ShutdownFunc func(ctx context.Context) error

// RegisterShutdownHook adds a hook. Hooks with a lower priority run first.
func RegisterShutdownHook(name string, priority int, shutdownFunc ShutdownFunc) {
	hooksMu.Lock()
	defer hooksMu.Unlock()

	shutdownHooks = append(shutdownHooks, ShutdownHook{
		Name:     name,
		Priority: priority,
		Func:     shutdownFunc,
	})
}

// GracefulShutdown blocks until ctx is done or the process receives SIGINT or SIGTERM and then
// runs all registered hooks.
func GracefulShutdown(ctx context.Context, timeout time.Duration) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down...")
	RunShutdownHooks(timeout)
}

// RunShutdownHooks runs and removes all registered hooks. Each hook gets its own timeout.
func RunShutdownHooks(timeout time.Duration) {
	hooksMu.Lock()
	var hooks = shutdownHooks
	shutdownHooks = make([]ShutdownHook, 0)
	hooksMu.Unlock()

	slices.SortStableFunc(hooks, func(a, b ShutdownHook) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	for _, hook := range hooks {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		if err := hook.Func(ctx); err != nil {
			log.Warn().Err(err).Str("hook", hook.Name).Msg("Shutdown hook failed")
		}
		cancel()
	}
}
