// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/telekom/kafka-console-api/internal/utils"
)

func newServer(port int, timeout time.Duration) *http.Server {
	var mux = http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Timeout: timeout,
	}))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
}

// ExposeMetrics serves the registry until the process shuts down.
func ExposeMetrics(port int, timeout time.Duration) {
	var server = newServer(port, timeout)

	utils.RegisterShutdownHook("metrics", 3, func(ctx context.Context) error {
		return server.Shutdown(ctx)
	})

	log.Info().Msgf("Metrics will be exposed on port: %d", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Could not expose metrics")
	}
}
