// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kconsole"

var (
	registry *prometheus.Registry

	requests             *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
	subOperationFailures *prometheus.CounterVec
	kafkaResources       prometheus.Gauge
)

func init() {
	registry = prometheus.NewRegistry()

	requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Handled API requests.",
	}, []string{"route", "method", "status"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of handled API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	subOperationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suboperation_failures_total",
		Help:      "Failed backend sub-operations that were reported as item errors.",
	}, []string{"operation", "field"})

	kafkaResources = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "kafka_resources",
		Help:      "Kafka custom resources currently known from the watched namespace.",
	})

	registry.MustRegister(requests, requestDuration, subOperationFailures, kafkaResources)
}

func Registry() *prometheus.Registry {
	return registry
}

func ObserveRequest(route string, method string, status int, duration time.Duration) {
	requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordSubOperationFailure matches the failure observer of the aggregation engine.
func RecordSubOperationFailure(operation string, field string) {
	subOperationFailures.WithLabelValues(operation, field).Inc()
}

func KafkaResources() prometheus.Gauge {
	return kafkaResources
}
