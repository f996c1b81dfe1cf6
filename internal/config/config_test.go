// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfiguration_Defaults(t *testing.T) {
	var assertions = assert.New(t)

	var config = LoadConfiguration()

	assertions.Equal(8080, config.Api.Port)
	assertions.Equal("/api", config.Api.BasePath)
	assertions.Equal(10, config.Listing.DefaultPageSize)
	assertions.Equal(1000, config.Listing.MaxPageSize)
	assertions.Equal(10*time.Second, config.Aggregation.OperationTimeout)
	assertions.Equal("memory", config.Store.Type)
	assertions.Equal([]string{"localhost:5701"}, config.Store.Hazelcast.Addresses)
	assertions.False(config.Kubernetes.Enabled)
}

func TestLoadConfiguration_Environment(t *testing.T) {
	var assertions = assert.New(t)

	t.Setenv("KCONSOLE_LISTING_MAXPAGESIZE", "50")
	t.Setenv("KCONSOLE_AGGREGATION_OPERATIONTIMEOUT", "3s")
	t.Setenv("KCONSOLE_STORE_TYPE", "redis")

	var config = LoadConfiguration()

	assertions.Equal(50, config.Listing.MaxPageSize)
	assertions.Equal(3*time.Second, config.Aggregation.OperationTimeout)
	assertions.Equal("redis", config.Store.Type)
}

func TestKubernetes_GetDataSet(t *testing.T) {
	var assertions = assert.New(t)

	var kubernetes = Kubernetes{Group: "kafka.strimzi.io", Version: "v1beta2", Resource: "Kafkas"}

	assertions.Equal("kafkas.kafka.strimzi.io.v1beta2", kubernetes.GetDataSet())
	assertions.Equal("kafka.strimzi.io", kubernetes.GetGroupVersionResource().Group)
	assertions.Equal("Kafkas", kubernetes.GetGroupVersionResource().Resource)
}
