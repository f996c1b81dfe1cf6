// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package test

import (
	"fmt"
	"strconv"
	"time"

	"github.com/telekom/kafka-console-api/internal/config"
)

// BuildBaseTestConfig creates a configuration with listing limits and the store connections of
// the docker test environment. It can be extended by individual test packages as needed.
func BuildBaseTestConfig() *config.Configuration {
	testConfig := new(config.Configuration)

	testConfig.Api.BasePath = "/api"
	testConfig.Api.LogLevel = "info"

	testConfig.Listing.DefaultPageSize = 10
	testConfig.Listing.MaxPageSize = 100

	testConfig.Aggregation.Concurrency = 4
	testConfig.Aggregation.OperationTimeout = 2 * time.Second

	// Kubernetes resource
	testConfig.Kubernetes.Group = "kafka.strimzi.io"
	testConfig.Kubernetes.Version = "v1beta2"
	testConfig.Kubernetes.Resource = "kafkas"
	testConfig.Kubernetes.Namespace = "playground"

	// Redis configuration
	redisPort, _ := strconv.ParseUint(EnvOrDefault("REDIS_PORT", "6379"), 10, 32)
	testConfig.Store.Redis.Host = EnvOrDefault("REDIS_HOST", "localhost")
	testConfig.Store.Redis.Port = uint(redisPort)

	// MongoDB configuration
	mongoHost := EnvOrDefault("MONGO_HOST", "localhost")
	mongoPort := EnvOrDefault("MONGO_PORT", "27017")
	testConfig.Store.Mongo.Uri = fmt.Sprintf("mongodb://%s:%s", mongoHost, mongoPort)
	testConfig.Store.Mongo.Database = "kconsole"

	// Hazelcast configuration
	testConfig.Store.Hazelcast = config.HazelcastConfiguration{
		ClusterName: "kconsole",
		Addresses:   []string{EnvOrDefault("HAZELCAST_HOST", "localhost")},
	}

	return testConfig
}

// AddTestCluster adds a statically configured cluster.
func AddTestCluster(cfg *config.Configuration, id, name, bootstrapServers string) {
	cfg.Kafka.Clusters = append(cfg.Kafka.Clusters, config.KafkaCluster{
		Id:               id,
		Name:             name,
		Namespace:        "static",
		BootstrapServers: bootstrapServers,
	})
}
