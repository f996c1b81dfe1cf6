// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package test

import (
	"context"
	"fmt"
	"log"

	"github.com/hazelcast/hazelcast-go-client"
	"github.com/hazelcast/hazelcast-go-client/cluster"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	pool      *dockertest.Pool
	resources = make([]*dockertest.Resource, 0)

	redisHost = EnvOrDefault("REDIS_HOST", "localhost")
	redisPort = EnvOrDefault("REDIS_PORT", "6379")

	hazelcastHost = EnvOrDefault("HAZELCAST_HOST", "localhost")
	hazelcastPort = EnvOrDefault("HAZELCAST_PORT", "5701")

	mongoHost = EnvOrDefault("MONGO_HOST", "localhost")
	mongoPort = EnvOrDefault("MONGO_PORT", "27017")

	alreadySetUp = false
)

type Options struct {
	Redis     bool
	MongoDb   bool
	Hazelcast bool
}

func SetupDocker(opts *Options) {
	if alreadySetUp {
		return
	}

	log.Println("Setting up docker (missing images will be pulled, which might take some time)...")

	var err error
	if pool == nil {
		pool, err = dockertest.NewPool("")
		if err != nil {
			log.Fatalf("Could not create pool: %s", err)
		}
	}

	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not ping docker: %s", err)
	}

	// Redis
	if opts.Redis {
		if err := setupRedis(); err != nil {
			log.Fatalf("Could not setup redis: %s", err)
		}
	}

	// MongoDB
	if opts.MongoDb {
		if err := setupMongoDb(); err != nil {
			log.Fatalf("Could not setup mongodb: %s", err)
		}
	}

	// Hazelcast
	if opts.Hazelcast {
		if err := setupHazelcast(); err != nil {
			log.Fatalf("Could not setup hazelcast: %s", err)
		}
	}

	err = pool.Retry(func() error {
		if opts.Redis {
			if err := pingRedis(); err != nil {
				return err
			}
		}

		if opts.MongoDb {
			if err := pingMongoDb(); err != nil {
				return err
			}
		}

		if opts.Hazelcast {
			if err := pingHazelcast(); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Fatalf("Readiness probe failed: %s", err)
	}

	alreadySetUp = true
}

func TeardownDocker() {
	for _, resource := range resources {
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("Could not purge container: %s", err)
		}
	}
}

func setupRedis() error {
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:         "kconsole-redis",
		Repository:   EnvOrDefault("REDIS_IMAGE", "redis/redis-stack-server"),
		Tag:          EnvOrDefault("REDIS_TAG", "7.2.0-v10"),
		ExposedPorts: []string{"6379/tcp"},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"6379/tcp": {{HostIP: "localhost", HostPort: redisPort}},
		},
	}, configureTeardown)
	resources = append(resources, resource)
	return err
}

func pingRedis() error {
	var client = redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", redisHost, redisPort),
	})
	defer client.Close()

	return client.Ping(context.Background()).Err()
}

func setupMongoDb() error {
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:         "kconsole-mongodb",
		Repository:   EnvOrDefault("MONGO_IMAGE", "mongo"),
		Tag:          EnvOrDefault("MONGO_TAG", "7.0.5-rc0"),
		ExposedPorts: []string{"27017/tcp"},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"27017/tcp": {{HostIP: "localhost", HostPort: mongoPort}},
		},
	}, configureTeardown)
	resources = append(resources, resource)
	return err
}

func pingMongoDb() error {
	var ctx = context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(fmt.Sprintf("mongodb://%s:%s", mongoHost, mongoPort)))
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	return client.Ping(ctx, nil)
}

func setupHazelcast() error {
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:         "kconsole-hazelcast",
		Repository:   EnvOrDefault("HAZELCAST_IMAGE", "hazelcast/hazelcast"),
		Tag:          EnvOrDefault("HAZELCAST_TAG", "5.3.6"),
		ExposedPorts: []string{"5701/tcp"},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"5701/tcp": {{HostIP: "localhost", HostPort: hazelcastPort}},
		},
		Env: []string{
			"HZ_CLUSTERNAME=kconsole",
		},
	}, configureTeardown)
	resources = append(resources, resource)
	return err
}

func pingHazelcast() error {
	var ctx = context.Background()
	config := hazelcast.NewConfig()

	config.Cluster.Name = "kconsole"
	config.Cluster.Network.SetAddresses(fmt.Sprintf("%s:%s", hazelcastHost, hazelcastPort))
	config.Cluster.ConnectionStrategy.ReconnectMode = cluster.ReconnectModeOff

	config.Failover.TryCount = 5

	client, err := hazelcast.StartNewClientWithConfig(ctx, config)
	if err != nil {
		return err
	}

	return client.Shutdown(ctx)
}

func configureTeardown(config *docker.HostConfig) {
	config.AutoRemove = true
	config.RestartPolicy = docker.RestartPolicy{
		Name: "no",
	}
}
