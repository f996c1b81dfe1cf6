// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package kafka

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

var ErrNoBootstrapServers = errors.New("cluster has no bootstrap servers")

// Factory creates the admin client of one cluster. The returned close function releases it.
type Factory func(bootstrapServers []string) (Admin, func(), error)

type connection struct {
	bootstrapServers string
	admin            Admin
	close            func()
}

// Connections keeps one long-lived admin client per cluster. Clients are shared by all requests
// and created on first use.
type Connections struct {
	mu          sync.Mutex
	connections map[string]*connection
	factory     Factory
}

func NewConnections(factory Factory) *Connections {
	return &Connections{
		connections: make(map[string]*connection),
		factory:     factory,
	}
}

// KgoFactory creates franz-go admin clients.
func KgoFactory(clientId string, requestTimeout time.Duration) Factory {
	return func(bootstrapServers []string) (Admin, func(), error) {
		client, err := kgo.NewClient(
			kgo.SeedBrokers(bootstrapServers...),
			kgo.ClientID(clientId),
			kgo.RequestTimeoutOverhead(requestTimeout),
		)
		if err != nil {
			return nil, nil, err
		}

		return kadm.NewClient(client), client.Close, nil
	}
}

// Admin returns the client of a cluster. A client is recreated when the bootstrap servers of the
// cluster changed since it was created.
func (c *Connections) Admin(clusterId string, bootstrapServers string) (Admin, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.connections[clusterId]; ok {
		if existing.bootstrapServers == bootstrapServers {
			return existing.admin, nil
		}
		existing.close()
		delete(c.connections, clusterId)
	}

	var seeds = splitServers(bootstrapServers)
	if len(seeds) == 0 {
		return nil, ErrNoBootstrapServers
	}

	admin, closeFunc, err := c.factory(seeds)
	if err != nil {
		return nil, err
	}

	log.Info().Fields(map[string]any{
		"clusterId":        clusterId,
		"bootstrapServers": bootstrapServers,
	}).Msg("Created admin client")

	c.connections[clusterId] = &connection{
		bootstrapServers: bootstrapServers,
		admin:            admin,
		close:            closeFunc,
	}
	return admin, nil
}

func (c *Connections) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for clusterId, existing := range c.connections {
		existing.close()
		delete(c.connections, clusterId)
	}
}

func splitServers(bootstrapServers string) []string {
	var seeds = make([]string, 0)
	for _, server := range strings.Split(bootstrapServers, ",") {
		if server = strings.TrimSpace(server); server != "" {
			seeds = append(seeds, server)
		}
	}
	return seeds
}
