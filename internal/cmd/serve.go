// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/telekom/kafka-console-api/internal/aggregate"
	"github.com/telekom/kafka-console-api/internal/api"
	"github.com/telekom/kafka-console-api/internal/clusters"
	"github.com/telekom/kafka-console-api/internal/config"
	"github.com/telekom/kafka-console-api/internal/consumergroups"
	"github.com/telekom/kafka-console-api/internal/k8s"
	"github.com/telekom/kafka-console-api/internal/kafka"
	"github.com/telekom/kafka-console-api/internal/metrics"
	"github.com/telekom/kafka-console-api/internal/nodes"
	"github.com/telekom/kafka-console-api/internal/store"
	"github.com/telekom/kafka-console-api/internal/topics"
	"github.com/telekom/kafka-console-api/internal/utils"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the management api",
	Run: func(cmd *cobra.Command, args []string) {
		var cfg = config.Current
		var kubeConfigPath, _ = cmd.Flags().GetString("kubeconfig")
		var ctx = context.Background()

		var source clusters.Source
		if cfg.Kubernetes.Enabled {
			source = watchKafkaResources(ctx, cfg, kubeConfigPath)
		} else {
			log.Info().Msg("Kubernetes discovery is disabled, only configured clusters are served")
		}

		var connections = kafka.NewConnections(kafka.KgoFactory(cfg.Kafka.ClientId, cfg.Kafka.RequestTimeout))
		utils.RegisterShutdownHook("kafka", 2, func(context.Context) error {
			connections.Close()
			return nil
		})

		var engine = aggregate.NewEngine(cfg.Aggregation.Concurrency, cfg.Aggregation.OperationTimeout, metrics.RecordSubOperationFailure)
		var service = api.NewService(cfg, api.Dependencies{
			Clusters:       clusters.NewService(source, cfg.Kafka.Clusters, connections, engine),
			ConsumerGroups: consumergroups.NewService(engine),
			Topics:         topics.NewService(engine),
			Nodes:          nodes.NewService(),
		})
		go service.Listen(cfg.Api.Port)

		if cfg.Metrics.Enabled {
			go metrics.ExposeMetrics(cfg.Metrics.Port, cfg.Metrics.Timeout)
		}

		utils.GracefulShutdown(ctx, shutdownTimeout)
	},
}

// watchKafkaResources mirrors the Kafka custom resources into the configured store. The returned
// source reads from that store.
func watchKafkaResources(ctx context.Context, cfg *config.Configuration, kubeConfigPath string) clusters.Source {
	client, err := k8s.CreateClient(kubeConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not create kubernetes client!")
	}

	resourceStore, err := store.SetupStoreManager(ctx, cfg.Kubernetes.GetDataSet(), cfg.Store.Type, cfg.Store.SecondaryType)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not set up store!")
	}
	utils.RegisterShutdownHook("store", 4, func(context.Context) error {
		resourceStore.Shutdown()
		return nil
	})

	var resource = cfg.Kubernetes.GetGroupVersionResource()
	watcher, err := k8s.NewResourceWatcher(
		client,
		resourceStore,
		resource,
		cfg.Kubernetes.Namespace,
		cfg.Kubernetes.ReSyncPeriod,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not create resource watcher!")
	}
	utils.RegisterShutdownHook("watcher", 3, func(context.Context) error {
		watcher.Stop()
		return nil
	})

	go watcher.Start()
	return k8s.NewFallbackSource(client, resourceStore, watcher.HasSynced, resource, cfg.Kubernetes.Namespace)
}

func init() {
	serveCmd.Flags().StringP("kubeconfig", "k", "", "sets the kubeconfig that should be used (service account will be used if unset)")
}
