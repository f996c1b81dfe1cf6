// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package clusters

import (
	"cmp"
	"context"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/telekom/kafka-console-api/internal/aggregate"
	"github.com/telekom/kafka-console-api/internal/config"
	"github.com/telekom/kafka-console-api/internal/kafka"
	"github.com/telekom/kafka-console-api/internal/listing"
	"github.com/telekom/kafka-console-api/internal/model"
	"github.com/telekom/kafka-console-api/internal/utils"
	"github.com/twmb/franz-go/pkg/kadm"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

const (
	describeTitle   = "Unable to describe cluster"
	metadataOutcome = "metadata"
)

// Source lists the discovered Kafka custom resources.
type Source interface {
	List(ctx context.Context) ([]unstructured.Unstructured, error)
}

// Connector hands out the admin client of a cluster.
type Connector interface {
	Admin(clusterId string, bootstrapServers string) (kafka.Admin, error)
}

type Service struct {
	source     Source
	configured []config.KafkaCluster
	connector  Connector
	engine     *aggregate.Engine
}

func NewService(source Source, configured []config.KafkaCluster, connector Connector, engine *aggregate.Engine) *Service {
	return &Service{
		source:     source,
		configured: configured,
		connector:  connector,
		engine:     engine,
	}
}

func (s *Service) List(ctx context.Context, listCtx *listing.Context[*KafkaCluster]) (listing.Page[*KafkaCluster], error) {
	clusters, err := s.listClusters(ctx)
	if err != nil {
		return listing.Page[*KafkaCluster]{}, err
	}

	clusters = listCtx.Filter(clusters)
	s.aggregate(ctx, clusters, listCtx.Fields())

	return listCtx.Page(clusters), nil
}

func (s *Service) Describe(ctx context.Context, clusterId string, fields listing.Fieldset) (*KafkaCluster, error) {
	cluster, err := s.Lookup(ctx, clusterId)
	if err != nil {
		return nil, err
	}

	s.aggregate(ctx, []*KafkaCluster{cluster}, fields)
	return cluster, nil
}

// Lookup finds a cluster by id without contacting it.
func (s *Service) Lookup(ctx context.Context, clusterId string) (*KafkaCluster, error) {
	clusters, err := s.listClusters(ctx)
	if err != nil {
		return nil, err
	}

	var index = slices.IndexFunc(clusters, func(cluster *KafkaCluster) bool {
		return cluster.Id == clusterId
	})
	if index < 0 {
		return nil, model.Errorf(model.ResourceNotFound, "No such Kafka cluster: %s", clusterId)
	}
	return clusters[index], nil
}

// Admin resolves the admin client of the cluster with clusterId.
func (s *Service) Admin(ctx context.Context, clusterId string) (kafka.Admin, error) {
	cluster, err := s.Lookup(ctx, clusterId)
	if err != nil {
		return nil, err
	}

	admin, err := s.connect(cluster)
	if err != nil {
		return nil, model.NewOccurrence(model.ServerError, err)
	}
	return admin, nil
}

func (s *Service) connect(cluster *KafkaCluster) (kafka.Admin, error) {
	var bootstrapServers string
	if cluster.BootstrapServers != nil {
		bootstrapServers = *cluster.BootstrapServers
	}
	return s.connector.Admin(cluster.Id, bootstrapServers)
}

// listClusters merges discovered and configured clusters. Configured clusters win on id clash.
func (s *Service) listClusters(ctx context.Context) ([]*KafkaCluster, error) {
	var byId = make(map[string]*KafkaCluster)

	if s.source != nil {
		resources, err := s.source.List(ctx)
		if err != nil {
			return nil, model.NewOccurrence(model.ServerError, err)
		}

		for i := range resources {
			cluster, ok := FromResource(&resources[i])
			if !ok {
				log.Debug().Fields(utils.GetFieldsOfObject(&resources[i])).Msg("Skipping Kafka resource without cluster id")
				continue
			}
			byId[cluster.Id] = cluster
		}
	}

	for _, configured := range s.configured {
		byId[configured.Id] = FromConfig(configured)
	}

	var clusters = make([]*KafkaCluster, 0, len(byId))
	for _, cluster := range byId {
		clusters = append(clusters, cluster)
	}
	return clusters, nil
}

func (s *Service) aggregate(ctx context.Context, clusters []*KafkaCluster, fields listing.Fieldset) {
	if len(clusters) == 0 || !fields.HasAny(FieldNodes, FieldController) {
		return
	}

	var field = FieldNodes
	if !fields.Has(FieldNodes) {
		field = FieldController
	}

	var entities = make(map[string]*KafkaCluster, len(clusters))
	var tasks = make([]aggregate.Task, 0, len(clusters))
	for _, cluster := range clusters {
		entities[cluster.Id] = cluster
		tasks = append(tasks, s.describeCluster(cluster, field))
	}

	aggregate.Join(entities, s.engine.Collect(ctx, tasks), func(cluster *KafkaCluster, outcome aggregate.Outcome) {
		applyMetadata(cluster, outcome.Value.(kadm.Metadata), fields)
	})
}

func (s *Service) describeCluster(cluster *KafkaCluster, field string) aggregate.Task {
	return aggregate.Task{
		Operation: "describeCluster",
		Field:     field,
		Title:     describeTitle,
		Entities:  []string{cluster.Id},
		Run: func(ctx context.Context) ([]aggregate.Outcome, error) {
			admin, err := s.connect(cluster)
			if err != nil {
				return nil, err
			}

			metadata, err := admin.BrokerMetadata(ctx)
			if err != nil {
				return nil, err
			}

			return []aggregate.Outcome{aggregate.Value(cluster.Id, metadataOutcome, metadata)}, nil
		},
	}
}

func applyMetadata(cluster *KafkaCluster, metadata kadm.Metadata, fields listing.Fieldset) {
	var nodes = make([]Node, 0, len(metadata.Brokers))
	for _, broker := range metadata.Brokers {
		nodes = append(nodes, Node{
			Id:   broker.NodeID,
			Host: broker.Host,
			Port: broker.Port,
			Rack: broker.Rack,
		})
	}
	slices.SortFunc(nodes, func(a, b Node) int {
		return cmp.Compare(a.Id, b.Id)
	})

	if fields.Has(FieldNodes) {
		cluster.Nodes = nodes
	}

	if fields.Has(FieldController) {
		var index = slices.IndexFunc(nodes, func(node Node) bool {
			return node.Id == metadata.Controller
		})
		if index >= 0 {
			var controller = nodes[index]
			cluster.Controller = &controller
		}
	}
}
