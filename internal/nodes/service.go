// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package nodes

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/telekom/kafka-console-api/internal/kafka"
	"github.com/telekom/kafka-console-api/internal/listing"
	"github.com/telekom/kafka-console-api/internal/model"
	"github.com/twmb/franz-go/pkg/kadm"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) List(ctx context.Context, admin kafka.Admin, listCtx *listing.Context[*Node]) (listing.Page[*Node], error) {
	nodes, err := s.listNodes(ctx, admin)
	if err != nil {
		return listing.Page[*Node]{}, err
	}

	return listCtx.Page(listCtx.Filter(nodes)), nil
}

// Configs describes the broker configuration of one node.
func (s *Service) Configs(ctx context.Context, admin kafka.Admin, nodeId string) (map[string]kafka.ConfigEntry, error) {
	id, err := strconv.ParseInt(nodeId, 10, 32)
	if err != nil {
		return nil, model.Errorf(model.ResourceNotFound, "No such node: %s", nodeId)
	}

	nodes, err := s.listNodes(ctx, admin)
	if err != nil {
		return nil, err
	}
	if !slices.ContainsFunc(nodes, func(node *Node) bool { return node.NodeId == int32(id) }) {
		return nil, model.Errorf(model.ResourceNotFound, "No such node: %s", nodeId)
	}

	described, err := admin.DescribeBrokerConfigs(ctx, int32(id))
	if err != nil && len(described) == 0 {
		return nil, kafka.AsApiError(err)
	}

	var index = slices.IndexFunc(described, func(resource kadm.ResourceConfig) bool {
		return resource.Name == nodeId
	})
	switch {
	case index < 0:
		return nil, model.NewOccurrence(model.ServerError, fmt.Errorf("no configs returned for node %s", nodeId))
	case described[index].Err != nil:
		return nil, kafka.AsApiError(described[index].Err)
	default:
		return kafka.ConfigEntries(described[index].Configs), nil
	}
}

func (s *Service) listNodes(ctx context.Context, admin kafka.Admin) ([]*Node, error) {
	metadata, err := admin.BrokerMetadata(ctx)
	if err != nil {
		return nil, kafka.AsApiError(err)
	}

	return FromMetadata(metadata), nil
}

// FromMetadata converts the broker list of a metadata response.
func FromMetadata(metadata kadm.Metadata) []*Node {
	var nodes = make([]*Node, 0, len(metadata.Brokers))
	for _, broker := range metadata.Brokers {
		nodes = append(nodes, &Node{
			NodeId:     broker.NodeID,
			Host:       broker.Host,
			Port:       broker.Port,
			Rack:       broker.Rack,
			Controller: broker.NodeID == metadata.Controller,
		})
	}
	return nodes
}
