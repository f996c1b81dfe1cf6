// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/telekom/kafka-console-api/internal/clusters"
	"github.com/telekom/kafka-console-api/internal/consumergroups"
	"github.com/telekom/kafka-console-api/internal/model"
	"github.com/telekom/kafka-console-api/internal/nodes"
	"github.com/telekom/kafka-console-api/internal/topics"
)

var (
	clusterType = resourceType{kind: clusters.Kind, all: clusters.AllFields, defaults: clusters.ListDefault}
	groupType   = resourceType{kind: consumergroups.Kind, all: consumergroups.AllFields, defaults: consumergroups.ListDefault}
	topicType   = resourceType{kind: topics.Kind, all: topics.AllFields, defaults: topics.ListDefault}
	nodeType    = resourceType{kind: nodes.Kind, all: nodes.AllFields, defaults: nodes.ListDefault}
)

func (s *Service) logRequestDebug(ctx *fiber.Ctx, operation string, id string) {
	var fields = map[string]any{
		"operation": operation,
	}
	if clusterId := ctx.Params("clusterId"); clusterId != "" {
		fields["clusterId"] = clusterId
	}
	if id != "" {
		fields["id"] = id
	}

	s.logger.Debug().Fields(fields).Msg("Request received")
}

func (s *Service) listClusters(ctx *fiber.Ctx) error {
	s.logRequestDebug(ctx, "List-Kafkas", "")

	listCtx, err := newListContext(ctx, s.limits, clusters.Registry, clusterType)
	if err != nil {
		return err
	}

	page, err := s.deps.Clusters.List(ctx.UserContext(), listCtx)
	if err != nil {
		return err
	}
	return renderList(ctx, clusters.Registry, listCtx.Fields(), page)
}

func (s *Service) describeCluster(ctx *fiber.Ctx) error {
	var clusterId = ctx.Params("clusterId")
	s.logRequestDebug(ctx, "Describe-Kafka", clusterId)

	fields, err := parseFields(ctx, resourceType{kind: clusters.Kind, all: clusters.AllFields, defaults: clusters.DescribeDefault})
	if err != nil {
		return err
	}

	cluster, err := s.deps.Clusters.Describe(ctx.UserContext(), clusterId, fields)
	if err != nil {
		return err
	}
	return renderSingle(ctx, clusters.Registry, fields, cluster)
}

func (s *Service) listConsumerGroups(ctx *fiber.Ctx) error {
	s.logRequestDebug(ctx, "List-ConsumerGroups", "")

	listCtx, err := newListContext(ctx, s.limits, consumergroups.Registry, groupType)
	if err != nil {
		return err
	}

	admin, err := adminOf(ctx)
	if err != nil {
		return err
	}

	page, err := s.deps.ConsumerGroups.List(ctx.UserContext(), admin, listCtx)
	if err != nil {
		return err
	}
	return renderList(ctx, consumergroups.Registry, listCtx.Fields(), page)
}

func (s *Service) describeConsumerGroup(ctx *fiber.Ctx) error {
	var groupId = ctx.Params("groupId")
	s.logRequestDebug(ctx, "Describe-ConsumerGroup", groupId)

	fields, err := parseFields(ctx, resourceType{kind: consumergroups.Kind, all: consumergroups.AllFields, defaults: consumergroups.DescribeDefault})
	if err != nil {
		return err
	}

	admin, err := adminOf(ctx)
	if err != nil {
		return err
	}

	group, err := s.deps.ConsumerGroups.Describe(ctx.UserContext(), admin, groupId, fields)
	if err != nil {
		return err
	}
	return renderSingle(ctx, consumergroups.Registry, fields, group)
}

func (s *Service) deleteConsumerGroup(ctx *fiber.Ctx) error {
	var groupId = ctx.Params("groupId")
	s.logRequestDebug(ctx, "Delete-ConsumerGroup", groupId)

	admin, err := adminOf(ctx)
	if err != nil {
		return err
	}

	if err := s.deps.ConsumerGroups.Delete(ctx.UserContext(), admin, groupId); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *Service) listTopics(ctx *fiber.Ctx) error {
	s.logRequestDebug(ctx, "List-Topics", "")

	listCtx, err := newListContext(ctx, s.limits, topics.Registry, topicType)
	if err != nil {
		return err
	}

	admin, err := adminOf(ctx)
	if err != nil {
		return err
	}

	page, err := s.deps.Topics.List(ctx.UserContext(), admin, listCtx)
	if err != nil {
		return err
	}
	return renderList(ctx, topics.Registry, listCtx.Fields(), page)
}

func (s *Service) describeTopic(ctx *fiber.Ctx) error {
	var topicId = ctx.Params("topicId")
	s.logRequestDebug(ctx, "Describe-Topic", topicId)

	fields, err := parseFields(ctx, resourceType{kind: topics.Kind, all: topics.AllFields, defaults: topics.DescribeDefault})
	if err != nil {
		return err
	}

	admin, err := adminOf(ctx)
	if err != nil {
		return err
	}

	topic, err := s.deps.Topics.Describe(ctx.UserContext(), admin, topicId, fields)
	if err != nil {
		return err
	}
	return renderSingle(ctx, topics.Registry, fields, topic)
}

func (s *Service) deleteTopic(ctx *fiber.Ctx) error {
	var topicId = ctx.Params("topicId")
	s.logRequestDebug(ctx, "Delete-Topic", topicId)

	admin, err := adminOf(ctx)
	if err != nil {
		return err
	}

	if err := s.deps.Topics.Delete(ctx.UserContext(), admin, topicId); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *Service) listNodes(ctx *fiber.Ctx) error {
	s.logRequestDebug(ctx, "List-Nodes", "")

	listCtx, err := newListContext(ctx, s.limits, nodes.Registry, nodeType)
	if err != nil {
		return err
	}

	admin, err := adminOf(ctx)
	if err != nil {
		return err
	}

	page, err := s.deps.Nodes.List(ctx.UserContext(), admin, listCtx)
	if err != nil {
		return err
	}
	return renderList(ctx, nodes.Registry, listCtx.Fields(), page)
}

func (s *Service) describeNodeConfigs(ctx *fiber.Ctx) error {
	var nodeId = ctx.Params("nodeId")
	s.logRequestDebug(ctx, "Describe-NodeConfigs", nodeId)

	admin, err := adminOf(ctx)
	if err != nil {
		return err
	}

	configs, err := s.deps.Nodes.Configs(ctx.UserContext(), admin, nodeId)
	if err != nil {
		return err
	}

	var attributes = make(map[string]any, len(configs))
	for name, entry := range configs {
		attributes[name] = entry
	}

	return ctx.Status(fiber.StatusOK).JSON(model.SingleResponse{
		Data: model.NewResource(nodeId, nodes.ConfigsKind, attributes, nil, ""),
	})
}
