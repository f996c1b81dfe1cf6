// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package clusters

import (
	"time"

	"github.com/telekom/kafka-console-api/internal/config"
	"github.com/telekom/kafka-console-api/internal/listing"
	"github.com/telekom/kafka-console-api/internal/model"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

const Kind = "kafkas"

const (
	FieldName              = "name"
	FieldNamespace         = "namespace"
	FieldCreationTimestamp = "creationTimestamp"
	FieldBootstrapServers  = "bootstrapServers"
	FieldAuthType          = "authType"
	FieldNodes             = "nodes"
	FieldController        = "controller"
)

var (
	AllFields = []string{
		FieldName,
		FieldNamespace,
		FieldCreationTimestamp,
		FieldBootstrapServers,
		FieldAuthType,
		FieldNodes,
		FieldController,
	}
	ListDefault     = []string{FieldName, FieldNamespace, FieldCreationTimestamp, FieldBootstrapServers, FieldAuthType}
	DescribeDefault = AllFields
)

type KafkaCluster struct {
	model.Errors

	Id                string
	Name              string
	Namespace         string
	CreationTimestamp *string
	BootstrapServers  *string
	AuthType          *string

	Nodes      []Node
	Controller *Node
}

type Node struct {
	Id   int32   `json:"id"`
	Host string  `json:"host"`
	Port int32   `json:"port"`
	Rack *string `json:"rack"`
}

var Registry = listing.NewRegistry(listing.Definition[*KafkaCluster]{
	Kind: Kind,
	ID: func(cluster *KafkaCluster) string {
		return cluster.Id
	},
	Stub: func(id string) (*KafkaCluster, error) {
		return &KafkaCluster{Id: id}, nil
	},
	Fields: []listing.Field[*KafkaCluster]{
		listing.StringField(FieldName,
			func(cluster *KafkaCluster) string { return cluster.Name },
			func(cluster *KafkaCluster, name string) { cluster.Name = name }),
		listing.StringField(FieldNamespace,
			func(cluster *KafkaCluster) string { return cluster.Namespace },
			func(cluster *KafkaCluster, namespace string) { cluster.Namespace = namespace }),
		listing.NullableStringField(FieldCreationTimestamp,
			func(cluster *KafkaCluster) *string { return cluster.CreationTimestamp },
			func(cluster *KafkaCluster, timestamp *string) { cluster.CreationTimestamp = timestamp }),
		listing.NullableStringField(FieldBootstrapServers,
			func(cluster *KafkaCluster) *string { return cluster.BootstrapServers },
			func(cluster *KafkaCluster, servers *string) { cluster.BootstrapServers = servers }),
		listing.NullableStringField(FieldAuthType,
			func(cluster *KafkaCluster) *string { return cluster.AuthType },
			func(cluster *KafkaCluster, authType *string) { cluster.AuthType = authType }),
	},
})

func (c *KafkaCluster) Attributes(fields listing.Fieldset) map[string]any {
	var attributes = make(map[string]any, len(fields))

	for field := range fields {
		switch field {
		case FieldName:
			attributes[field] = c.Name
		case FieldNamespace:
			attributes[field] = c.Namespace
		case FieldCreationTimestamp:
			attributes[field] = c.CreationTimestamp
		case FieldBootstrapServers:
			attributes[field] = c.BootstrapServers
		case FieldAuthType:
			attributes[field] = c.AuthType
		case FieldNodes:
			attributes[field] = c.Nodes
		case FieldController:
			attributes[field] = c.Controller
		}
	}

	return attributes
}

// FromResource reads a Strimzi Kafka resource. Resources without a cluster id in their status are
// not ready and yield false.
func FromResource(obj *unstructured.Unstructured) (*KafkaCluster, bool) {
	clusterId, _, _ := unstructured.NestedString(obj.Object, "status", "clusterId")
	if clusterId == "" {
		return nil, false
	}

	var cluster = &KafkaCluster{
		Id:        clusterId,
		Name:      obj.GetName(),
		Namespace: obj.GetNamespace(),
	}

	if created := obj.GetCreationTimestamp(); !created.IsZero() {
		var timestamp = created.UTC().Format(time.RFC3339)
		cluster.CreationTimestamp = &timestamp
	}

	listeners, _, _ := unstructured.NestedSlice(obj.Object, "status", "listeners")
	for _, listener := range listeners {
		status, ok := listener.(map[string]any)
		if !ok {
			continue
		}

		servers, _, _ := unstructured.NestedString(status, "bootstrapServers")
		if servers == "" {
			continue
		}

		cluster.BootstrapServers = &servers
		listenerName, _, _ := unstructured.NestedString(status, "name")
		cluster.AuthType = listenerAuthType(obj, listenerName)
		break
	}

	return cluster, true
}

func listenerAuthType(obj *unstructured.Unstructured, listenerName string) *string {
	listeners, _, _ := unstructured.NestedSlice(obj.Object, "spec", "kafka", "listeners")
	for _, listener := range listeners {
		spec, ok := listener.(map[string]any)
		if !ok {
			continue
		}

		if name, _, _ := unstructured.NestedString(spec, "name"); name != listenerName {
			continue
		}

		if authType, found, _ := unstructured.NestedString(spec, "authentication", "type"); found && authType != "" {
			return &authType
		}
		return nil
	}
	return nil
}

// FromConfig converts a statically configured cluster.
func FromConfig(configured config.KafkaCluster) *KafkaCluster {
	var cluster = &KafkaCluster{
		Id:        configured.Id,
		Name:      configured.Name,
		Namespace: configured.Namespace,
	}

	if configured.BootstrapServers != "" {
		var servers = configured.BootstrapServers
		cluster.BootstrapServers = &servers
	}
	if configured.AuthType != "" {
		var authType = configured.AuthType
		cluster.AuthType = &authType
	}
	if cluster.Name == "" {
		cluster.Name = configured.Id
	}

	return cluster
}
