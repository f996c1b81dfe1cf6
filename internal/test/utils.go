// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package test

import (
	"context"
	"os"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic/fake"
)

var KafkaResource = schema.GroupVersionResource{
	Group:    "kafka.strimzi.io",
	Version:  "v1beta2",
	Resource: "kafkas",
}

// CreateKafkaResource creates a Strimzi Kafka resource. An empty clusterId leaves the status
// unset, like for a cluster that is not ready yet.
func CreateKafkaResource(name, namespace, clusterId, bootstrapServers string) *unstructured.Unstructured {
	resource := &unstructured.Unstructured{}
	resource.SetAPIVersion("kafka.strimzi.io/v1beta2")
	resource.SetKind("Kafka")
	resource.SetName(name)
	resource.SetNamespace(namespace)
	resource.SetResourceVersion("1")
	resource.SetCreationTimestamp(metav1.NewTime(time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)))

	_ = unstructured.SetNestedSlice(resource.Object, []any{
		map[string]any{"name": "plain", "port": int64(9092), "type": "internal", "tls": false},
		map[string]any{
			"name": "tls", "port": int64(9093), "type": "internal", "tls": true,
			"authentication": map[string]any{"type": "tls"},
		},
	}, "spec", "kafka", "listeners")

	if clusterId == "" {
		return resource
	}

	_ = unstructured.SetNestedField(resource.Object, clusterId, "status", "clusterId")
	_ = unstructured.SetNestedSlice(resource.Object, []any{
		map[string]any{"name": "tls", "bootstrapServers": bootstrapServers},
	}, "status", "listeners")

	return resource
}

// CreateTestKubernetesClient creates a fake dynamic client that serves Kafka resources.
func CreateTestKubernetesClient(objects ...runtime.Object) *fake.FakeDynamicClient {
	return fake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(), map[schema.GroupVersionResource]string{
		KafkaResource: "KafkaList",
	}, objects...)
}

// StaticSource serves a fixed list of Kafka resources.
type StaticSource struct {
	Resources []unstructured.Unstructured
	Err       error
}

func (s *StaticSource) List(_ context.Context) ([]unstructured.Unstructured, error) {
	return s.Resources, s.Err
}

func EnvOrDefault(name string, fallback string) string {
	value, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	return value
}
