// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package k8s

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/telekom/kafka-console-api/internal/store"
	"github.com/telekom/kafka-console-api/internal/utils"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
)

// FallbackSource lists the Kafka resources from the store. Until the watcher has synced, or while
// the store fails, the resources are listed from the cluster instead.
type FallbackSource struct {
	client    dynamic.Interface
	store     store.Store
	synced    func() bool
	resource  schema.GroupVersionResource
	namespace string
}

func NewFallbackSource(
	client dynamic.Interface,
	target store.Store,
	synced func() bool,
	resource schema.GroupVersionResource,
	namespace string,
) *FallbackSource {
	return &FallbackSource{
		client:    client,
		store:     target,
		synced:    synced,
		resource:  resource,
		namespace: namespace,
	}
}

func (s *FallbackSource) List(ctx context.Context) ([]unstructured.Unstructured, error) {
	if s.synced() {
		items, err := s.store.List(ctx)
		if err == nil {
			return items, nil
		}
		log.Warn().Fields(utils.CreateFieldForResource(&s.resource)).Err(err).Msg("Could not list resources from store, falling back to kubernetes")
	}

	list, err := s.client.Resource(s.resource).Namespace(s.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}

	log.Debug().Fields(utils.CreateFieldForResource(&s.resource)).Int("count", len(list.Items)).Msg("Listed resources from kubernetes")
	return list.Items, nil
}
