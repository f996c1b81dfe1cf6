// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Store keeps the discovered Kafka custom resources. Keys are "namespace/name".
type Store interface {
	Initialize(ctx context.Context) error
	Create(obj *unstructured.Unstructured) error
	Update(oldObj *unstructured.Unstructured, newObj *unstructured.Unstructured) error
	Delete(obj *unstructured.Unstructured) error
	Read(ctx context.Context, key string) (*unstructured.Unstructured, error)
	List(ctx context.Context) ([]unstructured.Unstructured, error)
	Shutdown()
	Connected() bool
}

func createStore(storeType string, dataset string) (Store, error) {
	switch strings.ToLower(storeType) {

	case "memory":
		return NewMemoryStore(), nil

	case "redis":
		return &RedisStore{dataset: dataset}, nil

	case "hazelcast":
		return &HazelcastStore{dataset: dataset}, nil

	case "mongo":
		return &MongoStore{dataset: dataset}, nil

	default:
		return nil, ErrUnknownStoreType

	}
}
