// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"sync"

	"github.com/telekom/kafka-console-api/internal/utils"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// MemoryStore keeps resources in process. Stored and returned objects are deep copies.
type MemoryStore struct {
	mu        sync.RWMutex
	resources map[string]*unstructured.Unstructured
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{resources: make(map[string]*unstructured.Unstructured)}
}

func (s *MemoryStore) Initialize(context.Context) error {
	return nil
}

func (s *MemoryStore) Create(obj *unstructured.Unstructured) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resources[utils.ObjectKey(obj)] = obj.DeepCopy()
	return nil
}

func (s *MemoryStore) Update(oldObj *unstructured.Unstructured, newObj *unstructured.Unstructured) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.resources, utils.ObjectKey(oldObj))
	s.resources[utils.ObjectKey(newObj)] = newObj.DeepCopy()
	return nil
}

func (s *MemoryStore) Delete(obj *unstructured.Unstructured) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.resources, utils.ObjectKey(obj))
	return nil
}

func (s *MemoryStore) Read(_ context.Context, key string) (*unstructured.Unstructured, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if obj, ok := s.resources[key]; ok {
		return obj.DeepCopy(), nil
	}
	return nil, nil
}

func (s *MemoryStore) List(context.Context) ([]unstructured.Unstructured, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items = make([]unstructured.Unstructured, 0, len(s.resources))
	for _, obj := range s.resources {
		items = append(items, *obj.DeepCopy())
	}
	return items, nil
}

func (s *MemoryStore) Shutdown() {}

func (s *MemoryStore) Connected() bool {
	return true
}
