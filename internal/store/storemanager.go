// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

type DualStore interface {
	Store
	GetPrimary() Store
	GetSecondary() Store
}

// DualStoreManager writes to a primary and an optional secondary store and reads from the primary.
type DualStoreManager struct {
	primary      Store
	secondary    Store
	mu           sync.RWMutex
	errorHandler ErrorHandler
	writes       sync.WaitGroup
}

// ErrorHandler handles dual store operation errors
type ErrorHandler interface {
	HandlePrimaryError(operation string, err error) error
	HandleSecondaryError(operation string, err error)
}

type DefaultErrorHandler struct{}

func (h *DefaultErrorHandler) HandlePrimaryError(operation string, err error) error {
	return err
}

func (h *DefaultErrorHandler) HandleSecondaryError(operation string, err error) {
	log.Warn().Err(err).Str("operation", operation).Msg("Secondary store operation failed")
}

// SetupStoreManager creates and initializes the stores of dataset. The secondary store is skipped
// when it is empty or equals the primary store type.
func SetupStoreManager(ctx context.Context, dataset string, primaryType string, secondaryType string) (DualStore, error) {
	if primaryType == "" {
		return nil, ErrUnknownStoreType
	}

	primary, err := createStore(primaryType, dataset)
	if err != nil {
		return nil, err
	}

	var secondary Store
	if secondaryType != "" && secondaryType != primaryType {
		secondary, err = createStore(secondaryType, dataset)
		if err != nil {
			return nil, err
		}
	}

	var manager = &DualStoreManager{
		primary:      primary,
		secondary:    secondary,
		errorHandler: new(DefaultErrorHandler),
	}

	if err := manager.Initialize(ctx); err != nil {
		return nil, err
	}

	log.Info().Fields(map[string]any{
		"dataset":       dataset,
		"primaryType":   primaryType,
		"secondaryType": secondaryType,
	}).Msg("Store manager initialized")
	return manager, nil
}

func (m *DualStoreManager) Initialize(ctx context.Context) error {
	if err := m.primary.Initialize(ctx); err != nil {
		return err
	}
	if m.secondary != nil {
		if err := m.secondary.Initialize(ctx); err != nil {
			m.errorHandler.HandleSecondaryError("Initialize", err)
			m.secondary = nil
		}
	}
	return nil
}

func (m *DualStoreManager) Create(obj *unstructured.Unstructured) error {
	return m.write("Create", func(store Store) error {
		return store.Create(obj)
	})
}

func (m *DualStoreManager) Update(oldObj *unstructured.Unstructured, newObj *unstructured.Unstructured) error {
	return m.write("Update", func(store Store) error {
		return store.Update(oldObj, newObj)
	})
}

func (m *DualStoreManager) Delete(obj *unstructured.Unstructured) error {
	return m.write("Delete", func(store Store) error {
		return store.Delete(obj)
	})
}

func (m *DualStoreManager) write(operation string, apply func(store Store) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var primaryErr error
	if primaryErr = apply(m.primary); primaryErr != nil {
		primaryErr = m.errorHandler.HandlePrimaryError(operation, primaryErr)
	}

	if m.secondary != nil {
		var secondary = m.secondary
		m.writes.Go(func() {
			if secondaryErr := apply(secondary); secondaryErr != nil {
				m.errorHandler.HandleSecondaryError(operation, secondaryErr)
			}
		})
	}

	return primaryErr
}

func (m *DualStoreManager) Read(ctx context.Context, key string) (*unstructured.Unstructured, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.primary.Connected() {
		return m.primary.Read(ctx, key)
	}
	return nil, ErrNoConnectedStore
}

func (m *DualStoreManager) List(ctx context.Context) ([]unstructured.Unstructured, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.primary.Connected() {
		return m.primary.List(ctx)
	}
	return nil, ErrNoConnectedStore
}

// Shutdown waits for pending secondary writes before closing both stores.
func (m *DualStoreManager) Shutdown() {
	m.writes.Wait()

	m.primary.Shutdown()
	if m.secondary != nil {
		m.secondary.Shutdown()
	}
}

func (m *DualStoreManager) Connected() bool {
	return m.primary.Connected()
}

func (m *DualStoreManager) GetPrimary() Store {
	return m.primary
}

func (m *DualStoreManager) GetSecondary() Store {
	return m.secondary
}
