// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package k8s

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/telekom/kafka-console-api/internal/metrics"
	"github.com/telekom/kafka-console-api/internal/store"
	"github.com/telekom/kafka-console-api/internal/utils"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/tools/cache"
)

// ResourceWatcher mirrors the Kafka custom resources of a namespace into a store.
type ResourceWatcher struct {
	resource schema.GroupVersionResource
	store    store.Store
	informer cache.SharedIndexInformer
	stopChan chan struct{}
}

func NewResourceWatcher(
	client dynamic.Interface,
	target store.Store,
	resource schema.GroupVersionResource,
	namespace string,
	reSyncPeriod time.Duration,
) (*ResourceWatcher, error) {

	var informer = createInformer(client, resource, namespace, reSyncPeriod)
	var watcher = ResourceWatcher{
		resource: resource,
		store:    target,
		informer: informer,
		stopChan: make(chan struct{}),
	}

	err := informer.SetWatchErrorHandler(func(r *cache.Reflector, err error) {
		log.Warn().Fields(utils.CreateFieldForResource(&resource)).Err(err).Msg("Watch of resource failed, retrying")
	})
	if err != nil {
		return nil, err
	}

	_, err = informer.AddEventHandler(cache.ResourceEventHandlerFuncs{
		AddFunc:    watcher.add,
		UpdateFunc: watcher.update,
		DeleteFunc: watcher.delete,
	})

	return &watcher, err
}

func (w *ResourceWatcher) add(obj any) {
	uObj, ok := obj.(*unstructured.Unstructured)
	if !ok {
		w.unexpected("add", obj)
		return
	}

	if err := w.store.Create(uObj); err != nil {
		log.Error().Fields(utils.CreateFieldsForOp("add", uObj)).Err(err).Msg("Could not store dataset")
		return
	}

	metrics.KafkaResources().Inc()
	log.Debug().Fields(utils.CreateFieldsForOp("add", uObj)).Msg("Added dataset")
}

func (w *ResourceWatcher) update(oldObj any, newObj any) {
	uOldObj, oldOk := oldObj.(*unstructured.Unstructured)
	uNewObj, newOk := newObj.(*unstructured.Unstructured)
	if !oldOk || !newOk {
		w.unexpected("update", newObj)
		return
	}

	if uNewObj.GetResourceVersion() == uOldObj.GetResourceVersion() {
		return
	}

	if err := w.store.Update(uOldObj, uNewObj); err != nil {
		log.Error().Fields(utils.CreateFieldsForOp("update", uNewObj)).Err(err).Msg("Could not update dataset")
		return
	}

	log.Debug().Fields(utils.CreateFieldsForOp("update", uNewObj)).Msg("Updated dataset")
}

func (w *ResourceWatcher) delete(obj any) {
	if tombstone, ok := obj.(cache.DeletedFinalStateUnknown); ok {
		obj = tombstone.Obj
	}

	uObj, ok := obj.(*unstructured.Unstructured)
	if !ok {
		w.unexpected("delete", obj)
		return
	}

	if err := w.store.Delete(uObj); err != nil {
		log.Error().Fields(utils.CreateFieldsForOp("delete", uObj)).Err(err).Msg("Could not delete dataset")
		return
	}

	metrics.KafkaResources().Dec()
	log.Debug().Fields(utils.CreateFieldsForOp("delete", uObj)).Msg("Deleted dataset")
}

func (w *ResourceWatcher) unexpected(operation string, obj any) {
	log.Warn().Fields(map[string]any{
		"object":    fmt.Sprintf("%+v", obj),
		"operation": operation,
	}).Msg("Encountered unexpected object in informer!")
}

// Start runs the informer until Stop is called.
func (w *ResourceWatcher) Start() {
	log.Info().Fields(utils.CreateFieldForResource(&w.resource)).Msg("Resource watcher started")
	w.informer.Run(w.stopChan)
	log.Info().Fields(utils.CreateFieldForResource(&w.resource)).Msg("Resource watcher stopped!")
}

func (w *ResourceWatcher) HasSynced() bool {
	return w.informer.HasSynced()
}

func (w *ResourceWatcher) Stop() {
	close(w.stopChan)
}
