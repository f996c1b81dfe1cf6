// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"

	"github.com/hazelcast/hazelcast-go-client"
	"github.com/hazelcast/hazelcast-go-client/serialization"
	"github.com/rs/zerolog/log"
	"github.com/telekom/kafka-console-api/internal/config"
	"github.com/telekom/kafka-console-api/internal/utils"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// HazelcastStore keeps resources as JSON values of the map named after the dataset.
type HazelcastStore struct {
	client  *hazelcast.Client
	ctx     context.Context
	dataset string
}

func (s *HazelcastStore) Initialize(ctx context.Context) error {
	var hazelcastConfig = hazelcast.NewConfig()
	var err error

	hazelcastConfig.Cluster.Name = config.Current.Store.Hazelcast.ClusterName
	hazelcastConfig.Cluster.Network.SetAddresses(config.Current.Store.Hazelcast.Addresses...)
	hazelcastConfig.Logger.CustomLogger = utils.NewHazelcastZerologLogger()

	s.ctx = context.Background()
	s.client, err = hazelcast.StartNewClientWithConfig(ctx, hazelcastConfig)
	if err != nil {
		return fmt.Errorf("could not create hazelcast client: %w", err)
	}
	return nil
}

func (s *HazelcastStore) Create(obj *unstructured.Unstructured) error {
	cacheMap, err := s.getMap(s.ctx)
	if err != nil {
		return err
	}

	json, err := obj.MarshalJSON()
	if err != nil {
		log.Error().Fields(utils.GetFieldsOfObject(obj)).Err(err).Msg("Could not marshal resource to json string!")
		return err
	}

	if err := cacheMap.Set(s.ctx, utils.ObjectKey(obj), serialization.JSON(json)); err != nil {
		log.Error().Fields(utils.GetFieldsOfObject(obj)).Err(err).Msg("Could not write resource to store!")
		return err
	}
	return nil
}

func (s *HazelcastStore) Update(oldObj *unstructured.Unstructured, newObj *unstructured.Unstructured) error {
	if utils.ObjectKey(oldObj) != utils.ObjectKey(newObj) {
		if err := s.Delete(oldObj); err != nil {
			return err
		}
	}
	return s.Create(newObj)
}

func (s *HazelcastStore) Delete(obj *unstructured.Unstructured) error {
	cacheMap, err := s.getMap(s.ctx)
	if err != nil {
		return err
	}

	if err := cacheMap.Delete(s.ctx, utils.ObjectKey(obj)); err != nil {
		log.Error().Fields(utils.GetFieldsOfObject(obj)).Err(err).Msg("Could not delete resource from store!")
		return err
	}
	return nil
}

func (s *HazelcastStore) Read(ctx context.Context, key string) (*unstructured.Unstructured, error) {
	cacheMap, err := s.getMap(ctx)
	if err != nil {
		return nil, err
	}

	value, err := cacheMap.Get(ctx, key)
	if err != nil || value == nil {
		return nil, err
	}
	return decodeValue(value)
}

func (s *HazelcastStore) List(ctx context.Context) ([]unstructured.Unstructured, error) {
	cacheMap, err := s.getMap(ctx)
	if err != nil {
		return nil, err
	}

	values, err := cacheMap.GetValues(ctx)
	if err != nil {
		return nil, err
	}

	var items = make([]unstructured.Unstructured, 0, len(values))
	for _, value := range values {
		obj, err := decodeValue(value)
		if err != nil {
			log.Warn().Str("map", s.dataset).Err(err).Msg("Skipping undecodable map entry")
			continue
		}
		items = append(items, *obj)
	}
	return items, nil
}

func (s *HazelcastStore) Shutdown() {
	if s.client != nil {
		_ = s.client.Shutdown(context.Background())
	}
}

func (s *HazelcastStore) Connected() bool {
	return s.client != nil && s.client.Running()
}

func (s *HazelcastStore) getMap(ctx context.Context) (*hazelcast.Map, error) {
	if s.client == nil {
		return nil, ErrNotInitialized
	}

	cacheMap, err := s.client.GetMap(ctx, s.dataset)
	if err != nil {
		log.Error().Fields(map[string]any{
			"name": s.dataset,
		}).Err(err).Msg("Could not find map!")
		return nil, err
	}
	return cacheMap, nil
}

func decodeValue(value any) (*unstructured.Unstructured, error) {
	var data []byte
	switch typed := value.(type) {
	case serialization.JSON:
		data = typed
	case string:
		data = []byte(typed)
	default:
		return nil, fmt.Errorf("unexpected map value of type %T", value)
	}

	var obj = new(unstructured.Unstructured)
	if err := obj.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return obj, nil
}
