// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/telekom/kafka-console-api/internal/config"
	"github.com/telekom/kafka-console-api/internal/utils"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// RedisStore writes every resource as a RedisJSON document below "<dataset>:".
type RedisStore struct {
	client  *redis.Client
	ctx     context.Context
	dataset string
}

func (s *RedisStore) Initialize(ctx context.Context) error {
	var redisConfig = config.Current.Store.Redis

	s.ctx = context.Background()
	s.client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisConfig.Host, redisConfig.Port),
		Username: redisConfig.Username,
		Password: redisConfig.Password,
		DB:       redisConfig.Database,
	})

	log.Debug().Msg("Trying to reach redis...")
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("could not reach redis: %w", err)
	}

	log.Info().Msg("Redis connection established...")

	for _, cmd := range redisConfig.InitCommands {
		log.Debug().Fields(map[string]any{
			"command": cmd,
		}).Msg("Executing init command")

		args := utils.AsAnySlice(strings.Split(cmd, " "))
		if err := s.client.Do(ctx, args...).Err(); err != nil {
			if err.Error() != "Index already exists" {
				log.Warn().Err(err).Msg("Could not execute init command!")
			}
		}
	}

	return nil
}

func (s *RedisStore) Create(obj *unstructured.Unstructured) error {
	if s.client == nil {
		return ErrNotInitialized
	}

	if err := s.client.JSONSet(s.ctx, s.key(utils.ObjectKey(obj)), "$", obj.Object).Err(); err != nil {
		log.Error().Fields(utils.GetFieldsOfObject(obj)).Err(err).Msg("Could not write resource to store!")
		return err
	}
	return nil
}

func (s *RedisStore) Update(oldObj *unstructured.Unstructured, newObj *unstructured.Unstructured) error {
	if utils.ObjectKey(oldObj) != utils.ObjectKey(newObj) {
		if err := s.Delete(oldObj); err != nil {
			return err
		}
	}
	return s.Create(newObj)
}

func (s *RedisStore) Delete(obj *unstructured.Unstructured) error {
	if s.client == nil {
		return ErrNotInitialized
	}

	if err := s.client.JSONDel(s.ctx, s.key(utils.ObjectKey(obj)), "$").Err(); err != nil {
		log.Error().Fields(utils.GetFieldsOfObject(obj)).Err(err).Msg("Could not delete resource from store!")
		return err
	}
	return nil
}

func (s *RedisStore) Read(ctx context.Context, key string) (*unstructured.Unstructured, error) {
	if s.client == nil {
		return nil, ErrNotInitialized
	}

	document, err := s.client.JSONGet(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) || (err == nil && document == "") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var obj = new(unstructured.Unstructured)
	if err := obj.UnmarshalJSON([]byte(document)); err != nil {
		return nil, err
	}
	return obj, nil
}

func (s *RedisStore) List(ctx context.Context) ([]unstructured.Unstructured, error) {
	if s.client == nil {
		return nil, ErrNotInitialized
	}

	var items = make([]unstructured.Unstructured, 0)

	var iterator = s.client.Scan(ctx, 0, s.key("*"), 100).Iterator()
	for iterator.Next(ctx) {
		obj, err := s.Read(ctx, strings.TrimPrefix(iterator.Val(), s.key("")))
		if err != nil {
			return nil, err
		}
		if obj != nil {
			items = append(items, *obj)
		}
	}

	return items, iterator.Err()
}

func (s *RedisStore) Shutdown() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

func (s *RedisStore) Connected() bool {
	return s.client != nil && s.client.Ping(s.ctx).Err() == nil
}

func (s *RedisStore) key(key string) string {
	return s.dataset + ":" + key
}
