// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/telekom/kafka-console-api/internal/config"
	"github.com/telekom/kafka-console-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// MongoStore keeps one document per resource in the collection named after the dataset. The
// resource itself is stored as JSON text so it round-trips without bson type conversions.
type MongoStore struct {
	client  *mongo.Client
	dataset string
}

type mongoDocument struct {
	Id     string `bson:"_id"`
	Object string `bson:"object"`
}

func (m *MongoStore) Initialize(ctx context.Context) error {
	var err error
	m.client, err = mongo.Connect(ctx, options.Client().ApplyURI(config.Current.Store.Mongo.Uri))
	if err != nil {
		return fmt.Errorf("could not create mongo-store: %w", err)
	}

	if err := m.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("could not reach mongodb: %w", err)
	}

	log.Info().Str("collection", m.dataset).Msg("MongoDB connection established...")
	return nil
}

func (m *MongoStore) Create(obj *unstructured.Unstructured) error {
	if m.client == nil {
		return ErrNotInitialized
	}

	json, err := obj.MarshalJSON()
	if err != nil {
		log.Error().Fields(utils.GetFieldsOfObject(obj)).Err(err).Msg("Could not marshal resource to json string!")
		return err
	}

	var key = utils.ObjectKey(obj)
	_, err = m.collection().ReplaceOne(context.Background(), bson.M{"_id": key},
		mongoDocument{Id: key, Object: string(json)}, options.Replace().SetUpsert(true))
	if err != nil {
		log.Warn().Fields(utils.CreateFieldsForOp("add", obj)).Err(err).Msg("Could not add object to MongoDB")
		return err
	}

	log.Debug().Fields(utils.CreateFieldsForOp("add", obj)).Msg("Object added to MongoDB")
	return nil
}

func (m *MongoStore) Update(oldObj *unstructured.Unstructured, newObj *unstructured.Unstructured) error {
	if utils.ObjectKey(oldObj) != utils.ObjectKey(newObj) {
		if err := m.Delete(oldObj); err != nil {
			return err
		}
	}
	return m.Create(newObj)
}

func (m *MongoStore) Delete(obj *unstructured.Unstructured) error {
	if m.client == nil {
		return ErrNotInitialized
	}

	_, err := m.collection().DeleteOne(context.Background(), bson.M{"_id": utils.ObjectKey(obj)})
	if err != nil {
		log.Warn().Fields(utils.CreateFieldsForOp("delete", obj)).Err(err).Msg("Could not delete object from MongoDB")
		return err
	}
	return nil
}

func (m *MongoStore) Read(ctx context.Context, key string) (*unstructured.Unstructured, error) {
	if m.client == nil {
		return nil, ErrNotInitialized
	}

	var document mongoDocument
	if err := m.collection().FindOne(ctx, bson.M{"_id": key}).Decode(&document); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return decodeDocument(document)
}

func (m *MongoStore) List(ctx context.Context) ([]unstructured.Unstructured, error) {
	if m.client == nil {
		return nil, ErrNotInitialized
	}

	cursor, err := m.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var documents []mongoDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, err
	}

	var items = make([]unstructured.Unstructured, 0, len(documents))
	for _, document := range documents {
		obj, err := decodeDocument(document)
		if err != nil {
			log.Warn().Str("_id", document.Id).Err(err).Msg("Skipping undecodable document")
			continue
		}
		items = append(items, *obj)
	}
	return items, nil
}

func (m *MongoStore) Shutdown() {
	if m.client != nil {
		_ = m.client.Disconnect(context.Background())
	}
}

func (m *MongoStore) Connected() bool {
	return m.client != nil && m.client.Ping(context.Background(), nil) == nil
}

func (m *MongoStore) collection() *mongo.Collection {
	return m.client.Database(config.Current.Store.Mongo.Database).Collection(m.dataset)
}

func decodeDocument(document mongoDocument) (*unstructured.Unstructured, error) {
	var obj = new(unstructured.Unstructured)
	if err := obj.UnmarshalJSON([]byte(document.Object)); err != nil {
		return nil, err
	}
	return obj, nil
}
