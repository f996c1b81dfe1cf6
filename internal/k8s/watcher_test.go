// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package k8s

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/telekom/kafka-console-api/internal/metrics"
	"github.com/telekom/kafka-console-api/internal/store"
	"github.com/telekom/kafka-console-api/internal/test"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

const (
	waitFor = 5 * time.Second
	tick    = 20 * time.Millisecond
)

func TestMain(m *testing.M) {
	test.InstallLogRecorder()
	os.Exit(m.Run())
}

func clusterIdOf(target store.Store, key string) string {
	obj, err := target.Read(context.Background(), key)
	if err != nil || obj == nil {
		return ""
	}
	clusterId, _, _ := unstructured.NestedString(obj.Object, "status", "clusterId")
	return clusterId
}

func TestResourceWatcher(t *testing.T) {
	var assertions = assert.New(t)
	defer test.LogRecorder.Reset()

	var ctx = context.Background()
	var target = store.NewMemoryStore()
	var client = test.CreateTestKubernetesClient(test.CreateKafkaResource("prod", "kafka", "c-prod", "prod:9093"))
	var resources = client.Resource(test.KafkaResource).Namespace("kafka")
	var initialGauge = testutil.ToFloat64(metrics.KafkaResources())

	watcher, err := NewResourceWatcher(client, target, test.KafkaResource, "kafka", 0)
	assertions.NoError(err)

	go watcher.Start()
	defer watcher.Stop()

	assertions.Eventually(watcher.HasSynced, waitFor, tick)
	assertions.Eventually(func() bool {
		return clusterIdOf(target, "kafka/prod") == "c-prod"
	}, waitFor, tick, "existing resource should be stored after the initial list")

	t.Run("add", func(t *testing.T) {
		_, err := resources.Create(ctx, test.CreateKafkaResource("dev", "kafka", "c-dev", "dev:9093"), metav1.CreateOptions{})
		assertions.NoError(err)

		assertions.Eventually(func() bool {
			return clusterIdOf(target, "kafka/dev") == "c-dev"
		}, waitFor, tick)
		assertions.Eventually(func() bool {
			return testutil.ToFloat64(metrics.KafkaResources()) == initialGauge+2
		}, waitFor, tick)
	})

	t.Run("update", func(t *testing.T) {
		var updated = test.CreateKafkaResource("dev", "kafka", "c-dev-2", "dev:9093")
		updated.SetResourceVersion("2")

		_, err := resources.Update(ctx, updated, metav1.UpdateOptions{})
		assertions.NoError(err)

		assertions.Eventually(func() bool {
			return clusterIdOf(target, "kafka/dev") == "c-dev-2"
		}, waitFor, tick)
	})

	t.Run("delete", func(t *testing.T) {
		assertions.NoError(resources.Delete(ctx, "dev", metav1.DeleteOptions{}))

		assertions.Eventually(func() bool {
			obj, err := target.Read(ctx, "kafka/dev")
			return err == nil && obj == nil
		}, waitFor, tick)
		assertions.Eventually(func() bool {
			return testutil.ToFloat64(metrics.KafkaResources()) == initialGauge+1
		}, waitFor, tick)
	})

	assertions.Equal(0, test.LogRecorder.GetRecordCount(zerolog.ErrorLevel, zerolog.PanicLevel), "found unexpected errors and/or panics in the logs")
}

func TestResourceWatcher_OtherNamespace(t *testing.T) {
	var assertions = assert.New(t)

	var target = store.NewMemoryStore()
	var client = test.CreateTestKubernetesClient(test.CreateKafkaResource("prod", "other", "c-prod", "prod:9093"))

	watcher, err := NewResourceWatcher(client, target, test.KafkaResource, "kafka", 0)
	assertions.NoError(err)

	go watcher.Start()
	defer watcher.Stop()

	assertions.Eventually(watcher.HasSynced, waitFor, tick)

	items, err := target.List(context.Background())
	assertions.NoError(err)
	assertions.Empty(items)
}

func TestResourceWatcher_IgnoresUnchangedVersion(t *testing.T) {
	var assertions = assert.New(t)
	defer test.LogRecorder.Reset()

	var target = store.NewMemoryStore()
	var watcher = &ResourceWatcher{store: target}

	var original = test.CreateKafkaResource("prod", "kafka", "c-prod", "prod:9093")
	watcher.add(original)

	var resync = test.CreateKafkaResource("prod", "kafka", "c-changed", "prod:9093")
	watcher.update(original, resync)
	assertions.Equal("c-prod", clusterIdOf(target, "kafka/prod"))

	watcher.update(original, "not a resource")
	assertions.Equal(1, test.LogRecorder.GetRecordCount(zerolog.WarnLevel))
}
