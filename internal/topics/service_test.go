// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package topics

import (
	"context"
	"encoding/base64"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/telekom/kafka-console-api/internal/aggregate"
	"github.com/telekom/kafka-console-api/internal/listing"
	"github.com/telekom/kafka-console-api/internal/model"
	"github.com/telekom/kafka-console-api/internal/test"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
)

func TestMain(m *testing.M) {
	test.InstallLogRecorder()
	os.Exit(m.Run())
}

func topicId(id byte) string {
	var raw [16]byte
	raw[15] = id
	return base64.RawURLEncoding.EncodeToString(raw[:])
}

func newTestService() *Service {
	return NewService(aggregate.NewEngine(4, time.Second, nil))
}

func newTestAdmin() *test.FakeAdmin {
	return &test.FakeAdmin{
		Topics: test.Topics(
			test.Topic("orders", 1, 2),
			test.Topic("payments", 2, 1),
			test.Topic("__consumer_offsets", 3, 3),
		),
	}
}

func listContext(t *testing.T, request listing.Request) *listing.Context[*Topic] {
	listCtx, err := listing.NewContext(Registry, request)
	if err != nil {
		t.Fatalf("could not create listing context: %v", err)
	}
	return listCtx
}

func names(topics []*Topic) []string {
	var result = make([]string, 0, len(topics))
	for _, topic := range topics {
		result = append(result, topic.Name)
	}
	return result
}

func TestList(t *testing.T) {
	var assertions = assert.New(t)
	defer test.LogRecorder.Reset()

	var admin = newTestAdmin()
	page, err := newTestService().List(context.Background(), admin, listContext(t, listing.Request{
		Size:   10,
		Sort:   listing.ParseSort("name"),
		Fields: listing.NewFieldset(ListDefault...),
	}))

	assertions.NoError(err)
	assertions.Equal([]string{"__consumer_offsets", "orders", "payments"}, names(page.Items))
	assertions.Equal(topicId(3), page.Items[0].Id)
	assertions.True(page.Items[0].Internal)
	assertions.Equal(3, page.Items[0].NumPartitions)

	// offsets and configs were not requested
	assertions.Equal(0, admin.Calls("ListStartOffsets"))
	assertions.Equal(0, admin.Calls("ListEndOffsets"))
	assertions.Equal(0, admin.Calls("DescribeTopicConfigs"))
}

func TestList_Filtered(t *testing.T) {
	var assertions = assert.New(t)

	internal, _ := listing.ParseFilter(FieldInternal, "eq,false")
	page, err := newTestService().List(context.Background(), newTestAdmin(), listContext(t, listing.Request{
		Size:    10,
		Sort:    listing.ParseSort("-numPartitions"),
		Filters: []listing.Filter{internal},
		Fields:  listing.NewFieldset(ListDefault...),
	}))

	assertions.NoError(err)
	assertions.Equal([]string{"orders", "payments"}, names(page.Items))
	assertions.Equal(2, page.Total)
}

func TestList_SkipsTopicsWithoutMetadata(t *testing.T) {
	var assertions = assert.New(t)

	var admin = newTestAdmin()
	var broken = test.Topic("broken", 4, 1)
	broken.Err = kerr.TopicAuthorizationFailed
	admin.Topics["broken"] = broken

	page, err := newTestService().List(context.Background(), admin, listContext(t, listing.Request{Size: 10}))

	assertions.NoError(err)
	assertions.Equal(3, page.Total)
	assertions.NotContains(names(page.Items), "broken")
}

func TestList_MetadataFailure(t *testing.T) {
	var assertions = assert.New(t)

	var admin = &test.FakeAdmin{ListTopicsErr: test.ErrUnreachable}
	_, err := newTestService().List(context.Background(), admin, listContext(t, listing.Request{Size: 10}))

	var apiError *model.Error
	assertions.ErrorAs(err, &apiError)
	assertions.Equal(500, apiError.HttpStatus())
}

func TestDescribe_Partitions(t *testing.T) {
	var assertions = assert.New(t)

	var admin = newTestAdmin()
	admin.StartOffsets = test.Offsets(nil, "orders", 5, 7)
	admin.EndOffsets = test.Offsets(nil, "orders", 100, 200)

	topic, err := newTestService().Describe(context.Background(), admin, topicId(1), listing.NewFieldset(DescribeDefault...))

	assertions.NoError(err)
	assertions.Equal("orders", topic.Name)
	assertions.Empty(topic.ItemErrors())
	assertions.Len(topic.Partitions, 2)

	var first = topic.Partitions[0]
	assertions.Equal(int32(0), first.Partition)
	assertions.Equal(int32(1), first.LeaderId)
	assertions.Equal([]int32{1, 2}, first.Replicas)
	assertions.Equal([]int32{}, first.OfflineReplicas)
	assertions.Equal(int64(5), *first.EarliestOffset)
	assertions.Equal(int64(100), *first.LatestOffset)
	assertions.Equal(int64(200), *topic.Partitions[1].LatestOffset)

	assertions.Equal(0, admin.Calls("DescribeTopicConfigs"))
}

func TestDescribe_PartialOffsetFailure(t *testing.T) {
	var assertions = assert.New(t)

	var admin = newTestAdmin()
	admin.StartOffsets = test.Offsets(nil, "orders", 5, 7)
	admin.EndOffsets = test.Offsets(nil, "orders", 100, 200)
	admin.EndOffsets["orders"][1] = kadm.ListedOffset{Topic: "orders", Partition: 1, Err: kerr.NotLeaderForPartition}

	topic, err := newTestService().Describe(context.Background(), admin, topicId(1), listing.NewFieldset(FieldPartitions))

	assertions.NoError(err)
	assertions.Equal(int64(100), *topic.Partitions[0].LatestOffset)
	assertions.Nil(topic.Partitions[1].LatestOffset)
	assertions.Equal(int64(7), *topic.Partitions[1].EarliestOffset)

	assertions.Len(topic.ItemErrors(), 1)
	assertions.Equal("Unable to list latest offsets for topic/partition orders-1", topic.ItemErrors()[0].Title)
	assertions.Equal("/data/attributes/partitions", topic.ItemErrors()[0].Source.Pointer)
}

func TestDescribe_OffsetRequestFailure(t *testing.T) {
	var assertions = assert.New(t)

	var admin = newTestAdmin()
	admin.StartOffsetsErr = test.ErrUnreachable
	admin.EndOffsets = test.Offsets(nil, "payments", 9)

	topic, err := newTestService().Describe(context.Background(), admin, topicId(2), listing.NewFieldset(FieldPartitions))

	assertions.NoError(err)
	assertions.Len(topic.Partitions, 1)
	assertions.Nil(topic.Partitions[0].EarliestOffset)
	assertions.Equal(int64(9), *topic.Partitions[0].LatestOffset)
	assertions.Len(topic.ItemErrors(), 1)
	assertions.Equal(test.ErrUnreachable.Error(), topic.ItemErrors()[0].Detail)
}

func TestDescribe_Configs(t *testing.T) {
	var assertions = assert.New(t)

	var admin = newTestAdmin()
	admin.TopicConfigs = kadm.ResourceConfigs{
		{
			Name: "payments",
			Configs: []kadm.Config{
				test.ConfigValue("retention.ms", "604800000", false),
				test.ConfigValue("sasl.jaas.config", "secret", true),
			},
		},
	}

	topic, err := newTestService().Describe(context.Background(), admin, topicId(2), listing.NewFieldset(FieldName, FieldConfigs))

	assertions.NoError(err)
	assertions.Empty(topic.ItemErrors())
	assertions.Equal("604800000", *topic.Configs["retention.ms"].Value)
	assertions.Nil(topic.Configs["sasl.jaas.config"].Value)
	assertions.True(topic.Configs["sasl.jaas.config"].Sensitive)
	assertions.Nil(topic.Partitions[0].EarliestOffset)
}

func TestDescribe_ConfigsMissing(t *testing.T) {
	var assertions = assert.New(t)

	var admin = newTestAdmin()
	admin.TopicConfigs = kadm.ResourceConfigs{{Name: "payments", Err: kerr.TopicAuthorizationFailed}}

	topic, err := newTestService().Describe(context.Background(), admin, topicId(2), listing.NewFieldset(FieldConfigs))

	assertions.NoError(err)
	assertions.Nil(topic.Configs)
	assertions.Len(topic.ItemErrors(), 1)
	assertions.Equal("Unable to describe topic configs", topic.ItemErrors()[0].Title)

	var attributes = topic.Attributes(listing.NewFieldset(FieldConfigs))
	assertions.Contains(attributes, FieldConfigs)
	assertions.Nil(attributes[FieldConfigs])
}

func TestDescribe_NotFound(t *testing.T) {
	var assertions = assert.New(t)

	_, err := newTestService().Describe(context.Background(), newTestAdmin(), topicId(9), listing.NewFieldset(DescribeDefault...))

	var apiError *model.Error
	assertions.ErrorAs(err, &apiError)
	assertions.Equal(404, apiError.HttpStatus())
}

func TestDelete(t *testing.T) {
	var assertions = assert.New(t)

	t.Run("deleted", func(t *testing.T) {
		var admin = newTestAdmin()
		admin.DeletedTopics = kadm.DeleteTopicResponses{"orders": {Topic: "orders"}}

		assertions.NoError(newTestService().Delete(context.Background(), admin, topicId(1)))
		assertions.Equal(1, admin.Calls("DeleteTopics"))
	})

	t.Run("unknown id", func(t *testing.T) {
		var admin = newTestAdmin()

		var apiError *model.Error
		assertions.ErrorAs(newTestService().Delete(context.Background(), admin, topicId(9)), &apiError)
		assertions.Equal(404, apiError.HttpStatus())
		assertions.Equal(0, admin.Calls("DeleteTopics"))
	})

	t.Run("deleted concurrently", func(t *testing.T) {
		var admin = newTestAdmin()
		admin.DeletedTopics = kadm.DeleteTopicResponses{"orders": {Topic: "orders", Err: kerr.UnknownTopicOrPartition}}

		var apiError *model.Error
		assertions.ErrorAs(newTestService().Delete(context.Background(), admin, topicId(1)), &apiError)
		assertions.Equal(404, apiError.HttpStatus())
	})

	t.Run("not authorized", func(t *testing.T) {
		var admin = newTestAdmin()
		admin.DeletedTopics = kadm.DeleteTopicResponses{"orders": {Topic: "orders", Err: kerr.TopicAuthorizationFailed}}

		var apiError *model.Error
		assertions.ErrorAs(newTestService().Delete(context.Background(), admin, topicId(1)), &apiError)
		assertions.Equal(500, apiError.HttpStatus())
	})
}

func TestAttributes(t *testing.T) {
	var assertions = assert.New(t)

	var topic = &Topic{Name: "orders", NumPartitions: 2}

	assertions.Equal(map[string]any{
		FieldName:          "orders",
		FieldNumPartitions: 2,
	}, topic.Attributes(listing.NewFieldset(FieldName, FieldNumPartitions)))
}
