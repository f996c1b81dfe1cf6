// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package test

import (
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kmsg"
)

func Brokers(ids ...int32) kadm.BrokerDetails {
	var brokers = make(kadm.BrokerDetails, 0, len(ids))
	for _, id := range ids {
		brokers = append(brokers, kadm.BrokerDetail{
			NodeID: id,
			Host:   fmt.Sprintf("broker-%d.kafka.local", id),
			Port:   9092,
		})
	}
	return brokers
}

// Topic creates the details of a topic whose partitions are led by broker 1.
func Topic(name string, id byte, partitions int32) kadm.TopicDetail {
	var details = make(kadm.PartitionDetails, partitions)
	for p := range partitions {
		details[p] = kadm.PartitionDetail{
			Topic:     name,
			Partition: p,
			Leader:    1,
			Replicas:  []int32{1, 2},
			ISR:       []int32{1, 2},
		}
	}

	var topicId kadm.TopicID
	topicId[15] = id

	return kadm.TopicDetail{
		Topic:      name,
		ID:         topicId,
		IsInternal: len(name) > 0 && name[0] == '_',
		Partitions: details,
	}
}

func Topics(topics ...kadm.TopicDetail) kadm.TopicDetails {
	var details = make(kadm.TopicDetails, len(topics))
	for _, topic := range topics {
		details[topic.Topic] = topic
	}
	return details
}

// Offsets lists the given offset for every partition of topic, starting at partition 0.
func Offsets(listed kadm.ListedOffsets, topic string, offsets ...int64) kadm.ListedOffsets {
	if listed == nil {
		listed = make(kadm.ListedOffsets)
	}

	var partitions = make(map[int32]kadm.ListedOffset, len(offsets))
	for p, offset := range offsets {
		partitions[int32(p)] = kadm.ListedOffset{
			Topic:     topic,
			Partition: int32(p),
			Offset:    offset,
		}
	}
	listed[topic] = partitions
	return listed
}

func ConfigValue(key string, value string, sensitive bool) kadm.Config {
	return kadm.Config{
		Key:       key,
		Value:     &value,
		Sensitive: sensitive,
		Source:    kmsg.ConfigSourceDynamicTopicConfig,
	}
}

func Group(id string, state string, protocolType string) kadm.ListedGroup {
	return kadm.ListedGroup{
		Coordinator:  1,
		Group:        id,
		ProtocolType: protocolType,
		State:        state,
	}
}

func Groups(groups ...kadm.ListedGroup) kadm.ListedGroups {
	var listed = make(kadm.ListedGroups, len(groups))
	for _, group := range groups {
		listed[group.Group] = group
	}
	return listed
}
