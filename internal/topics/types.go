// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package topics

import (
	"github.com/telekom/kafka-console-api/internal/kafka"
	"github.com/telekom/kafka-console-api/internal/listing"
	"github.com/telekom/kafka-console-api/internal/model"
)

const Kind = "topics"

const (
	FieldName          = "name"
	FieldInternal      = "internal"
	FieldNumPartitions = "numPartitions"
	FieldPartitions    = "partitions"
	FieldConfigs       = "configs"
)

var (
	AllFields       = []string{FieldName, FieldInternal, FieldNumPartitions, FieldPartitions, FieldConfigs}
	ListDefault     = []string{FieldName, FieldInternal, FieldNumPartitions}
	DescribeDefault = []string{FieldName, FieldInternal, FieldNumPartitions, FieldPartitions}
)

type Topic struct {
	model.Errors

	Id            string
	Name          string
	Internal      bool
	NumPartitions int
	Partitions    []Partition
	Configs       map[string]kafka.ConfigEntry
}

type Partition struct {
	Partition       int32   `json:"partition"`
	LeaderId        int32   `json:"leaderId"`
	Replicas        []int32 `json:"replicas"`
	Isr             []int32 `json:"isr"`
	OfflineReplicas []int32 `json:"offlineReplicas"`
	EarliestOffset  *int64  `json:"earliestOffset"`
	LatestOffset    *int64  `json:"latestOffset"`
}

var Registry = listing.NewRegistry(listing.Definition[*Topic]{
	Kind: Kind,
	ID: func(topic *Topic) string {
		return topic.Id
	},
	Stub: func(id string) (*Topic, error) {
		return &Topic{Id: id}, nil
	},
	Fields: []listing.Field[*Topic]{
		listing.StringField(FieldName,
			func(topic *Topic) string { return topic.Name },
			func(topic *Topic, name string) { topic.Name = name }),
		listing.BoolField(FieldInternal,
			func(topic *Topic) bool { return topic.Internal },
			func(topic *Topic, internal bool) { topic.Internal = internal }),
		listing.IntField(FieldNumPartitions,
			func(topic *Topic) int { return topic.NumPartitions },
			func(topic *Topic, count int) { topic.NumPartitions = count }),
	},
})

func (t *Topic) Attributes(fields listing.Fieldset) map[string]any {
	var attributes = make(map[string]any, len(fields))

	for field := range fields {
		switch field {
		case FieldName:
			attributes[field] = t.Name
		case FieldInternal:
			attributes[field] = t.Internal
		case FieldNumPartitions:
			attributes[field] = t.NumPartitions
		case FieldPartitions:
			attributes[field] = t.Partitions
		case FieldConfigs:
			attributes[field] = t.Configs
		}
	}

	return attributes
}
