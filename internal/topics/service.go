// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package topics

import (
	"cmp"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/telekom/kafka-console-api/internal/aggregate"
	"github.com/telekom/kafka-console-api/internal/kafka"
	"github.com/telekom/kafka-console-api/internal/listing"
	"github.com/telekom/kafka-console-api/internal/model"
	"github.com/twmb/franz-go/pkg/kadm"
)

const (
	configsTitle         = "Unable to describe topic configs"
	earliestOffsetsTitle = "Unable to list earliest offsets for topic/partition"
	latestOffsetsTitle   = "Unable to list latest offsets for topic/partition"
	earliestField        = "earliestOffsets"
	latestField          = "latestOffsets"
)

var (
	errNoOffset  = errors.New("no offset returned")
	errNoConfigs = errors.New("no configs returned")
)

type Service struct {
	engine *aggregate.Engine
}

func NewService(engine *aggregate.Engine) *Service {
	return &Service{engine: engine}
}

func (s *Service) List(ctx context.Context, admin kafka.Admin, listCtx *listing.Context[*Topic]) (listing.Page[*Topic], error) {
	topics, err := s.listTopics(ctx, admin)
	if err != nil {
		return listing.Page[*Topic]{}, err
	}

	topics = listCtx.Filter(topics)
	s.aggregate(ctx, admin, topics, listCtx.Fields())

	return listCtx.Page(topics), nil
}

func (s *Service) Describe(ctx context.Context, admin kafka.Admin, topicId string, fields listing.Fieldset) (*Topic, error) {
	topic, err := s.find(ctx, admin, topicId)
	if err != nil {
		return nil, err
	}

	s.aggregate(ctx, admin, []*Topic{topic}, fields)
	return topic, nil
}

func (s *Service) Delete(ctx context.Context, admin kafka.Admin, topicId string) error {
	topic, err := s.find(ctx, admin, topicId)
	if err != nil {
		return err
	}

	responses, err := admin.DeleteTopics(ctx, topic.Name)
	if err != nil && len(responses) == 0 {
		return kafka.AsApiError(err)
	}

	response, ok := responses[topic.Name]
	switch {
	case !ok:
		return model.NewOccurrence(model.ServerError, fmt.Errorf("no delete response for topic %s", topic.Name))
	case response.Err == nil:
		log.Info().Str("topic", topic.Name).Str("topicId", topicId).Msg("Topic deleted")
		return nil
	case kafka.IsNotFound(response.Err):
		return model.Errorf(model.ResourceNotFound, "No such topic: %s", topicId)
	default:
		return kafka.AsApiError(response.Err)
	}
}

func (s *Service) find(ctx context.Context, admin kafka.Admin, topicId string) (*Topic, error) {
	topics, err := s.listTopics(ctx, admin)
	if err != nil {
		return nil, err
	}

	var index = slices.IndexFunc(topics, func(topic *Topic) bool {
		return topic.Id == topicId
	})
	if index < 0 {
		return nil, model.Errorf(model.ResourceNotFound, "No such topic: %s", topicId)
	}
	return topics[index], nil
}

// listTopics reads topic metadata. Topics the cluster could not describe are skipped since they
// carry no usable id.
func (s *Service) listTopics(ctx context.Context, admin kafka.Admin) ([]*Topic, error) {
	details, err := admin.ListTopicsWithInternal(ctx)
	if err != nil && len(details) == 0 {
		return nil, kafka.AsApiError(err)
	}

	var topics = make([]*Topic, 0, len(details))
	for name, detail := range details {
		if detail.Err != nil {
			log.Warn().Err(detail.Err).Str("topic", name).Msg("Skipping topic without metadata")
			continue
		}
		topics = append(topics, newTopic(detail))
	}

	return topics, nil
}

func newTopic(detail kadm.TopicDetail) *Topic {
	var topic = &Topic{
		Id:            base64.RawURLEncoding.EncodeToString(detail.ID[:]),
		Name:          detail.Topic,
		Internal:      detail.IsInternal,
		NumPartitions: len(detail.Partitions),
		Partitions:    make([]Partition, 0, len(detail.Partitions)),
	}

	for _, partition := range detail.Partitions {
		topic.Partitions = append(topic.Partitions, Partition{
			Partition:       partition.Partition,
			LeaderId:        partition.Leader,
			Replicas:        orEmpty(partition.Replicas),
			Isr:             orEmpty(partition.ISR),
			OfflineReplicas: orEmpty(partition.OfflineReplicas),
		})
	}

	slices.SortFunc(topic.Partitions, func(a, b Partition) int {
		return cmp.Compare(a.Partition, b.Partition)
	})
	return topic
}

func (s *Service) aggregate(ctx context.Context, admin kafka.Admin, topics []*Topic, fields listing.Fieldset) {
	if len(topics) == 0 {
		return
	}

	var entities = make(map[string]*Topic, len(topics))
	var ids = make([]string, 0, len(topics))
	for _, topic := range topics {
		entities[topic.Id] = topic
		ids = append(ids, topic.Id)
	}

	var tasks = make([]aggregate.Task, 0, 3)
	if fields.Has(FieldPartitions) {
		tasks = append(tasks,
			listOffsets(admin.ListStartOffsets, "listStartOffsets", earliestField, earliestOffsetsTitle, topics),
			listOffsets(admin.ListEndOffsets, "listEndOffsets", latestField, latestOffsetsTitle, topics))
	}
	if fields.Has(FieldConfigs) {
		tasks = append(tasks, describeConfigs(admin, topics, ids))
	}

	aggregate.Join(entities, s.engine.Collect(ctx, tasks), func(topic *Topic, outcome aggregate.Outcome) {
		switch outcome.Field {
		case earliestField:
			applyOffsets(topic, outcome.Value.(kadm.ListedOffsets), func(partition *Partition, offset *int64) {
				partition.EarliestOffset = offset
			})
		case latestField:
			applyOffsets(topic, outcome.Value.(kadm.ListedOffsets), func(partition *Partition, offset *int64) {
				partition.LatestOffset = offset
			})
		case FieldConfigs:
			topic.Configs = outcome.Value.(map[string]kafka.ConfigEntry)
		}
	})
}

type offsetLister func(ctx context.Context, topics ...string) (kadm.ListedOffsets, error)

// listOffsets resolves one end of every partition of topics. Errors are reported per partition
// against the partitions attribute.
func listOffsets(list offsetLister, operation string, field string, title string, topics []*Topic) aggregate.Task {
	var ids = make([]string, 0, len(topics))
	var names = make([]string, 0, len(topics))
	for _, topic := range topics {
		ids = append(ids, topic.Id)
		names = append(names, topic.Name)
	}

	return aggregate.Task{
		Operation: operation,
		Field:     FieldPartitions,
		Title:     title,
		Entities:  ids,
		Run: func(ctx context.Context) ([]aggregate.Outcome, error) {
			listed, err := list(ctx, names...)
			if err != nil && len(listed) == 0 {
				return nil, err
			}

			var outcomes = make([]aggregate.Outcome, 0, len(topics))
			for _, topic := range topics {
				var itemErrors = make([]model.ItemError, 0)

				for _, partition := range topic.Partitions {
					var partitionTitle = fmt.Sprintf("%s %s-%d", title, topic.Name, partition.Partition)

					offset, ok := listed.Lookup(topic.Name, partition.Partition)
					switch {
					case !ok && err != nil:
						itemErrors = append(itemErrors, model.NewItemError(partitionTitle, err, FieldPartitions))
					case !ok:
						itemErrors = append(itemErrors, model.NewItemError(partitionTitle, errNoOffset, FieldPartitions))
					case offset.Err != nil:
						itemErrors = append(itemErrors, model.NewItemError(partitionTitle, offset.Err, FieldPartitions))
					}
				}

				outcomes = append(outcomes, aggregate.Value(topic.Id, field, listed, itemErrors...))
			}
			return outcomes, nil
		},
	}
}

func describeConfigs(admin kafka.Admin, topics []*Topic, ids []string) aggregate.Task {
	var names = make([]string, 0, len(topics))
	for _, topic := range topics {
		names = append(names, topic.Name)
	}

	return aggregate.Task{
		Operation: "describeTopicConfigs",
		Field:     FieldConfigs,
		Title:     configsTitle,
		Entities:  ids,
		Run: func(ctx context.Context) ([]aggregate.Outcome, error) {
			described, err := admin.DescribeTopicConfigs(ctx, names...)
			if err != nil && len(described) == 0 {
				return nil, err
			}

			var outcomes = make([]aggregate.Outcome, 0, len(topics))
			for _, topic := range topics {
				var index = slices.IndexFunc(described, func(resource kadm.ResourceConfig) bool {
					return resource.Name == topic.Name
				})
				switch {
				case index < 0 && err != nil:
					outcomes = append(outcomes, aggregate.Failure(topic.Id, FieldConfigs, model.NewItemError(configsTitle, err, FieldConfigs)))
				case index < 0:
					outcomes = append(outcomes, aggregate.Failure(topic.Id, FieldConfigs, model.NewItemError(configsTitle, errNoConfigs, FieldConfigs)))
				case described[index].Err != nil:
					outcomes = append(outcomes, aggregate.Failure(topic.Id, FieldConfigs, model.NewItemError(configsTitle, described[index].Err, FieldConfigs)))
				default:
					outcomes = append(outcomes, aggregate.Value(topic.Id, FieldConfigs, kafka.ConfigEntries(described[index].Configs)))
				}
			}
			return outcomes, nil
		},
	}
}

func applyOffsets(topic *Topic, listed kadm.ListedOffsets, set func(partition *Partition, offset *int64)) {
	for i := range topic.Partitions {
		var partition = &topic.Partitions[i]

		listedOffset, ok := listed.Lookup(topic.Name, partition.Partition)
		if !ok || listedOffset.Err != nil {
			continue
		}

		var offset = listedOffset.Offset
		set(partition, &offset)
	}
}

func orEmpty(values []int32) []int32 {
	if values == nil {
		return []int32{}
	}
	return values
}
