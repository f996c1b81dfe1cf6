// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package consumergroups

import (
	"cmp"
	"context"
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
	describeTitle      = "Unable to describe consumer group"
	groupOffsetsTitle  = "Unable to list consumer group offsets"
	topicOffsetsTitle  = "Unable to list offsets for topic/partition"
	describeOutcome    = "description"
	logEndOffsetsField = "logEndOffsets"
)

var errNotDescribed = errors.New("no description returned for group")

type Service struct {
	engine *aggregate.Engine
}

func NewService(engine *aggregate.Engine) *Service {
	return &Service{engine: engine}
}

// List materializes all groups matching the filters of listCtx and returns the requested page.
func (s *Service) List(ctx context.Context, admin kafka.Admin, listCtx *listing.Context[*ConsumerGroup]) (listing.Page[*ConsumerGroup], error) {
	groups, err := s.listGroups(ctx, admin)
	if err != nil {
		return listing.Page[*ConsumerGroup]{}, err
	}

	groups = listCtx.Filter(groups)
	s.aggregate(ctx, admin, groups, listCtx.Fields())

	return listCtx.Page(groups), nil
}

func (s *Service) Describe(ctx context.Context, admin kafka.Admin, groupId string, fields listing.Fieldset) (*ConsumerGroup, error) {
	groups, err := s.listGroups(ctx, admin)
	if err != nil {
		return nil, err
	}

	var index = slices.IndexFunc(groups, func(group *ConsumerGroup) bool {
		return group.GroupId == groupId
	})
	if index < 0 {
		return nil, model.Errorf(model.ResourceNotFound, "No such consumer group: %s", groupId)
	}

	var group = groups[index]
	s.aggregate(ctx, admin, []*ConsumerGroup{group}, fields)
	return group, nil
}

// Delete removes a group. Groups with active members are refused with a conflict.
func (s *Service) Delete(ctx context.Context, admin kafka.Admin, groupId string) error {
	responses, err := admin.DeleteGroups(ctx, groupId)
	if err != nil && len(responses) == 0 {
		return kafka.AsApiError(err)
	}

	response, ok := responses[groupId]
	if !ok {
		return model.NewOccurrence(model.ServerError, fmt.Errorf("no delete response for group %s", groupId))
	}

	switch {
	case response.Err == nil:
		log.Info().Str("groupId", groupId).Msg("Consumer group deleted")
		return nil
	case kafka.IsNotFound(response.Err):
		return model.Errorf(model.ResourceNotFound, "No such consumer group: %s", groupId)
	case kafka.IsConflict(response.Err):
		return model.Errorf(model.ResourceConflict, "Consumer group %s has active members", groupId)
	default:
		return kafka.AsApiError(response.Err)
	}
}

func (s *Service) listGroups(ctx context.Context, admin kafka.Admin) ([]*ConsumerGroup, error) {
	listed, err := admin.ListGroups(ctx)
	if err != nil {
		if len(listed) == 0 {
			return nil, kafka.AsApiError(err)
		}
		log.Warn().Err(err).Msg("Consumer group listing is incomplete")
	}

	var groups = make([]*ConsumerGroup, 0, len(listed))
	for _, group := range listed {
		groups = append(groups, &ConsumerGroup{
			GroupId:             group.Group,
			State:               group.State,
			SimpleConsumerGroup: group.ProtocolType == "",
		})
	}

	return groups, nil
}

// aggregate fetches the attributes in fields that the group listing does not carry. Attributes
// that were not requested are neither fetched nor reported as failed.
func (s *Service) aggregate(ctx context.Context, admin kafka.Admin, groups []*ConsumerGroup, fields listing.Fieldset) {
	if len(groups) == 0 {
		return
	}

	var entities = make(map[string]*ConsumerGroup, len(groups))
	var ids = make([]string, 0, len(groups))
	for _, group := range groups {
		entities[group.GroupId] = group
		ids = append(ids, group.GroupId)
	}

	var tasks = make([]aggregate.Task, 0, len(groups)+1)

	if describeField, ok := firstOf(fields, FieldMembers, FieldCoordinator, FieldPartitionAssignor); ok {
		tasks = append(tasks, describeGroups(admin, ids, describeField))
	}

	if fields.Has(FieldOffsets) {
		for _, id := range ids {
			tasks = append(tasks, fetchOffsets(admin, id))
		}
	}

	aggregate.Join(entities, s.engine.Collect(ctx, tasks), func(group *ConsumerGroup, outcome aggregate.Outcome) {
		switch outcome.Field {
		case describeOutcome:
			applyDescription(group, outcome.Value.(kadm.DescribedGroup), fields)
		case FieldOffsets:
			group.Offsets = outcome.Value.([]OffsetAndLag)
		}
	})

	if !fields.Has(FieldOffsets) {
		return
	}

	var withOffsets = make([]*ConsumerGroup, 0, len(groups))
	for _, group := range groups {
		if len(group.Offsets) > 0 {
			withOffsets = append(withOffsets, group)
		}
	}
	if len(withOffsets) == 0 {
		return
	}

	var endOffsets = s.engine.Collect(ctx, []aggregate.Task{listEndOffsets(admin, withOffsets)})
	aggregate.Join(entities, endOffsets, func(group *ConsumerGroup, outcome aggregate.Outcome) {
		applyEndOffsets(group, outcome.Value.(kadm.ListedOffsets))
	})
}

func describeGroups(admin kafka.Admin, ids []string, field string) aggregate.Task {
	return aggregate.Task{
		Operation: "describeGroups",
		Field:     field,
		Title:     describeTitle,
		Entities:  ids,
		Run: func(ctx context.Context) ([]aggregate.Outcome, error) {
			described, err := admin.DescribeGroups(ctx, ids...)
			if err != nil && len(described) == 0 {
				return nil, err
			}

			var outcomes = make([]aggregate.Outcome, 0, len(ids))
			for _, id := range ids {
				group, ok := described[id]
				switch {
				case !ok && err != nil:
					outcomes = append(outcomes, aggregate.Failure(id, field, model.NewItemError(describeTitle, err, field)))
				case !ok:
					outcomes = append(outcomes, aggregate.Failure(id, field, model.NewItemError(describeTitle, errNotDescribed, field)))
				case group.Err != nil:
					outcomes = append(outcomes, aggregate.Failure(id, field, model.NewItemError(describeTitle, group.Err, field)))
				default:
					outcomes = append(outcomes, aggregate.Value(id, describeOutcome, group))
				}
			}
			return outcomes, nil
		},
	}
}

func fetchOffsets(admin kafka.Admin, groupId string) aggregate.Task {
	return aggregate.Task{
		Operation: "fetchOffsets",
		Field:     FieldOffsets,
		Title:     groupOffsetsTitle,
		Entities:  []string{groupId},
		Run: func(ctx context.Context) ([]aggregate.Outcome, error) {
			responses, err := admin.FetchOffsets(ctx, groupId)
			if err != nil {
				return nil, err
			}

			var offsets = make([]OffsetAndLag, 0)
			var itemErrors = make([]model.ItemError, 0)

			for topic, partitions := range responses {
				for partition, response := range partitions {
					if response.Err != nil {
						itemErrors = append(itemErrors, model.NewItemError(
							fmt.Sprintf("%s %s-%d", groupOffsetsTitle, topic, partition), response.Err, FieldOffsets))
						continue
					}

					offsets = append(offsets, OffsetAndLag{
						TopicName: topic,
						Partition: partition,
						Offset:    response.At,
						Metadata:  response.Metadata,
					})
				}
			}

			slices.SortFunc(offsets, compareOffsets)
			slices.SortFunc(itemErrors, func(a, b model.ItemError) int {
				return cmp.Compare(a.Title, b.Title)
			})

			return []aggregate.Outcome{aggregate.Value(groupId, FieldOffsets, offsets, itemErrors...)}, nil
		},
	}
}

// listEndOffsets looks up the log end offset of every partition the groups committed to. Failures
// are reported per partition.
func listEndOffsets(admin kafka.Admin, groups []*ConsumerGroup) aggregate.Task {
	var ids = make([]string, 0, len(groups))
	var topics = make([]string, 0)

	for _, group := range groups {
		ids = append(ids, group.GroupId)
		for _, offset := range group.Offsets {
			if !slices.Contains(topics, offset.TopicName) {
				topics = append(topics, offset.TopicName)
			}
		}
	}
	slices.Sort(topics)

	return aggregate.Task{
		Operation: "listEndOffsets",
		Field:     FieldOffsets,
		Title:     topicOffsetsTitle,
		Entities:  ids,
		Run: func(ctx context.Context) ([]aggregate.Outcome, error) {
			listed, err := admin.ListEndOffsets(ctx, topics...)
			if listed == nil {
				listed = make(kadm.ListedOffsets)
			}

			var outcomes = make([]aggregate.Outcome, 0, len(groups))
			for _, group := range groups {
				var itemErrors = make([]model.ItemError, 0)

				for _, offset := range group.Offsets {
					var title = fmt.Sprintf("%s %s-%d", topicOffsetsTitle, offset.TopicName, offset.Partition)

					listedOffset, ok := listed.Lookup(offset.TopicName, offset.Partition)
					switch {
					case !ok && err != nil:
						itemErrors = append(itemErrors, model.NewItemError(title, err, FieldOffsets))
					case !ok:
						itemErrors = append(itemErrors, model.NewItemError(title, errors.New("no offset returned"), FieldOffsets))
					case listedOffset.Err != nil:
						itemErrors = append(itemErrors, model.NewItemError(title, listedOffset.Err, FieldOffsets))
					}
				}

				outcomes = append(outcomes, aggregate.Value(group.GroupId, logEndOffsetsField, listed, itemErrors...))
			}

			return outcomes, nil
		},
	}
}

// applyDescription keeps the listed state. Filters, sort and cursors were evaluated on it.
func applyDescription(group *ConsumerGroup, description kadm.DescribedGroup, fields listing.Fieldset) {
	if fields.Has(FieldMembers) {
		group.Members = make([]Member, 0, len(description.Members))
		for _, member := range description.Members {
			group.Members = append(group.Members, Member{
				MemberId:        member.MemberID,
				GroupInstanceId: member.InstanceID,
				ClientId:        member.ClientID,
				Host:            member.ClientHost,
				Assignments:     assignments(member),
			})
		}
	}

	if fields.Has(FieldCoordinator) {
		group.Coordinator = &Node{
			Id:   description.Coordinator.NodeID,
			Host: description.Coordinator.Host,
			Port: description.Coordinator.Port,
			Rack: description.Coordinator.Rack,
		}
	}

	if fields.Has(FieldPartitionAssignor) {
		var assignor = description.Protocol
		group.PartitionAssignor = &assignor
	}
}

func assignments(member kadm.DescribedGroupMember) []PartitionRef {
	var refs = make([]PartitionRef, 0)

	assignment, ok := member.Assigned.AsConsumer()
	if !ok {
		return refs
	}

	for _, topic := range assignment.Topics {
		for _, partition := range topic.Partitions {
			refs = append(refs, PartitionRef{TopicName: topic.Topic, Partition: partition})
		}
	}

	slices.SortFunc(refs, func(a, b PartitionRef) int {
		if result := cmp.Compare(a.TopicName, b.TopicName); result != 0 {
			return result
		}
		return cmp.Compare(a.Partition, b.Partition)
	})
	return refs
}

func applyEndOffsets(group *ConsumerGroup, listed kadm.ListedOffsets) {
	for i := range group.Offsets {
		var offset = &group.Offsets[i]

		listedOffset, ok := listed.Lookup(offset.TopicName, offset.Partition)
		if !ok || listedOffset.Err != nil {
			continue
		}

		var logEnd = listedOffset.Offset
		offset.LogEndOffset = &logEnd

		if offset.Offset >= 0 {
			var lag = max(logEnd-offset.Offset, 0)
			offset.Lag = &lag
		}
	}
}

func compareOffsets(a, b OffsetAndLag) int {
	if result := cmp.Compare(a.TopicName, b.TopicName); result != 0 {
		return result
	}
	return cmp.Compare(a.Partition, b.Partition)
}

func firstOf(fields listing.Fieldset, names ...string) (string, bool) {
	for _, name := range names {
		if fields.Has(name) {
			return name, true
		}
	}
	return "", false
}
