// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package test

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/telekom/kafka-console-api/internal/kafka"
	"github.com/twmb/franz-go/pkg/kadm"
)

var ErrUnreachable = errors.New("broker unreachable")

// FakeAdmin is a scripted kafka.Admin. Every method returns the corresponding result and error
// fields and records the call.
type FakeAdmin struct {
	mu    sync.Mutex
	calls map[string]int

	Groups            kadm.ListedGroups
	ListGroupsErr     error
	Described         kadm.DescribedGroups
	DescribeGroupsErr error
	Offsets           map[string]kadm.OffsetResponses
	FetchOffsetsErr   map[string]error
	DeletedGroups     kadm.DeleteGroupResponses
	DeleteGroupsErr   error

	StartOffsets    kadm.ListedOffsets
	StartOffsetsErr error
	EndOffsets      kadm.ListedOffsets
	EndOffsetsErr   error

	Topics          kadm.TopicDetails
	ListTopicsErr   error
	TopicConfigs    kadm.ResourceConfigs
	TopicConfigsErr error
	DeletedTopics   kadm.DeleteTopicResponses
	DeleteTopicsErr error

	Metadata         kadm.Metadata
	MetadataErr      error
	BrokerConfigs    kadm.ResourceConfigs
	BrokerConfigsErr error

	// Block makes every call wait for the context to be done.
	Block bool
}

var _ kafka.Admin = (*FakeAdmin)(nil)

func (a *FakeAdmin) Calls(method string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[method]
}

func (a *FakeAdmin) record(ctx context.Context, method string) error {
	a.mu.Lock()
	if a.calls == nil {
		a.calls = make(map[string]int)
	}
	a.calls[method]++
	a.mu.Unlock()

	if a.Block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (a *FakeAdmin) ListGroups(ctx context.Context, _ ...string) (kadm.ListedGroups, error) {
	if err := a.record(ctx, "ListGroups"); err != nil {
		return nil, err
	}
	return a.Groups, a.ListGroupsErr
}

func (a *FakeAdmin) DescribeGroups(ctx context.Context, groups ...string) (kadm.DescribedGroups, error) {
	if err := a.record(ctx, "DescribeGroups"); err != nil {
		return nil, err
	}
	if a.DescribeGroupsErr != nil {
		return nil, a.DescribeGroupsErr
	}

	var described = make(kadm.DescribedGroups)
	for _, group := range groups {
		if description, ok := a.Described[group]; ok {
			described[group] = description
		}
	}
	return described, nil
}

func (a *FakeAdmin) FetchOffsets(ctx context.Context, group string) (kadm.OffsetResponses, error) {
	if err := a.record(ctx, "FetchOffsets"); err != nil {
		return nil, err
	}
	if err := a.FetchOffsetsErr[group]; err != nil {
		return nil, err
	}
	return a.Offsets[group], nil
}

func (a *FakeAdmin) DeleteGroups(ctx context.Context, _ ...string) (kadm.DeleteGroupResponses, error) {
	if err := a.record(ctx, "DeleteGroups"); err != nil {
		return nil, err
	}
	return a.DeletedGroups, a.DeleteGroupsErr
}

func (a *FakeAdmin) ListStartOffsets(ctx context.Context, _ ...string) (kadm.ListedOffsets, error) {
	if err := a.record(ctx, "ListStartOffsets"); err != nil {
		return nil, err
	}
	return a.StartOffsets, a.StartOffsetsErr
}

func (a *FakeAdmin) ListEndOffsets(ctx context.Context, _ ...string) (kadm.ListedOffsets, error) {
	if err := a.record(ctx, "ListEndOffsets"); err != nil {
		return nil, err
	}
	return a.EndOffsets, a.EndOffsetsErr
}

func (a *FakeAdmin) ListTopicsWithInternal(ctx context.Context, topics ...string) (kadm.TopicDetails, error) {
	if err := a.record(ctx, "ListTopicsWithInternal"); err != nil {
		return nil, err
	}
	if a.ListTopicsErr != nil || len(topics) == 0 {
		return a.Topics, a.ListTopicsErr
	}

	var details = make(kadm.TopicDetails)
	for name, detail := range a.Topics {
		if slices.Contains(topics, name) {
			details[name] = detail
		}
	}
	return details, nil
}

func (a *FakeAdmin) DescribeTopicConfigs(ctx context.Context, _ ...string) (kadm.ResourceConfigs, error) {
	if err := a.record(ctx, "DescribeTopicConfigs"); err != nil {
		return nil, err
	}
	return a.TopicConfigs, a.TopicConfigsErr
}

func (a *FakeAdmin) DeleteTopics(ctx context.Context, _ ...string) (kadm.DeleteTopicResponses, error) {
	if err := a.record(ctx, "DeleteTopics"); err != nil {
		return nil, err
	}
	return a.DeletedTopics, a.DeleteTopicsErr
}

func (a *FakeAdmin) BrokerMetadata(ctx context.Context) (kadm.Metadata, error) {
	if err := a.record(ctx, "BrokerMetadata"); err != nil {
		return kadm.Metadata{}, err
	}
	return a.Metadata, a.MetadataErr
}

func (a *FakeAdmin) DescribeBrokerConfigs(ctx context.Context, _ ...int32) (kadm.ResourceConfigs, error) {
	if err := a.record(ctx, "DescribeBrokerConfigs"); err != nil {
		return nil, err
	}
	return a.BrokerConfigs, a.BrokerConfigsErr
}

// FakeConnector hands out the admin of a cluster id.
type FakeConnector struct {
	Admins map[string]kafka.Admin
	Err    error
}

func (c *FakeConnector) Admin(clusterId string, bootstrapServers string) (kafka.Admin, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	if bootstrapServers == "" {
		return nil, kafka.ErrNoBootstrapServers
	}

	admin, ok := c.Admins[clusterId]
	if !ok {
		return nil, ErrUnreachable
	}
	return admin, nil
}
