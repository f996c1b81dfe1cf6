// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package consumergroups

import (
	"github.com/telekom/kafka-console-api/internal/listing"
	"github.com/telekom/kafka-console-api/internal/model"
)

const Kind = "consumerGroups"

const (
	FieldSimpleConsumerGroup = "simpleConsumerGroup"
	FieldState               = "state"
	FieldMembers             = "members"
	FieldOffsets             = "offsets"
	FieldCoordinator         = "coordinator"
	FieldPartitionAssignor   = "partitionAssignor"
)

var (
	AllFields = []string{
		FieldSimpleConsumerGroup,
		FieldState,
		FieldMembers,
		FieldOffsets,
		FieldCoordinator,
		FieldPartitionAssignor,
	}
	ListDefault     = []string{FieldSimpleConsumerGroup, FieldState, FieldMembers}
	DescribeDefault = AllFields
)

type ConsumerGroup struct {
	model.Errors

	GroupId             string
	State               string
	SimpleConsumerGroup bool

	// Aggregated attributes stay nil when they were not requested or could not be fetched.
	Members           []Member
	Offsets           []OffsetAndLag
	Coordinator       *Node
	PartitionAssignor *string
}

type Member struct {
	MemberId        string         `json:"memberId"`
	GroupInstanceId *string        `json:"groupInstanceId"`
	ClientId        string         `json:"clientId"`
	Host            string         `json:"host"`
	Assignments     []PartitionRef `json:"assignments"`
}

type PartitionRef struct {
	TopicName string `json:"topicName"`
	Partition int32  `json:"partition"`
}

type OffsetAndLag struct {
	TopicName    string `json:"topicName"`
	Partition    int32  `json:"partition"`
	Offset       int64  `json:"offset"`
	LogEndOffset *int64 `json:"logEndOffset"`
	Lag          *int64 `json:"lag"`
	Metadata     string `json:"metadata"`
}

type Node struct {
	Id   int32   `json:"id"`
	Host string  `json:"host"`
	Port int32   `json:"port"`
	Rack *string `json:"rack"`
}

// Registry declares the sortable and filterable attributes of consumer groups.
var Registry = listing.NewRegistry(listing.Definition[*ConsumerGroup]{
	Kind: Kind,
	ID: func(group *ConsumerGroup) string {
		return group.GroupId
	},
	Stub: func(id string) (*ConsumerGroup, error) {
		return &ConsumerGroup{GroupId: id}, nil
	},
	Fields: []listing.Field[*ConsumerGroup]{
		listing.StringField(FieldState,
			func(group *ConsumerGroup) string { return group.State },
			func(group *ConsumerGroup, state string) { group.State = state }),
		listing.BoolField(FieldSimpleConsumerGroup,
			func(group *ConsumerGroup) bool { return group.SimpleConsumerGroup },
			func(group *ConsumerGroup, simple bool) { group.SimpleConsumerGroup = simple }),
	},
})

// Attributes renders the requested attributes. Requested but unavailable attributes are null.
func (g *ConsumerGroup) Attributes(fields listing.Fieldset) map[string]any {
	var attributes = make(map[string]any, len(fields))

	for field := range fields {
		switch field {
		case FieldSimpleConsumerGroup:
			attributes[field] = g.SimpleConsumerGroup
		case FieldState:
			attributes[field] = g.State
		case FieldMembers:
			attributes[field] = g.Members
		case FieldOffsets:
			attributes[field] = g.Offsets
		case FieldCoordinator:
			attributes[field] = g.Coordinator
		case FieldPartitionAssignor:
			attributes[field] = g.PartitionAssignor
		}
	}

	return attributes
}
