// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package nodes

import (
	"strconv"

	"github.com/telekom/kafka-console-api/internal/listing"
	"github.com/telekom/kafka-console-api/internal/model"
)

const (
	Kind        = "nodes"
	ConfigsKind = "configs"
)

const (
	FieldHost       = "host"
	FieldPort       = "port"
	FieldRack       = "rack"
	FieldController = "controller"
)

var (
	AllFields   = []string{FieldHost, FieldPort, FieldRack, FieldController}
	ListDefault = AllFields
)

type Node struct {
	model.Errors

	NodeId     int32
	Host       string
	Port       int32
	Rack       *string
	Controller bool
}

func (n *Node) Id() string {
	return strconv.Itoa(int(n.NodeId))
}

// Registry orders nodes by numeric id unless another sort is requested.
var Registry = listing.NewRegistry(listing.Definition[*Node]{
	Kind: Kind,
	ID:   (*Node).Id,
	Stub: func(id string) (*Node, error) {
		nodeId, err := strconv.ParseInt(id, 10, 32)
		if err != nil {
			return nil, err
		}
		return &Node{NodeId: int32(nodeId)}, nil
	},
	Default: listing.Ordered(func(node *Node) int32 { return node.NodeId }),
	Fields: []listing.Field[*Node]{
		listing.StringField(FieldHost,
			func(node *Node) string { return node.Host },
			func(node *Node, host string) { node.Host = host }),
		listing.NullableStringField(FieldRack,
			func(node *Node) *string { return node.Rack },
			func(node *Node, rack *string) { node.Rack = rack }),
		listing.BoolField(FieldController,
			func(node *Node) bool { return node.Controller },
			func(node *Node, controller bool) { node.Controller = controller }),
	},
})

func (n *Node) Attributes(fields listing.Fieldset) map[string]any {
	var attributes = make(map[string]any, len(fields))

	for field := range fields {
		switch field {
		case FieldHost:
			attributes[field] = n.Host
		case FieldPort:
			attributes[field] = n.Port
		case FieldRack:
			attributes[field] = n.Rack
		case FieldController:
			attributes[field] = n.Controller
		}
	}

	return attributes
}
