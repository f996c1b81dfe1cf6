// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package nodes

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/telekom/kafka-console-api/internal/listing"
	"github.com/telekom/kafka-console-api/internal/model"
	"github.com/telekom/kafka-console-api/internal/test"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
)

func newTestAdmin() *test.FakeAdmin {
	var brokers = test.Brokers(10, 2, 1)
	var rack = "zone-a"
	brokers[1].Rack = &rack

	return &test.FakeAdmin{
		Metadata: kadm.Metadata{
			Controller: 2,
			Brokers:    brokers,
		},
	}
}

func nodeIds(nodes []*Node) []string {
	var result = make([]string, 0, len(nodes))
	for _, node := range nodes {
		result = append(result, node.Id())
	}
	return result
}

func TestList_NumericOrder(t *testing.T) {
	var assertions = assert.New(t)

	listCtx, _ := listing.NewContext(Registry, listing.Request{Size: 10, Fields: listing.NewFieldset(ListDefault...)})
	page, err := NewService().List(context.Background(), newTestAdmin(), listCtx)

	assertions.NoError(err)
	assertions.Equal([]string{"1", "2", "10"}, nodeIds(page.Items))
	assertions.True(page.Items[1].Controller)
	assertions.False(page.Items[0].Controller)
	assertions.Equal("zone-a", *page.Items[1].Rack)
}

func TestList_PagesWithNumericCursor(t *testing.T) {
	var assertions = assert.New(t)

	first, _ := listing.NewContext(Registry, listing.Request{Size: 2})
	page, err := NewService().List(context.Background(), newTestAdmin(), first)
	assertions.NoError(err)

	second, err := listing.NewContext(Registry, listing.Request{Size: 2, After: page.Links.Next.After})
	assertions.NoError(err)

	page, err = NewService().List(context.Background(), newTestAdmin(), second)
	assertions.NoError(err)
	assertions.Equal([]string{"10"}, nodeIds(page.Items))
}

func TestList_NonNumericCursor(t *testing.T) {
	var assertions = assert.New(t)

	for _, id := range []string{"not-a-number", "1.5", "4294967296"} {
		var cursor = base64.RawURLEncoding.EncodeToString([]byte(`{"v":1,"k":"nodes","s":[],"id":"` + id + `","a":{}}`))

		_, err := listing.NewContext(Registry, listing.Request{Size: 2, After: cursor})
		assertions.ErrorIs(err, listing.ErrInvalidCursor, id)
	}
}

func TestList_SortedByRack(t *testing.T) {
	var assertions = assert.New(t)

	listCtx, _ := listing.NewContext(Registry, listing.Request{Size: 10, Sort: listing.ParseSort("rack")})
	page, err := NewService().List(context.Background(), newTestAdmin(), listCtx)

	assertions.NoError(err)
	assertions.Equal([]string{"2", "1", "10"}, nodeIds(page.Items))
}

func TestList_MetadataFailure(t *testing.T) {
	var assertions = assert.New(t)

	listCtx, _ := listing.NewContext(Registry, listing.Request{Size: 10})
	_, err := NewService().List(context.Background(), &test.FakeAdmin{MetadataErr: test.ErrUnreachable}, listCtx)

	var apiError *model.Error
	assertions.ErrorAs(err, &apiError)
	assertions.Equal(500, apiError.HttpStatus())
}

func TestConfigs(t *testing.T) {
	var assertions = assert.New(t)

	var admin = newTestAdmin()
	admin.BrokerConfigs = kadm.ResourceConfigs{
		{
			Name: "2",
			Configs: []kadm.Config{
				test.ConfigValue("log.retention.hours", "168", false),
				test.ConfigValue("ssl.keystore.password", "changeit", true),
			},
		},
	}

	configs, err := NewService().Configs(context.Background(), admin, "2")

	assertions.NoError(err)
	assertions.Len(configs, 2)
	assertions.Equal("168", *configs["log.retention.hours"].Value)
	assertions.Nil(configs["ssl.keystore.password"].Value)
	assertions.NotEmpty(configs["log.retention.hours"].Source)
}

func TestConfigs_Errors(t *testing.T) {
	var assertions = assert.New(t)

	var cases = map[string]struct {
		nodeId string
		admin  *test.FakeAdmin
		status int
	}{
		"non numeric id": {nodeId: "broker-1", admin: newTestAdmin(), status: 404},
		"unknown node":   {nodeId: "7", admin: newTestAdmin(), status: 404},
		"describe fails": {nodeId: "1", admin: func() *test.FakeAdmin {
			var admin = newTestAdmin()
			admin.BrokerConfigsErr = test.ErrUnreachable
			return admin
		}(), status: 500},
		"describe denied": {nodeId: "1", admin: func() *test.FakeAdmin {
			var admin = newTestAdmin()
			admin.BrokerConfigs = kadm.ResourceConfigs{{Name: "1", Err: kerr.ClusterAuthorizationFailed}}
			return admin
		}(), status: 500},
		"no configs returned": {nodeId: "1", admin: newTestAdmin(), status: 500},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewService().Configs(context.Background(), c.admin, c.nodeId)

			var apiError *model.Error
			assertions.ErrorAs(err, &apiError)
			assertions.Equal(c.status, apiError.HttpStatus())
		})
	}
}
