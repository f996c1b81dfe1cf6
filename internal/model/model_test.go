// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package model

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	var assertions = assert.New(t)

	var err = Errorf(InvalidQueryParameter, "page[size] must be between 1 and %d", 100).WithParameter("page[size]")

	assertions.Equal("400", err.Status)
	assertions.Equal(400, err.HttpStatus())
	assertions.Equal("4001", err.Code)
	assertions.Empty(err.ID)
	assertions.Equal("page[size]", err.Source.Parameter)
	assertions.Equal("Invalid query parameter: page[size] must be between 1 and 100", err.Error())
	assertions.Equal("Not authenticated", NewError(Unauthorized, "").Error())
}

func TestNewOccurrence(t *testing.T) {
	var assertions = assert.New(t)

	var cause = errors.New("broker unreachable")
	var err = NewOccurrence(ServerError, cause)

	assertions.NotEmpty(err.ID)
	assertions.Equal("broker unreachable", err.Detail)
	assertions.ErrorIs(err, cause)
	assertions.Equal(ServerError, err.Category())
}

func TestNewItemError(t *testing.T) {
	var assertions = assert.New(t)

	var itemError = NewItemError("Unable to fetch offsets", errors.New("timeout"), "lag")
	assertions.Equal("timeout", itemError.Detail)
	assertions.Equal("/data/attributes/lag", itemError.Source.Pointer)

	itemError = NewItemError("Unable to describe group", nil, "")
	assertions.Empty(itemError.Detail)
	assertions.Nil(itemError.Source)
}

func TestErrors(t *testing.T) {
	var assertions = assert.New(t)

	var entity struct {
		Errors
	}
	assertions.Empty(entity.ItemErrors())

	entity.AddErrors(NewItemError("a", nil, ""), NewItemError("b", nil, ""))
	entity.AddErrors()
	assertions.Len(entity.ItemErrors(), 2)
}

func TestNewResource(t *testing.T) {
	var assertions = assert.New(t)

	t.Run("without meta", func(t *testing.T) {
		var resource = NewResource("orders", "topics", map[string]any{"name": "orders"}, nil, "")
		assertions.Nil(resource.Meta)

		data, err := json.Marshal(resource)
		assertions.NoError(err)
		assertions.JSONEq(`{"id":"orders","type":"topics","attributes":{"name":"orders"}}`, string(data))
	})

	t.Run("with cursor", func(t *testing.T) {
		var resource = NewResource("orders", "topics", map[string]any{}, nil, "abc")

		data, err := json.Marshal(resource)
		assertions.NoError(err)
		assertions.JSONEq(`{"id":"orders","type":"topics","attributes":{},"meta":{"page":{"cursor":"abc"}}}`, string(data))
	})

	t.Run("with errors", func(t *testing.T) {
		var resource = NewResource("orders", "topics", map[string]any{"partitions": nil}, []ItemError{
			NewItemError("Unable to describe topic", errors.New("timeout"), "partitions"),
		}, "")

		data, err := json.Marshal(resource)
		assertions.NoError(err)
		assertions.JSONEq(`{"id":"orders","type":"topics","attributes":{"partitions":null},"meta":{"errors":[
			{"title":"Unable to describe topic","detail":"timeout","source":{"pointer":"/data/attributes/partitions"}}
		]}}`, string(data))
	})
}

func TestLinks_RenderNull(t *testing.T) {
	var assertions = assert.New(t)

	var next = "/api/clusters?page[after]=abc"
	data, err := json.Marshal(Links{Next: &next})
	assertions.NoError(err)
	assertions.JSONEq(`{"first":null,"prev":null,"next":"/api/clusters?page[after]=abc","last":null}`, string(data))
}
