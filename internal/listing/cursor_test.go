// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package listing

import (
	"encoding/base64"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor_RestoresSortAttributes(t *testing.T) {
	var assertions = assert.New(t)

	var sort = widgets.ActiveSort(ParseSort("label,-enabled,size,name"))
	var original = &widget{id: "w07", name: "seven", label: ptr("blue"), enabled: true, size: 7}

	stub, ok, err := widgets.DecodeCursor(widgets.EncodeCursor(original, sort), sort)

	assertions.NoError(err)
	assertions.True(ok)
	assertions.Equal(original, stub)
	assertions.Equal(0, widgets.BuildComparator(sort)(original, stub))
}

func TestCursor_NullAttribute(t *testing.T) {
	var assertions = assert.New(t)

	var sort = ParseSort("label")
	stub, ok, err := widgets.DecodeCursor(widgets.EncodeCursor(&widget{id: "w01"}, sort), sort)

	assertions.NoError(err)
	assertions.True(ok)
	assertions.Nil(stub.label)
}

func TestCursor_Empty(t *testing.T) {
	var assertions = assert.New(t)

	stub, ok, err := widgets.DecodeCursor("", nil)

	assertions.NoError(err)
	assertions.False(ok)
	assertions.Nil(stub)
}

func TestCursor_RejectedId(t *testing.T) {
	var assertions = assert.New(t)

	var numbered = NewRegistry(Definition[*widget]{
		Kind: "widgets",
		ID:   func(w *widget) string { return w.id },
		Stub: func(id string) (*widget, error) {
			if _, err := strconv.Atoi(id); err != nil {
				return nil, err
			}
			return &widget{id: id}, nil
		},
	})

	stub, ok, err := numbered.DecodeCursor(numbered.EncodeCursor(&widget{id: "42"}, nil), nil)
	assertions.NoError(err)
	assertions.True(ok)
	assertions.Equal("42", stub.id)

	_, ok, err = numbered.DecodeCursor(numbered.EncodeCursor(&widget{id: "w01"}, nil), nil)
	assertions.ErrorIs(err, ErrInvalidCursor)
	assertions.ErrorContains(err, `"w01"`)
	assertions.False(ok)
}

func TestCursor_Invalid(t *testing.T) {
	var assertions = assert.New(t)

	var encode = func(document string) string {
		return base64.RawURLEncoding.EncodeToString([]byte(document))
	}

	var others = NewRegistry(Definition[*widget]{
		Kind: "gadgets",
		ID:   func(w *widget) string { return w.id },
		Stub: func(id string) (*widget, error) { return &widget{id: id}, nil },
	})

	var cases = map[string]struct {
		cursor string
		sort   []SortField
	}{
		"not base64":        {cursor: "%%%", sort: nil},
		"not json":          {cursor: encode("{"), sort: nil},
		"unknown version":   {cursor: encode(`{"v":2,"k":"widgets","s":[],"id":"w01","a":{}}`), sort: nil},
		"other kind":        {cursor: others.EncodeCursor(&widget{id: "w01"}, nil), sort: nil},
		"missing id":        {cursor: encode(`{"v":1,"k":"widgets","s":[],"id":"","a":{}}`), sort: nil},
		"other sort":        {cursor: widgets.EncodeCursor(&widget{id: "w01"}, ParseSort("name")), sort: ParseSort("-name")},
		"missing attribute": {cursor: encode(`{"v":1,"k":"widgets","s":["name"],"id":"w01","a":{}}`), sort: ParseSort("name")},
		"wrong type":        {cursor: encode(`{"v":1,"k":"widgets","s":["name"],"id":"w01","a":{"name":3}}`), sort: ParseSort("name")},
		"extra attribute":   {cursor: encode(`{"v":1,"k":"widgets","s":[],"id":"w01","a":{"name":"x"}}`), sort: nil},
		"unknown key":       {cursor: encode(`{"v":1,"k":"widgets","s":[],"id":"w01","a":{},"x":1}`), sort: nil},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok, err := widgets.DecodeCursor(c.cursor, widgets.ActiveSort(c.sort))
			assertions.ErrorIs(err, ErrInvalidCursor)
			assertions.False(ok)
		})
	}
}
