// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package listing

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestContext(t *testing.T, request Request) *Context[*widget] {
	ctx, err := NewContext(widgets, request)
	if err != nil {
		t.Fatalf("could not create listing context: %v", err)
	}
	return ctx
}

func TestPage_WalksAllPagesForward(t *testing.T) {
	var assertions = assert.New(t)
	var items = createWidgets(10)

	var visited = make([]string, 0)
	var pageNumbers = make([]int, 0)
	var after = ""

	for range 10 {
		var page = newTestContext(t, Request{Size: 2, After: after}).Page(items)
		visited = append(visited, ids(page.Items)...)
		pageNumbers = append(pageNumbers, page.PageNumber)

		assertions.Equal(10, page.Total)
		assertions.Equal(2, page.Size)
		assertions.Len(page.Cursors, len(page.Items))

		if page.Links.Next == nil {
			break
		}
		after = page.Links.Next.After
	}

	assertions.Equal([]string{"w00", "w01", "w02", "w03", "w04", "w05", "w06", "w07", "w08", "w09"}, visited)
	assertions.Equal([]int{1, 2, 3, 4, 5}, pageNumbers)
}

func TestPage_FirstAfterLastReproducesFirstPage(t *testing.T) {
	var assertions = assert.New(t)
	var items = createWidgets(10)
	var sort = ParseSort("-enabled,size")

	var follow = func(position *Position) Page[*widget] {
		assertions.NotNil(position)
		var reversed = slices.Clone(items)
		slices.Reverse(reversed)
		return newTestContext(t, Request{Size: 2, Sort: sort, After: position.After}).Page(reversed)
	}

	var first = newTestContext(t, Request{Size: 2, Sort: sort}).Page(items)
	assertions.Equal(1, first.PageNumber)

	var page = first
	for k := range 3 {
		page = follow(page.Links.Next)
		assertions.Equal(k+2, page.PageNumber)
	}

	var last = follow(page.Links.Last)
	assertions.Equal(5, last.PageNumber)
	assertions.Len(last.Items, 2)
	assertions.Nil(last.Links.Next)

	var again = follow(last.Links.First)
	assertions.Equal(first, again)
	assertions.Equal([]string{"w00", "w06"}, ids(again.Items))
}

func TestPage_FirstPageLinks(t *testing.T) {
	var assertions = assert.New(t)
	var items = createWidgets(10)

	var page = newTestContext(t, Request{Size: 2}).Page(items)

	assertions.Equal([]string{"w00", "w01"}, ids(page.Items))
	assertions.Equal(1, page.PageNumber)
	assertions.Nil(page.Links.Prev)
	assertions.Equal(&Position{}, page.Links.First)
	assertions.Equal(page.Cursors[1], page.Links.Next.After)

	var last = newTestContext(t, Request{Size: 2, After: page.Links.Last.After}).Page(items)
	assertions.Equal([]string{"w08", "w09"}, ids(last.Items))
	assertions.Equal(5, last.PageNumber)
	assertions.Nil(last.Links.Next)
	assertions.NotNil(last.Links.Prev)

	var previous = newTestContext(t, Request{Size: 2, After: last.Links.Prev.After}).Page(items)
	assertions.Equal([]string{"w06", "w07"}, ids(previous.Items))
	assertions.Equal(4, previous.PageNumber)
}

func TestPage_SecondPageLinksBackToFirst(t *testing.T) {
	var assertions = assert.New(t)
	var items = createWidgets(10)

	var first = newTestContext(t, Request{Size: 2}).Page(items)
	var second = newTestContext(t, Request{Size: 2, After: first.Links.Next.After}).Page(items)

	assertions.Equal([]string{"w02", "w03"}, ids(second.Items))
	assertions.Equal(2, second.PageNumber)
	assertions.Equal(&Position{}, second.Links.Prev)
}

func TestPage_Before(t *testing.T) {
	var assertions = assert.New(t)
	var items = createWidgets(10)

	var before = widgets.EncodeCursor(items[8], nil)
	var page = newTestContext(t, Request{Size: 2, Before: before}).Page(items)

	assertions.Equal([]string{"w06", "w07"}, ids(page.Items))
	assertions.Equal(4, page.PageNumber)
	assertions.NotNil(page.Links.Next)
	assertions.Equal(page.Cursors[1], page.Links.Next.After)

	t.Run("before the first entity yields an empty page", func(t *testing.T) {
		var page = newTestContext(t, Request{Size: 2, Before: widgets.EncodeCursor(items[0], nil)}).Page(items)

		assertions.Empty(page.Items)
		assertions.Equal(1, page.PageNumber)
		assertions.Equal(&Position{}, page.Links.Next)
	})
}

func TestPage_EmptyListing(t *testing.T) {
	var assertions = assert.New(t)

	var page = newTestContext(t, Request{Size: 5}).Page(nil)

	assertions.Empty(page.Items)
	assertions.Empty(page.Cursors)
	assertions.Equal(0, page.Total)
	assertions.Equal(1, page.PageNumber)
	assertions.Nil(page.Links.First)
	assertions.Nil(page.Links.Prev)
	assertions.Nil(page.Links.Next)
	assertions.Nil(page.Links.Last)
}

func TestPage_SinglePage(t *testing.T) {
	var assertions = assert.New(t)

	var page = newTestContext(t, Request{Size: 5}).Page(createWidgets(3))

	assertions.Len(page.Items, 3)
	assertions.Equal(page.Links.First, page.Links.Last)
	assertions.Nil(page.Links.Prev)
	assertions.Nil(page.Links.Next)
}

func TestPage_CursorSurvivesRemoval(t *testing.T) {
	var assertions = assert.New(t)
	var items = createWidgets(10)

	var first = newTestContext(t, Request{Size: 4}).Page(items)

	// w03 was the last item of the first page and is gone now
	var remaining = append(append([]*widget{}, items[:3]...), items[4:]...)
	var second = newTestContext(t, Request{Size: 4, After: first.Links.Next.After}).Page(remaining)

	assertions.Equal([]string{"w04", "w05", "w06", "w07"}, ids(second.Items))
}

func TestPage_SortedByAttribute(t *testing.T) {
	var assertions = assert.New(t)
	var items = createWidgets(6)

	var request = Request{Size: 3, Sort: ParseSort("name")}
	var first = newTestContext(t, request).Page(items)
	assertions.Equal([]string{"w05", "w04", "w03"}, ids(first.Items))

	request.After = first.Links.Next.After
	var second = newTestContext(t, request).Page(items)
	assertions.Equal([]string{"w02", "w01", "w00"}, ids(second.Items))
	assertions.Equal(2, second.PageNumber)
}

func TestPage_DoesNotReorderInput(t *testing.T) {
	var assertions = assert.New(t)
	var items = createWidgets(4)

	newTestContext(t, Request{Size: 4, Sort: ParseSort("-id")}).Page(items)

	assertions.Equal([]string{"w00", "w01", "w02", "w03"}, ids(items))
}

func TestNewContext(t *testing.T) {
	var assertions = assert.New(t)
	var cursor = widgets.EncodeCursor(&widget{id: "w01"}, nil)

	t.Run("conflicting cursors", func(t *testing.T) {
		_, err := NewContext(widgets, Request{Size: 2, After: cursor, Before: cursor})
		assertions.ErrorIs(err, ErrConflictingCursors)
	})

	t.Run("invalid cursor", func(t *testing.T) {
		_, err := NewContext(widgets, Request{Size: 2, After: "not a cursor"})
		assertions.ErrorIs(err, ErrInvalidCursor)
	})

	t.Run("cursor of another sort order", func(t *testing.T) {
		_, err := NewContext(widgets, Request{Size: 2, After: cursor, Sort: ParseSort("name")})
		assertions.ErrorIs(err, ErrInvalidCursor)
	})

	t.Run("filter on unknown field", func(t *testing.T) {
		filter, _ := ParseFilter("colour", "eq,red")
		_, err := NewContext(widgets, Request{Size: 2, Filters: []Filter{filter}})
		assertions.ErrorIs(err, ErrInvalidFilter)
	})

	t.Run("unknown sort fields are ignored", func(t *testing.T) {
		ctx, err := NewContext(widgets, Request{Size: 2, Sort: ParseSort("colour,-name,name")})
		assertions.NoError(err)
		assertions.Equal([]SortField{{Name: "name", Descending: true}}, ctx.Sort())
	})
}
