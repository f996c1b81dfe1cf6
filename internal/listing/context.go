// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"errors"
	"slices"
	"sort"
)

var ErrConflictingCursors = errors.New("page[after] and page[before] are mutually exclusive")

// Context pages one listing request of one resource type.
type Context[T any] struct {
	registry *Registry[T]
	request  Request
	sort     []SortField
	compare  Comparator[T]

	after     T
	hasAfter  bool
	before    T
	hasBefore bool
}

// NewContext validates the filters and cursors of request. Every error returned is a caller error.
func NewContext[T any](registry *Registry[T], request Request) (*Context[T], error) {
	if request.After != "" && request.Before != "" {
		return nil, ErrConflictingCursors
	}

	if err := registry.ValidateFilters(request.Filters); err != nil {
		return nil, err
	}

	var ctx = &Context[T]{
		registry: registry,
		request:  request,
		sort:     registry.ActiveSort(request.Sort),
	}
	ctx.compare = registry.BuildComparator(ctx.sort)

	var err error
	if ctx.after, ctx.hasAfter, err = registry.DecodeCursor(request.After, ctx.sort); err != nil {
		return nil, err
	}
	if ctx.before, ctx.hasBefore, err = registry.DecodeCursor(request.Before, ctx.sort); err != nil {
		return nil, err
	}

	return ctx, nil
}

func (c *Context[T]) Request() Request {
	return c.request
}

func (c *Context[T]) Fields() Fieldset {
	return c.request.Fields
}

// Sort is the list of sort fields that are in effect after unknown fields were dropped.
func (c *Context[T]) Sort() []SortField {
	return c.sort
}

func (c *Context[T]) Comparator() Comparator[T] {
	return c.compare
}

func (c *Context[T]) Filter(items []T) []T {
	return c.registry.Filter(items, c.request.Filters)
}

// Page sorts a copy of items and slices the requested page out of it. Resume positions are
// located by comparing against the decoded cursor, not by offset.
func (c *Context[T]) Page(items []T) Page[T] {
	var sorted = slices.Clone(items)
	slices.SortFunc(sorted, c.compare)

	var total = len(sorted)
	var size = c.request.Size
	if size < 1 {
		size = 1
	}

	var start, end int
	switch {
	case c.hasAfter:
		start = sort.Search(total, func(i int) bool {
			return c.compare(sorted[i], c.after) > 0
		})
		end = min(start+size, total)
	case c.hasBefore:
		end = sort.Search(total, func(i int) bool {
			return c.compare(sorted[i], c.before) >= 0
		})
		start = max(end-size, 0)
	default:
		end = min(size, total)
	}

	var page = Page[T]{
		Items:      sorted[start:end],
		Cursors:    make([]string, 0, end-start),
		Total:      total,
		Size:       size,
		PageNumber: (start+size-1)/size + 1,
	}

	for _, item := range page.Items {
		page.Cursors = append(page.Cursors, c.cursor(item))
	}

	if total > 0 {
		page.Links = c.navigation(sorted, start, end, size)
	}

	return page
}

func (c *Context[T]) navigation(sorted []T, start int, end int, size int) Navigation {
	var total = len(sorted)
	var first = &Position{}

	var links = Navigation{
		First: first,
		Last:  first,
	}

	if start > 0 {
		if previous := start - size; previous > 0 {
			links.Prev = c.resumeAfter(sorted[previous-1])
		} else {
			links.Prev = first
		}
	}

	if end < total {
		if end > 0 {
			links.Next = c.resumeAfter(sorted[end-1])
		} else {
			links.Next = first
		}
	}

	if lastStart := (total - 1) / size * size; lastStart > 0 {
		links.Last = c.resumeAfter(sorted[lastStart-1])
	}

	return links
}

func (c *Context[T]) resumeAfter(item T) *Position {
	return &Position{After: c.cursor(item)}
}

func (c *Context[T]) cursor(item T) string {
	return c.registry.EncodeCursor(item, c.sort)
}
