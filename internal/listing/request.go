// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package listing

// Request is a parsed listing request, independent of the resource type.
type Request struct {
	Sort    []SortField
	Size    int
	After   string
	Before  string
	Filters []Filter
	Fields  Fieldset
}

// Position is where a navigation link resumes. An empty After restarts from the first entity.
type Position struct {
	After string
}

type Navigation struct {
	First *Position
	Prev  *Position
	Next  *Position
	Last  *Position
}

// Page is one slice of a sorted listing.
type Page[T any] struct {
	Items      []T
	Cursors    []string
	Total      int
	Size       int
	PageNumber int
	Links      Navigation
}
