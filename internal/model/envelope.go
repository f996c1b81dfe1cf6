// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package model

// PageMeta is the listing-level pagination summary.
type PageMeta struct {
	Total      int `json:"total"`
	Size       int `json:"size"`
	PageNumber int `json:"pageNumber"`
}

// Links holds the four navigation links of a listing. A nil link is rendered as null.
type Links struct {
	First *string `json:"first"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
	Last  *string `json:"last"`
}

type ItemPageMeta struct {
	Cursor string `json:"cursor"`
}

type ResourceMeta struct {
	Page   *ItemPageMeta `json:"page,omitempty"`
	Errors []ItemError   `json:"errors,omitempty"`
}

// Resource is one rendered entity.
type Resource struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Attributes map[string]any `json:"attributes"`
	Meta       *ResourceMeta  `json:"meta,omitempty"`
}

type ListMeta struct {
	Page PageMeta `json:"page"`
}

type ListResponse struct {
	Meta  ListMeta   `json:"meta"`
	Links Links      `json:"links"`
	Data  []Resource `json:"data"`
}

type SingleResponse struct {
	Data Resource `json:"data"`
}

// NewResource renders attributes and errors of an entity. Meta is omitted when it would be empty.
func NewResource(id string, resourceType string, attributes map[string]any, errors []ItemError, cursor string) Resource {
	var resource = Resource{
		ID:         id,
		Type:       resourceType,
		Attributes: attributes,
	}

	if len(errors) > 0 || cursor != "" {
		resource.Meta = &ResourceMeta{Errors: errors}
		if cursor != "" {
			resource.Meta.Page = &ItemPageMeta{Cursor: cursor}
		}
	}

	return resource
}
