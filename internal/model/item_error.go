// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package model

// ItemError describes one failed sub-operation that contributed to, but did not prevent, an entity.
type ItemError struct {
	Title  string       `json:"title"`
	Detail string       `json:"detail"`
	Source *ErrorSource `json:"source,omitempty"`
}

func NewItemError(title string, cause error, attribute string) ItemError {
	var itemError = ItemError{Title: title}
	if cause != nil {
		itemError.Detail = cause.Error()
	}
	if attribute != "" {
		itemError.Source = &ErrorSource{Pointer: "/data/attributes/" + attribute}
	}
	return itemError
}

// Errors collects the ItemErrors of a single entity. Entities embed it.
type Errors struct {
	errors []ItemError
}

func (e *Errors) AddErrors(errors ...ItemError) {
	e.errors = append(e.errors, errors...)
}

func (e *Errors) ItemErrors() []ItemError {
	return e.errors
}
