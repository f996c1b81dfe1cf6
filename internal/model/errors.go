// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Category groups API errors by the HTTP status and code they are rendered with.
type Category struct {
	Status int
	Code   string
	Title  string
}

var (
	InvalidQueryParameter = Category{Status: 400, Code: "4001", Title: "Invalid query parameter"}
	InvalidCursor         = Category{Status: 400, Code: "4002", Title: "Invalid page cursor"}
	UnknownResourceType   = Category{Status: 400, Code: "4003", Title: "Unknown resource type"}
	Unauthorized          = Category{Status: 401, Code: "4011", Title: "Not authenticated"}
	ResourceNotFound      = Category{Status: 404, Code: "4041", Title: "Resource not found"}
	ResourceConflict      = Category{Status: 409, Code: "4091", Title: "Resource conflict"}
	ServerError           = Category{Status: 500, Code: "5001", Title: "Unexpected error"}
	UpstreamTimeout       = Category{Status: 504, Code: "5041", Title: "Timed out waiting for upstream service"}
)

// ErrorSource points at the part of the request or document an error relates to.
type ErrorSource struct {
	Pointer   string `json:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty"`
	Header    string `json:"header,omitempty"`
}

// Error is a request-level failure. It is rendered as a single entry of a top-level error list.
type Error struct {
	ID     string       `json:"id,omitempty"`
	Status string       `json:"status"`
	Code   string       `json:"code"`
	Title  string       `json:"title"`
	Detail string       `json:"detail,omitempty"`
	Source *ErrorSource `json:"source,omitempty"`

	category Category
	cause    error
}

func NewError(category Category, detail string) *Error {
	return &Error{
		Status:   strconv.Itoa(category.Status),
		Code:     category.Code,
		Title:    category.Title,
		Detail:   detail,
		category: category,
	}
}

func Errorf(category Category, format string, args ...any) *Error {
	return NewError(category, fmt.Sprintf(format, args...))
}

// NewOccurrence wraps an unexpected failure. Only the message of cause is exposed to clients.
func NewOccurrence(category Category, cause error) *Error {
	var err = NewError(category, cause.Error())
	err.ID = uuid.NewString()
	err.cause = cause
	return err
}

func (e *Error) WithParameter(name string) *Error {
	e.Source = &ErrorSource{Parameter: name}
	return e
}

func (e *Error) HttpStatus() int {
	return e.category.Status
}

func (e *Error) Category() Category {
	return e.category
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Title
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Errors []*Error `json:"errors"`
}
