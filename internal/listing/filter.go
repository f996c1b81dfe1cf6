// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

type Operator string

const (
	OperatorEq   Operator = "eq"
	OperatorIn   Operator = "in"
	OperatorLike Operator = "like"
)

var ErrInvalidFilter = errors.New("invalid filter")

// Filter is a predicate over one attribute, e.g. filter[state]=in,Stable,Empty.
type Filter struct {
	Field    string
	Operator Operator
	Values   []string

	pattern *regexp.Regexp
}

func ParseFilter(field string, expr string) (Filter, error) {
	operator, operands, _ := strings.Cut(expr, ",")
	var filter = Filter{Field: field, Operator: Operator(operator)}

	switch filter.Operator {
	case OperatorEq, OperatorLike:
		filter.Values = []string{operands}
	case OperatorIn:
		filter.Values = strings.Split(operands, ",")
	default:
		return filter, fmt.Errorf("%w: unknown operator %q", ErrInvalidFilter, operator)
	}

	if filter.Operator == OperatorLike {
		var expression = strings.ReplaceAll(regexp.QuoteMeta(operands), `\*`, ".*")
		filter.pattern = regexp.MustCompile("(?i)^" + expression + "$")
	}

	return filter, nil
}

func (f Filter) matches(text string, present bool) bool {
	if !present {
		return false
	}

	switch f.Operator {
	case OperatorEq, OperatorIn:
		return slices.Contains(f.Values, text)
	case OperatorLike:
		return f.pattern.MatchString(text)
	default:
		return false
	}
}

// ValidateFilters rejects filters over attributes the resource type does not expose to filtering.
func (r *Registry[T]) ValidateFilters(filters []Filter) error {
	for _, filter := range filters {
		if !r.Filterable(filter.Field) {
			return fmt.Errorf("%w: %s cannot be filtered by %q", ErrInvalidFilter, r.kind, filter.Field)
		}
	}
	return nil
}

// Filter keeps the items matching every filter. Filters must have been validated.
func (r *Registry[T]) Filter(items []T, filters []Filter) []T {
	if len(filters) == 0 {
		return items
	}

	var result = make([]T, 0, len(items))
	for _, item := range items {
		if r.matchesAll(item, filters) {
			result = append(result, item)
		}
	}
	return result
}

func (r *Registry[T]) matchesAll(item T, filters []Filter) bool {
	for _, filter := range filters {
		if !filter.matches(r.fields[filter.Field].Text(item)) {
			return false
		}
	}
	return true
}
