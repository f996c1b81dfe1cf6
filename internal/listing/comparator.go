// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package listing

import "github.com/rs/zerolog/log"

// ActiveSort drops repeated fields and fields the resource type cannot be sorted by. Unknown fields
// are ignored rather than rejected because sort expressions from the console may be shared across
// resource types.
func (r *Registry[T]) ActiveSort(fields []SortField) []SortField {
	var active = make([]SortField, 0, len(fields))
	var seen = make(map[string]bool, len(fields))

	for _, field := range fields {
		if seen[field.Name] {
			continue
		}
		seen[field.Name] = true

		if !r.Sortable(field.Name) {
			log.Debug().
				Str("kind", r.kind).
				Str("field", field.Name).
				Msg("Ignoring unknown sort field")
			continue
		}
		active = append(active, field)
	}

	return active
}

// BuildComparator combines the comparators of fields in request order and always appends the
// default comparator, so the result is a total order even if fields do not include the id.
func (r *Registry[T]) BuildComparator(fields []SortField) Comparator[T] {
	var comparator Comparator[T]

	for _, field := range r.ActiveSort(fields) {
		next, _ := r.Comparator(field.Name, field.Descending)
		if comparator == nil {
			comparator = next
		} else {
			comparator = comparator.Then(next)
		}
	}

	if comparator == nil {
		return r.byDefault
	}
	return comparator.Then(r.byDefault)
}
