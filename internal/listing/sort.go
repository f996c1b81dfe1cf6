// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package listing

import "strings"

// SortField is one entry of a sort expression such as "name,-creationTimestamp".
type SortField struct {
	Name       string
	Descending bool
}

func (f SortField) String() string {
	if f.Descending {
		return "-" + f.Name
	}
	return f.Name
}

// ParseSort splits a comma separated sort expression. A leading "-" marks a descending field.
func ParseSort(expr string) []SortField {
	var fields = make([]SortField, 0)

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "-" {
			continue
		}

		if strings.HasPrefix(part, "-") {
			fields = append(fields, SortField{Name: part[1:], Descending: true})
		} else {
			fields = append(fields, SortField{Name: part})
		}
	}

	return fields
}

func sortStrings(fields []SortField) []string {
	var result = make([]string, len(fields))
	for i, field := range fields {
		result[i] = field.String()
	}
	return result
}
