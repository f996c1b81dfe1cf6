// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownField = errors.New("unknown field")

// Fieldset is the sparse set of attributes a caller asked for.
type Fieldset map[string]struct{}

// ParseFieldset splits a comma separated attribute list and rejects names not in allowed.
func ParseFieldset(expr string, allowed []string) (Fieldset, error) {
	var fieldset = make(Fieldset)

	for _, name := range strings.Split(expr, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !slices.Contains(allowed, name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		fieldset[name] = struct{}{}
	}

	return fieldset, nil
}

func NewFieldset(names ...string) Fieldset {
	var fieldset = make(Fieldset, len(names))
	for _, name := range names {
		fieldset[name] = struct{}{}
	}
	return fieldset
}

func (f Fieldset) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// HasAny reports whether at least one of names was requested.
func (f Fieldset) HasAny(names ...string) bool {
	for _, name := range names {
		if f.Has(name) {
			return true
		}
	}
	return false
}
