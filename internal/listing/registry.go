// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

const IdField = "id"

// Field declares one sortable and/or filterable attribute of a resource type.
type Field[T any] struct {
	Name string

	// Compare orders entities by this attribute, ascending. Fields without Compare are not sortable.
	Compare Comparator[T]

	// Value and Restore carry the attribute through a cursor.
	Value   func(T) any
	Restore func(T, json.RawMessage) error

	// Text exposes the attribute to filters. Fields without Text are not filterable.
	Text func(T) (string, bool)
}

func (f Field[T]) sortable() bool {
	return f.Compare != nil && f.Value != nil && f.Restore != nil
}

// Definition is the static declaration of a resource type.
type Definition[T any] struct {
	Kind string
	ID   func(T) string

	// Stub creates the minimal entity a cursor is decoded into. It fails for ids the
	// resource type cannot have.
	Stub func(id string) (T, error)

	// Default is the final tie-break. Entities are compared by id when it is nil.
	Default Comparator[T]

	Fields []Field[T]
}

// Registry is the field registry of one resource type.
type Registry[T any] struct {
	kind      string
	id        func(T) string
	stub      func(id string) (T, error)
	byDefault Comparator[T]
	fields    map[string]Field[T]
	names     []string
}

// NewRegistry validates a definition. It panics on duplicate or reserved field names since
// definitions are package level declarations.
func NewRegistry[T any](definition Definition[T]) *Registry[T] {
	var registry = &Registry[T]{
		kind:      definition.Kind,
		id:        definition.ID,
		stub:      definition.Stub,
		byDefault: definition.Default,
		fields:    make(map[string]Field[T]),
		names:     make([]string, 0, len(definition.Fields)+1),
	}

	if registry.byDefault == nil {
		registry.byDefault = Ordered(definition.ID)
	}

	registry.fields[IdField] = Field[T]{
		Name:    IdField,
		Compare: registry.byDefault,
		Text: func(item T) (string, bool) {
			return definition.ID(item), true
		},
	}
	registry.names = append(registry.names, IdField)

	for _, field := range definition.Fields {
		if _, exists := registry.fields[field.Name]; exists {
			panic(fmt.Sprintf("field %q declared twice for %s", field.Name, definition.Kind))
		}
		registry.fields[field.Name] = field
		registry.names = append(registry.names, field.Name)
	}

	return registry
}

func (r *Registry[T]) Kind() string {
	return r.kind
}

func (r *Registry[T]) ID(item T) string {
	return r.id(item)
}

// DefaultComparator orders by id unless the definition declared otherwise.
func (r *Registry[T]) DefaultComparator() Comparator[T] {
	return r.byDefault
}

// Sortable reports whether name can appear in a sort expression.
func (r *Registry[T]) Sortable(name string) bool {
	field, ok := r.fields[name]
	return ok && (name == IdField || field.sortable())
}

func (r *Registry[T]) Filterable(name string) bool {
	field, ok := r.fields[name]
	return ok && field.Text != nil
}

// Comparator returns the direction-aware comparator of a field, or false for unknown fields.
func (r *Registry[T]) Comparator(name string, descending bool) (Comparator[T], bool) {
	if !r.Sortable(name) {
		return nil, false
	}

	var comparator = r.fields[name].Compare
	if descending {
		comparator = comparator.Reversed()
	}
	return comparator, true
}

// Fields lists the declared attribute names in declaration order, id first.
func (r *Registry[T]) Fields() []string {
	return r.names
}

// StringField declares a sortable, filterable string attribute.
func StringField[T any](name string, get func(T) string, set func(T, string)) Field[T] {
	return Field[T]{
		Name:    name,
		Compare: Ordered(get),
		Value: func(item T) any {
			return get(item)
		},
		Restore: restore(set),
		Text: func(item T) (string, bool) {
			return get(item), true
		},
	}
}

// NullableStringField declares a string attribute whose absent values sort last.
func NullableStringField[T any](name string, get func(T) *string, set func(T, *string)) Field[T] {
	return Field[T]{
		Name:    name,
		Compare: NullsLast(get),
		Value: func(item T) any {
			return get(item)
		},
		Restore: restore(set),
		Text: func(item T) (string, bool) {
			if value := get(item); value != nil {
				return *value, true
			}
			return "", false
		},
	}
}

func BoolField[T any](name string, get func(T) bool, set func(T, bool)) Field[T] {
	return Field[T]{
		Name:    name,
		Compare: Bools(get),
		Value: func(item T) any {
			return get(item)
		},
		Restore: restore(set),
		Text: func(item T) (string, bool) {
			return strconv.FormatBool(get(item)), true
		},
	}
}

func IntField[T any](name string, get func(T) int, set func(T, int)) Field[T] {
	return Field[T]{
		Name:    name,
		Compare: Ordered(get),
		Value: func(item T) any {
			return get(item)
		},
		Restore: restore(set),
		Text: func(item T) (string, bool) {
			return strconv.Itoa(get(item)), true
		},
	}
}

func restore[T any, V any](set func(T, V)) func(T, json.RawMessage) error {
	return func(item T, raw json.RawMessage) error {
		var value V
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		set(item, value)
		return nil
	}
}
