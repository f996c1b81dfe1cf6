// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"

	"github.com/goccy/go-json"
)

const cursorVersion = 1

var ErrInvalidCursor = errors.New("invalid cursor")

type cursorDocument struct {
	Version    int                        `json:"v"`
	Kind       string                     `json:"k"`
	Sort       []string                   `json:"s"`
	ID         string                     `json:"id"`
	Attributes map[string]json.RawMessage `json:"a"`
}

// EncodeCursor serializes the id of item and the values of the attributes named in sort.
// The sort fields must already be filtered by ActiveSort.
func (r *Registry[T]) EncodeCursor(item T, sort []SortField) string {
	var document = cursorDocument{
		Version:    cursorVersion,
		Kind:       r.kind,
		Sort:       sortStrings(sort),
		ID:         r.id(item),
		Attributes: make(map[string]json.RawMessage),
	}

	for _, field := range sort {
		if field.Name == IdField {
			continue
		}

		raw, err := json.Marshal(r.fields[field.Name].Value(item))
		if err != nil {
			raw = json.RawMessage("null")
		}
		document.Attributes[field.Name] = raw
	}

	encoded, err := json.Marshal(document)
	if err != nil {
		panic(fmt.Sprintf("could not encode cursor for %s: %v", r.kind, err))
	}

	return base64.RawURLEncoding.EncodeToString(encoded)
}

// DecodeCursor reconstructs a stand-in entity that compares like the entity the cursor was
// created for. An empty cursor yields false. The cursor must have been created for the same
// resource type and the same active sort fields.
func (r *Registry[T]) DecodeCursor(cursor string, sort []SortField) (T, bool, error) {
	var stub T

	if cursor == "" {
		return stub, false, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return stub, false, fmt.Errorf("%w: not base64url encoded", ErrInvalidCursor)
	}

	var document cursorDocument
	var decoder = json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&document); err != nil {
		return stub, false, fmt.Errorf("%w: malformed document", ErrInvalidCursor)
	}

	switch {
	case document.Version != cursorVersion:
		return stub, false, fmt.Errorf("%w: unsupported version %d", ErrInvalidCursor, document.Version)
	case document.Kind != r.kind:
		return stub, false, fmt.Errorf("%w: created for %q", ErrInvalidCursor, document.Kind)
	case document.ID == "":
		return stub, false, fmt.Errorf("%w: missing id", ErrInvalidCursor)
	case !slices.Equal(document.Sort, sortStrings(sort)):
		return stub, false, fmt.Errorf("%w: created for another sort order", ErrInvalidCursor)
	}

	stub, err = r.stub(document.ID)
	if err != nil {
		return stub, false, fmt.Errorf("%w: id %q: %v", ErrInvalidCursor, document.ID, err)
	}

	var expected = 0
	for _, field := range sort {
		if field.Name == IdField {
			continue
		}
		expected++

		value, ok := document.Attributes[field.Name]
		if !ok {
			return stub, false, fmt.Errorf("%w: missing attribute %q", ErrInvalidCursor, field.Name)
		}
		if err := r.fields[field.Name].Restore(stub, value); err != nil {
			return stub, false, fmt.Errorf("%w: attribute %q: %v", ErrInvalidCursor, field.Name, err)
		}
	}

	if len(document.Attributes) != expected {
		return stub, false, fmt.Errorf("%w: unexpected attributes", ErrInvalidCursor)
	}

	return stub, true, nil
}
