// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/telekom/kafka-console-api/internal/config"
	"github.com/telekom/kafka-console-api/internal/listing"
	"github.com/telekom/kafka-console-api/internal/model"
)

const (
	paramSort       = "sort"
	paramPageSize   = "page[size]"
	paramPageAfter  = "page[after]"
	paramPageBefore = "page[before]"
	paramFilter     = "filter"
	paramFields     = "fields"
)

// resourceType describes the sparse fieldset options of one resource type.
type resourceType struct {
	kind     string
	all      []string
	defaults []string
}

// parseFields reads fields[<kind>]. Fieldsets for other resource types are rejected.
func parseFields(ctx *fiber.Ctx, resource resourceType) (listing.Fieldset, error) {
	var fieldset listing.Fieldset
	var parseErr error

	ctx.Context().QueryArgs().VisitAll(func(key []byte, value []byte) {
		name, ok := bracketed(string(key), paramFields)
		if !ok || parseErr != nil {
			return
		}

		if name != resource.kind {
			parseErr = model.Errorf(model.UnknownResourceType, "Resource type %q is not part of this response", name).
				WithParameter(string(key))
			return
		}

		var err error
		if fieldset, err = listing.ParseFieldset(string(value), resource.all); err != nil {
			parseErr = model.NewError(model.InvalidQueryParameter, err.Error()).WithParameter(string(key))
		}
	})

	if parseErr != nil {
		return nil, parseErr
	}
	if fieldset == nil {
		fieldset = listing.NewFieldset(resource.defaults...)
	}
	return fieldset, nil
}

func parsePageSize(ctx *fiber.Ctx, limits config.Listing) (int, error) {
	var raw = ctx.Query(paramPageSize)
	if raw == "" {
		return limits.DefaultPageSize, nil
	}

	size, err := strconv.Atoi(raw)
	if err != nil || size < 1 || (limits.MaxPageSize > 0 && size > limits.MaxPageSize) {
		return 0, model.Errorf(model.InvalidQueryParameter, "Page size must be between 1 and %d", limits.MaxPageSize).
			WithParameter(paramPageSize)
	}
	return size, nil
}

func parseFilters(ctx *fiber.Ctx) ([]listing.Filter, error) {
	var filters = make([]listing.Filter, 0)
	var parseErr error

	ctx.Context().QueryArgs().VisitAll(func(key []byte, value []byte) {
		field, ok := bracketed(string(key), paramFilter)
		if !ok || parseErr != nil {
			return
		}

		filter, err := listing.ParseFilter(field, string(value))
		if err != nil {
			parseErr = model.NewError(model.InvalidQueryParameter, err.Error()).WithParameter(string(key))
			return
		}
		filters = append(filters, filter)
	})

	slices.SortStableFunc(filters, func(a, b listing.Filter) int {
		return strings.Compare(a.Field, b.Field)
	})
	return filters, parseErr
}

// newListContext validates all listing parameters before any backend is contacted.
func newListContext[T any](ctx *fiber.Ctx, limits config.Listing, registry *listing.Registry[T], resource resourceType) (*listing.Context[T], error) {
	fields, err := parseFields(ctx, resource)
	if err != nil {
		return nil, err
	}

	size, err := parsePageSize(ctx, limits)
	if err != nil {
		return nil, err
	}

	filters, err := parseFilters(ctx)
	if err != nil {
		return nil, err
	}

	var request = listing.Request{
		Sort:    listing.ParseSort(ctx.Query(paramSort)),
		Size:    size,
		After:   ctx.Query(paramPageAfter),
		Before:  ctx.Query(paramPageBefore),
		Filters: filters,
		Fields:  fields,
	}

	listCtx, err := listing.NewContext(registry, request)
	if err != nil {
		return nil, asListingError(err, request)
	}
	return listCtx, nil
}

func asListingError(err error, request listing.Request) *model.Error {
	switch {
	case errors.Is(err, listing.ErrInvalidCursor):
		var parameter = paramPageAfter
		if request.After == "" {
			parameter = paramPageBefore
		}
		return model.NewError(model.InvalidCursor, err.Error()).WithParameter(parameter)
	case errors.Is(err, listing.ErrConflictingCursors):
		return model.NewError(model.InvalidQueryParameter, err.Error()).WithParameter(paramPageBefore)
	case errors.Is(err, listing.ErrInvalidFilter):
		return model.NewError(model.InvalidQueryParameter, err.Error()).WithParameter(paramFilter)
	default:
		return model.NewOccurrence(model.ServerError, err)
	}
}

// bracketed returns x for keys of the form prefix[x].
func bracketed(key string, prefix string) (string, bool) {
	if !strings.HasPrefix(key, prefix+"[") || !strings.HasSuffix(key, "]") {
		return "", false
	}
	return key[len(prefix)+1 : len(key)-1], true
}
