// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package aggregate

import "github.com/telekom/kafka-console-api/internal/model"

// Outcome is the immutable contribution of one sub-operation to one attribute of one entity.
type Outcome struct {
	Entity  string
	Field   string
	Value   any
	Present bool
	Errors  []model.ItemError
}

// Value creates a successful outcome. Item-level errors may still be attached.
func Value(entity string, field string, value any, errors ...model.ItemError) Outcome {
	return Outcome{
		Entity:  entity,
		Field:   field,
		Value:   value,
		Present: true,
		Errors:  errors,
	}
}

// Failure creates an outcome that only carries errors. The attribute stays absent.
func Failure(entity string, field string, errors ...model.ItemError) Outcome {
	return Outcome{
		Entity: entity,
		Field:  field,
		Errors: errors,
	}
}

// Entity is implemented by every aggregated entity through model.Errors.
type Entity interface {
	AddErrors(errors ...model.ItemError)
}

// Join merges outcomes into their entities in outcome order. It must not be called concurrently
// for the same entities. Outcomes of unknown entities are dropped.
func Join[E Entity](entities map[string]E, outcomes []Outcome, apply func(entity E, outcome Outcome)) {
	for _, outcome := range outcomes {
		entity, ok := entities[outcome.Entity]
		if !ok {
			continue
		}

		entity.AddErrors(outcome.Errors...)
		if outcome.Present {
			apply(entity, outcome)
		}
	}
}
