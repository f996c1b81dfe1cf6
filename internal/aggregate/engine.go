// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/telekom/kafka-console-api/internal/model"
	"golang.org/x/sync/errgroup"
)

// Task is one backend sub-operation contributing Field to Entities. A batch task may cover many
// entities. When Run fails every entity in Entities receives one ItemError titled Title.
type Task struct {
	Operation string
	Field     string
	Title     string
	Entities  []string
	Run       func(ctx context.Context) ([]Outcome, error)
}

// FailureObserver is notified once per failed task, e.g. to count failures.
type FailureObserver func(operation string, field string)

// Engine runs the sub-operations of one request concurrently and waits for all of them to settle.
// Failures never cancel sibling tasks; they are turned into outcomes.
type Engine struct {
	concurrency int
	timeout     time.Duration
	observer    FailureObserver
}

func NewEngine(concurrency int, timeout time.Duration, observer FailureObserver) *Engine {
	if observer == nil {
		observer = func(string, string) {}
	}

	return &Engine{
		concurrency: concurrency,
		timeout:     timeout,
		observer:    observer,
	}
}

// Collect runs tasks and returns their outcomes in task order. Once ctx is done no further tasks
// are started; those tasks fail with the context error.
func (e *Engine) Collect(ctx context.Context, tasks []Task) []Outcome {
	var results = make([][]Outcome, len(tasks))

	var group errgroup.Group
	if e.concurrency > 0 {
		group.SetLimit(e.concurrency)
	}

	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			results[i] = e.fail(task, err)
			continue
		}

		group.Go(func() error {
			results[i] = e.run(ctx, task)
			return nil
		})
	}

	_ = group.Wait()

	var outcomes = make([]Outcome, 0, len(tasks))
	for _, result := range results {
		outcomes = append(outcomes, result...)
	}
	return outcomes
}

func (e *Engine) run(ctx context.Context, task Task) (outcomes []Outcome) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			outcomes = e.fail(task, fmt.Errorf("sub-operation panicked: %v", recovered))
		}
	}()

	outcomes, err := task.Run(ctx)
	if err != nil {
		return e.fail(task, err)
	}
	return outcomes
}

func (e *Engine) fail(task Task, err error) []Outcome {
	log.Debug().Err(err).Fields(map[string]any{
		"operation": task.Operation,
		"field":     task.Field,
		"entities":  len(task.Entities),
	}).Msg("Sub-operation failed")

	e.observer(task.Operation, task.Field)

	var outcomes = make([]Outcome, len(task.Entities))
	for i, entity := range task.Entities {
		outcomes[i] = Failure(entity, task.Field, model.NewItemError(task.Title, err, task.Field))
	}
	return outcomes
}
