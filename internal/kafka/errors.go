// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package kafka

import (
	"context"
	"errors"

	"github.com/telekom/kafka-console-api/internal/model"
	"github.com/twmb/franz-go/pkg/kerr"
)

func IsNotFound(err error) bool {
	return errors.Is(err, kerr.GroupIDNotFound) ||
		errors.Is(err, kerr.UnknownTopicOrPartition) ||
		errors.Is(err, kerr.UnknownTopicID)
}

func IsConflict(err error) bool {
	return errors.Is(err, kerr.NonEmptyGroup)
}

// AsApiError classifies a backend failure of a request-level operation.
func AsApiError(err error) *model.Error {
	var apiError *model.Error
	switch {
	case errors.As(err, &apiError):
		return apiError
	case IsNotFound(err):
		return model.NewError(model.ResourceNotFound, err.Error())
	case IsConflict(err):
		return model.NewError(model.ResourceConflict, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return model.NewOccurrence(model.UpstreamTimeout, err)
	default:
		return model.NewOccurrence(model.ServerError, err)
	}
}
