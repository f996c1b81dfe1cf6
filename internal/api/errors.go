// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/telekom/kafka-console-api/internal/model"
)

// handleError renders every error of the request chain as an error list.
func (s *Service) handleError(ctx *fiber.Ctx, err error) error {
	var apiError *model.Error
	var fiberError *fiber.Error

	switch {
	case errors.As(err, &apiError):
	case errors.As(err, &fiberError):
		apiError = model.NewError(categoryOf(fiberError.Code), fiberError.Message)
	default:
		apiError = model.NewOccurrence(model.ServerError, err)
	}

	if apiError.HttpStatus() >= fiber.StatusInternalServerError {
		s.logger.Warn().Fields(map[string]any{
			"id":     apiError.ID,
			"title":  apiError.Title,
			"detail": apiError.Detail,
			"path":   ctx.Path(),
		}).Msg("Request failed")
	} else {
		s.logger.Debug().Fields(map[string]any{
			"code":   apiError.Code,
			"detail": apiError.Detail,
			"path":   ctx.Path(),
		}).Msg("Request rejected")
	}

	return ctx.Status(apiError.HttpStatus()).JSON(model.ErrorResponse{
		Errors: []*model.Error{apiError},
	})
}

func categoryOf(status int) model.Category {
	switch status {
	case fiber.StatusBadRequest:
		return model.InvalidQueryParameter
	case fiber.StatusUnauthorized:
		return model.Unauthorized
	case fiber.StatusNotFound:
		return model.ResourceNotFound
	case fiber.StatusConflict:
		return model.ResourceConflict
	case fiber.StatusGatewayTimeout:
		return model.UpstreamTimeout
	case fiber.StatusInternalServerError:
		return model.ServerError
	default:
		return model.Category{
			Status: status,
			Code:   strconv.Itoa(status*10 + 1),
			Title:  http.StatusText(status),
		}
	}
}
