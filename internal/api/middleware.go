// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"slices"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/telekom/kafka-console-api/internal/kafka"
	"github.com/telekom/kafka-console-api/internal/metrics"
	"github.com/telekom/kafka-console-api/internal/model"
)

const (
	localsUser  = "user"
	localsAdmin = "admin"
)

func withTrustedClients(trustedClients []string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if len(trustedClients) == 0 {
			return ctx.Next()
		}

		token, ok := ctx.Locals(localsUser).(*jwt.Token)
		if !ok {
			return model.NewError(model.Unauthorized, "Missing token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return model.NewError(model.Unauthorized, "Unsupported token claims")
		}

		clientId, _ := claims["clientId"].(string)
		if !slices.Contains(trustedClients, clientId) {
			return model.NewError(model.Unauthorized, "Unauthorized client")
		}

		return ctx.Next()
	}
}

// withMetrics renders errors of the remaining chain itself so the observed status is final.
func (s *Service) withMetrics(ctx *fiber.Ctx) error {
	var start = time.Now()

	if err := ctx.Next(); err != nil {
		if handlerErr := ctx.App().ErrorHandler(ctx, err); handlerErr != nil {
			_ = ctx.SendStatus(fiber.StatusInternalServerError)
		}
	}

	metrics.ObserveRequest(ctx.Route().Path, ctx.Method(), ctx.Response().StatusCode(), time.Since(start))
	return nil
}

// withAdmin resolves the admin client of the cluster named by the clusterId path parameter.
func (s *Service) withAdmin(ctx *fiber.Ctx) error {
	admin, err := s.deps.Clusters.Admin(ctx.UserContext(), ctx.Params("clusterId"))
	if err != nil {
		return err
	}

	ctx.Locals(localsAdmin, admin)
	return ctx.Next()
}

func adminOf(ctx *fiber.Ctx) (kafka.Admin, error) {
	admin, ok := ctx.Locals(localsAdmin).(kafka.Admin)
	if !ok {
		return nil, model.NewError(model.ServerError, "Missing cluster connection in request context")
	}
	return admin, nil
}
