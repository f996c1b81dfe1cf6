// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/fiberzerolog"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/telekom/kafka-console-api/internal/clusters"
	"github.com/telekom/kafka-console-api/internal/config"
	"github.com/telekom/kafka-console-api/internal/consumergroups"
	"github.com/telekom/kafka-console-api/internal/model"
	"github.com/telekom/kafka-console-api/internal/nodes"
	"github.com/telekom/kafka-console-api/internal/topics"
	"github.com/telekom/kafka-console-api/internal/utils"
)

// Dependencies are the resource services the handlers delegate to.
type Dependencies struct {
	Clusters       *clusters.Service
	ConsumerGroups *consumergroups.Service
	Topics         *topics.Service
	Nodes          *nodes.Service
}

type Service struct {
	app    *fiber.App
	logger *zerolog.Logger
	limits config.Listing
	deps   Dependencies
}

func NewService(cfg *config.Configuration, deps Dependencies) *Service {
	var s = &Service{
		logger: createLogger(cfg.Api.LogLevel),
		limits: cfg.Listing,
		deps:   deps,
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: s.logger.GetLevel() != zerolog.DebugLevel,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(fiberzerolog.New(fiberzerolog.Config{
		Logger: s.logger,
	}))
	s.app.Use(s.withMetrics)

	var root = s.app.Group(cfg.Api.BasePath)
	if cfg.Api.Security.Enabled {
		root.Use(jwtware.New(jwtware.Config{
			JWKSetURLs: cfg.Api.Security.TrustedIssuers,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				return model.NewError(model.Unauthorized, err.Error())
			},
		}))
		root.Use(withTrustedClients(cfg.Api.Security.TrustedClients))
	} else {
		s.logger.Warn().Msg("Security is disabled, requests are not authenticated")
	}

	s.routes(root)
	return s
}

func (s *Service) routes(root fiber.Router) {
	root.Get("/kafkas", s.listClusters)
	root.Get("/kafkas/:clusterId", s.describeCluster)

	var cluster = root.Group("/kafkas/:clusterId")

	cluster.Get("/consumerGroups", s.withAdmin, s.listConsumerGroups)
	cluster.Get("/consumerGroups/:groupId", s.withAdmin, s.describeConsumerGroup)
	cluster.Delete("/consumerGroups/:groupId", s.withAdmin, s.deleteConsumerGroup)

	cluster.Get("/topics", s.withAdmin, s.listTopics)
	cluster.Get("/topics/:topicId", s.withAdmin, s.describeTopic)
	cluster.Delete("/topics/:topicId", s.withAdmin, s.deleteTopic)

	cluster.Get("/nodes", s.withAdmin, s.listNodes)
	cluster.Get("/nodes/:nodeId/configs", s.withAdmin, s.describeNodeConfigs)
}

// App exposes the fiber application, e.g. for app.Test.
func (s *Service) App() *fiber.App {
	return s.app
}

func createLogger(level string) *zerolog.Logger {
	logger := log.Logger.With().Str("logger", "api").Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logger.Warn().Str("level", level).Msg("Invalid log level for api service, defaulting to info")
		lvl = zerolog.InfoLevel
	}

	logger = logger.Level(lvl)

	if lvl == zerolog.DebugLevel {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	return &logger
}

func (s *Service) Listen(port int) {
	utils.RegisterShutdownHook("api", 1, func(ctx context.Context) error {
		s.logger.Info().Msg("Shutting down api service...")
		return s.app.ShutdownWithContext(ctx)
	})

	s.logger.Info().Int("port", port).Msg("Starting api service...")
	if err := s.app.Listen(fmt.Sprintf(":%d", port)); err != nil {
		log.Fatal().Err(err).Msg("Failed to start api service")
	}
}
