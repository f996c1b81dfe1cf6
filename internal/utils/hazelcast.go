// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"github.com/hazelcast/hazelcast-go-client/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// HazelcastZerologLogger forwards hazelcast client logs to the global logger.
type HazelcastZerologLogger struct {
	logger zerolog.Logger
}

func NewHazelcastZerologLogger() *HazelcastZerologLogger {
	return &HazelcastZerologLogger{
		logger: log.Logger.With().Str("logger", "hazelcast").Logger(),
	}
}

func (l *HazelcastZerologLogger) Log(weight logger.Weight, f func() string) {
	var level = translateWeight(weight)
	if level < l.logger.GetLevel() || level < zerolog.GlobalLevel() {
		return
	}

	l.logger.WithLevel(level).Msg(f())
}

func translateWeight(weight logger.Weight) zerolog.Level {
	switch weight {

	case logger.WeightDebug, logger.WeightTrace:
		return zerolog.DebugLevel

	case logger.WeightInfo:
		return zerolog.InfoLevel

	case logger.WeightWarn:
		return zerolog.WarnLevel

	case logger.WeightError, logger.WeightFatal:
		return zerolog.ErrorLevel

	default:
		return zerolog.InfoLevel
	}
}
