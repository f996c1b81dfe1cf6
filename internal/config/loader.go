// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var Current = LoadConfiguration()

func LoadConfiguration() *Configuration {
	setDefaults()
	var config = readConfig()
	applyLogLevel(config.LogLevel)
	return config
}

func setDefaults() {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.SetEnvPrefix("kconsole")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("logLevel", "info")

	viper.SetDefault("api.port", 8080)
	viper.SetDefault("api.logLevel", "info")
	viper.SetDefault("api.basePath", "/api")
	viper.SetDefault("api.security.enabled", false)
	viper.SetDefault("api.security.trustedIssuers", []string{})
	viper.SetDefault("api.security.trustedClients", []string{})

	viper.SetDefault("listing.defaultPageSize", 10)
	viper.SetDefault("listing.maxPageSize", 1000)

	viper.SetDefault("aggregation.concurrency", 8)
	viper.SetDefault("aggregation.operationTimeout", "10s")

	viper.SetDefault("kafka.clientId", "kafka-console-api")
	viper.SetDefault("kafka.requestTimeout", "10s")
	viper.SetDefault("kafka.clusters", []map[string]any{})

	viper.SetDefault("kubernetes.enabled", false)
	viper.SetDefault("kubernetes.namespace", "")
	viper.SetDefault("kubernetes.reSyncPeriod", "30s")
	viper.SetDefault("kubernetes.group", "kafka.strimzi.io")
	viper.SetDefault("kubernetes.version", "v1beta2")
	viper.SetDefault("kubernetes.resource", "kafkas")

	viper.SetDefault("store.type", "memory")
	viper.SetDefault("store.secondaryType", "")

	viper.SetDefault("store.redis.host", "localhost")
	viper.SetDefault("store.redis.port", 6379)
	viper.SetDefault("store.redis.username", "")
	viper.SetDefault("store.redis.password", "")
	viper.SetDefault("store.redis.database", 0)
	viper.SetDefault("store.redis.initCommands", []string{})

	viper.SetDefault("store.mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("store.mongo.database", "kconsole")

	viper.SetDefault("store.hazelcast.clusterName", "kconsole")
	viper.SetDefault("store.hazelcast.addresses", []string{"localhost:5701"})

	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.port", 8081)
	viper.SetDefault("metrics.timeout", "5s")
}

func readConfig() *Configuration {
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			log.Fatal().Err(err).Msg("Could not read configuration!")
		}
	}

	viper.AutomaticEnv()

	var config Configuration
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatal().Err(err).Msg("Could not unmarshal configuration!")
	}

	return &config
}

func applyLogLevel(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
		log.Info().Msgf("Invalid log level %s. Info log level is used", level)
	}

	log.Logger = zerolog.New(os.Stdout).Level(logLevel).With().Timestamp().Logger()
	if logLevel == zerolog.DebugLevel {
		log.Logger = log.Logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}
