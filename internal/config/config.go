// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

type Configuration struct {
	LogLevel    string      `mapstructure:"logLevel"`
	Api         Api         `mapstructure:"api"`
	Listing     Listing     `mapstructure:"listing"`
	Aggregation Aggregation `mapstructure:"aggregation"`
	Kafka       Kafka       `mapstructure:"kafka"`
	Kubernetes  Kubernetes  `mapstructure:"kubernetes"`
	Store       Store       `mapstructure:"store"`
	Metrics     Metrics     `mapstructure:"metrics"`
}

type Api struct {
	Port     int         `mapstructure:"port"`
	LogLevel string      `mapstructure:"logLevel"`
	BasePath string      `mapstructure:"basePath"`
	Security ApiSecurity `mapstructure:"security"`
}

type ApiSecurity struct {
	Enabled        bool     `mapstructure:"enabled"`
	TrustedIssuers []string `mapstructure:"trustedIssuers"`
	TrustedClients []string `mapstructure:"trustedClients"`
}

type Listing struct {
	DefaultPageSize int `mapstructure:"defaultPageSize"`
	MaxPageSize     int `mapstructure:"maxPageSize"`
}

type Aggregation struct {
	Concurrency      int           `mapstructure:"concurrency"`
	OperationTimeout time.Duration `mapstructure:"operationTimeout"`
}

type Kafka struct {
	ClientId       string         `mapstructure:"clientId"`
	RequestTimeout time.Duration  `mapstructure:"requestTimeout"`
	Clusters       []KafkaCluster `mapstructure:"clusters"`
}

// KafkaCluster is a statically configured cluster. It takes precedence over a discovered
// cluster with the same id.
type KafkaCluster struct {
	Id               string `mapstructure:"id"`
	Name             string `mapstructure:"name"`
	Namespace        string `mapstructure:"namespace"`
	BootstrapServers string `mapstructure:"bootstrapServers"`
	AuthType         string `mapstructure:"authType"`
}

type Kubernetes struct {
	Enabled      bool          `mapstructure:"enabled"`
	Namespace    string        `mapstructure:"namespace"`
	ReSyncPeriod time.Duration `mapstructure:"reSyncPeriod"`
	Group        string        `mapstructure:"group"`
	Version      string        `mapstructure:"version"`
	Resource     string        `mapstructure:"resource"`
}

func (k *Kubernetes) GetGroupVersionResource() schema.GroupVersionResource {
	return schema.GroupVersionResource{
		Group:    k.Group,
		Version:  k.Version,
		Resource: k.Resource,
	}
}

// GetDataSet names the redis key space, mongo collection and hazelcast map of the watched resource.
func (k *Kubernetes) GetDataSet() string {
	var name = fmt.Sprintf("%s.%s.%s", k.Resource, k.Group, k.Version)
	return strings.ToLower(name)
}

type Store struct {
	Type          string                 `mapstructure:"type"`
	SecondaryType string                 `mapstructure:"secondaryType"`
	Redis         RedisConfiguration     `mapstructure:"redis"`
	Mongo         MongoConfiguration     `mapstructure:"mongo"`
	Hazelcast     HazelcastConfiguration `mapstructure:"hazelcast"`
}

type RedisConfiguration struct {
	Host         string   `mapstructure:"host"`
	Port         uint     `mapstructure:"port"`
	Username     string   `mapstructure:"username"`
	Password     string   `mapstructure:"password"`
	Database     int      `mapstructure:"database"`
	InitCommands []string `mapstructure:"initCommands"`
}

type MongoConfiguration struct {
	Uri      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type HazelcastConfiguration struct {
	ClusterName string   `mapstructure:"clusterName"`
	Addresses   []string `mapstructure:"addresses"`
}

type Metrics struct {
	Enabled bool          `mapstructure:"enabled"`
	Port    int           `mapstructure:"port"`
	Timeout time.Duration `mapstructure:"timeout"`
}
