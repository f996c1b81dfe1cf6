// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package store

import (
	"os"
	"testing"

	"github.com/telekom/kafka-console-api/internal/config"
	"github.com/telekom/kafka-console-api/internal/test"
)

// TestMain starts redis, mongodb and hazelcast once for all store tests of this package.
func TestMain(m *testing.M) {
	test.SetupDocker(&test.Options{
		Redis:     true,
		MongoDb:   true,
		Hazelcast: true,
	})

	config.Current = test.BuildBaseTestConfig()
	test.InstallLogRecorder()

	code := m.Run()

	test.TeardownDocker()
	os.Exit(code)
}
