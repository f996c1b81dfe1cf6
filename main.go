// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/telekom/kafka-console-api/internal/cmd"
	"github.com/telekom/kafka-console-api/internal/config"
)

func main() {
	_ = config.Current
	cmd.Execute()
}
