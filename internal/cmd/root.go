// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "kafka-console-api",
	Short: "Management API for browsing and administrating Kafka clusters, topics, consumer groups and nodes.",
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(initCmd, serveCmd)
}
