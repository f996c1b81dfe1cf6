// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package kafka

import "github.com/twmb/franz-go/pkg/kadm"

// ConfigEntry is one configuration value of a topic or broker. Sensitive values are never rendered.
type ConfigEntry struct {
	Value     *string `json:"value"`
	Source    string  `json:"source"`
	Sensitive bool    `json:"sensitive"`
}

func ConfigEntries(configs []kadm.Config) map[string]ConfigEntry {
	var entries = make(map[string]ConfigEntry, len(configs))

	for _, config := range configs {
		var entry = ConfigEntry{
			Value:     config.Value,
			Source:    config.Source.String(),
			Sensitive: config.Sensitive,
		}
		if config.Sensitive {
			entry.Value = nil
		}
		entries[config.Key] = entry
	}

	return entries
}
