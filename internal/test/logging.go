// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package test

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var LogRecorder *LogRecorderHook

func InstallLogRecorder() {
	if LogRecorder == nil {
		LogRecorder = &LogRecorderHook{
			records: make(map[zerolog.Level]int),
		}
		log.Logger = log.Logger.Hook(LogRecorder).Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// LogRecorderHook counts log events per level. Aggregation tasks log from their own goroutines.
type LogRecorderHook struct {
	mu      sync.Mutex
	records map[zerolog.Level]int
}

func (h *LogRecorderHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	h.record(level)
}

func (h *LogRecorderHook) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = make(map[zerolog.Level]int)
}

func (h *LogRecorderHook) GetRecordCount(levels ...zerolog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	var count = 0
	for _, level := range levels {
		count += h.records[level]
	}
	return count
}

func (h *LogRecorderHook) record(level zerolog.Level) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records[level]++
}
