// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package store

import "errors"

var (
	ErrUnknownStoreType = errors.New("unknown store type")
	ErrNoConnectedStore = errors.New("no connected store")
	ErrNotInitialized   = errors.New("store is not initialized")
)
