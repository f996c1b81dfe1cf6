// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package kafka

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubAdmin struct {
	Admin
	seeds []string
}

type recordingFactory struct {
	created int
	closed  int
	err     error
}

func (f *recordingFactory) create(seeds []string) (Admin, func(), error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	f.created++
	return &stubAdmin{seeds: seeds}, func() { f.closed++ }, nil
}

func TestConnections_ReusesClients(t *testing.T) {
	var assertions = assert.New(t)

	var factory = &recordingFactory{}
	var connections = NewConnections(factory.create)

	first, err := connections.Admin("c-prod", "broker-1:9092, broker-2:9092")
	assertions.NoError(err)
	assertions.Equal([]string{"broker-1:9092", "broker-2:9092"}, first.(*stubAdmin).seeds)

	second, err := connections.Admin("c-prod", "broker-1:9092, broker-2:9092")
	assertions.NoError(err)
	assertions.Same(first, second)
	assertions.Equal(1, factory.created)

	_, err = connections.Admin("c-dev", "dev:9092")
	assertions.NoError(err)
	assertions.Equal(2, factory.created)
}

func TestConnections_RecreatesOnChangedServers(t *testing.T) {
	var assertions = assert.New(t)

	var factory = &recordingFactory{}
	var connections = NewConnections(factory.create)

	first, _ := connections.Admin("c-prod", "broker-1:9092")
	second, err := connections.Admin("c-prod", "broker-3:9092")

	assertions.NoError(err)
	assertions.NotSame(first, second)
	assertions.Equal(2, factory.created)
	assertions.Equal(1, factory.closed)
}

func TestConnections_Errors(t *testing.T) {
	var assertions = assert.New(t)

	var connections = NewConnections((&recordingFactory{}).create)
	_, err := connections.Admin("c-prod", " , ")
	assertions.ErrorIs(err, ErrNoBootstrapServers)

	var failure = errors.New("invalid seed")
	connections = NewConnections((&recordingFactory{err: failure}).create)
	_, err = connections.Admin("c-prod", "broker-1:9092")
	assertions.ErrorIs(err, failure)
}

func TestConnections_Close(t *testing.T) {
	var assertions = assert.New(t)

	var factory = &recordingFactory{}
	var connections = NewConnections(factory.create)

	_, _ = connections.Admin("c-prod", "broker-1:9092")
	_, _ = connections.Admin("c-dev", "broker-2:9092")
	connections.Close()

	assertions.Equal(2, factory.closed)

	_, _ = connections.Admin("c-prod", "broker-1:9092")
	assertions.Equal(3, factory.created)
}
