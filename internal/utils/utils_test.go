// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func TestObjectKey(t *testing.T) {
	var assertions = assert.New(t)

	var obj = new(unstructured.Unstructured)
	obj.SetName("prod")
	assertions.Equal("prod", ObjectKey(obj))

	obj.SetNamespace("kafka")
	assertions.Equal("kafka/prod", ObjectKey(obj))
}

func TestCreateFieldsForOp(t *testing.T) {
	var assertions = assert.New(t)

	var obj = new(unstructured.Unstructured)
	obj.SetName("prod")
	obj.SetNamespace("kafka")

	var fields = CreateFieldsForOp("add", obj)
	assertions.Equal("add", fields["operation"])
	assertions.Equal("prod", fields["name"])
	assertions.Equal("kafka", fields["namespace"])
}

func TestAsAnySlice(t *testing.T) {
	var assertions = assert.New(t)

	assertions.Equal([]any{"FT.CREATE", "idx"}, AsAnySlice([]string{"FT.CREATE", "idx"}))
	assertions.Empty(AsAnySlice(nil))
}
