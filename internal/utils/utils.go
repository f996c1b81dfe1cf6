// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// ObjectKey identifies a namespaced resource in every store.
func ObjectKey(obj *unstructured.Unstructured) string {
	if obj.GetNamespace() == "" {
		return obj.GetName()
	}
	return obj.GetNamespace() + "/" + obj.GetName()
}

func GetFieldsOfObject(obj *unstructured.Unstructured) map[string]any {
	return map[string]any{
		"name":      obj.GetName(),
		"namespace": obj.GetNamespace(),
		"uid":       obj.GetUID(),
	}
}

func CreateFieldsForOp(operation string, obj *unstructured.Unstructured) map[string]any {
	var objFields = GetFieldsOfObject(obj)
	objFields["operation"] = operation
	return objFields
}

func CreateFieldForResource(resource *schema.GroupVersionResource) map[string]any {
	return map[string]any{
		"group":    resource.Group,
		"resource": resource.Resource,
		"version":  resource.Version,
	}
}

func AsAnySlice(args []string) []any {
	var slice = make([]any, len(args))
	for i, arg := range args {
		slice[i] = arg
	}
	return slice
}
