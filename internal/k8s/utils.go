// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package k8s

import (
	"time"

	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/dynamic/dynamicinformer"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/cache"
	"k8s.io/client-go/tools/clientcmd"
)

// CreateClient uses the given kubeconfig, or the service account of the pod when the path is empty.
func CreateClient(kubeConfigPath string) (dynamic.Interface, error) {
	var restConfig *rest.Config
	var err error

	if kubeConfigPath == "" {
		restConfig, err = rest.InClusterConfig()
	} else {
		restConfig, err = clientcmd.BuildConfigFromFlags("", kubeConfigPath)
	}
	if err != nil {
		return nil, err
	}

	return dynamic.NewForConfig(restConfig)
}

func createInformer(client dynamic.Interface, resource schema.GroupVersionResource, namespace string, reSyncPeriod time.Duration) cache.SharedIndexInformer {
	var factory = dynamicinformer.NewFilteredDynamicSharedInformerFactory(client, reSyncPeriod, namespace, nil)
	return factory.ForResource(resource).Informer()
}
