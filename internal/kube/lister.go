// MIT License
//
// Copyright (c) 2025 Stalescan Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package kube

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
)

// SubnamespaceAnchorGVR identifies the Hierarchical Namespace Controller
// anchor resource. Review apps are created as subnamespaces of a parent
// namespace, so their anchors live in that parent.
var SubnamespaceAnchorGVR = schema.GroupVersionResource{
	Group:    "hnc.x-k8s.io",
	Version:  "v1alpha2",
	Resource: "subnamespaceanchors",
}

// Lister discovers candidate namespace names.
type Lister struct {
	core    kubernetes.Interface
	dynamic dynamic.Interface
}

// NewLister creates a lister over the given clients.
func NewLister(core kubernetes.Interface, dyn dynamic.Interface) *Lister {
	return &Lister{
		core:    core,
		dynamic: dyn,
	}
}

// Subnamespaces returns the names of the HNC subnamespace anchors under the
// parent namespace. The anchor name is the subnamespace name.
func (l *Lister) Subnamespaces(ctx context.Context, parent string) ([]string, error) {
	list, err := l.dynamic.Resource(SubnamespaceAnchorGVR).Namespace(parent).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list subnamespace anchors in %s: %w", parent, err)
	}

	names := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		names = append(names, item.GetName())
	}
	return names, nil
}

// Namespaces returns the names of every namespace in the cluster, for
// clusters that run review apps as plain namespaces without HNC.
func (l *Lister) Namespaces(ctx context.Context) ([]string, error) {
	list, err := l.core.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	names := make([]string, 0, len(list.Items))
	for _, ns := range list.Items {
		names = append(names, ns.Name)
	}
	return names, nil
}
