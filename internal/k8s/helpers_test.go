package k8s

import (
	"time"

	"github.com/stretchr/testify/assert"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

var testCreated = time.Date(2025, 3, 2, 9, 14, 0, 0, time.UTC)

func newTestNode(name string, ready bool) *corev1.Node {
	status := corev1.ConditionFalse
	if ready {
		status = corev1.ConditionTrue
	}
	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			CreationTimestamp: metav1.NewTime(testCreated),
			Labels:            map[string]string{instanceTypeLabel: "t3.xlarge"},
		},
		Spec: corev1.NodeSpec{ProviderID: "aws:///eu-west-1a/i-0abc"},
		Status: corev1.NodeStatus{
			Capacity: corev1.ResourceList{
				corev1.ResourceCPU:    resource.MustParse("4"),
				corev1.ResourceMemory: resource.MustParse("16Gi"),
			},
			Allocatable: corev1.ResourceList{
				corev1.ResourceCPU:    resource.MustParse("4"),
				corev1.ResourceMemory: resource.MustParse("16Gi"),
			},
			Conditions: []corev1.NodeCondition{{Type: corev1.NodeReady, Status: status}},
			Addresses: []corev1.NodeAddress{
				{Type: corev1.NodeInternalIP, Address: "10.0.1.23"},
				{Type: corev1.NodeHostName, Address: name},
			},
			NodeInfo: corev1.NodeSystemInfo{
				KubeletVersion: "v1.31.4",
				OSImage:        "Ubuntu 24.04.1 LTS",
				Architecture:   "amd64",
			},
		},
	}
}

func newTestMachine(name, nodeRef string) *unstructured.Unstructured {
	u := &unstructured.Unstructured{
		Object: map[string]interface{}{
			"apiVersion": "cluster.k8s.io/v1alpha1",
			"kind":       "Machine",
			"metadata": map[string]interface{}{
				"name":              name,
				"namespace":         MachineNamespace,
				"creationTimestamp": testCreated.Format(time.RFC3339),
			},
			"spec": map[string]interface{}{
				"versions": map[string]interface{}{"kubelet": "1.31.4"},
				"providerSpec": map[string]interface{}{
					"value": map[string]interface{}{
						"cloudProvider":   "aws",
						"operatingSystem": "ubuntu",
						"cloudProviderSpec": map[string]interface{}{
							"instanceType": "m5.large",
							"tags":         map[string]interface{}{"team": "platform"},
						},
					},
				},
			},
		},
	}
	if nodeRef != "" {
		_ = unstructured.SetNestedField(u.Object, nodeRef, "status", "nodeRef", "name")
	}
	return u
}

func apierrorsForbidden() error {
	return apierrors.NewForbidden(schema.GroupResource{Resource: "nodes"}, "worker-1", assert.AnError)
}
