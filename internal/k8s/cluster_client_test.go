package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/version"
	fakediscovery "k8s.io/client-go/discovery/fake"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"
	metricsfake "k8s.io/metrics/pkg/client/clientset/versioned/fake"

	"github.com/renato0307/nodedash/internal/errdef"
)

type testClients struct {
	core    *fake.Clientset
	dynamic *dynamicfake.FakeDynamicClient
	metrics *metricsfake.Clientset
	client  *ClusterClient
}

func newTestClients(t *testing.T, objects []runtime.Object, machines ...runtime.Object) testClients {
	t.Helper()

	core := fake.NewSimpleClientset(objects...)
	dyn := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(
		runtime.NewScheme(),
		map[schema.GroupVersionResource]string{MachineGVR: "MachineList"},
		machines...,
	)
	metrics := metricsfake.NewSimpleClientset()

	return testClients{
		core:    core,
		dynamic: dyn,
		metrics: metrics,
		client:  newClusterClient(core, dyn, metrics, "proj-1", Cluster{ID: "c1", Name: "prod-eu"}),
	}
}

func TestClusterClientCluster(t *testing.T) {
	tc := newTestClients(t, nil)
	tc.core.Discovery().(*fakediscovery.FakeDiscovery).FakedServerVersion = &version.Info{GitVersion: "v1.31.4"}

	cluster, err := tc.client.Cluster(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Cluster{ID: "c1", Name: "prod-eu", Version: "v1.31.4"}, cluster)
}

func TestClusterClientListNodes(t *testing.T) {
	tc := newTestClients(t,
		[]runtime.Object{newTestNode("worker-1", true), newTestNode("worker-2", false)},
		newTestMachine("md-1-abc", "worker-1"),
	)

	nodes, err := tc.client.ListNodes(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	byName := map[string]Node{}
	for _, n := range nodes {
		byName[n.Name] = n
	}
	assert.Equal(t, "machine-md-1-abc", byName["worker-1"].ID)
	assert.Equal(t, "worker-2", byName["worker-2"].ID)
	assert.False(t, byName["worker-2"].Status.Ready)
}

func TestClusterClientListNodesWithoutMachines(t *testing.T) {
	tc := newTestClients(t, []runtime.Object{newTestNode("worker-1", true)})
	tc.dynamic.PrependReactor("list", "machines", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, assert.AnError
	})

	nodes, err := tc.client.ListNodes(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "worker-1", nodes[0].ID)
}

func TestClusterClientListNodeMetrics(t *testing.T) {
	tc := newTestClients(t, []runtime.Object{newTestNode("worker-1", true)})
	tc.metrics.PrependReactor("list", "nodes", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, &metricsv1beta1.NodeMetricsList{
			Items: []metricsv1beta1.NodeMetrics{{
				ObjectMeta: metav1.ObjectMeta{Name: "worker-1"},
				Usage: corev1.ResourceList{
					corev1.ResourceCPU:    resource.MustParse("1"),
					corev1.ResourceMemory: resource.MustParse("8Gi"),
				},
			}},
		}, nil
	})

	metrics, err := tc.client.ListNodeMetrics(context.Background())
	require.NoError(t, err)
	require.Contains(t, metrics, "worker-1")
	assert.Equal(t, int64(25), metrics["worker-1"].CPUUsedPercentage())
	assert.Equal(t, int64(50), metrics["worker-1"].MemoryUsedPercentage())
}

func TestClusterClientDeleteNode(t *testing.T) {
	t.Run("machine backed node deletes the machine", func(t *testing.T) {
		tc := newTestClients(t,
			[]runtime.Object{newTestNode("worker-1", true)},
			newTestMachine("abc123", "worker-1"),
		)

		require.NoError(t, tc.client.DeleteNode(context.Background(), "proj-1", "c1", "machine-abc123"))

		list, err := tc.dynamic.Resource(MachineGVR).Namespace(MachineNamespace).List(context.Background(), metav1.ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, list.Items)

		// the core node is left for the machine controller to remove
		_, err = tc.core.CoreV1().Nodes().Get(context.Background(), "worker-1", metav1.GetOptions{})
		assert.NoError(t, err)
	})

	t.Run("plain node deletes the node", func(t *testing.T) {
		tc := newTestClients(t, []runtime.Object{newTestNode("worker-1", true)})

		require.NoError(t, tc.client.DeleteNode(context.Background(), "proj-1", "c1", "worker-1"))

		_, err := tc.core.CoreV1().Nodes().Get(context.Background(), "worker-1", metav1.GetOptions{})
		assert.Error(t, err)
	})

	tests := []struct {
		name      string
		projectID string
		clusterID string
		nodeID    string
		check     func(error) bool
	}{
		{"unknown project", "proj-2", "c1", "worker-1", errdef.IsNotFound},
		{"unknown cluster", "proj-1", "c2", "worker-1", errdef.IsNotFound},
		{"empty node id", "proj-1", "c1", "", errdef.IsBadRequest},
		{"missing node", "proj-1", "c1", "worker-9", errdef.IsNotFound},
		{"missing machine", "proj-1", "c1", "machine-gone", errdef.IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestClients(t, []runtime.Object{newTestNode("worker-1", true)})
			err := tc.client.DeleteNode(context.Background(), tt.projectID, tt.clusterID, tt.nodeID)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error category: %v", err)
		})
	}
}

func TestMapAPIErrorForbidden(t *testing.T) {
	tc := newTestClients(t, []runtime.Object{newTestNode("worker-1", true)})
	tc.core.PrependReactor("delete", "nodes", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, apierrorsForbidden()
	})

	err := tc.client.DeleteNode(context.Background(), "proj-1", "c1", "worker-1")
	assert.True(t, errdef.IsForbidden(err))
}
