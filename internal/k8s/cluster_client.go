package k8s

import (
	"context"
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	metricsclientset "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/renato0307/nodedash/internal/errdef"
	"github.com/renato0307/nodedash/internal/logging"
)

// MachineNamespace is where the machine controller keeps Machines
const MachineNamespace = "kube-system"

// MachineGVR is the cluster-api Machine resource
var MachineGVR = schema.GroupVersionResource{
	Group:    "cluster.k8s.io",
	Version:  "v1alpha1",
	Resource: "machines",
}

// ClusterClient is a ClusterService backed by the Kubernetes API
type ClusterClient struct {
	clientset     kubernetes.Interface
	dynamicClient dynamic.Interface
	metricsClient metricsclientset.Interface
	projectID     string
	cluster       Cluster
	log           *logging.Logger
}

func newClusterClient(
	clientset kubernetes.Interface,
	dynamicClient dynamic.Interface,
	metricsClient metricsclientset.Interface,
	projectID string,
	cluster Cluster,
) *ClusterClient {
	return &ClusterClient{
		clientset:     clientset,
		dynamicClient: dynamicClient,
		metricsClient: metricsClient,
		projectID:     projectID,
		cluster:       cluster,
		log:           logging.Component("k8s").With("cluster", cluster.ID),
	}
}

// Cluster returns the cluster identity with the API server version
func (c *ClusterClient) Cluster(ctx context.Context) (Cluster, error) {
	cluster := c.cluster
	version, err := c.clientset.Discovery().ServerVersion()
	if err != nil {
		c.log.Warn("failed to read server version", "error", err)
		return cluster, nil
	}
	cluster.Version = version.GitVersion
	return cluster, nil
}

// ListNodes returns the cluster nodes merged with their Machines. Missing
// Machine support (no CRD, no access) is logged and ignored.
func (c *ClusterClient) ListNodes(ctx context.Context) ([]Node, error) {
	defer logging.Since(time.Now(), "list nodes", "cluster", c.cluster.ID)

	list, err := c.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", mapAPIError(err))
	}

	nodes := make([]Node, 0, len(list.Items))
	for i := range list.Items {
		nodes = append(nodes, transformNode(&list.Items[i]))
	}

	machineList, err := c.dynamicClient.Resource(MachineGVR).Namespace(MachineNamespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		c.log.Warn("failed to list machines, showing nodes only", "error", err)
		return nodes, nil
	}

	machines := make([]machine, 0, len(machineList.Items))
	for i := range machineList.Items {
		machines = append(machines, transformMachine(&machineList.Items[i]))
	}

	return mergeMachines(nodes, machines), nil
}

// ListNodeMetrics returns current usage keyed by node name
func (c *ClusterClient) ListNodeMetrics(ctx context.Context) (map[string]NodeMetrics, error) {
	usage, err := c.metricsClient.MetricsV1beta1().NodeMetricses().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list node metrics: %w", mapAPIError(err))
	}

	nodes, err := c.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", mapAPIError(err))
	}

	allocatable := make(map[string]corev1.ResourceList, len(nodes.Items))
	for i := range nodes.Items {
		allocatable[nodes.Items[i].Name] = nodes.Items[i].Status.Allocatable
	}

	result := make(map[string]NodeMetrics, len(usage.Items))
	for i := range usage.Items {
		m := &usage.Items[i]
		result[m.Name] = transformNodeMetrics(m, allocatable[m.Name])
	}

	return result, nil
}

// DeleteNode deletes nodeID from clusterID. Machine-backed nodes are removed
// by deleting the Machine so the controller drains and deprovisions them.
func (c *ClusterClient) DeleteNode(ctx context.Context, projectID, clusterID, nodeID string) error {
	if projectID != c.projectID {
		return errdef.NewNotFound("project %s not found", projectID)
	}
	if clusterID != c.cluster.ID {
		return errdef.NewNotFound("cluster %s not found in project %s", clusterID, projectID)
	}
	if nodeID == "" {
		return errdef.NewBadRequest("node id is required")
	}

	var err error
	if machineName, ok := MachineName(nodeID); ok {
		err = c.dynamicClient.Resource(MachineGVR).Namespace(MachineNamespace).Delete(ctx, machineName, metav1.DeleteOptions{})
	} else {
		err = c.clientset.CoreV1().Nodes().Delete(ctx, nodeID, metav1.DeleteOptions{})
	}
	if err != nil {
		return fmt.Errorf("failed to delete node %s: %w", nodeID, mapAPIError(err))
	}

	c.log.Info("node deleted", "node", nodeID, "project", projectID)
	return nil
}

// mapAPIError converts Kubernetes status errors into errdef categories
func mapAPIError(err error) error {
	switch {
	case apierrors.IsNotFound(err):
		return errdef.NewNotFound("%w", err)
	case apierrors.IsForbidden(err):
		return errdef.NewForbidden("%w", err)
	case apierrors.IsUnauthorized(err):
		return errdef.NewUnauthorized("%w", err)
	case apierrors.IsBadRequest(err), apierrors.IsInvalid(err):
		return errdef.NewBadRequest("%w", err)
	default:
		return err
	}
}
