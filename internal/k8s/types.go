package k8s

import (
	"context"
	"strings"
	"time"
)

// MachineIDPrefix marks node ids backed by a cluster-api Machine
const MachineIDPrefix = "machine-"

// CloudProvider names the provider a node runs on
type CloudProvider string

const (
	ProviderAWS          CloudProvider = "aws"
	ProviderAzure        CloudProvider = "azure"
	ProviderGCP          CloudProvider = "gcp"
	ProviderOpenstack    CloudProvider = "openstack"
	ProviderVSphere      CloudProvider = "vsphere"
	ProviderHetzner      CloudProvider = "hetzner"
	ProviderDigitalocean CloudProvider = "digitalocean"
	ProviderBringYourOwn CloudProvider = "bringyourown"
)

// HealthStatus is the coarse state shown for nodes and clusters
type HealthStatus string

const (
	HealthRunning      HealthStatus = "Running"
	HealthProvisioning HealthStatus = "Provisioning"
	HealthDeleting     HealthStatus = "Deleting"
	HealthFailed       HealthStatus = "Failed"
)

// Node is a worker node as shown by the console. ID is "machine-<name>" when
// the node is backed by a Machine and the node name otherwise.
type Node struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	CreationTimestamp time.Time  `json:"creationTimestamp"`
	DeletionTimestamp *time.Time `json:"deletionTimestamp,omitempty"`
	Spec              NodeSpec   `json:"spec"`
	Status            NodeStatus `json:"status"`
}

// NodeSpec is the desired state of a node
type NodeSpec struct {
	Cloud           NodeCloudSpec   `json:"cloud"`
	OperatingSystem string          `json:"operatingSystem,omitempty"`
	Versions        NodeVersionInfo `json:"versions"`
}

// NodeVersionInfo holds component versions
type NodeVersionInfo struct {
	Kubelet string `json:"kubelet"`
}

// NodeCloudSpec is the provider-specific part of a node spec
type NodeCloudSpec struct {
	Provider     CloudProvider     `json:"provider,omitempty"`
	InstanceType string            `json:"instanceType,omitempty"`
	Tags         map[string]string `json:"tags,omitempty"`
}

// IsAWS reports whether the node runs on AWS
func (c NodeCloudSpec) IsAWS() bool {
	return c.Provider == ProviderAWS
}

// NodeStatus is the observed state of a node
type NodeStatus struct {
	MachineName  string         `json:"machineName,omitempty"`
	Ready        bool           `json:"ready"`
	ErrorReason  string         `json:"errorReason,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	Capacity     NodeResources  `json:"capacity"`
	Allocatable  NodeResources  `json:"allocatable"`
	Addresses    []NodeAddress  `json:"addresses,omitempty"`
	NodeInfo     NodeSystemInfo `json:"nodeInfo"`
}

// NodeResources holds raw resource quantities such as "4" or "16Gi"
type NodeResources struct {
	CPU    string `json:"cpu,omitempty"`
	Memory string `json:"memory,omitempty"`
}

// NodeAddress is one address of a node
type NodeAddress struct {
	Type    string `json:"type"`
	Address string `json:"address"`
}

// NodeSystemInfo is what the kubelet reports about the host
type NodeSystemInfo struct {
	KernelVersion           string `json:"kernelVersion,omitempty"`
	OSImage                 string `json:"osImage,omitempty"`
	OperatingSystem         string `json:"operatingSystem,omitempty"`
	Architecture            string `json:"architecture,omitempty"`
	ContainerRuntimeVersion string `json:"containerRuntimeVersion,omitempty"`
	KubeletVersion          string `json:"kubeletVersion,omitempty"`
}

// NodeMetrics is the current resource usage of a node
type NodeMetrics struct {
	Name               string `json:"name"`
	CPUUsedMillicores  int64  `json:"cpuUsedMillicores"`
	CPUTotalMillicores int64  `json:"cpuTotalMillicores"`
	MemoryUsedBytes    int64  `json:"memoryUsedBytes"`
	MemoryTotalBytes   int64  `json:"memoryTotalBytes"`
}

// CPUUsedPercentage returns used CPU as a percentage of allocatable, or 0
func (m NodeMetrics) CPUUsedPercentage() int64 {
	if m.CPUTotalMillicores <= 0 {
		return 0
	}
	return m.CPUUsedMillicores * 100 / m.CPUTotalMillicores
}

// MemoryUsedPercentage returns used memory as a percentage of allocatable, or 0
func (m NodeMetrics) MemoryUsedPercentage() int64 {
	if m.MemoryTotalBytes <= 0 {
		return 0
	}
	return m.MemoryUsedBytes * 100 / m.MemoryTotalBytes
}

// Cluster identifies the cluster the console is attached to
type Cluster struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// ClusterService is everything the console needs from a cluster
type ClusterService interface {
	Cluster(ctx context.Context) (Cluster, error)
	ListNodes(ctx context.Context) ([]Node, error)
	ListNodeMetrics(ctx context.Context) (map[string]NodeMetrics, error)
	DeleteNode(ctx context.Context, projectID, clusterID, nodeID string) error
}

// MachineName returns the Machine name encoded in a node id, if any
func MachineName(nodeID string) (string, bool) {
	if !strings.HasPrefix(nodeID, MachineIDPrefix) {
		return "", false
	}
	return strings.TrimPrefix(nodeID, MachineIDPrefix), true
}
