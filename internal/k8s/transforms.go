package k8s

import (
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"
)

const instanceTypeLabel = "node.kubernetes.io/instance-type"

// providerIDPrefixes maps spec.providerID schemes to providers
var providerIDPrefixes = map[string]CloudProvider{
	"aws":          ProviderAWS,
	"azure":        ProviderAzure,
	"gce":          ProviderGCP,
	"openstack":    ProviderOpenstack,
	"vsphere":      ProviderVSphere,
	"hcloud":       ProviderHetzner,
	"digitalocean": ProviderDigitalocean,
}

// transformNode converts a core node to a console Node
func transformNode(n *corev1.Node) Node {
	node := Node{
		ID:                n.Name,
		Name:              n.Name,
		CreationTimestamp: n.CreationTimestamp.Time,
		Spec: NodeSpec{
			Cloud: NodeCloudSpec{
				Provider:     providerFromID(n.Spec.ProviderID),
				InstanceType: n.Labels[instanceTypeLabel],
			},
			Versions: NodeVersionInfo{Kubelet: n.Status.NodeInfo.KubeletVersion},
		},
		Status: NodeStatus{
			Capacity:    resourcesOf(n.Status.Capacity),
			Allocatable: resourcesOf(n.Status.Allocatable),
			NodeInfo: NodeSystemInfo{
				KernelVersion:           n.Status.NodeInfo.KernelVersion,
				OSImage:                 n.Status.NodeInfo.OSImage,
				OperatingSystem:         n.Status.NodeInfo.OperatingSystem,
				Architecture:            n.Status.NodeInfo.Architecture,
				ContainerRuntimeVersion: n.Status.NodeInfo.ContainerRuntimeVersion,
				KubeletVersion:          n.Status.NodeInfo.KubeletVersion,
			},
		},
	}

	if n.DeletionTimestamp != nil {
		t := n.DeletionTimestamp.Time
		node.DeletionTimestamp = &t
	}

	for _, c := range n.Status.Conditions {
		if c.Type == corev1.NodeReady {
			node.Status.Ready = c.Status == corev1.ConditionTrue
		}
	}

	for _, a := range n.Status.Addresses {
		node.Status.Addresses = append(node.Status.Addresses, NodeAddress{
			Type:    string(a.Type),
			Address: a.Address,
		})
	}

	return node
}

func resourcesOf(list corev1.ResourceList) NodeResources {
	var r NodeResources
	if cpu, ok := list[corev1.ResourceCPU]; ok {
		r.CPU = cpu.String()
	}
	if mem, ok := list[corev1.ResourceMemory]; ok {
		r.Memory = mem.String()
	}
	return r
}

func providerFromID(providerID string) CloudProvider {
	scheme, _, found := strings.Cut(providerID, "://")
	if !found {
		return ""
	}
	return providerIDPrefixes[scheme]
}

// machine is the subset of a cluster-api Machine the console uses
type machine struct {
	Name              string
	NodeRef           string
	CreationTimestamp time.Time
	DeletionTimestamp *time.Time
	Kubelet           string
	Provider          CloudProvider
	InstanceType      string
	Tags              map[string]string
	OperatingSystem   string
	ErrorReason       string
	ErrorMessage      string
}

// transformMachine extracts a machine from an unstructured Machine object
func transformMachine(u *unstructured.Unstructured) machine {
	m := machine{
		Name:              u.GetName(),
		CreationTimestamp: u.GetCreationTimestamp().Time,
	}
	if ts := u.GetDeletionTimestamp(); ts != nil {
		t := ts.Time
		m.DeletionTimestamp = &t
	}

	m.NodeRef, _, _ = unstructured.NestedString(u.Object, "status", "nodeRef", "name")
	m.Kubelet, _, _ = unstructured.NestedString(u.Object, "spec", "versions", "kubelet")
	m.ErrorReason, _, _ = unstructured.NestedString(u.Object, "status", "errorReason")
	m.ErrorMessage, _, _ = unstructured.NestedString(u.Object, "status", "errorMessage")

	provider, _, _ := unstructured.NestedString(u.Object, "spec", "providerSpec", "value", "cloudProvider")
	m.Provider = CloudProvider(strings.ToLower(provider))
	m.OperatingSystem, _, _ = unstructured.NestedString(u.Object, "spec", "providerSpec", "value", "operatingSystem")
	m.InstanceType, _, _ = unstructured.NestedString(u.Object, "spec", "providerSpec", "value", "cloudProviderSpec", "instanceType")
	if tags, found, _ := unstructured.NestedStringMap(u.Object, "spec", "providerSpec", "value", "cloudProviderSpec", "tags"); found {
		m.Tags = tags
	}

	return m
}

// mergeMachines attaches machine data to the nodes they back. Machines that
// have no node yet are returned as nodes of their own, after the others.
func mergeMachines(nodes []Node, machines []machine) []Node {
	byNode := make(map[string]machine, len(machines))
	var pending []machine
	for _, m := range machines {
		if m.NodeRef == "" {
			pending = append(pending, m)
			continue
		}
		byNode[m.NodeRef] = m
	}

	result := make([]Node, 0, len(nodes)+len(pending))
	for _, n := range nodes {
		if m, ok := byNode[n.Name]; ok {
			n = applyMachine(n, m)
		}
		result = append(result, n)
	}

	for _, m := range pending {
		result = append(result, applyMachine(Node{
			Name:              m.Name,
			CreationTimestamp: m.CreationTimestamp,
		}, m))
	}

	return result
}

func applyMachine(n Node, m machine) Node {
	n.ID = MachineIDPrefix + m.Name
	n.Status.MachineName = m.Name
	n.Status.ErrorReason = m.ErrorReason
	n.Status.ErrorMessage = m.ErrorMessage

	if n.DeletionTimestamp == nil {
		n.DeletionTimestamp = m.DeletionTimestamp
	}
	if n.Spec.Versions.Kubelet == "" {
		n.Spec.Versions.Kubelet = m.Kubelet
	}
	if m.Provider != "" {
		n.Spec.Cloud.Provider = m.Provider
	}
	if m.InstanceType != "" {
		n.Spec.Cloud.InstanceType = m.InstanceType
	}
	if len(m.Tags) > 0 {
		n.Spec.Cloud.Tags = m.Tags
	}
	n.Spec.OperatingSystem = m.OperatingSystem
	return n
}

// transformNodeMetrics combines usage with the node's allocatable resources
func transformNodeMetrics(m *metricsv1beta1.NodeMetrics, allocatable corev1.ResourceList) NodeMetrics {
	result := NodeMetrics{Name: m.Name}
	if cpu, ok := m.Usage[corev1.ResourceCPU]; ok {
		result.CPUUsedMillicores = cpu.MilliValue()
	}
	if mem, ok := m.Usage[corev1.ResourceMemory]; ok {
		result.MemoryUsedBytes = mem.Value()
	}
	if cpu, ok := allocatable[corev1.ResourceCPU]; ok {
		result.CPUTotalMillicores = cpu.MilliValue()
	}
	if mem, ok := allocatable[corev1.ResourceMemory]; ok {
		result.MemoryTotalBytes = mem.Value()
	}
	return result
}
