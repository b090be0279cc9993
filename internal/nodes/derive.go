package nodes

import (
	"strings"

	"github.com/dustin/go-humanize"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/renato0307/nodedash/internal/k8s"
)

// ShortID returns the node id without the machine prefix
func ShortID(node k8s.Node) string {
	return strings.TrimPrefix(node.ID, k8s.MachineIDPrefix)
}

// ShowAuxiliaryInfo reports whether the node name differs from its short id
// and is worth showing next to it
func ShowAuxiliaryInfo(node k8s.Node) bool {
	return node.ID != "" && node.Name != ShortID(node)
}

// AuxiliaryInfo is the secondary label of a node: the node name on AWS,
// where names are private DNS names, and the short id elsewhere
func AuxiliaryInfo(node k8s.Node) string {
	if node.Spec.Cloud.IsAWS() {
		return node.Name
	}
	return ShortID(node)
}

// HasTags reports whether tags has at least one entry
func HasTags(tags map[string]string) bool {
	return len(tags) > 0
}

// FormattedMemory renders a memory quantity such as "16Gi" as "16 GiB".
// Input that is not a valid quantity is returned unchanged.
func FormattedMemory(raw string) string {
	q, err := resource.ParseQuantity(raw)
	if err != nil {
		return raw
	}
	bytes := q.Value()
	if bytes < 0 {
		return raw
	}
	return humanize.IBytes(uint64(bytes))
}

// NodeAddresses groups node addresses by type
type NodeAddresses struct {
	InternalIPs []string
	ExternalIPs []string
	Hostnames   []string
	InternalDNS []string
	ExternalDNS []string
}

// IPs returns internal then external IPs
func (a NodeAddresses) IPs() []string {
	ips := make([]string, 0, len(a.InternalIPs)+len(a.ExternalIPs))
	ips = append(ips, a.InternalIPs...)
	return append(ips, a.ExternalIPs...)
}

// Addresses groups the addresses a node reports
func Addresses(node k8s.Node) NodeAddresses {
	var result NodeAddresses
	for _, a := range node.Status.Addresses {
		switch a.Type {
		case "InternalIP":
			result.InternalIPs = append(result.InternalIPs, a.Address)
		case "ExternalIP":
			result.ExternalIPs = append(result.ExternalIPs, a.Address)
		case "Hostname":
			result.Hostnames = append(result.Hostnames, a.Address)
		case "InternalDNS":
			result.InternalDNS = append(result.InternalDNS, a.Address)
		case "ExternalDNS":
			result.ExternalDNS = append(result.ExternalDNS, a.Address)
		}
	}
	return result
}

// HealthStatus returns the display state of a node
func HealthStatus(node k8s.Node) k8s.HealthStatus {
	switch {
	case node.DeletionTimestamp != nil:
		return k8s.HealthDeleting
	case node.Status.ErrorMessage != "":
		return k8s.HealthFailed
	case node.Status.Ready:
		return k8s.HealthRunning
	default:
		return k8s.HealthProvisioning
	}
}

var operatingSystems = map[string]string{
	"ubuntu":     "Ubuntu",
	"flatcar":    "Flatcar",
	"rhel":       "RHEL",
	"centos":     "CentOS",
	"amzn2":      "Amazon Linux 2",
	"rockylinux": "Rocky Linux",
	"sles":       "SLES",
}

// OperatingSystem returns a display name for the node operating system,
// falling back to the OS image the kubelet reports
func OperatingSystem(node k8s.Node) string {
	if name, ok := operatingSystems[strings.ToLower(node.Spec.OperatingSystem)]; ok {
		return name
	}
	if node.Spec.OperatingSystem != "" {
		return node.Spec.OperatingSystem
	}
	return node.Status.NodeInfo.OSImage
}
