package nodes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/nodedash/internal/k8s"
)

func TestShortID(t *testing.T) {
	assert.Equal(t, "xyz", ShortID(k8s.Node{ID: "machine-xyz"}))
	assert.Equal(t, "xyz", ShortID(k8s.Node{ID: "xyz"}))
	assert.Equal(t, "", ShortID(k8s.Node{}))
	assert.Equal(t, "pool-machine-7", ShortID(k8s.Node{ID: "pool-machine-7"}), "prefix only stripped at the start")
	assert.False(t, ShowAuxiliaryInfo(k8s.Node{ID: "pool-machine-7", Name: "pool-machine-7"}))
}

func TestAuxiliaryInfo(t *testing.T) {
	aws := k8s.Node{
		ID:   "machine-md-1-abc",
		Name: "ip-10-0-1-23.eu-west-1.compute.internal",
		Spec: k8s.NodeSpec{Cloud: k8s.NodeCloudSpec{Provider: k8s.ProviderAWS}},
	}
	hetzner := k8s.Node{
		ID:   "machine-md-2-def",
		Name: "worker-2",
		Spec: k8s.NodeSpec{Cloud: k8s.NodeCloudSpec{Provider: k8s.ProviderHetzner}},
	}
	sameName := k8s.Node{ID: "machine-worker-3", Name: "worker-3"}

	tests := []struct {
		name     string
		node     k8s.Node
		wantShow bool
		wantInfo string
	}{
		{"aws shows node name", aws, true, "ip-10-0-1-23.eu-west-1.compute.internal"},
		{"other providers show short id", hetzner, true, "md-2-def"},
		{"name equal to short id", sameName, false, "worker-3"},
		{"empty id", k8s.Node{Name: "worker-4"}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantShow, ShowAuxiliaryInfo(tt.node))
			assert.Equal(t, tt.wantInfo, AuxiliaryInfo(tt.node))
		})
	}
}

func TestHasTags(t *testing.T) {
	assert.False(t, HasTags(nil))
	assert.False(t, HasTags(map[string]string{}))
	assert.True(t, HasTags(map[string]string{"team": "platform"}))
}

func TestFormattedMemory(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"16Gi", "16 GiB"},
		{"4Gi", "4.0 GiB"},
		{"16384Mi", "16 GiB"},
		{"512Mi", "512 MiB"},
		{"", ""},
		{"lots", "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, FormattedMemory(tt.raw))
		})
	}
}

func TestAddresses(t *testing.T) {
	n := k8s.Node{Status: k8s.NodeStatus{Addresses: []k8s.NodeAddress{
		{Type: "InternalIP", Address: "10.0.0.1"},
		{Type: "ExternalIP", Address: "34.1.2.3"},
		{Type: "InternalIP", Address: "fd00::1"},
		{Type: "Hostname", Address: "worker-1"},
		{Type: "InternalDNS", Address: "worker-1.internal"},
		{Type: "ExternalDNS", Address: "worker-1.example.com"},
	}}}

	got := Addresses(n)
	assert.Equal(t, []string{"10.0.0.1", "fd00::1"}, got.InternalIPs)
	assert.Equal(t, []string{"34.1.2.3"}, got.ExternalIPs)
	assert.Equal(t, []string{"worker-1"}, got.Hostnames)
	assert.Equal(t, []string{"worker-1.internal"}, got.InternalDNS)
	assert.Equal(t, []string{"worker-1.example.com"}, got.ExternalDNS)
	assert.Equal(t, []string{"10.0.0.1", "fd00::1", "34.1.2.3"}, got.IPs())
}

func TestHealthStatus(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		node k8s.Node
		want k8s.HealthStatus
	}{
		{"deleting wins", k8s.Node{DeletionTimestamp: &now, Status: k8s.NodeStatus{Ready: true}}, k8s.HealthDeleting},
		{"machine error", k8s.Node{Status: k8s.NodeStatus{ErrorMessage: "quota exceeded"}}, k8s.HealthFailed},
		{"ready", k8s.Node{Status: k8s.NodeStatus{Ready: true}}, k8s.HealthRunning},
		{"not ready yet", k8s.Node{}, k8s.HealthProvisioning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HealthStatus(tt.node))
		})
	}
}

func TestOperatingSystem(t *testing.T) {
	assert.Equal(t, "Flatcar", OperatingSystem(k8s.Node{Spec: k8s.NodeSpec{OperatingSystem: "flatcar"}}))
	assert.Equal(t, "windows", OperatingSystem(k8s.Node{Spec: k8s.NodeSpec{OperatingSystem: "windows"}}))
	assert.Equal(t, "Rocky Linux 9.4", OperatingSystem(k8s.Node{
		Status: k8s.NodeStatus{NodeInfo: k8s.NodeSystemInfo{OSImage: "Rocky Linux 9.4"}},
	}))
}
