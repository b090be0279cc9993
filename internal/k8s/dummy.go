package k8s

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"sigs.k8s.io/yaml"

	"github.com/renato0307/nodedash/internal/errdef"
)

//go:embed fixtures/dummy_cluster.yaml
var dummyFixture []byte

type dummyData struct {
	Cluster   Cluster       `json:"cluster"`
	ProjectID string        `json:"projectID"`
	Nodes     []Node        `json:"nodes"`
	Metrics   []NodeMetrics `json:"metrics"`
}

// DummyCluster provides fake cluster data for demos and prototyping.
// Deletions only affect the in-memory copy.
type DummyCluster struct {
	mu   sync.Mutex
	data dummyData
}

// NewDummyCluster loads the embedded fixture
func NewDummyCluster() (*DummyCluster, error) {
	return newDummyCluster(dummyFixture)
}

func newDummyCluster(raw []byte) (*DummyCluster, error) {
	var data dummyData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode dummy cluster: %w", err)
	}
	return &DummyCluster{data: data}, nil
}

// ProjectID returns the project the dummy cluster belongs to
func (d *DummyCluster) ProjectID() string {
	return d.data.ProjectID
}

func (d *DummyCluster) Cluster(ctx context.Context) (Cluster, error) {
	return d.data.Cluster, nil
}

func (d *DummyCluster) ListNodes(ctx context.Context) ([]Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.data.Nodes), nil
}

func (d *DummyCluster) ListNodeMetrics(ctx context.Context) (map[string]NodeMetrics, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := make(map[string]NodeMetrics, len(d.data.Metrics))
	for _, m := range d.data.Metrics {
		result[m.Name] = m
	}
	return result, nil
}

func (d *DummyCluster) DeleteNode(ctx context.Context, projectID, clusterID, nodeID string) error {
	if projectID != d.data.ProjectID {
		return errdef.NewNotFound("project %s not found", projectID)
	}
	if clusterID != d.data.Cluster.ID {
		return errdef.NewNotFound("cluster %s not found in project %s", clusterID, projectID)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	i := slices.IndexFunc(d.data.Nodes, func(n Node) bool { return n.ID == nodeID })
	if i < 0 {
		return errdef.NewNotFound("node %s not found", nodeID)
	}
	d.data.Nodes = slices.Delete(d.data.Nodes, i, i+1)
	return nil
}
