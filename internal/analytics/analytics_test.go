package analytics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitEvent(t *testing.T) {
	e := NewEmitter()

	e.EmitEvent(CategoryClusterOverview, ActionDeleteNodeDialogOpened)
	e.EmitEvent(CategoryClusterOverview, ActionDeleteNodeDialogOpened)
	e.EmitEvent(CategoryClusterOverview, ActionNodeDeleted)

	assert.Equal(t, 2.0, testutil.ToFloat64(e.events.WithLabelValues(CategoryClusterOverview, ActionDeleteNodeDialogOpened)))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.events.WithLabelValues(CategoryClusterOverview, ActionNodeDeleted)))
	assert.Equal(t, 2, testutil.CollectAndCount(e.events))
}

func TestTotals(t *testing.T) {
	e := NewEmitter()
	e.EmitEvent(CategoryClusterOverview, ActionNodeDeleted)

	totals, err := e.Totals()
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"clusterOverview/nodeDeleted": 1}, totals)

	e.LogTotals()
}
