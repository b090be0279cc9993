// Package analytics counts user interface events. Events are fire-and-forget:
// emitting never fails and never blocks the UI.
package analytics

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/renato0307/nodedash/internal/logging"
)

// Event categories and actions emitted by the console
const (
	CategoryClusterOverview = "clusterOverview"

	ActionDeleteNodeDialogOpened = "deleteNodeDialogOpened"
	ActionNodeDeleted            = "nodeDeleted"
)

// Emitter records events in a prometheus counter and the debug log
type Emitter struct {
	events   *prometheus.CounterVec
	gatherer prometheus.Gatherer
	log      *logging.Logger
}

// NewEmitter creates an Emitter whose counter lives in its own registry
func NewEmitter() *Emitter {
	reg := prometheus.NewRegistry()
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nodedash",
		Subsystem: "ui",
		Name:      "events_total",
		Help:      "User interface events by category and action.",
	}, []string{"category", "action"})
	reg.MustRegister(events)

	return &Emitter{
		events:   events,
		gatherer: reg,
		log:      logging.Component("analytics"),
	}
}

// EmitEvent records one occurrence of category/action
func (e *Emitter) EmitEvent(category, action string) {
	e.events.WithLabelValues(category, action).Inc()
	e.log.Debug("ui event", "category", category, "action", action)
}

// Totals returns the event counts keyed by "category/action"
func (e *Emitter) Totals() (map[string]float64, error) {
	families, err := e.gatherer.Gather()
	if err != nil {
		return nil, err
	}

	totals := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			totals[labels["category"]+"/"+labels["action"]] = m.GetCounter().GetValue()
		}
	}
	return totals, nil
}

// LogTotals writes the session's event counts to the log
func (e *Emitter) LogTotals() {
	totals, err := e.Totals()
	if err != nil {
		e.log.Warn("failed to gather ui events", "error", err)
		return
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		args = append(args, k, totals[k])
	}
	e.log.Info("session ui events", args...)
}
