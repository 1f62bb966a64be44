// Package metrics exports prometheus metrics for a running farm. A
// Collector is both an entity store for interaction events and a sink for
// farm events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/phanxgames/pasture"
	"github.com/phanxgames/pasture/farm"
)

// Collector records interaction and farm metrics into one registry.
type Collector struct {
	Interactions *prometheus.CounterVec
	FarmEvents   *prometheus.CounterVec
	Cows         *prometheus.GaugeVec
	Inventory    *prometheus.GaugeVec
	Queue        prometheus.Gauge
	XP           prometheus.Gauge
	Level        prometheus.Gauge
}

// New registers the metrics with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Collector{
		Interactions: f.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameInteractions, Help: HelpTextInteractions},
			[]string{LabelKind},
		),
		FarmEvents: f.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameFarmEvents, Help: HelpTextFarmEvents},
			[]string{LabelEvent, LabelResult},
		),
		Cows: f.NewGaugeVec(
			prometheus.GaugeOpts{Name: MetricNameCows, Help: HelpTextCows},
			[]string{LabelState},
		),
		Inventory: f.NewGaugeVec(
			prometheus.GaugeOpts{Name: MetricNameInventory, Help: HelpTextInventory},
			[]string{LabelItem},
		),
		Queue: f.NewGauge(prometheus.GaugeOpts{Name: MetricNameQueue, Help: HelpTextQueue}),
		XP:    f.NewGauge(prometheus.GaugeOpts{Name: MetricNameXP, Help: HelpTextXP}),
		Level: f.NewGauge(prometheus.GaugeOpts{Name: MetricNameLevel, Help: HelpTextLevel}),
	}
}

// EmitEvent counts an interaction event.
func (c *Collector) EmitEvent(ev pasture.InteractionEvent) {
	c.Interactions.WithLabelValues(ev.Kind.String()).Inc()
}

// Observe counts a farm event and refreshes the state gauges. Ticks that
// changed nothing are ignored.
func (c *Collector) Observe(ev farm.Event, applied bool, s farm.State) {
	if _, tick := ev.(farm.Tick); tick && !applied {
		return
	}
	result := ResultApplied
	if !applied {
		result = ResultRejected
	}
	c.FarmEvents.WithLabelValues(farm.EventName(ev), result).Inc()
	if applied {
		c.Snapshot(s)
	}
}

// Snapshot sets the state gauges from s.
func (c *Collector) Snapshot(s farm.State) {
	for _, st := range []farm.CowState{farm.CowHungry, farm.CowProducing, farm.CowFull} {
		c.Cows.WithLabelValues(string(st)).Set(float64(len(s.CowsIn(st))))
	}
	c.Inventory.Reset()
	for _, item := range s.Inventory.Items() {
		c.Inventory.WithLabelValues(item).Set(float64(s.Inventory.Count(item)))
	}
	c.Queue.Set(float64(len(s.Queue)))
	c.XP.Set(float64(s.XP))
	c.Level.Set(float64(s.Level()))
}
