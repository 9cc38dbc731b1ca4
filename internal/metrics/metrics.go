// Package metrics keeps operation counters for a netinventory session and
// writes them in the Prometheus text format for the node_exporter textfile
// collector.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "netinventory"

// Metrics holds the session's collectors on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	operations  *prometheus.CounterVec
	validations *prometheus.CounterVec
	plans       *prometheus.CounterVec
	devices     prometheus.Gauge
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Inventory operations performed, by operation.",
		}, []string{"op"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected field values, by field.",
		}, []string{"field"}),
		plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subnet_plans_total",
			Help:      "Subnet reports computed, by address family.",
		}, []string{"family"}),
		devices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "devices",
			Help:      "Records currently held in the inventory.",
		}),
	}
	m.registry.MustRegister(m.operations, m.validations, m.plans, m.devices)
	return m
}

// Operation counts one inventory operation.
func (m *Metrics) Operation(op string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op).Inc()
}

// ValidationFailure counts one rejected value for field.
func (m *Metrics) ValidationFailure(field string) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(field).Inc()
}

// SubnetPlan counts one computed subnet report for family ("ipv4" or "ipv6").
func (m *Metrics) SubnetPlan(family string) {
	if m == nil {
		return
	}
	m.plans.WithLabelValues(family).Inc()
}

// SetDevices records the current collection size.
func (m *Metrics) SetDevices(n int) {
	if m == nil {
		return
	}
	m.devices.Set(float64(n))
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile writes every collector to path. An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile %q: %w", path, err)
	}
	return nil
}
