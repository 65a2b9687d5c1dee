package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Metrics groups the order pipeline collectors. Each instance registers on
// its own Registerer so commands and tests do not share state.
type Metrics struct {
	OrderLines      *prometheus.CounterVec
	DishesOrdered   *prometheus.CounterVec
	PublishFailures *prometheus.CounterVec
	ParseDuration   prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OrderLines: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodorder_order_lines_total",
				Help: "Total number of order lines processed, by result",
			},
			[]string{"result"},
		),
		DishesOrdered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodorder_dishes_ordered_total",
				Help: "Total number of dish units accepted into orders",
			},
			[]string{"time_of_day", "slot"},
		),
		PublishFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodorder_publish_failures_total",
				Help: "Total number of order events that could not be published",
			},
			[]string{"topic"},
		),
		ParseDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "foodorder_order_line_duration_seconds",
				Help:    "Time spent setting up the menu and parsing one order line",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		),
	}
}

func (m *Metrics) ObserveLine(result string, started time.Time) {
	m.OrderLines.WithLabelValues(result).Inc()
	m.ParseDuration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) AddDishes(timeOfDay, slot string, quantity int) {
	m.DishesOrdered.WithLabelValues(timeOfDay, slot).Add(float64(quantity))
}

// WriteTextfile dumps every metric gathered from g in the text exposition
// format, for the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
