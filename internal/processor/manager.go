package processor

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/chrisdamba/foodorder/internal/logger"
	"github.com/chrisdamba/foodorder/internal/menu"
	"github.com/chrisdamba/foodorder/internal/metrics"
	"github.com/chrisdamba/foodorder/internal/models"
	"github.com/chrisdamba/foodorder/internal/parser"
	"github.com/lucsky/cuid"
)

// EventWriter receives a parsed-order event per processed line.
type EventWriter interface {
	WriteMessage(topic string, msg []byte) error
}

type Manager struct {
	log     logger.Logger
	writer  EventWriter
	topic   string
	now     func() time.Time
	newID   func() string
	metrics *metrics.Metrics
}

type Option func(*Manager)

// WithEventWriter publishes an OrderParsedEvent to topic after every line
// that did not fail fatally.
func WithEventWriter(w EventWriter, topic string) Option {
	return func(m *Manager) {
		m.writer = w
		if topic != "" {
			m.topic = topic
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithMetrics records line results, accepted dishes and publish failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(mgr *Manager) {
		mgr.metrics = m
	}
}

func NewManager(log logger.Logger, opts ...Option) *Manager {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	m := &Manager{
		log:   log,
		topic: models.TopicOrderParsed,
		now:   time.Now,
		newID: cuid.New,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Setup loads menuData into a fresh catalog.
func (m *Manager) Setup(menuData models.MenuData) parser.Result[*menu.Catalog] {
	if menuData == nil {
		return parser.Failure[*menu.Catalog](&parser.ArgumentError{Param: "menuData", Reason: "menu data is required"})
	}

	catalog := menu.NewCatalog()
	for _, entry := range menuData.Entries() {
		key := models.MenuKey{TimeOfDay: entry.TimeOfDay, Slot: entry.Slot}
		if !catalog.TryAddDish(key, models.NewDish(entry.Name, entry.Rule)) {
			m.log.Warn("duplicate menu entry skipped", map[string]interface{}{
				"time_of_day": entry.TimeOfDay.String(),
				"slot":        entry.Slot.String(),
				"dish":        entry.Name,
			})
		}
	}
	m.log.Debug("menu catalog ready", map[string]interface{}{"dishes": catalog.Len()})

	return parser.Success(catalog)
}

// Evaluate sets up the catalog and parses rawInput against it.
func (m *Manager) Evaluate(menuData models.MenuData, rawInput *string) parser.Result[*models.ParseOutcome] {
	return parser.Bind(m.Setup(menuData), func(catalog *menu.Catalog) parser.Result[*models.ParseOutcome] {
		return parser.NewOrderParser(catalog, m.log).Process(rawInput)
	})
}

// Process is the composite entry point used by the CLI: it returns the
// rendered order or the fatal error that prevented parsing.
func (m *Manager) Process(menuData models.MenuData, rawInput *string) parser.Result[string] {
	started := time.Now()
	result := m.Evaluate(menuData, rawInput)
	result.Match(
		func(err error) {
			m.log.Error("order line not processed", map[string]interface{}{"error": err.Error()})
			m.observe(metrics.ResultError, started, nil)
		},
		func(outcome *models.ParseOutcome) {
			if outcome.HasInvalidInput() {
				m.observe(metrics.ResultInvalid, started, outcome)
			} else {
				m.observe(metrics.ResultValid, started, outcome)
			}
			m.publish(*rawInput, outcome)
		},
	)
	return parser.Map(result, Render)
}

func (m *Manager) observe(result string, started time.Time, outcome *models.ParseOutcome) {
	if m.metrics == nil {
		return
	}
	m.metrics.ObserveLine(result, started)
	if outcome == nil {
		return
	}
	timeOfDay, _ := outcome.TimeOfDay()
	for _, line := range outcome.Lines() {
		m.metrics.AddDishes(timeOfDay.String(), line.Slot.String(), line.Quantity)
	}
}

func (m *Manager) publish(rawInput string, outcome *models.ParseOutcome) {
	if m.writer == nil {
		return
	}

	event := models.OrderParsedEvent{
		ID:              m.newID(),
		Timestamp:       m.now().Unix(),
		EventType:       models.TopicOrderParsed,
		RawInput:        rawInput,
		HasInvalidInput: outcome.HasInvalidInput(),
		Items:           outcome.Lines(),
		Rendered:        Render(outcome),
	}
	if timeOfDay, ok := outcome.TimeOfDay(); ok {
		event.TimeOfDay = timeOfDay.String()
	}

	msg, err := json.Marshal(event)
	if err != nil {
		m.log.Error("failed to encode order event", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := m.writer.WriteMessage(m.topic, msg); err != nil {
		if m.metrics != nil {
			m.metrics.PublishFailures.WithLabelValues(m.topic).Inc()
		}
		m.log.Error(fmt.Sprintf("failed to publish to %s", m.topic), map[string]interface{}{
			"event_id": event.ID,
			"error":    err.Error(),
		})
	}
}
