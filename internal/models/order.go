package models

import "sort"

type OrderKey struct {
	Slot DishSlot
	Name string
}

// Order accumulates the quantity ordered per dish.
type Order map[OrderKey]int

type OrderLine struct {
	Slot     DishSlot `json:"slot"`
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
}

func (o Order) Quantity(slot DishSlot, name string) int {
	return o[OrderKey{Slot: slot, Name: name}]
}

func (o Order) Clone() Order {
	clone := make(Order, len(o))
	for k, v := range o {
		clone[k] = v
	}
	return clone
}

// Lines returns the order sorted by slot, then dish name.
func (o Order) Lines() []OrderLine {
	lines := make([]OrderLine, 0, len(o))
	for k, qty := range o {
		lines = append(lines, OrderLine{Slot: k.Slot, Name: k.Name, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Slot != lines[j].Slot {
			return lines[i].Slot < lines[j].Slot
		}
		return lines[i].Name < lines[j].Name
	})
	return lines
}

// ParseOutcome is the immutable result of parsing one order line.
type ParseOutcome struct {
	hasInvalidInput bool
	timeOfDay       TimeOfDay
	parsedOrder     Order
}

func NewParseOutcome(hasInvalidInput bool, timeOfDay TimeOfDay, parsedOrder Order) *ParseOutcome {
	if parsedOrder == nil {
		parsedOrder = Order{}
	}
	return &ParseOutcome{
		hasInvalidInput: hasInvalidInput,
		timeOfDay:       timeOfDay,
		parsedOrder:     parsedOrder.Clone(),
	}
}

func (p *ParseOutcome) HasInvalidInput() bool {
	return p.hasInvalidInput
}

// TimeOfDay reports the resolved time of day; false when it did not resolve.
func (p *ParseOutcome) TimeOfDay() (TimeOfDay, bool) {
	return p.timeOfDay, p.timeOfDay != 0
}

func (p *ParseOutcome) ParsedOrder() Order {
	return p.parsedOrder.Clone()
}

func (p *ParseOutcome) Quantity(slot DishSlot, name string) int {
	return p.parsedOrder.Quantity(slot, name)
}

func (p *ParseOutcome) Lines() []OrderLine {
	return p.parsedOrder.Lines()
}
