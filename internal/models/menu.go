package models

import (
	"fmt"
	"strings"
)

type TimeOfDay int

const (
	Morning TimeOfDay = iota + 1
	Night
)

var timeOfDayNames = map[TimeOfDay]string{
	Morning: "Morning",
	Night:   "Night",
}

func (t TimeOfDay) String() string {
	if name, ok := timeOfDayNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TimeOfDay(%d)", int(t))
}

// AllTimesOfDay returns every known time of day in declaration order.
func AllTimesOfDay() []TimeOfDay {
	return []TimeOfDay{Morning, Night}
}

// ParseTimeOfDay matches s against the known times of day ignoring case and
// surrounding whitespace.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, t := range AllTimesOfDay() {
		if strings.ToLower(t.String()) == normalized {
			return t, true
		}
	}
	return 0, false
}

// DishSlot is a categorical position on the menu. The numeric value is the
// default 1-based selection index of the slot.
type DishSlot int

const (
	Entree DishSlot = iota + 1
	Side
	Drink
	Dessert
)

var dishSlotNames = map[DishSlot]string{
	Entree:  "Entree",
	Side:    "Side",
	Drink:   "Drink",
	Dessert: "Dessert",
}

func (s DishSlot) String() string {
	if name, ok := dishSlotNames[s]; ok {
		return name
	}
	return fmt.Sprintf("DishSlot(%d)", int(s))
}

func (s DishSlot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *DishSlot) UnmarshalText(text []byte) error {
	slot, ok := ParseDishSlot(string(text))
	if !ok {
		return fmt.Errorf("unknown dish slot %q", text)
	}
	*s = slot
	return nil
}

// AllDishSlots returns the canonical slot ordering.
func AllDishSlots() []DishSlot {
	return []DishSlot{Entree, Side, Drink, Dessert}
}

func ParseDishSlot(s string) (DishSlot, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, slot := range AllDishSlots() {
		if strings.ToLower(slot.String()) == normalized {
			return slot, true
		}
	}
	return 0, false
}

// OrderRule governs whether a dish may be ordered more than once per order.
type OrderRule int

const (
	Single OrderRule = iota + 1
	Multiple
)

func (r OrderRule) String() string {
	switch r {
	case Single:
		return "Single"
	case Multiple:
		return "Multiple"
	}
	return fmt.Sprintf("OrderRule(%d)", int(r))
}

func ParseOrderRule(s string) (OrderRule, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return Single, true
	case "multiple":
		return Multiple, true
	}
	return 0, false
}

type Dish struct {
	Name string
	Rule OrderRule
}

func NewDish(name string, rule OrderRule) Dish {
	return Dish{Name: name, Rule: rule}
}

type MenuKey struct {
	TimeOfDay TimeOfDay
	Slot      DishSlot
}

// MenuData is the preloaded menu handed to the order processor.
type MenuData map[MenuKey]Dish

// MenuEntry is the flat form of a menu dish used by config files and the
// menu_dishes table.
type MenuEntry struct {
	TimeOfDay TimeOfDay `mapstructure:"time_of_day" json:"time_of_day"`
	Slot      DishSlot  `mapstructure:"slot" json:"slot"`
	Name      string    `mapstructure:"name" json:"name"`
	Rule      OrderRule `mapstructure:"rule" json:"rule"`
}

// BuildMenuData converts entries into MenuData. Entries sharing a
// (time of day, slot) key are rejected.
func BuildMenuData(entries []MenuEntry) (MenuData, error) {
	data := make(MenuData, len(entries))
	for i, entry := range entries {
		if _, ok := timeOfDayNames[entry.TimeOfDay]; !ok {
			return nil, fmt.Errorf("menu entry %d: unknown time of day %d", i, int(entry.TimeOfDay))
		}
		if _, ok := dishSlotNames[entry.Slot]; !ok {
			return nil, fmt.Errorf("menu entry %d: unknown dish slot %d", i, int(entry.Slot))
		}
		if entry.Rule != Single && entry.Rule != Multiple {
			return nil, fmt.Errorf("menu entry %d: unknown order rule %d", i, int(entry.Rule))
		}
		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("menu entry %d: dish name is required", i)
		}

		key := MenuKey{TimeOfDay: entry.TimeOfDay, Slot: entry.Slot}
		if existing, ok := data[key]; ok {
			return nil, fmt.Errorf("menu entry %d: %s %s already holds %q", i, key.TimeOfDay, key.Slot, existing.Name)
		}
		data[key] = NewDish(entry.Name, entry.Rule)
	}
	return data, nil
}

// Entries flattens the menu ordered by time of day, then slot.
func (m MenuData) Entries() []MenuEntry {
	entries := make([]MenuEntry, 0, len(m))
	for _, t := range AllTimesOfDay() {
		for _, slot := range AllDishSlots() {
			if dish, ok := m[MenuKey{TimeOfDay: t, Slot: slot}]; ok {
				entries = append(entries, MenuEntry{TimeOfDay: t, Slot: slot, Name: dish.Name, Rule: dish.Rule})
			}
		}
	}
	return entries
}

// DefaultMenuEntries is the built-in morning/night menu.
func DefaultMenuEntries() []MenuEntry {
	return []MenuEntry{
		{TimeOfDay: Morning, Slot: Entree, Name: "eggs", Rule: Single},
		{TimeOfDay: Morning, Slot: Side, Name: "toast", Rule: Single},
		{TimeOfDay: Morning, Slot: Drink, Name: "coffee", Rule: Multiple},
		{TimeOfDay: Night, Slot: Entree, Name: "steak", Rule: Single},
		{TimeOfDay: Night, Slot: Side, Name: "potato", Rule: Multiple},
		{TimeOfDay: Night, Slot: Drink, Name: "wine", Rule: Single},
		{TimeOfDay: Night, Slot: Dessert, Name: "cake", Rule: Single},
	}
}
