package menu

import "github.com/chrisdamba/foodorder/internal/models"

// Catalog holds the dishes offered per time of day. It is populated once
// during setup and only read afterwards; it is not safe for concurrent
// mutation.
type Catalog struct {
	dishes    map[models.MenuKey]models.Dish
	slotOrder map[models.TimeOfDay][]models.DishSlot
}

func NewCatalog() *Catalog {
	return &Catalog{
		dishes:    make(map[models.MenuKey]models.Dish),
		slotOrder: make(map[models.TimeOfDay][]models.DishSlot),
	}
}

func (c *Catalog) HasDishes() bool {
	return len(c.dishes) > 0
}

func (c *Catalog) Len() int {
	return len(c.dishes)
}

// FindDish reports the dish served in slot at timeOfDay; false means the slot
// is not offered then.
func (c *Catalog) FindDish(timeOfDay models.TimeOfDay, slot models.DishSlot) (models.Dish, bool) {
	dish, ok := c.dishes[models.MenuKey{TimeOfDay: timeOfDay, Slot: slot}]
	return dish, ok
}

// IsValidAmount reports whether quantity units of the dish may be ordered.
func (c *Catalog) IsValidAmount(timeOfDay models.TimeOfDay, slot models.DishSlot, quantity int) bool {
	dish, ok := c.FindDish(timeOfDay, slot)
	if !ok || quantity < 1 {
		return false
	}

	switch dish.Rule {
	case models.Multiple:
		return true
	case models.Single:
		return quantity == 1
	}
	return false
}

// TryAddDish inserts dish under key unless the key is already taken.
func (c *Catalog) TryAddDish(key models.MenuKey, dish models.Dish) bool {
	if _, exists := c.dishes[key]; exists {
		return false
	}
	c.dishes[key] = dish
	return true
}

// SetSlotOrder replaces the selection ordering used for timeOfDay. Index 1
// picks slots[0].
func (c *Catalog) SetSlotOrder(timeOfDay models.TimeOfDay, slots ...models.DishSlot) {
	order := make([]models.DishSlot, len(slots))
	copy(order, slots)
	c.slotOrder[timeOfDay] = order
}

// SlotOrder returns the selection ordering for timeOfDay, the canonical slot
// list unless overridden.
func (c *Catalog) SlotOrder(timeOfDay models.TimeOfDay) []models.DishSlot {
	if order, ok := c.slotOrder[timeOfDay]; ok {
		out := make([]models.DishSlot, len(order))
		copy(out, order)
		return out
	}
	return models.AllDishSlots()
}

// SlotAt maps a 1-based selection index to its dish slot.
func (c *Catalog) SlotAt(timeOfDay models.TimeOfDay, index int) (models.DishSlot, bool) {
	order := c.SlotOrder(timeOfDay)
	if index < 1 || index > len(order) {
		return 0, false
	}
	return order[index-1], true
}
