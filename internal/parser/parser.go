package parser

import (
	"strconv"
	"strings"

	"github.com/chrisdamba/foodorder/internal/logger"
	"github.com/chrisdamba/foodorder/internal/models"
)

// MenuService is the read side of the menu catalog the parser depends on.
type MenuService interface {
	HasDishes() bool
	FindDish(timeOfDay models.TimeOfDay, slot models.DishSlot) (models.Dish, bool)
	IsValidAmount(timeOfDay models.TimeOfDay, slot models.DishSlot, quantity int) bool
	SlotAt(timeOfDay models.TimeOfDay, index int) (models.DishSlot, bool)
}

type OrderParser struct {
	menu MenuService
	log  logger.Logger
}

func NewOrderParser(menu MenuService, log logger.Logger) *OrderParser {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &OrderParser{menu: menu, log: log}
}

// Tokenize splits an order line on commas and trims every field.
func Tokenize(rawInput string) []string {
	fields := strings.Split(rawInput, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// ParseTimeOfDay resolves the first token as a time of day, ignoring case.
func (p *OrderParser) ParseTimeOfDay(tokens []string) (models.TimeOfDay, bool) {
	if len(tokens) == 0 {
		return 0, false
	}
	return models.ParseTimeOfDay(tokens[0])
}

// Process parses one order line. Only a nil rawInput fails; every content
// problem is reported through ParseOutcome.HasInvalidInput and the remaining
// selections are still accumulated.
func (p *OrderParser) Process(rawInput *string) Result[*models.ParseOutcome] {
	if rawInput == nil {
		return Failure[*models.ParseOutcome](&ArgumentError{Param: "rawInput", Reason: "no order line given"})
	}

	tokens := Tokenize(*rawInput)
	timeOfDay, ok := p.ParseTimeOfDay(tokens)
	selections := tokens[1:]

	switch {
	case !ok:
		p.log.Debug("unknown time of day", map[string]interface{}{"token": tokens[0]})
		return Success(models.NewParseOutcome(true, 0, nil))
	case !p.menu.HasDishes():
		p.log.Warn("menu has no dishes", nil)
		return Success(models.NewParseOutcome(true, timeOfDay, nil))
	case len(selections) == 0:
		p.log.Debug("order line has no selections", map[string]interface{}{"time_of_day": timeOfDay.String()})
		return Success(models.NewParseOutcome(true, timeOfDay, nil))
	}

	order := models.Order{}
	hasInvalidInput := false
	for i, token := range selections {
		if !p.resolveSelection(order, timeOfDay, token) {
			hasInvalidInput = true
			p.log.Debug("rejected selection", map[string]interface{}{
				"position":    i + 1,
				"token":       token,
				"time_of_day": timeOfDay.String(),
			})
		}
	}

	return Success(models.NewParseOutcome(hasInvalidInput, timeOfDay, order))
}

func (p *OrderParser) resolveSelection(order models.Order, timeOfDay models.TimeOfDay, token string) bool {
	index, err := strconv.Atoi(token)
	if err != nil || index < 1 {
		return false
	}

	slot, ok := p.menu.SlotAt(timeOfDay, index)
	if !ok {
		return false
	}

	dish, ok := p.menu.FindDish(timeOfDay, slot)
	if !ok {
		return false
	}

	return p.TryAddOrUpdateDishesAmount(order, timeOfDay, slot, dish.Name)
}

// TryAddOrUpdateDishesAmount adds one unit of dishName to order when the menu
// allows the resulting quantity. order is left untouched on rejection.
func (p *OrderParser) TryAddOrUpdateDishesAmount(order models.Order, timeOfDay models.TimeOfDay, slot models.DishSlot, dishName string) bool {
	if dishName == "" {
		return false
	}

	key := models.OrderKey{Slot: slot, Name: dishName}
	proposed := order[key] + 1
	if !p.menu.IsValidAmount(timeOfDay, slot, proposed) {
		return false
	}

	order[key] = proposed
	return true
}
