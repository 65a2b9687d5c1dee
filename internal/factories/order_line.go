package factories

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/chrisdamba/foodorder/internal/menu"
	"github.com/chrisdamba/foodorder/internal/models"
	"github.com/jaswdr/faker"
)

// noiseTokens are selections that never resolve to a dish.
var noiseTokens = []string{"0", "-1", "x", "", "12", "two"}

// OrderLineFactory produces raw order lines such as "Night, 1, 2, 2, 4"
// for exercising the parser. The same seed yields the same lines.
type OrderLineFactory struct {
	fake *faker.Faker
	// NoisePercent is the chance, per selection, of emitting a token that
	// does not name a slot.
	NoisePercent int
	// UnknownTimeOfDayPercent is the chance of a line opening with a time
	// of day the menu does not serve.
	UnknownTimeOfDayPercent int
	MaxSelections           int
}

func NewOrderLineFactory(seed int64) *OrderLineFactory {
	fake := faker.NewWithSeed(rand.NewSource(seed))
	return &OrderLineFactory{
		fake:                    &fake,
		NoisePercent:            10,
		UnknownTimeOfDayPercent: 5,
		MaxSelections:           6,
	}
}

func (f *OrderLineFactory) chance(percent int) bool {
	return percent > 0 && f.fake.IntBetween(1, 100) <= percent
}

func (f *OrderLineFactory) timeOfDay() string {
	if f.chance(f.UnknownTimeOfDayPercent) {
		return f.fake.RandomStringElement([]string{"noon", "brunch", "evening"})
	}
	times := models.AllTimesOfDay()
	name := times[f.fake.IntBetween(0, len(times)-1)].String()
	switch f.fake.IntBetween(0, 2) {
	case 0:
		return strings.ToLower(name)
	case 1:
		return strings.ToUpper(name)
	}
	return name
}

// CreateOrderLine builds one comma separated order line. Selections are
// drawn from one past the number of slots so that some exceed the menu.
func (f *OrderLineFactory) CreateOrderLine() string {
	count := f.fake.IntBetween(1, f.MaxSelections)
	tokens := make([]string, 0, count+1)
	tokens = append(tokens, f.timeOfDay())

	slots := len(models.AllDishSlots())
	for i := 0; i < count; i++ {
		if f.chance(f.NoisePercent) {
			tokens = append(tokens, f.fake.RandomStringElement(noiseTokens))
			continue
		}
		tokens = append(tokens, strconv.Itoa(f.fake.IntBetween(1, slots+1)))
	}
	return strings.Join(tokens, ", ")
}

func (f *OrderLineFactory) CreateOrderLines(n int) []string {
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, f.CreateOrderLine())
	}
	return lines
}

// CreateValidOrderLine selects every slot the catalog serves for a random
// time of day exactly once, so the resulting order is never flagged.
func (f *OrderLineFactory) CreateValidOrderLine(catalog *menu.Catalog) string {
	times := models.AllTimesOfDay()
	tod := times[f.fake.IntBetween(0, len(times)-1)]

	tokens := []string{tod.String()}
	for i, slot := range catalog.SlotOrder(tod) {
		if _, ok := catalog.FindDish(tod, slot); ok {
			tokens = append(tokens, strconv.Itoa(i+1))
		}
	}
	return strings.Join(tokens, ", ")
}
