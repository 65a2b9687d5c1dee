package processor

import (
	"fmt"
	"strings"

	"github.com/chrisdamba/foodorder/internal/models"
)

const invalidMarker = "error"

// Render formats an outcome as "steak, potato(x2), cake". A trailing "error"
// flags that some selections were rejected.
func Render(outcome *models.ParseOutcome) string {
	lines := outcome.Lines()
	parts := make([]string, 0, len(lines)+1)
	for _, line := range lines {
		if line.Quantity > 1 {
			parts = append(parts, fmt.Sprintf("%s(x%d)", line.Name, line.Quantity))
			continue
		}
		parts = append(parts, line.Name)
	}
	if outcome.HasInvalidInput() {
		parts = append(parts, invalidMarker)
	}
	return strings.Join(parts, ", ")
}
