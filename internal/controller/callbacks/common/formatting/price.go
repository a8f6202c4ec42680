package formatting

import (
	"fmt"

	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// FormatRate форматирует часовую ставку тьютора
func FormatRate(rate *model.Decimal) string {
	if rate == nil {
		return "ставка не указана"
	}
	value := rate.Float64()
	if value == float64(int64(value)) {
		return fmt.Sprintf("%.0f $/ч", value)
	}
	return fmt.Sprintf("%.2f $/ч", value)
}
