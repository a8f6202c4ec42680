package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PaginationRow собирает ряд навигации по страницам списка.
// prefix - префикс callback data, например "tutors_page:".
func PaginationRow(prefix string, page, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var row []models.InlineKeyboardButton
	if page > 0 {
		row = append(row, Button("⬅️", fmt.Sprintf("%s%d", prefix, page-1)))
	}
	row = append(row, Button(fmt.Sprintf("%d/%d", page+1, totalPages), "noop"))
	if page < totalPages-1 {
		row = append(row, Button("➡️", fmt.Sprintf("%s%d", prefix, page+1)))
	}
	return row
}

// Paginate возвращает границы страницы для среза длиной total
func Paginate(total, page, perPage int) (from, to int) {
	from = page * perPage
	if from > total {
		from = total
	}
	to = from + perPage
	if to > total {
		to = total
	}
	return from, to
}
