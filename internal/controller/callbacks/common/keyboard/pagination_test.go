package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	from, to := Paginate(12, 0, 5)
	assert.Equal(t, 0, from)
	assert.Equal(t, 5, to)

	from, to = Paginate(12, 2, 5)
	assert.Equal(t, 10, from)
	assert.Equal(t, 12, to)

	// Страница за пределами списка
	from, to = Paginate(12, 5, 5)
	assert.Equal(t, 12, from)
	assert.Equal(t, 12, to)
}

func TestPaginationRow(t *testing.T) {
	assert.Nil(t, PaginationRow("tutors_page:", 0, 1))

	// Первая страница: нет кнопки назад
	row := PaginationRow("tutors_page:", 0, 3)
	assert.Len(t, row, 2)
	assert.Equal(t, "1/3", row[0].Text)
	assert.Equal(t, "tutors_page:1", row[1].CallbackData)

	// Средняя страница: обе стрелки
	row = PaginationRow("tutors_page:", 1, 3)
	assert.Len(t, row, 3)
	assert.Equal(t, "tutors_page:0", row[0].CallbackData)
	assert.Equal(t, "2/3", row[1].Text)
	assert.Equal(t, "tutors_page:2", row[2].CallbackData)

	// Последняя страница: нет кнопки вперёд
	row = PaginationRow("tutors_page:", 2, 3)
	assert.Len(t, row, 2)
}
