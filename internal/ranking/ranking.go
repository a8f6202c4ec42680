// Package ranking упорядочивает репетиторов в каталоге.
package ranking

import (
	"math"
	"sort"

	"github.com/tutorspace/tutorspace_bot/internal/model"
)

// ratingCeiling - после этого числа отзывов доверие к оценке не растёт
const ratingCeiling = 10

// Score - вес репетитора при сортировке. Оценка умножается на бонус
// за количество отзывов, чтобы 4.5 с дюжиной отзывов стояла выше
// 4.5 с двумя. Без отзывов вес нулевой.
func Score(t *model.TutorProfile) float64 {
	if !t.HasRating() {
		return 0
	}
	count := t.TotalRatings
	if count > ratingCeiling {
		count = ratingCeiling
	}
	return t.Rating() * (1 + float64(count)/ratingCeiling)
}

// rateOrMax возвращает почасовую ставку, репетиторы без ставки уходят в конец
func rateOrMax(t *model.TutorProfile) float64 {
	if t.HourlyRate == nil {
		return math.MaxFloat64
	}
	return t.HourlyRate.Float64()
}

// Rank сортирует репетиторов на месте: сначала с оценками по убыванию
// веса, затем без оценок. При равном весе дешевле - выше. Сортировка
// стабильная, исходный порядок каталога сохраняется при полном равенстве.
func Rank(tutors []*model.TutorProfile) {
	sort.SliceStable(tutors, func(i, j int) bool {
		a, b := tutors[i], tutors[j]
		if a.HasRating() != b.HasRating() {
			return a.HasRating()
		}
		sa, sb := Score(a), Score(b)
		if sa != sb {
			return sa > sb
		}
		return rateOrMax(a) < rateOrMax(b)
	})
}
