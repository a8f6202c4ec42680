package model

import "time"

// Review - отзыв студента о завершённом занятии
type Review struct {
	ID          int64     `json:"id"`
	Rating      int       `json:"rating"` // 1-5
	Comment     string    `json:"comment"`
	StudentName string    `json:"student_name"`
	TutorName   string    `json:"tutor_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// AverageRating считает средний рейтинг по списку отзывов.
// Возвращает 0 если отзывов нет.
func AverageRating(reviews []*Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews))
}
