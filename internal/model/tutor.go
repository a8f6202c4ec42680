package model

import "time"

// TutorProfile - профиль пользователя маркетплейса.
// Для тьюторов заполнены bio, hourly_rate, topics и рейтинг.
type TutorProfile struct {
	ID                int64      `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Roles             []string   `json:"roles"`
	Bio               string     `json:"bio"`
	LessonDescription string     `json:"lesson_description"`
	Location          string     `json:"location"`
	HourlyRate        *Decimal   `json:"hourly_rate"`
	PreferredMode     string     `json:"preferred_mode"`
	Topics            []string   `json:"topics"`
	AverageRating     *Decimal   `json:"average_rating"`
	TotalRatings      int        `json:"total_ratings"`
	IsOnline          bool       `json:"is_online"`
	LastActive        *time.Time `json:"last_active"`
}

// DisplayName возвращает имя для отображения
func (t *TutorProfile) DisplayName() string {
	if t.FirstName == "" && t.LastName == "" {
		return t.Username
	}
	if t.LastName == "" {
		return t.FirstName
	}
	return t.FirstName + " " + t.LastName
}

// IsTutor проверяет роль
func (t *TutorProfile) IsTutor() bool {
	for _, role := range t.Roles {
		if role == "tutor" || role == "Tutor" {
			return true
		}
	}
	return false
}

// HasRating: есть хотя бы одна оценка
func (t *TutorProfile) HasRating() bool {
	return t.AverageRating != nil && *t.AverageRating > 0 && t.TotalRatings > 0
}

// Rating возвращает средний рейтинг или 0
func (t *TutorProfile) Rating() float64 {
	if t.AverageRating == nil {
		return 0
	}
	return t.AverageRating.Float64()
}

// AvailableModes - режимы занятий, которые предлагает тьютор
func (t *TutorProfile) AvailableModes() []string {
	switch t.PreferredMode {
	case ModeWebcam:
		return []string{ModeWebcam}
	case ModeInPerson:
		return []string{ModeInPerson}
	default:
		return []string{ModeWebcam, ModeInPerson}
	}
}
