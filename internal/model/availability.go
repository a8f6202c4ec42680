package model

// AvailabilityTemplate - объявленное тьютором окно доступности.
// recurring=false - разовое окно на конкретную дату,
// recurring=true - еженедельный шаблон, привязанный к дню недели available_date.
type AvailabilityTemplate struct {
	ID            int64  `json:"id"`
	AvailableDate Date   `json:"available_date"`
	TimeStart     string `json:"available_time_start"` // "HH:MM:SS", хранится как есть
	TimeEnd       string `json:"available_time_end"`
	Recurring     bool   `json:"recurring"`
}
