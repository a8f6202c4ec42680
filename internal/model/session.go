package model

import "time"

type SessionStatus string

const (
	SessionStatusPending           SessionStatus = "pending"            // Ожидает ответа тьютора
	SessionStatusConfirmed         SessionStatus = "confirmed"          // Подтверждена
	SessionStatusRejected          SessionStatus = "rejected"           // Отклонена тьютором
	SessionStatusCancelled         SessionStatus = "cancelled"          // Отменена любой из сторон
	SessionStatusCompleted         SessionStatus = "completed"          // Завершена
	SessionStatusReschedulePending SessionStatus = "reschedule_pending" // Тьютор предложил перенос
)

// Session - занятие (или запрос на занятие) между студентом и тьютором
type Session struct {
	ID          int64         `json:"id"`
	Tutor       int64         `json:"tutor"`
	Student     int64         `json:"student"`
	TutorName   string        `json:"tutor_name"`
	StudentName string        `json:"student_name"`
	DateTime    time.Time     `json:"date_time"`
	Duration    string        `json:"duration"` // "HH:MM:SS"
	Status      SessionStatus `json:"status"`
	Notes       string        `json:"notes"`
	Topic       string        `json:"topic"`
	Mode        string        `json:"mode"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Session modes
const (
	ModeWebcam   = "webcam"
	ModeInPerson = "in-person"
	ModeBoth     = "both"
)

// IsActive: занятие всё ещё занимает слот в расписании.
// Отменённые и отклонённые занятия слот не занимают.
func (s *Session) IsActive() bool {
	return s.Status != SessionStatusCancelled && s.Status != SessionStatusRejected
}

// IsUpcoming: занятие в будущем и не в терминальном статусе
func (s *Session) IsUpcoming(now time.Time) bool {
	if !s.DateTime.After(now) {
		return false
	}
	switch s.Status {
	case SessionStatusConfirmed, SessionStatusPending, SessionStatusReschedulePending:
		return true
	}
	return false
}

// IsPending: требует ответа одной из сторон
func (s *Session) IsPending() bool {
	return s.Status == SessionStatusPending || s.Status == SessionStatusReschedulePending
}

// IsCompleted проверяет что занятие завершено
func (s *Session) IsCompleted() bool {
	return s.Status == SessionStatusCompleted
}

// IsTerminal: статус больше не изменится
func (s *Session) IsTerminal() bool {
	switch s.Status {
	case SessionStatusRejected, SessionStatusCancelled, SessionStatusCompleted:
		return true
	}
	return false
}
