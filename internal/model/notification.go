package model

import "time"

// Notification types, как их присылает API
const (
	NotificationBookingRequest     = "booking_request"
	NotificationBookingResponse    = "booking_response"
	NotificationSessionCancelled   = "session_cancelled"
	NotificationSessionRescheduled = "session_rescheduled"
	NotificationRescheduleAccepted = "reschedule_accepted"
	NotificationRescheduleRejected = "reschedule_rejected"
	NotificationSessionReminder    = "session_reminder"
	NotificationSessionCompleted   = "session_completed"
	NotificationNewReview          = "new_review"
)

type Notification struct {
	ID             int64     `json:"id"`
	Type           string    `json:"notification_type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	IsRead         bool      `json:"is_read"`
	RelatedSession *int64    `json:"related_session"`
	SessionStatus  string    `json:"session_status"`
	CreatedAt      time.Time `json:"created_at"`
}
