package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния логина и регистрации
	StateLoginUsername    UserState = "login_username"
	StateLoginPassword    UserState = "login_password"
	StateRegisterUsername UserState = "register_username"
	StateRegisterEmail    UserState = "register_email"
	StateRegisterPassword UserState = "register_password"

	// Состояния поиска тьютора
	StateSearchingTutor UserState = "searching_tutor"

	// Состояния формы записи на занятие
	StateBookingNotes UserState = "booking_notes"

	// Состояния добавления слота расписания
	StateAddSlotDate      UserState = "add_slot_date"
	StateAddSlotTimeStart UserState = "add_slot_time_start"
	StateAddSlotTimeEnd   UserState = "add_slot_time_end"

	// Состояния переписки
	StateChatting UserState = "chatting"

	// Состояния отзыва
	StateReviewComment UserState = "review_comment"

	// Состояния смены пароля
	StateCurrentPassword UserState = "current_password"
	StateNewPassword     UserState = "new_password"

	// Состояние переноса занятия (тьютор вводит новое время)
	StateRescheduleTime UserState = "reschedule_time"

	// Состояния редактирования профиля
	StateEditBio      UserState = "edit_bio"
	StateEditLocation UserState = "edit_location"
	StateEditRate     UserState = "edit_rate"
	StateTopicAdd     UserState = "topic_add"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
