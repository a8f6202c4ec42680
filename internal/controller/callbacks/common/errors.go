package common

import (
	"errors"

	"github.com/tutorspace/tutorspace_bot/internal/api"
	"github.com/tutorspace/tutorspace_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrTutorNotFound = errors.New("tutor not found")
	ErrSlotNotFound  = errors.New("slot not found")
	ErrSessionGone   = errors.New("session not found")
	ErrDialogExpired = errors.New("dialog state expired")
	ErrNotATutor     = errors.New("user is not a tutor")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var apiErr *api.APIError

	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		return "❌ Сначала войдите в аккаунт: /login"
	case errors.Is(err, api.ErrUnauthorized):
		return "❌ Сессия истекла. Войдите заново: /login"
	case errors.Is(err, service.ErrDurationTooLong):
		return "❌ Выбранная длительность не помещается в слот"
	case errors.Is(err, service.ErrSlotHasSessions):
		return "❌ На этот слот записаны занятия. Сначала отмените их"
	case errors.Is(err, ErrTutorNotFound):
		return "❌ Тьютор не найден"
	case errors.Is(err, ErrSlotNotFound):
		return "❌ Слот не найден или уже занят"
	case errors.Is(err, ErrSessionGone):
		return "❌ Занятие не найдено"
	case errors.Is(err, ErrDialogExpired):
		return "❌ Диалог устарел, начните заново"
	case errors.Is(err, ErrNotATutor):
		return "❌ Эта функция доступна только тьюторам"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.As(err, &apiErr):
		if detail := apiErr.Detail(); detail != "" && len(detail) < 200 {
			return "❌ " + detail
		}
		return "❌ Сервер отклонил запрос"
	default:
		return "❌ Произошла ошибка"
	}
}
