package formatting

import "github.com/tutorspace/tutorspace_bot/internal/model"

// SessionStatusDisplay представляет отображение статуса занятия
type SessionStatusDisplay struct {
	Emoji string
	Text  string
}

// GetSessionStatusDisplay возвращает emoji и текст для статуса занятия
func GetSessionStatusDisplay(status model.SessionStatus) SessionStatusDisplay {
	displays := map[model.SessionStatus]SessionStatusDisplay{
		model.SessionStatusPending:           {"⏳", "Ожидает подтверждения"},
		model.SessionStatusConfirmed:         {"✅", "Подтверждено"},
		model.SessionStatusRejected:          {"🚫", "Отклонено"},
		model.SessionStatusCancelled:         {"❌", "Отменено"},
		model.SessionStatusCompleted:         {"✔️", "Завершено"},
		model.SessionStatusReschedulePending: {"🔄", "Предложен перенос"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return SessionStatusDisplay{"❓", "Неизвестно"}
}

// GetModeDisplay возвращает текст режима занятия
func GetModeDisplay(mode string) string {
	switch mode {
	case model.ModeWebcam:
		return "💻 По видеосвязи"
	case model.ModeInPerson:
		return "🤝 Лично"
	case model.ModeBoth:
		return "💻/🤝 Любой формат"
	}
	return mode
}
