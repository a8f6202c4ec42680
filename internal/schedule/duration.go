package schedule

// DurationMinutes разбирает длительность "HH:MM:SS" (или "HH:MM") в минуты
func DurationMinutes(duration string) (int, bool) {
	return clockMinutes(duration)
}

// SlotMinutes - длительность окна в минутах
func SlotMinutes(timeStart, timeEnd string) (int, bool) {
	start, okStart := clockMinutes(timeStart)
	end, okEnd := clockMinutes(timeEnd)
	if !okStart || !okEnd || end <= start {
		return 0, false
	}
	return end - start, true
}

// ValidateDuration проверяет, что запрошенная длительность занятия
// помещается в выбранный слот. Блокирует отправку формы на клиенте;
// сервер всё равно перепроверит.
func ValidateDuration(timeStart, timeEnd, requested string) bool {
	requestedMinutes, ok := DurationMinutes(requested)
	if !ok {
		return false
	}
	slotMinutes, ok := SlotMinutes(timeStart, timeEnd)
	if !ok {
		return false
	}
	return requestedMinutes <= slotMinutes
}
