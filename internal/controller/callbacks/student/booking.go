package student

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/formatting"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/keyboard"
	"github.com/tutorspace/tutorspace_bot/internal/controller/state"
	"github.com/tutorspace/tutorspace_bot/internal/schedule"
	"github.com/tutorspace/tutorspace_bot/internal/service"
)

// ========================
// Booking Flow Handlers
// ========================
// Порядок диалога: слот -> длительность -> тема -> формат -> заметки -> подтверждение

// HandleCancelDialog сбрасывает текущий диалог
func HandleCancelDialog(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)
	h.StateManager.ClearState(chatID)
	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, "Действие отменено", nil)
}

// HandlePickSlot фиксирует выбранный слот и предлагает длительность
func HandlePickSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	index, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	stored, ok := h.StateManager.GetData(chatID, "booking_slots")
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrDialogExpired))
		return
	}
	slots, ok := stored.([]schedule.Slot)
	if !ok || index < 0 || int(index) >= len(slots) {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrSlotNotFound))
		return
	}
	slot := slots[index]
	h.StateManager.SetData(chatID, "booking_slot", slot)

	slotMinutes, ok := schedule.SlotMinutes(slot.TimeStart, slot.TimeEnd)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrSlotNotFound))
		return
	}

	kb := keyboard.NewBuilder()
	var row []models.InlineKeyboardButton
	for minutes := 60; minutes <= slotMinutes && minutes <= 180; minutes += 30 {
		row = append(row, keyboard.Button(
			formatDurationLabel(minutes),
			"pick_duration:"+strconv.Itoa(minutes),
		))
		if len(row) == 3 {
			kb.AddRow(row)
			row = nil
		}
	}
	kb.AddRow(row)
	if slotMinutes < 60 {
		kb.Row(keyboard.Button(formatDurationLabel(slotMinutes), "pick_duration:"+strconv.Itoa(slotMinutes)))
	}
	kb.Row(keyboard.Button("❌ Отмена", "cancel_dialog"))

	text := fmt.Sprintf("🕐 Выбрано: %s\n\n⏱ <b>Какая длительность занятия?</b>", formatting.FormatSlotLine(slot))
	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, text, kb.Build())
}

// HandlePickDuration фиксирует длительность и предлагает тему
func HandlePickDuration(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	minutes, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	h.StateManager.SetData(chatID, "booking_duration", fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60))

	tutorID, ok := storedTutorID(h, chatID)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	// Темы берём из профиля тьютора
	_, topics, _, detailsErr := h.TutorService.Details(ctx, chatID, tutorID)
	if detailsErr != nil {
		topics = nil
	}
	h.StateManager.SetData(chatID, "booking_topics", topics)

	kb := keyboard.NewBuilder()
	for i, topic := range topics {
		if i >= 8 {
			break
		}
		kb.Row(keyboard.Button(topic, "pick_topic:"+strconv.Itoa(i)))
	}
	kb.Row(keyboard.Button("Без темы", "pick_topic:-1"))
	kb.Row(keyboard.Button("❌ Отмена", "cancel_dialog"))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, "🏷 <b>Выберите тему занятия:</b>", kb.Build())
}

// HandlePickTopic фиксирует тему и предлагает формат
func HandlePickTopic(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	index, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	topic := ""
	if index >= 0 {
		stored, ok := h.StateManager.GetData(chatID, "booking_topics")
		if topics, castOK := stored.([]string); ok && castOK && int(index) < len(topics) {
			topic = topics[index]
		}
	}
	h.StateManager.SetData(chatID, "booking_topic", topic)

	tutorID, ok := storedTutorID(h, chatID)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	modes := []string{"webcam", "in-person"}
	if profile, _, _, detailsErr := h.TutorService.Details(ctx, chatID, tutorID); detailsErr == nil {
		modes = profile.AvailableModes()
	}

	kb := keyboard.NewBuilder()
	for _, mode := range modes {
		kb.Row(keyboard.Button(formatting.GetModeDisplay(mode), "pick_mode:"+mode))
	}
	kb.Row(keyboard.Button("❌ Отмена", "cancel_dialog"))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, "📚 <b>Какой формат занятия?</b>", kb.Build())
}

// HandlePickMode фиксирует формат и спрашивает заметки
func HandlePickMode(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	parts, err := common.ParseParts(callback.Data, 1)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	h.StateManager.SetData(chatID, "booking_mode", parts[0])
	h.StateManager.SetState(chatID, callbacktypes.UserState(state.StateBookingNotes))

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("Пропустить", "skip_notes")).
		Row(keyboard.Button("❌ Отмена", "cancel_dialog"))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback,
		"📝 Напишите сообщение тьютору (пожелания к занятию) или пропустите этот шаг:",
		kb.Build())
}

// HandleSkipNotes пропускает заметки и показывает подтверждение
func HandleSkipNotes(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)
	h.StateManager.SetData(chatID, "booking_notes", "")
	h.StateManager.SetState(chatID, "")

	text, markup, err := BookingSummary(h, chatID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, text, markup)
}

// BookingSummary собирает подтверждение заявки из сохранённых данных.
// Вызывается и из callback, и из текстового диалога после ввода заметок.
func BookingSummary(h *callbacktypes.Handler, chatID int64) (string, *models.InlineKeyboardMarkup, error) {
	form, err := bookingFormFromState(h, chatID)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("📋 <b>Подтвердите запись</b>\n\n")
	fmt.Fprintf(&b, "%s\n", formatting.FormatSlotLine(form.Slot))
	fmt.Fprintf(&b, "⏱ Длительность: %s\n", formatting.FormatDuration(form.Duration))
	if form.Topic != "" {
		fmt.Fprintf(&b, "🏷 Тема: %s\n", form.Topic)
	}
	fmt.Fprintf(&b, "📚 Формат: %s\n", formatting.GetModeDisplay(form.Mode))
	if form.Notes != "" {
		fmt.Fprintf(&b, "📝 Заметки: %s\n", form.Notes)
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("✅ Записаться", "confirm_book")).
		Row(keyboard.Button("❌ Отмена", "cancel_dialog"))

	return b.String(), kb.Build(), nil
}

// HandleConfirmBooking отправляет заявку на занятие
func HandleConfirmBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)

	form, err := bookingFormFromState(h, chatID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	session, err := h.BookingService.Book(ctx, chatID, form)
	if err != nil {
		h.Logger.Error("Failed to book session",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.Int64("tutor_id", form.TutorID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	h.StateManager.ClearState(chatID)

	text := fmt.Sprintf(
		"✅ Заявка отправлена!\n\n"+
			"%s\n\n"+
			"Тьютор получил запрос и ответит в ближайшее время.\n"+
			"Следить за статусом: /mysessions",
		formatting.FormatSessionInfo(session, false),
	)
	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback, text, keyboard.Empty())
}

// bookingFormFromState восстанавливает форму из state manager
func bookingFormFromState(h *callbacktypes.Handler, chatID int64) (*service.BookingForm, error) {
	tutorID, ok := storedTutorID(h, chatID)
	if !ok {
		return nil, common.ErrDialogExpired
	}
	storedSlot, ok := h.StateManager.GetData(chatID, "booking_slot")
	if !ok {
		return nil, common.ErrDialogExpired
	}
	slot, ok := storedSlot.(schedule.Slot)
	if !ok {
		return nil, common.ErrDialogExpired
	}
	duration, _ := h.StateManager.GetData(chatID, "booking_duration")
	durationStr, ok := duration.(string)
	if !ok || durationStr == "" {
		return nil, common.ErrDialogExpired
	}

	form := &service.BookingForm{
		TutorID:  tutorID,
		Slot:     slot,
		Duration: durationStr,
	}
	if v, ok := h.StateManager.GetData(chatID, "booking_topic"); ok {
		form.Topic, _ = v.(string)
	}
	if v, ok := h.StateManager.GetData(chatID, "booking_mode"); ok {
		form.Mode, _ = v.(string)
	}
	if v, ok := h.StateManager.GetData(chatID, "booking_notes"); ok {
		form.Notes, _ = v.(string)
	}
	return form, nil
}

func storedTutorID(h *callbacktypes.Handler, chatID int64) (int64, bool) {
	stored, ok := h.StateManager.GetData(chatID, "booking_tutor_id")
	if !ok {
		return 0, false
	}
	tutorID, ok := stored.(int64)
	return tutorID, ok
}

func formatDurationLabel(minutes int) string {
	if minutes%60 == 0 {
		return fmt.Sprintf("%d ч", minutes/60)
	}
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	return fmt.Sprintf("%d ч %d мин", minutes/60, minutes%60)
}
