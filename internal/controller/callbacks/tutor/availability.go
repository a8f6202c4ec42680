package tutor

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/formatting"
	"github.com/tutorspace/tutorspace_bot/internal/controller/callbacks/common/keyboard"
	"github.com/tutorspace/tutorspace_bot/internal/controller/state"
	"github.com/tutorspace/tutorspace_bot/internal/model"
	"github.com/tutorspace/tutorspace_bot/internal/schedule"
)

// ========================
// Tutor Availability Handlers
// ========================

// RenderMySchedule собирает кабинет расписания тьютора для /myschedule
func RenderMySchedule(grouped schedule.GroupedAvailability) (string, *models.InlineKeyboardMarkup) {
	text := "📅 <b>Моё свободное время</b>\n\n" + formatting.FormatAvailability(grouped)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("➕ Добавить время", "add_slot")).
		Row(keyboard.Button("🖼 Показать неделю", "week_image"))

	// Кнопка удаления на каждый шаблон
	for _, tpl := range grouped.Recurring {
		kb.Row(keyboard.Button(
			"🗑 "+formatting.FormatTemplateLine(tpl),
			fmt.Sprintf("delete_slot:%d", tpl.ID),
		))
	}
	for _, week := range grouped.Weeks {
		for _, tpl := range week.Slots {
			kb.Row(keyboard.Button(
				"🗑 "+formatting.FormatTemplateLine(tpl),
				fmt.Sprintf("delete_slot:%d", tpl.ID),
			))
		}
	}

	return text, kb.Build()
}

// HandleAddSlot запускает диалог добавления окна доступности
func HandleAddSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)

	account, err := h.AuthService.Account(ctx, chatID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	if !account.IsTutor {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNotATutor))
		return
	}

	h.StateManager.SetState(chatID, callbacktypes.UserState(state.StateAddSlotDate))

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("❌ Отмена", "cancel_dialog"))

	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback,
		"📅 Введите дату в формате <b>ДД.ММ.ГГГГ</b>, например: 15.03.2026",
		kb.Build())
}

// HandleSlotRecurring завершает диалог добавления: создаёт шаблон
func HandleSlotRecurring(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	parts, err := common.ParseParts(callback.Data, 1)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	recurring := parts[0] == "yes"
	chatID := common.ChatIDFromCallback(callback)

	storedDate, ok1 := h.StateManager.GetData(chatID, "slot_date")
	storedStart, ok2 := h.StateManager.GetData(chatID, "slot_time_start")
	storedEnd, ok3 := h.StateManager.GetData(chatID, "slot_time_end")
	if !ok1 || !ok2 || !ok3 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrDialogExpired))
		return
	}
	date, ok1 := storedDate.(model.Date)
	timeStart, ok2 := storedStart.(string)
	timeEnd, ok3 := storedEnd.(string)
	if !ok1 || !ok2 || !ok3 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	created, err := h.AvailabilityService.Create(ctx, chatID, date, timeStart, timeEnd, recurring)
	if err != nil {
		h.Logger.Error("Failed to create availability",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	h.StateManager.ClearState(chatID)

	var lines string
	for _, tpl := range created {
		lines += formatting.FormatTemplateLine(tpl) + "\n"
	}
	common.AnswerCallback(ctx, b, callback.ID, "")
	common.EditOrSend(ctx, b, callback,
		fmt.Sprintf("✅ Время добавлено:\n%s\nВесь список: /myschedule", lines),
		keyboard.Empty())
}

// HandleDeleteSlot удаляет шаблон доступности.
// Отказывает, если на окно уже записаны занятия.
func HandleDeleteSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	templateID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	chatID := common.ChatIDFromCallback(callback)

	template, err := findOwnTemplate(ctx, h, chatID, templateID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	if err := h.AvailabilityService.Delete(ctx, chatID, template); err != nil {
		h.Logger.Error("Failed to delete availability",
			zap.Error(err),
			zap.Int64("template_id", templateID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	grouped, err := h.AvailabilityService.My(ctx, chatID, 0)
	if err != nil {
		common.AnswerCallback(ctx, b, callback.ID, "Удалено")
		return
	}
	text, markup := RenderMySchedule(grouped)
	common.AnswerCallback(ctx, b, callback.ID, "Удалено")
	common.EditOrSend(ctx, b, callback, text, markup)
}

// HandleWeekImage рисует текущую неделю: свободные окна и занятия
func HandleWeekImage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)

	grouped, err := h.AvailabilityService.My(ctx, chatID, 0)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	templates := make([]*model.AvailabilityTemplate, 0, len(grouped.Recurring))
	templates = append(templates, grouped.Recurring...)
	for _, week := range grouped.Weeks {
		templates = append(templates, week.Slots...)
	}
	slots := schedule.Expand(templates, time.Now())

	var sessions []*model.Session
	if list, listErr := h.BookingService.MySessions(ctx, chatID); listErr == nil {
		sessions = append(sessions, list.Pending...)
		sessions = append(sessions, list.Upcoming...)
	}

	imageData, err := common.GenerateWeekImage(time.Now(), slots, sessions, true)
	if err != nil {
		h.Logger.Error("Failed to render week image",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось построить картинку")
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")
	b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo:  &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(imageData)},
	})
}

// findOwnTemplate ищет шаблон тьютора по ID
func findOwnTemplate(ctx context.Context, h *callbacktypes.Handler, chatID, templateID int64) (*model.AvailabilityTemplate, error) {
	grouped, err := h.AvailabilityService.My(ctx, chatID, 0)
	if err != nil {
		return nil, err
	}
	for _, tpl := range grouped.Recurring {
		if tpl.ID == templateID {
			return tpl, nil
		}
	}
	for _, week := range grouped.Weeks {
		for _, tpl := range week.Slots {
			if tpl.ID == templateID {
				return tpl, nil
			}
		}
	}
	return nil, common.ErrSlotNotFound
}
